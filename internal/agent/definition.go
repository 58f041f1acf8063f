// Package agent is the implementation of the agent (iBot) administration tasks:
// status collection, bulk enable/disable, and definition rewrites with backups.
package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/oas-tools/oasctl/internal/xmlutils"
)

var (
	// ErrNoDataVisibility is returned when an agent definition has no dataVisibility element.
	ErrNoDataVisibility = errors.New("no dataVisibility element in agent definition")
	// ErrNoSpecificRecipients is returned when an agent definition has no specificRecipients element.
	ErrNoSpecificRecipients = errors.New("no specificRecipients element in agent definition")
	// ErrNoEmailRecipients is returned when an agent definition has no emailRecipients element.
	ErrNoEmailRecipients = errors.New("no emailRecipients element in agent definition")
)

// Definition is the XML definition of an agent as stored in the catalog.
//
// Only the run-as user and the recipient lists are interpreted; everything else
// in the document is carried through writes untouched.
type Definition struct {
	doc *etree.Document
}

// ParseDefinition parses the XML text of an agent definition.
func ParseDefinition(data string) (*Definition, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		return nil, fmt.Errorf("could not parse agent definition: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("agent definition has no root element")
	}
	return &Definition{doc: doc}, nil
}

// String serializes the definition back to XML text.
func (d *Definition) String() (string, error) {
	return d.doc.WriteToString()
}

// RunAs returns the run-as user of the dataVisibility element.
func (d *Definition) RunAs() (string, error) {
	el := xmlutils.FindDescendant(d.doc.Root(), "dataVisibility")
	if el == nil {
		return "", ErrNoDataVisibility
	}
	return el.SelectAttrValue("runAs", ""), nil
}

// SetRunAs replaces the run-as user and its GUID on the dataVisibility element.
func (d *Definition) SetRunAs(user string) error {
	el := xmlutils.FindDescendant(d.doc.Root(), "dataVisibility")
	if el == nil {
		return ErrNoDataVisibility
	}
	el.CreateAttr("runAs", user)
	el.CreateAttr("runAsGuid", user)
	return nil
}

// SpecificRecipients returns the user names listed under recipients/specificRecipients.
func (d *Definition) SpecificRecipients() ([]string, error) {
	el := xmlutils.FindDescendant(d.doc.Root(), "specificRecipients")
	if el == nil {
		return nil, ErrNoSpecificRecipients
	}
	var names []string
	for _, child := range el.ChildElements() {
		if name := child.SelectAttrValue("name", ""); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// SetSpecificRecipients replaces the recipient user list with the given names.
// Each recipient's GUID is set to its name, as the server resolves them on write.
func (d *Definition) SetSpecificRecipients(names []string) error {
	el := xmlutils.FindDescendant(d.doc.Root(), "specificRecipients")
	if el == nil {
		return ErrNoSpecificRecipients
	}
	removeChildElements(el)
	for _, name := range names {
		user := el.CreateElement("saw:user")
		user.CreateAttr("name", name)
		user.CreateAttr("guid", name)
	}
	return nil
}

// EmailRecipients returns the addresses listed under emailRecipients.
func (d *Definition) EmailRecipients() ([]string, error) {
	el := xmlutils.FindDescendant(d.doc.Root(), "emailRecipients")
	if el == nil {
		return nil, ErrNoEmailRecipients
	}
	var addresses []string
	for _, child := range el.ChildElements() {
		if address := child.SelectAttrValue("address", ""); address != "" {
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}

// SetEmailRecipients replaces the email recipient list with the given addresses.
func (d *Definition) SetEmailRecipients(addresses []string) error {
	el := xmlutils.FindDescendant(d.doc.Root(), "emailRecipients")
	if el == nil {
		return ErrNoEmailRecipients
	}
	removeChildElements(el)
	for _, address := range addresses {
		recipient := el.CreateElement("saw:emailRecipient")
		recipient.CreateAttr("address", address)
		recipient.CreateAttr("type", "HTML")
	}
	return nil
}

func removeChildElements(el *etree.Element) {
	for _, child := range el.ChildElements() {
		el.RemoveChild(child)
	}
}

// splitList splits a comma separated CSV cell into trimmed, non-empty entries.
func splitList(s string) []string {
	var out []string
	for _, entry := range strings.Split(s, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
