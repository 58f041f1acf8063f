// Package xmlutils provides lookup helpers for catalog object XML.
//
// Catalog objects mix several namespaces (saw, cond, sawx) and servers are not
// consistent about prefixes, so lookups match local tag names only.
package xmlutils

import "github.com/beevik/etree"

// FindDescendant returns the first descendant of el, in document order, whose
// local tag name matches tag, or nil when there is none.
func FindDescendant(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := FindDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}
