package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ubuntu/decorate"
)

// Toggler enables or disables agents.
type Toggler interface {
	EnableAgent(path string, enable bool, sessionID string) error
}

// ApplyToggles issues exactly one enable or disable call per row.
//
// Rows with an empty path or an unparseable agentEnabled value are reported and
// skipped; remote failures are logged and processing continues with the next
// row. The returned error joins every per-row failure.
func ApplyToggles(l *slog.Logger, client Toggler, rows []ToggleRow, sessionID string) error {
	var errs error
	for i, row := range rows {
		if row.Path == "" {
			l.Error("Row has no agent path, skipping", "row", i+1)
			errs = errors.Join(errs, fmt.Errorf("row %d: missing path", i+1))
			continue
		}
		enable, err := row.Enabled()
		if err != nil {
			l.Error("Row has an invalid agentEnabled value, skipping", "row", i+1, "agent", row.Path, "error", err)
			errs = errors.Join(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}

		action := "Disabling"
		if enable {
			action = "Enabling"
		}
		l.Info(action+" agent", "agent", row.Path)

		if err := client.EnableAgent(row.Path, enable, sessionID); err != nil {
			l.Error("Could not toggle agent", "agent", row.Path, "error", err)
			errs = errors.Join(errs, fmt.Errorf("agent %s: %w", row.Path, err))
		}
	}
	return errs
}

// AgentWriter reads and writes agent definitions in the catalog.
type AgentWriter interface {
	Reader
	WriteAgent(objectXML, path, sessionID string) error
}

// Modifier applies CSV-described changes to agents, optionally backing each
// agent up first.
type Modifier struct {
	catalog AgentWriter
	backup  *Backup // nil disables backups
	log     *slog.Logger
}

// NewModifier returns a Modifier writing through catalog. If backup is not
// nil, every agent is exported to it before being modified.
func NewModifier(l *slog.Logger, catalog AgentWriter, backup *Backup) Modifier {
	return Modifier{catalog: catalog, backup: backup, log: l}
}

// Apply processes every row. Rows with an empty path are reported and skipped;
// failures on one agent are logged and processing continues with the next row.
// The returned error joins every per-row failure.
func (m Modifier) Apply(rows []ChangeRow, sessionID string) error {
	var errs error
	for i, row := range rows {
		if row.Path == "" {
			m.log.Error("Row has no agent path, skipping", "row", i+1)
			errs = errors.Join(errs, fmt.Errorf("row %d: missing path", i+1))
			continue
		}
		m.log.Debug("Processing agent", "agent", row.Path, "runAs", row.RunAs,
			"specificRecipients", row.SpecificRecipients, "emailRecipients", row.EmailRecipients)

		if err := m.apply(row, sessionID); err != nil {
			m.log.Error("Could not modify agent", "agent", row.Path, "error", err)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (m Modifier) apply(row ChangeRow, sessionID string) (err error) {
	defer decorate.OnError(&err, "could not modify agent %s", row.Path)

	// An agent is never modified without a snapshot unless backups are disabled.
	if m.backup != nil {
		if err := m.backup.Save(row.Path, sessionID); err != nil {
			return err
		}
	}

	data, err := m.catalog.ReadObject(row.Path, sessionID)
	if err != nil {
		return err
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return err
	}

	if row.RunAs != "" {
		if err := def.SetRunAs(row.RunAs); err != nil {
			m.log.Error("Could not set run-as user", "agent", row.Path, "error", err)
		}
	}
	if row.SpecificRecipients != "" {
		if err := def.SetSpecificRecipients(splitList(row.SpecificRecipients)); err != nil {
			m.log.Error("Could not set recipients", "agent", row.Path, "error", err)
		}
	}
	if row.EmailRecipients != "" {
		if err := def.SetEmailRecipients(splitList(row.EmailRecipients)); err != nil {
			m.log.Error("Could not set email recipients", "agent", row.Path, "error", err)
		}
	}

	out, err := def.String()
	if err != nil {
		return err
	}
	if err := m.catalog.WriteAgent(out, row.Path, sessionID); err != nil {
		return err
	}
	m.log.Info("Modified agent", "agent", row.Path)
	return nil
}
