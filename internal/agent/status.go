package agent

import (
	"log/slog"
	"strings"

	"github.com/oas-tools/oasctl/internal/saw"
)

// StatusClient fetches the scheduler status of agents.
type StatusClient interface {
	AgentStatus(path, sessionID string) (saw.AgentStatus, error)
}

// Reader reads catalog objects as XML text.
type Reader interface {
	ReadObject(path, sessionID string) (string, error)
}

// CollectStatus fetches the scheduler status of every agent in paths.
// Failures are logged and the agent is skipped.
func CollectStatus(l *slog.Logger, client StatusClient, paths []string, sessionID string) []StatusRow {
	rows := make([]StatusRow, 0, len(paths))
	for _, path := range paths {
		status, err := client.AgentStatus(path, sessionID)
		if err != nil {
			l.Error("Could not get agent status, skipping", "agent", path, "error", err)
			continue
		}
		rows = append(rows, StatusRow{
			Path:              path,
			LastRun:           status.LastRun,
			NextRun:           status.NextRun,
			LastRunStatus:     status.LastRunStatus,
			Priority:          status.Priority,
			AgentEnabled:      status.AgentEnabled,
			Subscribed:        status.Subscribed,
			SpecificRecipient: status.SpecificRecipient,
		})
	}
	return rows
}

// CollectDetails reads the definition of every agent in rows and extracts the
// run-as user and recipient lists. Agents whose definition cannot be read or
// parsed keep empty detail fields; the failure is logged.
func CollectDetails(l *slog.Logger, reader Reader, rows []StatusRow, sessionID string) []DetailedStatusRow {
	detailed := make([]DetailedStatusRow, 0, len(rows))
	for _, row := range rows {
		det := DetailedStatusRow{StatusRow: row}

		data, err := reader.ReadObject(row.Path, sessionID)
		if err != nil {
			l.Error("Could not read agent definition", "agent", row.Path, "error", err)
			detailed = append(detailed, det)
			continue
		}
		def, err := ParseDefinition(data)
		if err != nil {
			l.Error("Could not parse agent definition", "agent", row.Path, "error", err)
			detailed = append(detailed, det)
			continue
		}

		det.RunAs, err = def.RunAs()
		if err != nil {
			l.Error("No data visibility found for agent", "agent", row.Path)
		}
		det.SpecificRecipients = joinList(def.SpecificRecipients)
		det.EmailRecipients = joinList(def.EmailRecipients)

		detailed = append(detailed, det)
	}
	return detailed
}

// joinList flattens a recipient list into a single CSV cell. A missing
// recipients element means no recipients.
func joinList(get func() ([]string, error)) string {
	entries, _ := get()
	return strings.Join(entries, ",")
}
