package agent

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/oas-tools/oasctl/internal/fileutils"
)

func init() {
	// Input files must carry every expected column.
	gocsv.FailIfUnmatchedStructTags = true
}

// StatusRow is one line of the agents status CSV.
type StatusRow struct {
	Path              string `csv:"path"`
	LastRun           string `csv:"lastRun"`
	NextRun           string `csv:"nextRun"`
	LastRunStatus     string `csv:"lastRunStatus"`
	Priority          string `csv:"priority"`
	AgentEnabled      bool   `csv:"agentEnabled"`
	Subscribed        bool   `csv:"subscribed"`
	SpecificRecipient bool   `csv:"specificRecipient"`
}

// DetailedStatusRow extends StatusRow with fields read from the agent definition.
type DetailedStatusRow struct {
	StatusRow
	RunAs              string `csv:"runAs"`
	SpecificRecipients string `csv:"specificRecipients"`
	EmailRecipients    string `csv:"emailRecipients"`
}

// ToggleRow is one line of the enable/disable input CSV.
type ToggleRow struct {
	Path         string `csv:"path"`
	AgentEnabled string `csv:"agentEnabled"`
}

// Enabled parses the agentEnabled column of the row.
func (r ToggleRow) Enabled() (bool, error) {
	enabled, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(r.AgentEnabled)))
	if err != nil {
		return false, fmt.Errorf("agentEnabled must be a boolean, got %q", r.AgentEnabled)
	}
	return enabled, nil
}

// ChangeRow is one line of the modification input CSV. Empty cells leave the
// corresponding aspect of the agent untouched.
type ChangeRow struct {
	Path               string `csv:"path"`
	RunAs              string `csv:"runAs"`
	SpecificRecipients string `csv:"specificRecipients"`
	EmailRecipients    string `csv:"emailRecipients"`
}

// LoadToggleRows reads the enable/disable CSV at path.
// A missing required column is an error.
func LoadToggleRows(path string) ([]ToggleRow, error) {
	return loadRows[ToggleRow](path)
}

// LoadChangeRows reads the modification CSV at path.
// A missing required column is an error.
func LoadChangeRows(path string) ([]ChangeRow, error) {
	return loadRows[ChangeRow](path)
}

// WriteStatusFile writes the agent status rows to path atomically.
func WriteStatusFile(path string, rows []StatusRow) error {
	return writeRows(path, rows)
}

// WriteDetailedStatusFile writes the detailed agent status rows to path atomically.
func WriteDetailedStatusFile(path string, rows []DetailedStatusRow) error {
	return writeRows(path, rows)
}

func loadRows[T any](path string) (rows []T, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input file: %w", err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return rows, nil
}

func writeRows[T any](path string, rows []T) error {
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("could not encode CSV rows: %w", err)
	}
	if err := fileutils.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}
