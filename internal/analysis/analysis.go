// Package analysis extracts subject-area usage from analyses.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/gocarina/gocsv"
	"github.com/oas-tools/oasctl/internal/fileutils"
	"github.com/oas-tools/oasctl/internal/xmlutils"
)

// NoSubjectArea is written when an analysis carries no subject area.
const NoSubjectArea = "N/A"

// Row is one line of the subject areas CSV.
type Row struct {
	Analysis    string `csv:"Analysis"`
	SubjectArea string `csv:"Subject Area"`
}

// Reader reads catalog objects as XML text.
type Reader interface {
	ReadObject(path, sessionID string) (string, error)
}

// SubjectArea parses an analysis definition and returns the subject area named
// by its criteria, or NoSubjectArea when the criteria carries none.
func SubjectArea(data string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		return "", fmt.Errorf("could not parse analysis definition: %w", err)
	}
	if doc.Root() == nil {
		return "", errors.New("analysis definition has no root element")
	}

	criteria := xmlutils.FindDescendant(doc.Root(), "criteria")
	if criteria == nil {
		return NoSubjectArea, nil
	}
	if sa := criteria.SelectAttrValue("subjectArea", ""); sa != "" {
		return sa, nil
	}
	return NoSubjectArea, nil
}

// Collect reads every analysis in paths and pairs it with its subject area.
// Read or parse failures are logged and the analysis is skipped.
func Collect(l *slog.Logger, reader Reader, paths []string, sessionID string) []Row {
	rows := make([]Row, 0, len(paths))
	for _, path := range paths {
		data, err := reader.ReadObject(path, sessionID)
		if err != nil {
			l.Error("Could not read analysis, skipping", "analysis", path, "error", err)
			continue
		}
		subjectArea, err := SubjectArea(data)
		if err != nil {
			l.Error("Could not parse analysis, skipping", "analysis", path, "error", err)
			continue
		}
		rows = append(rows, Row{Analysis: path, SubjectArea: subjectArea})
	}
	return rows
}

// WriteFile writes the rows to path atomically.
func WriteFile(path string, rows []Row) error {
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("could not encode CSV rows: %w", err)
	}
	if err := fileutils.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}
