// Package constants is responsible for defining the constants used in the application.
package constants

import "log/slog"

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "oasctl"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = slog.LevelInfo

	// DefaultCatalogRoot is the folder traversals start from when no path is given.
	DefaultCatalogRoot = "/shared"

	// AgentSignature is the catalog item signature identifying agents (iBots).
	AgentSignature = "coibot1"

	// AnalysisSignature is the catalog item signature identifying analyses.
	AnalysisSignature = "queryitem1"

	// DefaultStatusFile is the default output file of the agents list command.
	DefaultStatusFile = "agents_status.csv"

	// DefaultAnalysesFile is the default output file of the analyses command.
	DefaultAnalysesFile = "analyses_subject_areas.csv"

	// BackupDirPrefix is the name prefix of timestamped backup directories.
	BackupDirPrefix = "backup_"

	// BackupTimestampFormat is the layout of the timestamp in backup directory names.
	BackupTimestampFormat = "2006-01-02_15-04-05"

	// BackupExt is the extension of per-agent catalog export files.
	BackupExt = ".catalog"
)
