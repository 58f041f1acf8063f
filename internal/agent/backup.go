package agent

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/oas-tools/oasctl/internal/constants"
	"github.com/oas-tools/oasctl/internal/fileutils"
	"github.com/ubuntu/decorate"
)

// Exporter exports catalog items in archive form.
type Exporter interface {
	ExportItem(path, sessionID string) ([]byte, error)
}

// Backup writes per-agent catalog exports under a timestamped directory,
// mirroring each agent's catalog folder layout.
type Backup struct {
	dir      string
	exporter Exporter
	log      *slog.Logger
}

// NewBackup creates a timestamped backup directory under root and returns a
// Backup writing into it.
func NewBackup(l *slog.Logger, exporter Exporter, root string) (*Backup, error) {
	dir := filepath.Join(root, constants.BackupDirPrefix+time.Now().Format(constants.BackupTimestampFormat))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create backup directory: %w", err)
	}
	l.Debug("Backup directory created", "dir", dir)
	return &Backup{dir: dir, exporter: exporter, log: l}, nil
}

// Dir returns the backup directory.
func (b Backup) Dir() string {
	return b.dir
}

// Save exports the agent at agentPath into the backup directory.
func (b Backup) Save(agentPath, sessionID string) (err error) {
	defer decorate.OnError(&err, "could not back up agent %s", agentPath)

	data, err := b.exporter.ExportItem(agentPath, sessionID)
	if err != nil {
		return err
	}

	dir := filepath.Join(b.dir, filepath.FromSlash(path.Dir(agentPath)))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	file := filepath.Join(dir, path.Base(agentPath)+constants.BackupExt)
	if err := fileutils.AtomicWrite(file, data); err != nil {
		return err
	}
	b.log.Info("Backed up agent", "agent", agentPath, "file", file)
	return nil
}
