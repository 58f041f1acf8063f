package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/oas-tools/oasctl/internal/agent"
	"github.com/oas-tools/oasctl/internal/catalog"
	"github.com/oas-tools/oasctl/internal/constants"
)

func installAgentsCmd(app *App) {
	agentsCmd := &cobra.Command{
		Use:   "agents COMMAND",
		Short: "Administer agents (iBots) in bulk",
		Args:  cobra.NoArgs,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List agents under a catalog folder with their scheduler status",
		Long: `Walk the catalog from the given path, collect every agent and write its scheduler
status to a CSV file.

With --details, each agent definition is also read to report its run-as user and
recipient lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running agents list command")
			return app.agentsListRun()
		},
	}
	listCmd.Flags().StringVar(&app.config.Agents.Path, "path", constants.DefaultCatalogRoot, "catalog folder to walk")
	listCmd.Flags().BoolVar(&app.config.Agents.Details, "details", false, "include run-as user and recipient lists")
	listCmd.Flags().StringVarP(&app.config.Agents.OutputFile, "output-file", "o", constants.DefaultStatusFile, "CSV file to write")
	agentsCmd.AddCommand(listCmd)

	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Enable or disable agents from a CSV file",
		Long: `Read a CSV file with path and agentEnabled columns and issue exactly one
enable or disable call per row. Invalid rows are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running agents enable command")
			return app.agentsEnableRun()
		},
	}
	enableCmd.Flags().StringVarP(&app.config.Agents.InputFile, "input-file", "i", "", "CSV file with path and agentEnabled columns")
	agentsCmd.AddCommand(enableCmd)

	modifyCmd := &cobra.Command{
		Use:   "modify",
		Short: "Rewrite agent definitions from a CSV file",
		Long: `Read a CSV file with path, runAs, specificRecipients and emailRecipients
columns and rewrite each agent definition accordingly. Empty cells leave the
corresponding aspect untouched.

Unless --no-backup is given, each agent is exported to a timestamped backup
directory before it is rewritten; an agent whose backup fails is not modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running agents modify command")
			return app.agentsModifyRun()
		},
	}
	modifyCmd.Flags().StringVarP(&app.config.Agents.InputFile, "input-file", "i", "", "CSV file with the agent changes to apply")
	modifyCmd.Flags().BoolVar(&app.config.Agents.NoBackup, "no-backup", false, "skip the per-agent backup before rewriting")
	modifyCmd.Flags().StringVar(&app.config.Agents.BackupPath, "backup-path", ".", "directory under which the backup directory is created")
	agentsCmd.AddCommand(modifyCmd)

	app.cmd.AddCommand(agentsCmd)
}

func (a *App) agentsListRun() error {
	svc, s, err := a.connect()
	if err != nil {
		return err
	}
	defer closeSession(s)

	l := slog.Default()
	agents, err := catalog.New(l, svc).Find(a.config.Agents.Path, constants.AgentSignature, s.ID())
	if err != nil {
		return err
	}
	l.Info("Catalog walk complete", "path", a.config.Agents.Path, "agents", len(agents))

	rows := agent.CollectStatus(l, svc, agents, s.ID())

	out := a.config.Agents.OutputFile
	if a.config.Agents.Details {
		if err := agent.WriteDetailedStatusFile(out, agent.CollectDetails(l, svc, rows, s.ID())); err != nil {
			return err
		}
	} else if err := agent.WriteStatusFile(out, rows); err != nil {
		return err
	}

	l.Info("Agent status written", "file", out)
	return nil
}

func (a *App) agentsEnableRun() error {
	rows, err := loadInputFile(a, agent.LoadToggleRows)
	if err != nil {
		return err
	}

	svc, s, err := a.connect()
	if err != nil {
		return err
	}
	defer closeSession(s)

	return agent.ApplyToggles(slog.Default(), svc, rows, s.ID())
}

func (a *App) agentsModifyRun() error {
	rows, err := loadInputFile(a, agent.LoadChangeRows)
	if err != nil {
		return err
	}

	svc, s, err := a.connect()
	if err != nil {
		return err
	}
	defer closeSession(s)

	l := slog.Default()
	var backup *agent.Backup
	if !a.config.Agents.NoBackup {
		if backup, err = agent.NewBackup(l, svc, a.config.Agents.BackupPath); err != nil {
			return err
		}
		l.Info("Backing up agents before modification", "directory", backup.Dir())
	}

	return agent.NewModifier(l, svc, backup).Apply(rows, s.ID())
}

// loadInputFile loads the input CSV before a session is opened, so that a bad
// file is rejected without touching the server.
func loadInputFile[T any](a *App, load func(string) ([]T, error)) ([]T, error) {
	if a.config.Agents.InputFile == "" {
		a.cmd.SilenceUsage = false
		return nil, errors.New("an input file must be provided")
	}
	return load(a.config.Agents.InputFile)
}
