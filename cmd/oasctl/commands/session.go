package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func installSessionCmd(app *App) {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Verify connectivity and credentials",
		Long:  "Open a session against the configured server, report its session ID, and log off.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running session command")
			return app.sessionRun()
		},
	}

	app.cmd.AddCommand(sessionCmd)
}

func (a *App) sessionRun() error {
	_, s, err := a.connect()
	if err != nil {
		return err
	}
	defer closeSession(s)

	fmt.Printf("Session ID: %s\n", s.ID())
	return nil
}
