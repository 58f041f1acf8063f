package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/oas-tools/oasctl/internal/analysis"
	"github.com/oas-tools/oasctl/internal/catalog"
	"github.com/oas-tools/oasctl/internal/constants"
)

func installAnalysesCmd(app *App) {
	analysesCmd := &cobra.Command{
		Use:   "analyses",
		Short: "Extract the subject area of every analysis under a catalog folder",
		Long: `Walk the catalog from the given path, read every analysis definition and write
the analysis path with its subject area to a CSV file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running analyses command")
			return app.analysesRun()
		},
	}
	analysesCmd.Flags().StringVar(&app.config.Analyses.Path, "path", constants.DefaultCatalogRoot, "catalog folder to walk")
	analysesCmd.Flags().StringVarP(&app.config.Analyses.OutputFile, "output-file", "o", constants.DefaultAnalysesFile, "CSV file to write")

	app.cmd.AddCommand(analysesCmd)
}

func (a *App) analysesRun() error {
	svc, s, err := a.connect()
	if err != nil {
		return err
	}
	defer closeSession(s)

	l := slog.Default()
	analyses, err := catalog.New(l, svc).Find(a.config.Analyses.Path, constants.AnalysisSignature, s.ID())
	if err != nil {
		return err
	}
	l.Info("Catalog walk complete", "path", a.config.Analyses.Path, "analyses", len(analyses))

	rows := analysis.Collect(l, svc, analyses, s.ID())
	if err := analysis.WriteFile(a.config.Analyses.OutputFile, rows); err != nil {
		return err
	}

	l.Info("Subject areas written", "file", a.config.Analyses.OutputFile, "analyses", len(rows))
	return nil
}
