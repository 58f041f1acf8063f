// Package commands contains the commands of the oasctl command line tool.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oas-tools/oasctl/internal/agent"
	"github.com/oas-tools/oasctl/internal/catalog"
	"github.com/oas-tools/oasctl/internal/cli"
	"github.com/oas-tools/oasctl/internal/constants"
	"github.com/oas-tools/oasctl/internal/saw"
)

// session is an authenticated connection that must be closed after use.
type session interface {
	ID() string
	Close() error
}

// service is the subset of the saw client used by the commands.
type service interface {
	Login(username, password string) (session, error)

	catalog.Lister
	agent.StatusClient
	agent.AgentWriter
	agent.Toggler
	agent.Exporter
}

// sawService adapts *saw.Client to the service interface.
type sawService struct {
	*saw.Client
}

func (s sawService) Login(username, password string) (session, error) {
	return s.Client.Login(username, password)
}

// newService builds a service for the given connection configuration.
type newService func(l *slog.Logger, cfg saw.Config) (service, error)

// options are the configurable functional options for the app.
type options struct {
	newService newService
}

// Options represents an optional function to override App default values.
type Options func(*options)

// App represents the application.
type App struct {
	cmd   *cobra.Command
	viper *viper.Viper

	config appConfig

	newService newService
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int
	JSONLogs  bool

	Connection saw.Config

	Agents struct {
		Path       string
		Details    bool
		OutputFile string
		InputFile  string
		NoBackup   bool
		BackupPath string
	}

	Analyses struct {
		Path       string
		OutputFile string
	}
}

// New registers commands and returns a new App.
func New(args ...Options) (*App, error) {
	opts := options{
		newService: func(l *slog.Logger, cfg saw.Config) (service, error) {
			client, err := saw.New(l, cfg)
			if err != nil {
				return nil, err
			}
			return sawService{client}, nil
		},
	}
	for _, opt := range args {
		opt(&opts)
	}

	a := App{newService: opts.newService}

	a.cmd = &cobra.Command{
		Use:   constants.CmdName + " COMMAND",
		Short: "Administer Oracle Analytics Server content",
		Long: `oasctl automates administrative tasks against an Oracle Analytics Server (OBIEE) instance
through its SOAP web services: session checks, catalog walks, bulk agent (iBot)
administration and subject-area extraction.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true

			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to decode configuration into struct: %w", err)
			}

			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Update logging after loading config if necessary
			return nil
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	installSessionCmd(&a)
	installAgentsCmd(&a)
	installAnalysesCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
	cmd.PersistentFlags().BoolVar(&app.config.JSONLogs, "json-logs", false, "enable JSON formatted logs")

	// Connection flags
	cmd.PersistentFlags().StringVarP(&app.config.Connection.Host, "host", "H", "", "host address of the Oracle Analytics server")
	cmd.PersistentFlags().IntVarP(&app.config.Connection.Port, "port", "P", 0, "port number of the Oracle Analytics server")
	cmd.PersistentFlags().StringVarP(&app.config.Connection.Username, "username", "u", "", "username for authentication")
	cmd.PersistentFlags().StringVarP(&app.config.Connection.Password, "password", "p", "", "password for authentication")
	cmd.PersistentFlags().BoolVar(&app.config.Connection.SSL, "ssl", false, "use HTTPS to reach the server")
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// RootCmd returns a copy of the root command. Shouldn't be used normally apart from tests.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}

// connect validates the connection flags, builds a client and opens a session.
func (a *App) connect() (service, session, error) {
	cfg := a.config.Connection
	if cfg.Host == "" || cfg.Port == 0 {
		a.cmd.SilenceUsage = false
		return nil, nil, errors.New("host and port must be provided")
	}

	svc, err := a.newService(slog.Default(), cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := svc.Login(cfg.Username, cfg.Password)
	if err != nil {
		return nil, nil, err
	}
	return svc, s, nil
}

// closeSession logs the session off, reporting rather than failing on errors,
// so that it can be deferred on every exit path.
func closeSession(s session) {
	if err := s.Close(); err != nil {
		slog.Warn("Could not log off session", "error", err)
	}
}
