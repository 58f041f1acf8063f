package commands

type (
	NewService = newService
	Service    = service
	Session    = session
)

// SetArgs sets the arguments for the command.
func (a *App) SetArgs(args []string) {
	a.cmd.SetArgs(args)
}

// WithNewService sets the service constructor for the app.
func WithNewService(ns NewService) Options {
	return func(o *options) {
		o.newService = ns
	}
}
