package internal

// Option is a functional option for configuring the wiki application before
// Run wires the repository, service, and HTTP surface together.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig sets the application configuration. Run refuses to start
// without one; the CLI always supplies it, loaded or defaulted.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
