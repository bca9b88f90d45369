package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Snapshot SnapshotConfig    `yaml:"snapshot"`
	Gate     GateConfig        `yaml:"gate"`
	Static   StaticConfig      `yaml:"static"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Snapshot.Validate(); err != nil {
		return err
	}
	return c.Gate.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SnapshotConfig holds the snapshot file configuration. The file is the only
// durable representation of the collection.
type SnapshotConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the snapshot configuration.
func (c *SnapshotConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// GateConfig holds the tap gate configuration: how many taps within the
// rolling window unlock the editing surfaces.
type GateConfig struct {
	Taps     int `yaml:"taps"`
	WindowMS int `yaml:"window_ms"`
}

// Window returns the rolling window as a duration.
func (c *GateConfig) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// Validate validates the gate configuration.
func (c *GateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Taps, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.WindowMS, validation.Required, validation.Min(100)),
	)
}

// StaticConfig holds the optional directory of static UI assets. An empty
// path disables static serving (API-only mode).
type StaticConfig struct {
	Path string `yaml:"path"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Snapshot: SnapshotConfig{
			Path:  "./articles.json",
			Watch: true,
		},
		Gate: GateConfig{
			Taps:     10,
			WindowMS: 2500,
		},
		Static: StaticConfig{
			Path: "",
		},
	}
}
