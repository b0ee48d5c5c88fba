// Package config provides configuration loading for adminctl.
//
// Values are resolved in priority order: defaults, then the adminctl.yaml
// config file, then ADMINCTL_* environment variables, then CLI flags bound
// by the command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the top-level configuration for adminctl.
type Config struct {
	// APIBaseURL is the base URL of the EzyMarket API, including the
	// /api path prefix.
	APIBaseURL string `yaml:"api_base_url" mapstructure:"api_base_url" validate:"required,url"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// StatePath is the path to the local SQLite state database holding
	// the persisted session.
	StatePath string `yaml:"state_path" mapstructure:"state_path" validate:"required"`

	// LogLevel controls diagnostic output verbosity.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// SetDefaults populates zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:5000/api"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.StatePath == "" {
		c.StatePath = defaultStatePath()
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s (rule %q)", fieldKey(fe.StructField()), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "adminctl.db"
	}
	return filepath.Join(home, ".adminctl", "state.db")
}

// fieldKey maps a struct field name back to its config key for error
// messages users can act on.
func fieldKey(field string) string {
	switch field {
	case "APIBaseURL":
		return "api_base_url"
	case "Timeout":
		return "timeout"
	case "StatePath":
		return "state_path"
	case "LogLevel":
		return "log_level"
	default:
		return field
	}
}

// ConfigFileUsed returns the path of the loaded config file, or an empty
// string when running on defaults and environment variables only.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
