package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config holds runtime settings for the todo CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the remote API; requests go to <APIBaseURL>/api.
//   - RequestTimeout: upper bound for every API request.
//   - DBPath: SQLite file holding the session. Empty keeps the session in memory.
//   - PageSize: items per list page.
//   - HistoryLimit: items in the completed history panel.
//   - LogLevel: debug, info, warn or error.
//   - DiscardStaleResponses: drop list responses overtaken by a newer request.
type Config struct {
	APIBaseURL            string
	RequestTimeout        time.Duration
	DBPath                string
	PageSize              int
	HistoryLimit          int
	LogLevel              string
	DiscardStaleResponses bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.DBPath = "gophtodo.db"
	c.PageSize = 10
	c.HistoryLimit = 10
	c.LogLevel = "warn"
	c.DiscardStaleResponses = true
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.HistoryLimit, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// Loader assembles a Config from its sources. Later sources take precedence:
// defaults, environment (.env first, then the process environment), the
// config file named by -c/-config, then command-line flags.
type Loader struct {
	Args       []string
	LookupEnv  func(key string) (string, bool)
	DotEnvPath string
}

// LoadConfig loads the configuration for the running process. args are the
// command-line arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	return Loader{Args: args, LookupEnv: os.LookupEnv, DotEnvPath: ".env"}.Load()
}

func (l Loader) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	lookup, err := withDotEnv(l.DotEnvPath, l.LookupEnv)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, l.Args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, l.Args); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
