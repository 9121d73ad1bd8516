package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
)

// fileConfig is a DTO used exclusively for config file unmarshalling. Fields
// are pointers so that keys missing from the file leave earlier values alone.
// It relies on timex.Duration so intervals can be written either as strings
// like "3s" or as integer nanoseconds.
type fileConfig struct {
	APIBaseURL            *string         `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout        *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DBPath                *string         `json:"db_path" yaml:"db_path"`
	PageSize              *int            `json:"page_size" yaml:"page_size"`
	HistoryLimit          *int            `json:"history_limit" yaml:"history_limit"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
	DiscardStaleResponses *bool           `json:"discard_stale_responses" yaml:"discard_stale_responses"`
}

// parseFile overlays cfg with the file named by -c/-config, if any. The format
// follows the extension: .yaml/.yml is YAML, anything else JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	if fc.HistoryLimit != nil {
		cfg.HistoryLimit = *fc.HistoryLimit
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.DiscardStaleResponses != nil {
		cfg.DiscardStaleResponses = *fc.DiscardStaleResponses
	}
}
