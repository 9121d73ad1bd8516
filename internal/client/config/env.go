package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOPHTODO_"

// withDotEnv layers the variables of a .env file under lookup. A missing file
// is not an error.
func withDotEnv(path string, lookup func(string) (string, bool)) (func(string) (string, bool), error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	if path == "" {
		return lookup, nil
	}

	dotenv, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return lookup, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with GOPHTODO_* variables.
//
//	GOPHTODO_API_BASE_URL            string
//	GOPHTODO_REQUEST_TIMEOUT         duration ("5s")
//	GOPHTODO_DB_PATH                 string
//	GOPHTODO_PAGE_SIZE               int
//	GOPHTODO_HISTORY_LIMIT           int
//	GOPHTODO_LOG_LEVEL               string
//	GOPHTODO_DISCARD_STALE_RESPONSES bool
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "API_BASE_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(envPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(envPrefix + "DB_PATH"); ok {
		cfg.DBPath = v
	}
	if err := envInt(lookup, "PAGE_SIZE", &cfg.PageSize); err != nil {
		return err
	}
	if err := envInt(lookup, "HISTORY_LIMIT", &cfg.HistoryLimit); err != nil {
		return err
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "DISCARD_STALE_RESPONSES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDISCARD_STALE_RESPONSES: %w", envPrefix, err)
		}
		cfg.DiscardStaleResponses = b
	}
	return nil
}

func envInt(lookup func(string) (string, bool), name string, dst *int) error {
	v, ok := lookup(envPrefix + name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = n
	return nil
}
