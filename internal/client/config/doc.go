// Package config loads runtime configuration for the todo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory, then GOPHTODO_*
//     variables of the process, which win over the file.
//  3. Optional config file selected via -c or -config; YAML when the name ends
//     in .yaml or .yml, JSON otherwise.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The result is validated before it is returned.
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "request_timeout": "10s",
//	  "db_path": "gophtodo.db",
//	  "page_size": 10,
//	  "history_limit": 10,
//	  "log_level": "warn",
//	  "discard_stale_responses": true
//	}
package config
