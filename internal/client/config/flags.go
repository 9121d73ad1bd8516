package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
)

var flagNames = []string{"a", "t", "db", "page-size", "history-limit", "log-level"}

// Flags lists every spelling of the configuration flags, including the config
// file flag. The command tree strips these before parsing its own arguments.
func Flags() []string {
	out := make([]string, 0, 2*len(flagNames)+len(flagx.ConfigFileFlags))
	for _, n := range flagNames {
		out = append(out, "-"+n, "--"+n)
	}
	return append(out, flagx.ConfigFileFlags...)
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string              base URL of the remote API
//	-t duration            per-request timeout
//	-db string             session database path ("" keeps the session in memory)
//	-page-size int         items per page
//	-history-limit int     items in the history panel
//	-log-level string      debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first so subcommands and their own
// flags are left alone.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, Flags())

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the remote API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "session database path")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "items per page")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "items in the history panel")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	var ignored string
	fs.StringVar(&ignored, "c", "", "config file")
	fs.StringVar(&ignored, "config", "", "config file")

	return fs.Parse(args)
}
