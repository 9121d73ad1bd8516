// Package flagx lets several independent flag parsers share one argument list.
//
// The configuration loader owns a handful of global flags (-a, -c, ...) while the
// command tree owns its subcommands and their flags. FilterArgs hands each
// loader only the flags it knows about; StripArgs returns everything else.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the allowed flags (and their values) found in args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	kept, _ := partition(args, allowedFlags)
	return kept
}

// StripArgs is the complement of FilterArgs: it removes the allowed flags and
// their values and returns the remaining arguments in their original order.
func StripArgs(args []string, flags []string) []string {
	_, rest := partition(args, flags)
	return rest
}

func partition(args []string, flags []string) (kept []string, rest []string) {
	allowed := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		allowed[f] = struct{}{}
	}

	kept = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				kept = append(kept, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			kept = append(kept, arg)
			// a following token that does not look like a flag is this flag's value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
			continue
		}

		rest = append(rest, arg)
	}

	return kept, rest
}

// ConfigFileFlags lists every spelling of the config file flag.
var ConfigFileFlags = []string{"-c", "-config", "--config"}

// ConfigFile extracts the config file path given via -c or -config.
// Other arguments are ignored. Returns "" when the flag is absent.
func ConfigFile(args []string) string {
	var config string

	filtered := FilterArgs(args, ConfigFileFlags)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}
