// Package flagx pre-filters command-line arguments so several independent
// flag sets (JSON config path, config overrides, shell command) can each parse
// only the flags they own.
package flagx

import (
	"flag"
	"strings"
)

// Split partitions args into the flags named in valued or boolean (with their
// values), the remaining positional arguments, and any other dash-prefixed
// tokens (unknown).
//
// Supported forms:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//  3. Boolean flags without a value:         -p
//
// A valued flag followed by a token starting with '-' is kept without a value
// and the token is classified on its own; values starting with '-' need the
// '=' form (-k=-secret). Split never guesses whether an unknown flag takes a
// value, so in "-x NY" only "-x" is unknown and "NY" is positional.
func Split(args []string, valued []string, boolean []string) (flags, rest, unknown []string) {
	isValued := make(map[string]struct{}, len(valued))
	for _, f := range valued {
		isValued[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(boolean))
	for _, f := range boolean {
		isBool[f] = struct{}{}
	}

	flags = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		if strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			_, v := isValued[name]
			_, b := isBool[name]
			if v || b {
				flags = append(flags, arg)
			} else {
				unknown = append(unknown, arg)
			}
			continue
		}

		if _, ok := isBool[arg]; ok {
			flags = append(flags, arg)
			continue
		}

		if _, ok := isValued[arg]; ok {
			flags = append(flags, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}

		unknown = append(unknown, arg)
	}

	return flags, rest, unknown
}

// FilterArgs returns only the allowed valued flags (and their values) from args.
func FilterArgs(args []string, allowedFlags []string) []string {
	flags, _, _ := Split(args, allowedFlags, nil)
	return flags
}

// JsonConfigFlags extracts the config file path given with -c or -config.
// Other arguments are ignored; an empty string means no file was requested.
func JsonConfigFlags(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
