// Package flagx contains helpers that let several components share os.Args
// without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (and their values) from args.
//
// Both "-f value" and "-f=value" forms are recognised. A value is consumed
// only when the following argument does not itself start with "-".
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") {
			if name, _, ok := strings.Cut(arg, "="); ok {
				if _, keep := set[name]; keep {
					out = append(out, arg)
				}
				continue
			}
		}

		if _, keep := set[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// lookupString parses only the given aliases out of os.Args and returns the
// value bound to them, or "" when none is present.
func lookupString(name string, aliases ...string) string {
	var v string

	allowed := make([]string, 0, len(aliases)*2)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, a := range aliases {
		fs.StringVar(&v, a, "", name)
		allowed = append(allowed, "-"+a, "--"+a)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))

	return v
}

// JsonConfigFlags returns the JSON config file path given via -c or -config.
func JsonConfigFlags() string {
	return lookupString("config", "c", "config")
}

// EnvFileFlag returns the dotenv file path given via -env, or "" if absent.
func EnvFileFlag() string {
	return lookupString("env", "env")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
