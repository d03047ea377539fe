package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// SetFlagsFromEnvVariables sets each flag from the env variable named after
// it, e.g. --redis-host is set from REDIS_HOST. Flags given on the command
// line are parsed afterwards and so take precedence.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		envVar := FlagToEnvVarName(f.Name)
		if val, present := os.LookupEnv(envVar); present {
			if err := fs.Set(f.Name, val); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", envVar, err))
			}
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// FlagToEnvVarName maps a flag name to its env variable name.
func FlagToEnvVarName(name string) string {
	return strings.ReplaceAll(strings.ToUpper(name), "-", "_")
}
