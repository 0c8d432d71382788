package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// sets flag values from corresponding environment variables if flags weren't explicitly provided
func BindEnvToFlags(cmd *cobra.Command) error {
	v := viper.New()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Convert flag name to environment variable name
		// e.g., "rate-limit" -> "RATE_LIMIT"
		envVarName := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		v.BindEnv(f.Name, envVarName)

		if !f.Changed && v.IsSet(f.Name) {
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return nil
}

// ParseTagFilters parses repeated --tag flags of the form "Key=value1,value2"
// into a tag name to values mapping.
func ParseTagFilters(tagFlags []string) (map[string][]string, error) {
	if len(tagFlags) == 0 {
		return nil, nil
	}

	tags := map[string][]string{}
	for _, flag := range tagFlags {
		key, values, found := strings.Cut(flag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid tag filter format: %s. Expected format: 'name=value1,value2'", flag)
		}
		tags[key] = strings.Split(values, ",")
	}

	return tags, nil
}
