package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// configPath is set by the root command's --config flag.
var configPath string

// cliConfig holds defaults that commands fall back to when the
// corresponding flag is not given.
type cliConfig struct {
	// Format is the default output format for validate/diff/list.
	Format string `mapstructure:"format"`
	// Parameters are default parameter values for render.
	Parameters map[string]string `mapstructure:"parameters"`
	// Resources are default resource physical ids for render.
	Resources map[string]string `mapstructure:"resources"`
	// Attributes are default attribute values for render.
	Attributes map[string]string `mapstructure:"attributes"`
}

// loadConfig reads .stackcheck.yaml (or the --config override) and
// environment variables with the STACKCHECK prefix. A missing config file
// is fine; a malformed one is not.
func loadConfig() (*cliConfig, error) {
	v := viper.New()

	v.SetDefault("format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".stackcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigParseError); ok {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// File not found is OK, we'll use defaults
	}

	v.SetEnvPrefix("STACKCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
