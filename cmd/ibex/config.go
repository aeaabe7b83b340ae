package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config is the merged CLI configuration.
type config struct {
	Verb   string
	Given  []string
	Echo   bool
	Level  string
	Format string
}

// bindConfig attaches the command's flags to v. Flags win over IBEX_*
// environment variables, which win over the config file.
func bindConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix("IBEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("fmt", "%g")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	for key, name := range map[string]string{
		"fmt":        "fmt",
		"echo":       "echo",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig reads the config file, if any, and merges everything into a
// config. An explicit path must exist. Otherwise, a file named ibex in the
// user config directory or the working directory is used if present.
//
// Definitions from the flag are not bound to v so that values containing
// commas survive intact. They follow any from the file or environment.
func loadConfig(v *viper.Viper, path string, given []string) (*config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ibex")
		v.AddConfigPath("$HOME/.config/ibex")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg := &config{
		Verb:   v.GetString("fmt"),
		Given:  append(v.GetStringSlice("given"), given...),
		Echo:   v.GetBool("echo"),
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	return cfg, nil
}
