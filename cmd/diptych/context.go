package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"diptych/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// applyFlagOverrides copies matcher and logging overrides from command-line
// flags onto the loaded config. Flags win over the config file only when the
// user actually set them.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("threshold") {
		threshold, err := flags.GetInt("threshold")
		if err != nil {
			return err
		}
		cfg.Matcher.Threshold = threshold
	}
	if flags.Changed("algorithm") {
		algorithm, err := flags.GetString("algorithm")
		if err != nil {
			return err
		}
		cfg.Matcher.Algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	}
	if verbose, err := flags.GetBool("verbose"); err == nil && verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg.Validate()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
