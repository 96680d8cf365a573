package config

import (
	"errors"
	"fmt"
)

var validAlgorithms = map[string]struct{}{
	"average":    {},
	"difference": {},
	"perception": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatcher(); err != nil {
		return err
	}
	if err := c.validateExifTool(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatcher() error {
	if _, ok := validAlgorithms[c.Matcher.Algorithm]; !ok {
		return fmt.Errorf("matcher.algorithm must be one of average, difference, perception (got %q)", c.Matcher.Algorithm)
	}
	if c.Matcher.Threshold < 0 {
		return errors.New("matcher.threshold must be zero or positive")
	}
	return nil
}

func (c *Config) validateExifTool() error {
	if c.ExifTool.Binary == "" {
		return errors.New("exiftool.binary must be set")
	}
	switch c.ExifTool.Charset {
	case "cp1252", "utf8":
	default:
		return fmt.Errorf("exiftool.charset must be cp1252 or utf8 (got %q)", c.ExifTool.Charset)
	}
	if c.ExifTool.TimeoutSeconds < 0 {
		return errors.New("exiftool.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
