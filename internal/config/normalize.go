package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFingerprintCache(); err != nil {
		return err
	}
	c.normalizeMatcher()
	c.normalizeExifTool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFingerprintCache() error {
	if strings.TrimSpace(c.FingerprintCache.Path) == "" {
		return nil
	}
	expanded, err := expandPath(c.FingerprintCache.Path)
	if err != nil {
		return fmt.Errorf("fingerprint_cache.path: %w", err)
	}
	c.FingerprintCache.Path = expanded
	return nil
}

func (c *Config) normalizeMatcher() {
	c.Matcher.Algorithm = strings.ToLower(strings.TrimSpace(c.Matcher.Algorithm))
	if c.Matcher.Algorithm == "" {
		c.Matcher.Algorithm = defaultAlgorithm
	}
}

func (c *Config) normalizeExifTool() {
	c.ExifTool.Binary = strings.TrimSpace(c.ExifTool.Binary)
	if c.ExifTool.Binary == "" {
		c.ExifTool.Binary = defaultExifToolBinary
	}
	charset := strings.ToLower(strings.TrimSpace(c.ExifTool.Charset))
	switch charset {
	case "", "windows-1252":
		charset = defaultExifToolCharset
	case "utf-8":
		charset = "utf8"
	}
	c.ExifTool.Charset = charset
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
