// Package config loads, normalizes, and validates diptych configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: matcher algorithm and threshold, exiftool invocation
// settings, the optional fingerprint cache, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
