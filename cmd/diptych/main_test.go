package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"diptych/internal/config"
	"diptych/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")

	configPath := filepath.Join(base, "config.toml")
	data, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stubDir := filepath.Join(base, "bin")
	makeStubExiftool(t, stubDir)
	t.Setenv("PATH", stubDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return &cliTestEnv{cfg: &cfgVal, configPath: configPath, baseDir: base}
}

func (e *cliTestEnv) enableFingerprintCache(t *testing.T) {
	t.Helper()
	e.cfg.FingerprintCache.Enabled = true
	data, err := toml.Marshal(*e.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(e.configPath, data, 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
}

// makeStubExiftool writes an exiftool stand-in that accepts any arguments and
// prints nothing, which reads as "no metadata fields" to the client.
func makeStubExiftool(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create stub bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(filepath.Join(dir, "exiftool"), script, 0o755); err != nil {
		t.Fatalf("write exiftool stub: %v", err)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writePairFolder seeds a folder with two identical PNGs and one clearly
// different image.
func writePairFolder(t *testing.T, folder string) {
	t.Helper()
	pathA := filepath.Join(folder, "a.png")
	testsupport.WritePNG(t, pathA, testsupport.GradientImage(64, 64, true))
	testsupport.CopyFile(t, pathA, filepath.Join(folder, "b.png"))
	testsupport.WritePNG(t, filepath.Join(folder, "c.png"), testsupport.GradientImage(64, 64, false))
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIRequiresFolderArgument(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t)
	if err == nil {
		t.Fatal("expected an error when no folder is given")
	}
	if !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("expected usage text in error, got: %v", err)
	}

	_, _, err = runCLI(t, "one", "two")
	if err == nil || !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("expected usage error for extra arguments, got: %v", err)
	}
}

func TestCLIMergeRun(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := t.TempDir()
	writePairFolder(t, folder)

	out, _, err := runCLI(t, "-c", env.configPath, folder)
	if err != nil {
		t.Fatalf("merge run: %v", err)
	}
	requireContains(t, out, "Images scanned: 3")
	requireContains(t, out, "Pairs matched: 1")
	requireContains(t, out, "a.png")
	requireContains(t, out, "b.png")
	requireContains(t, out, "Metadata values added: 0")
	requireContains(t, out, "Completed in")
}

func TestCLIThresholdFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := t.TempDir()
	writePairFolder(t, folder)

	out, _, err := runCLI(t, "-c", env.configPath, "--threshold", "64", folder)
	if err != nil {
		t.Fatalf("merge run: %v", err)
	}
	requireContains(t, out, "Pairs matched: 3")
}

func TestCLIRejectsUnknownAlgorithm(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := t.TempDir()

	_, _, err := runCLI(t, "-c", env.configPath, "--algorithm", "bogus", folder)
	if err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
	if !strings.Contains(err.Error(), "algorithm") {
		t.Fatalf("expected algorithm in error, got: %v", err)
	}
}

func TestCLIVerboseWritesDebugLogs(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := t.TempDir()
	writePairFolder(t, folder)

	if _, _, err := runCLI(t, "-c", env.configPath, "-v", folder); err != nil {
		t.Fatalf("verbose run: %v", err)
	}

	logPath := filepath.Join(env.cfg.Paths.LogDir, "diptych.log")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(data), "fingerprinted image")
}

func TestCLIMissingFolderFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, "-c", env.configPath, filepath.Join(env.baseDir, "nope"))
	if err == nil {
		t.Fatal("expected an error for a missing folder")
	}
}
