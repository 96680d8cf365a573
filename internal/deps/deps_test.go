package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Blank", Command: "  "}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected blank command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestResolveExifToolExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	binary := filepath.Join(tmp, executableName("exiftool"))
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(binary, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	status := ResolveExifTool(binary)
	if !status.Available {
		t.Fatalf("expected explicit path to be available, got detail %q", status.Detail)
	}
	if status.Command != binary {
		t.Fatalf("expected command %q, got %q", binary, status.Command)
	}
}

func TestResolveExifToolExplicitPathNotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not meaningful on windows")
	}
	tmp := t.TempDir()
	binary := filepath.Join(tmp, "exiftool")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	status := ResolveExifTool(binary)
	if status.Available {
		t.Fatal("expected non-executable file to be unavailable")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message for non-executable file")
	}
}

func TestResolveExifToolPathLookup(t *testing.T) {
	tmp := t.TempDir()
	binary := filepath.Join(tmp, executableName("exiftool"))
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(binary, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", tmp)

	status := ResolveExifTool("exiftool")
	if !status.Available {
		t.Fatalf("expected PATH lookup to succeed, got detail %q", status.Detail)
	}
	if status.Command != binary {
		t.Fatalf("expected resolved command %q, got %q", binary, status.Command)
	}
}

func TestResolveExifToolNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	status := ResolveExifTool("exiftool")
	if status.Available {
		t.Fatal("expected lookup to fail with empty PATH")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when exiftool is unavailable")
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
