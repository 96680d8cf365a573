package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"diptych/internal/config"
	"diptych/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, t.TempDir())
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReadyConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	folder := t.TempDir()

	results := RunAll(context.Background(), cfg, folder)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected %s to pass, got: %s", result.Name, result.Detail)
		}
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected no failures, got %#v", failed)
	}
}

func TestRunAll_MissingExifTool(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.ExifTool.Binary = "clearly-not-present-binary"
	folder := t.TempDir()

	results := RunAll(context.Background(), cfg, folder)
	failed := Failed(results)
	if len(failed) != 1 {
		t.Fatalf("expected exactly one failure, got %#v", failed)
	}
	if failed[0].Name != "ExifTool" {
		t.Fatalf("expected ExifTool failure, got %s", failed[0].Name)
	}
}

func TestRunAll_SkipsFolderWhenEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := RunAll(context.Background(), cfg, "")
	for _, result := range results {
		if result.Name == "Target folder" {
			t.Fatal("expected folder check to be skipped")
		}
	}
}

func TestRunAll_ChecksCacheDirectoryWhenEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithFingerprintCache())

	results := RunAll(context.Background(), cfg, t.TempDir())
	found := false
	for _, result := range results {
		if result.Name == "Cache directory" {
			found = true
			if !result.Passed {
				t.Fatalf("expected cache directory check to pass, got: %s", result.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected cache directory check when the cache is enabled")
	}
}

func TestCheckSystemDepsMissingBinary(t *testing.T) {
	cfg := config.Default()
	cfg.ExifTool.Binary = "clearly-not-present-binary"

	statuses := CheckSystemDeps(context.Background(), &cfg)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing exiftool to be unavailable")
	}
}
