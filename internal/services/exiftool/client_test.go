package exiftool_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"diptych/internal/metadata"
	"diptych/internal/services"
	"diptych/internal/services/exiftool"
)

type stubExecutor struct {
	output []byte
	err    error
	calls  int
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.calls++
	cloned := append([]string(nil), args...)
	s.args = append(s.args, cloned)
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := exiftool.New("   "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestReadFieldsParsesOutput(t *testing.T) {
	output := "Keywords                        : cat, pet\r\n" +
		"Subject                         : cat\r\n" +
		"Hierarchical Subject            : Animals|Cat\r\n"
	exec := &stubExecutor{output: []byte(output)}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fields, err := client.ReadFields(context.Background(), "/photos/cat.jpg")
	if err != nil {
		t.Fatalf("ReadFields: %v", err)
	}
	if !reflect.DeepEqual(fields.Keywords.Values(), []string{"cat", "pet"}) {
		t.Fatalf("unexpected keywords: %v", fields.Keywords.Values())
	}
	if !fields.HierarchicalSubject.Has("Animals|Cat") {
		t.Fatalf("unexpected hierarchical subject: %v", fields.HierarchicalSubject.Values())
	}

	wantArgs := []string{
		"-L", "-charset", "filename=cp1252",
		"-Keywords", "-Subject", "-HierarchicalSubject",
		"/photos/cat.jpg",
	}
	if !reflect.DeepEqual(exec.args[0], wantArgs) {
		t.Fatalf("unexpected read args:\n got %v\nwant %v", exec.args[0], wantArgs)
	}
}

func TestReadFieldsWrapsExecutorError(t *testing.T) {
	exec := &stubExecutor{err: errors.New("file not found")}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.ReadFields(context.Background(), "/photos/gone.jpg")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "/photos/gone.jpg") {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestWriteFieldsBuildsAdditiveArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fields := metadata.NewFieldSet()
	fields.Keywords.Add("pet")
	fields.Keywords.Add("cat")
	fields.Subject.Add("cat")

	if err := client.WriteFields(context.Background(), "/photos/cat.jpg", fields); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}

	wantArgs := []string{
		"-overwrite_original",
		"-L", "-charset", "filename=cp1252",
		"-Keywords+=cat", "-Keywords+=pet",
		"-Subject+=cat",
		"/photos/cat.jpg",
	}
	if !reflect.DeepEqual(exec.args[0], wantArgs) {
		t.Fatalf("unexpected write args:\n got %v\nwant %v", exec.args[0], wantArgs)
	}
}

func TestWriteFieldsEmptySetSkipsInvocation(t *testing.T) {
	exec := &stubExecutor{}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.WriteFields(context.Background(), "/photos/cat.jpg", metadata.NewFieldSet()); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("expected no invocation for empty field set, got %d", exec.calls)
	}
}

func TestWriteFieldsWrapsExecutorError(t *testing.T) {
	exec := &stubExecutor{err: errors.New("permission denied")}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fields := metadata.NewFieldSet()
	fields.Keywords.Add("cat")
	err = client.WriteFields(context.Background(), "/photos/locked.jpg", fields)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestCP1252RoundTrip(t *testing.T) {
	// 0xE9 is é in cp1252; exiftool output arrives as raw bytes.
	exec := &stubExecutor{output: []byte("Subject                         : caf\xe9\r\n")}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fields, err := client.ReadFields(context.Background(), "/photos/cafe.jpg")
	if err != nil {
		t.Fatalf("ReadFields: %v", err)
	}
	if !fields.Subject.Has("café") {
		t.Fatalf("expected decoded value, got %v", fields.Subject.Values())
	}

	if err := client.WriteFields(context.Background(), "/photos/cafe.jpg", fields); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	writeArgs := exec.args[1]
	found := false
	for _, arg := range writeArgs {
		if arg == "-Subject+=caf\xe9" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected cp1252-encoded write argument, got %v", writeArgs)
	}
}

func TestUTF8CharsetDropsEncodingArgs(t *testing.T) {
	exec := &stubExecutor{output: []byte("Subject: café\n")}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec), exiftool.WithCharset("utf-8"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fields, err := client.ReadFields(context.Background(), "/photos/cafe.jpg")
	if err != nil {
		t.Fatalf("ReadFields: %v", err)
	}
	if !fields.Subject.Has("café") {
		t.Fatalf("expected utf-8 value, got %v", fields.Subject.Values())
	}
	for _, arg := range exec.args[0] {
		if arg == "-L" || strings.HasPrefix(arg, "-charset") {
			t.Fatalf("utf8 mode should not pass charset args: %v", exec.args[0])
		}
	}
}

func TestVersionTrimsOutput(t *testing.T) {
	exec := &stubExecutor{output: []byte("12.76\n")}
	client, err := exiftool.New("exiftool", exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	version, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != "12.76" {
		t.Fatalf("unexpected version: %q", version)
	}
	if !reflect.DeepEqual(exec.args[0], []string{"-ver"}) {
		t.Fatalf("unexpected version args: %v", exec.args[0])
	}
}

func TestNormalizeCharset(t *testing.T) {
	cases := map[string]string{
		"":             exiftool.CharsetCP1252,
		"cp1252":       exiftool.CharsetCP1252,
		"Windows-1252": exiftool.CharsetCP1252,
		"utf8":         exiftool.CharsetUTF8,
		"UTF-8":        exiftool.CharsetUTF8,
	}
	for input, want := range cases {
		got, err := exiftool.NormalizeCharset(input)
		if err != nil {
			t.Fatalf("NormalizeCharset(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeCharset(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := exiftool.NormalizeCharset("latin-9"); err == nil {
		t.Fatal("expected error for unsupported charset")
	}
}
