package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"diptych/internal/logging"
	"diptych/internal/metadata"
	"diptych/internal/services"
)

const component = "exiftool"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds each exiftool invocation. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithCharset selects the charset passed to exiftool for filenames and tag
// values. Supported values are CharsetCP1252 (the default) and CharsetUTF8.
func WithCharset(charset string) Option {
	return func(c *Client) {
		if normalized, err := NormalizeCharset(charset); err == nil {
			c.charset = normalized
		}
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// Client wraps exiftool CLI interactions for the merged keyword fields.
type Client struct {
	binary  string
	charset string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs an exiftool client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	client := &Client{
		binary:  binary,
		charset: CharsetCP1252,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ReadFields returns the merged keyword fields of one image. Fields the image
// does not carry come back as empty sets.
func (c *Client) ReadFields(ctx context.Context, path string) (metadata.FieldSet, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return metadata.FieldSet{}, services.Wrap(services.ErrValidation, component, "read", "empty image path", nil)
	}

	runCtx, cancel := c.applyTimeout(ctx)
	defer cancel()

	args := c.baseArgs()
	for _, name := range metadata.FieldNames() {
		args = append(args, "-"+name)
	}
	args = append(args, path)

	output, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		return metadata.FieldSet{}, services.Wrap(services.ErrExternalTool, component, "read", path, err)
	}

	fields := metadata.ParseFields(c.decodeOutput(output))
	c.logger.Debug("read metadata fields",
		logging.String(logging.FieldImage, path),
		logging.Int("values", fields.Count()))
	return fields, nil
}

// WriteFields appends the given values to the image's keyword fields using
// exiftool's additive += syntax. Values already present on the image are the
// caller's business: exiftool appends blindly, so pass only missing values.
// An empty field set is a no-op.
func (c *Client) WriteFields(ctx context.Context, path string, fields metadata.FieldSet) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrValidation, component, "write", "empty image path", nil)
	}
	if fields.IsEmpty() {
		c.logger.Debug("no values to write", logging.String(logging.FieldImage, path))
		return nil
	}

	runCtx, cancel := c.applyTimeout(ctx)
	defer cancel()

	args := append([]string{"-overwrite_original"}, c.baseArgs()...)
	for _, name := range metadata.FieldNames() {
		for _, value := range fields.Field(name).Values() {
			args = append(args, "-"+name+"+="+c.encodeValue(value))
		}
	}
	args = append(args, path)

	if _, err := c.exec.Run(runCtx, c.binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, component, "write", path, err)
	}
	c.logger.Debug("wrote metadata fields",
		logging.String(logging.FieldImage, path),
		logging.Int("values", fields.Count()))
	return nil
}

// Version reports the exiftool version, which doubles as an availability
// probe before a run touches any image.
func (c *Client) Version(ctx context.Context) (string, error) {
	runCtx, cancel := c.applyTimeout(ctx)
	defer cancel()

	output, err := c.exec.Run(runCtx, c.binary, []string{"-ver"})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, component, "version", "", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// baseArgs returns the charset arguments shared by reads and writes. cp1252
// matches legacy Windows tagging tools; utf8 needs no flags because that is
// exiftool's default.
func (c *Client) baseArgs() []string {
	if c.charset == CharsetUTF8 {
		return nil
	}
	return []string{"-L", "-charset", "filename=" + c.charset}
}

func (c *Client) applyTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
