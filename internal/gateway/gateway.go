// Package gateway runs commands against a Core Lightning node through
// lightning-cli and classifies the outcome into a tagged Result.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner executes a named node command with positional string arguments.
// Implemented by *Client and by test fakes.
type Runner interface {
	Execute(ctx context.Context, command string, args []string) Result
}

// Ensure Client implements Runner at compile time.
var _ Runner = (*Client)(nil)

// Result is the outcome of a node command: either a decoded JSON value or a
// failure message. Exactly one arm is populated.
type Result struct {
	value   any
	failure string
	ok      bool
}

// Structured wraps a decoded JSON value.
func Structured(v any) Result {
	return Result{value: v, ok: true}
}

// Failure wraps a failure message.
func Failure(message string) Result {
	return Result{failure: message}
}

// Failuref formats a failure message.
func Failuref(format string, args ...any) Result {
	return Result{failure: fmt.Sprintf(format, args...)}
}

// OK reports whether the result carries a structured value.
func (r Result) OK() bool { return r.ok }

// Value returns the decoded JSON tree, nil for failures.
func (r Result) Value() any { return r.value }

// Message returns the failure text, empty for structured results.
func (r Result) Message() string { return r.failure }

// Object returns the value as a JSON object when it is one.
func (r Result) Object() (map[string]any, bool) {
	obj, isObj := r.value.(map[string]any)
	return obj, r.ok && isObj
}

const (
	defaultBinary  = "lightning-cli"
	defaultNetwork = "bitcoin"
	execTimeout    = 5 * time.Second
)

// Client invokes lightning-cli as a subprocess.
type Client struct {
	binary       string
	network      string
	lightningDir string
	timeout      time.Duration
	logger       *zap.Logger
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	Binary       string
	Network      string
	LightningDir string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewClient builds a lightning-cli Client.
func NewClient(opts Options) *Client {
	c := &Client{
		binary:       strings.TrimSpace(opts.Binary),
		network:      strings.TrimSpace(opts.Network),
		lightningDir: strings.TrimSpace(opts.LightningDir),
		timeout:      opts.Timeout,
		logger:       opts.Logger,
	}
	if c.binary == "" {
		c.binary = defaultBinary
	}
	if c.network == "" {
		c.network = defaultNetwork
	}
	if c.timeout <= 0 {
		c.timeout = execTimeout
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Execute runs a lightning-cli command and classifies its output. Every
// failure mode collapses to a Failure result; nothing here is fatal.
func (c *Client) Execute(ctx context.Context, command string, args []string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	argv := []string{"--network=" + c.network}
	if c.lightningDir != "" {
		argv = append(argv, "--lightning-dir="+c.lightningDir)
	}
	argv = append(argv, command)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, c.binary, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return Failuref("%s not found. Is the Lightning node running?", c.binary)
		case errors.As(err, &exitErr):
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = err.Error()
			}
			c.logger.Warn("command failed",
				zap.String("command", command),
				zap.Int("exit_code", exitErr.ExitCode()))
			return Failuref("error executing %s: %s", command, detail)
		default:
			return Failuref("error executing %s: %v", command, err)
		}
	}

	raw := strings.TrimSpace(stdout.String())
	if raw == "" {
		return Failuref("empty response from %s", command)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Non-JSON output is surfaced verbatim.
		return Failure(raw)
	}
	return Structured(value)
}
