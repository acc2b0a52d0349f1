// Package cmd builds exec.Cmd values for the external tools hybridgpu drives
// (powershell, powercfg) so they never flash a console window.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external tool invocation.
const DefaultTimeout = 30 * time.Second

// HiddenContext creates a context-aware exec.Cmd without a console window.
// The command will be killed when the context deadline is exceeded.
func HiddenContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	c := exec.CommandContext(ctx, name, args...)
	hide(c)
	return c
}

// Output runs the tool under DefaultTimeout and returns its stdout. On failure
// the returned error carries the trimmed stderr of the tool.
func Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var stderr bytes.Buffer
	c := HiddenContext(ctx, name, args...)
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		return out, describe(name, args, err, stderr.Bytes())
	}
	return out, nil
}

// Combined runs the tool under DefaultTimeout and returns stdout and stderr
// interleaved. powercfg reports its errors on stdout, so callers that want the
// message use this variant.
func Combined(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	out, err := HiddenContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, describe(name, args, err, out)
	}
	return out, nil
}

func describe(name string, args []string, err error, detail []byte) error {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	msg := strings.TrimSpace(string(detail))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && msg != "" {
		return fmt.Errorf("%s: %w: %s", line, err, msg)
	}
	return fmt.Errorf("%s: %w", line, err)
}
