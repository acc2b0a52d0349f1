// Package power enforces the Ultimate Performance power scheme with PCI Express
// link state power management turned off.
package power

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hybridgpu/internal/cmd"
	"hybridgpu/internal/log"

	"github.com/google/uuid"
)

// UltimatePerformanceTemplate is the built-in scheme Windows hides by default.
const UltimatePerformanceTemplate = "e9a42b02-d5df-448d-aa00-03f14749eb61"

// ErrPolicyEnforcement wraps the first failing powercfg step.
var ErrPolicyEnforcement = errors.New("power policy enforcement failed")

// ASPM is the PCI Express Link State Power Management setting.
type ASPM int

const (
	ASPMOff ASPM = iota
	ASPMModerate
	ASPMAggressive
)

// CommandSink accepts powercfg argument lists.
type CommandSink interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Powercfg runs the real powercfg tool.
type Powercfg struct{}

// Run executes powercfg with args and returns its combined output.
func (Powercfg) Run(ctx context.Context, args ...string) ([]byte, error) {
	return cmd.Combined(ctx, "powercfg", args...)
}

// DryRun logs each command instead of executing it.
type DryRun struct {
	Logger log.Logger
}

// Run logs the command line and reports success without executing anything.
func (d DryRun) Run(_ context.Context, args ...string) ([]byte, error) {
	d.Logger.Infof("[dry-run] powercfg %s", strings.Join(args, " "))
	return nil, nil
}

// Enforcer drives the power scheme through a CommandSink.
type Enforcer struct {
	sink   CommandSink
	logger log.Logger
}

// NewEnforcer creates an Enforcer.
func NewEnforcer(sink CommandSink, logger log.Logger) *Enforcer {
	return &Enforcer{sink: sink, logger: logger}
}

// Enforce activates the Ultimate Performance scheme and disables ASPM on it.
// Failures end the sequence with a single warning; nothing is rolled back or
// read back.
func (e *Enforcer) Enforce(ctx context.Context) {
	e.logger.Infof("Optimizing power subsystem...")
	if err := e.apply(ctx); err != nil {
		e.logger.Warnf("Failed to set power plan (%v). Ensure the Ultimate Performance plan is available.", err)
		return
	}
	e.logger.Successf("Power plan: Ultimate Performance (PCIe ASPM disabled)")
}

func (e *Enforcer) apply(ctx context.Context) error {
	scheme := e.resolveScheme(ctx)

	// setacvalueindex only targets SCHEME_CURRENT, so activation must come first.
	steps := [][]string{
		{"-setactive", scheme},
		{"/setacvalueindex", "SCHEME_CURRENT", "SUB_PCIEXPRESS", "ASPM", strconv.Itoa(int(ASPMOff))},
		{"/setactive", "SCHEME_CURRENT"},
	}
	for _, args := range steps {
		if _, err := e.sink.Run(ctx, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrPolicyEnforcement, err)
		}
	}
	return nil
}

// resolveScheme returns the GUID of an Ultimate Performance scheme instance.
// An instance already listed by /list is reused so repeated runs do not pile
// up copies. Otherwise the template is duplicated; duplication errors are
// tolerated and the template GUID is the last resort.
func (e *Enforcer) resolveScheme(ctx context.Context) string {
	listOut, err := e.sink.Run(ctx, "/list")
	if err != nil {
		e.logger.Debugf("powercfg /list: %v", err)
	} else if guid, ok := FindUltimateScheme(string(listOut)); ok {
		e.logger.Debugf("reusing Ultimate Performance scheme %s", guid)
		return guid
	}

	out, err := e.sink.Run(ctx, "-duplicatescheme", UltimatePerformanceTemplate)
	if err != nil {
		e.logger.Debugf("duplicatescheme: %v", err)
		return UltimatePerformanceTemplate
	}
	if guid, ok := ParseSchemeGUID(string(out)); ok {
		return guid
	}
	return UltimatePerformanceTemplate
}

// ParseSchemeGUID returns the first GUID in powercfg output such as
// "Power Scheme GUID: 3a1b...  (Ultimate Performance)".
func ParseSchemeGUID(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if guid, ok := firstGUID(line); ok {
			return guid, true
		}
	}
	return "", false
}

// FindUltimateScheme returns the GUID of the first scheme in /list output
// whose name mentions "ultimate".
func FindUltimateScheme(listOutput string) (string, bool) {
	for _, line := range strings.Split(listOutput, "\n") {
		if !strings.Contains(strings.ToLower(line), "ultimate") {
			continue
		}
		if guid, ok := firstGUID(line); ok {
			return guid, true
		}
	}
	return "", false
}

func firstGUID(line string) (string, bool) {
	for _, field := range strings.Fields(line) {
		field = strings.Trim(field, "()*")
		if len(field) != 36 {
			continue
		}
		if id, err := uuid.Parse(field); err == nil {
			return id.String(), true
		}
	}
	return "", false
}
