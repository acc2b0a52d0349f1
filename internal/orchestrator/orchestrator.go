// Package orchestrator decides at startup whether hybridgpu runs interactive
// setup or registers a single executable, and sequences the components for
// each mode.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hybridgpu/internal/gpu"
	"hybridgpu/internal/log"
	"hybridgpu/internal/preference"
	"hybridgpu/internal/shell"
)

// ErrElevation is returned when the elevated relaunch could not be requested.
var ErrElevation = errors.New("elevation failed")

// Mode is the branch a run took.
type Mode int

const (
	// ModeHandoff means an elevated copy was requested and this process must exit.
	ModeHandoff Mode = iota
	ModeSetup
	ModeRegister
)

func (m Mode) String() string {
	switch m {
	case ModeHandoff:
		return "handoff"
	case ModeSetup:
		return "setup"
	case ModeRegister:
		return "register"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Elevator checks for administrator rights and requests an elevated copy of
// the process.
type Elevator interface {
	IsElevated() bool
	Relaunch(args []string) error
}

// Detector identifies the integrated and discrete GPUs.
type Detector interface {
	Detect(ctx context.Context) gpu.Inventory
}

// PowerEnforcer applies the high-performance power scheme. Failures are
// handled inside Enforce.
type PowerEnforcer interface {
	Enforce(ctx context.Context)
}

// MenuInstaller registers the Explorer context-menu verb.
type MenuInstaller interface {
	Install() error
}

// Ports are the side-effecting collaborators. Nil function fields fall back
// to the live process equivalents; Banner and Host fall back to nothing.
type Ports struct {
	Elevator Elevator
	Detector Detector
	Store    preference.Store
	Power    PowerEnforcer
	Menu     MenuInstaller

	Setenv      func(name, value string) error
	Exists      func(path string) bool
	Abs         func(path string) (string, error)
	Pause       func(d time.Duration)
	Acknowledge func()
	Banner      func()
	Host        func(ctx context.Context) []string
}

// Invocation is the command line after flag parsing. Raw is forwarded
// untouched to the elevated relaunch.
type Invocation struct {
	Raw        []string
	Positional []string
}

// Orchestrator runs one invocation.
type Orchestrator struct {
	ports    Ports
	settings Settings
	logger   log.Logger
}

// New fills unset function ports and returns an Orchestrator.
func New(ports Ports, settings Settings, logger log.Logger) *Orchestrator {
	if ports.Setenv == nil {
		ports.Setenv = os.Setenv
	}
	if ports.Exists == nil {
		ports.Exists = fileExists
	}
	if ports.Abs == nil {
		ports.Abs = filepath.Abs
	}
	if ports.Pause == nil {
		ports.Pause = time.Sleep
	}
	if ports.Acknowledge == nil {
		ports.Acknowledge = func() {}
	}
	if ports.Banner == nil {
		ports.Banner = func() {}
	}
	if ports.Host == nil {
		ports.Host = func(context.Context) []string { return nil }
	}
	return &Orchestrator{ports: ports, settings: settings, logger: logger}
}

// Run dispatches one invocation. The only error it returns is ErrElevation;
// every other failure is logged and the run carries on.
func (o *Orchestrator) Run(ctx context.Context, inv Invocation) (Mode, error) {
	if !o.ports.Elevator.IsElevated() {
		o.logger.Infof("Requesting administrator privileges...")
		if err := o.ports.Elevator.Relaunch(o.relaunchArgs(inv)); err != nil {
			o.logger.Errorf("Elevation request failed: %v", err)
			return ModeHandoff, fmt.Errorf("%w: %w", ErrElevation, err)
		}
		return ModeHandoff, nil
	}

	o.ports.Banner()
	if len(inv.Positional) > 0 {
		o.register(inv.Positional[0], inv.Positional[1:])
		return ModeRegister, nil
	}
	o.setup(ctx)
	return ModeSetup, nil
}

// relaunchArgs returns Raw with the register target made absolute, so the
// elevated process does not depend on inheriting the working directory.
// Positional arguments are always the tail of Raw.
func (o *Orchestrator) relaunchArgs(inv Invocation) []string {
	args := append([]string(nil), inv.Raw...)
	if len(inv.Positional) == 0 {
		return args
	}
	i := len(args) - len(inv.Positional)
	if i < 0 || args[i] != inv.Positional[0] {
		return args
	}
	if abs, err := o.ports.Abs(args[i]); err == nil {
		args[i] = abs
	}
	return args
}

func (o *Orchestrator) register(target string, extra []string) {
	if len(extra) > 0 {
		o.logger.Warnf("Ignoring %d extra argument(s); only the first path is registered.", len(extra))
	}
	o.logger.Infof("Processing request for: %s", target)

	_ = preference.Set(o.ports.Store, o.absolute(target), true, o.logger)

	if o.settings.RegisterPause > 0 {
		o.ports.Pause(o.settings.RegisterPause)
	}
}

func (o *Orchestrator) setup(ctx context.Context) {
	for _, line := range o.ports.Host(ctx) {
		o.logger.Infof("%s", line)
	}

	o.ports.Detector.Detect(ctx)
	o.ports.Power.Enforce(ctx)
	if err := o.ports.Menu.Install(); err != nil {
		o.logger.Debugf("context menu: %v", err)
	}
	o.applyEnvironment()

	registered, failed := o.registerApplications()
	o.summarize(registered, failed)
	o.ports.Acknowledge()
}

func (o *Orchestrator) applyEnvironment() {
	applied := 0
	for _, v := range o.settings.Environment {
		if err := o.ports.Setenv(v.Name, v.Value); err != nil {
			o.logger.Warnf("Could not set %s: %v", v.Name, err)
			continue
		}
		o.logger.Debugf("%s=%s", v.Name, v.Value)
		applied++
	}
	if applied > 0 {
		o.logger.Successf("Active session environment variables injected.")
	}
}

// registerApplications writes HighPerformance for every configured
// application present on disk. Missing paths never reach the store.
func (o *Orchestrator) registerApplications() (registered, failed int) {
	for _, app := range o.settings.Applications {
		app = o.absolute(app)
		if !o.ports.Exists(app) {
			o.logger.Debugf("skip %s: not installed", app)
			continue
		}
		if err := preference.Set(o.ports.Store, app, true, o.logger); err != nil {
			failed++
			continue
		}
		registered++
	}
	return registered, failed
}

func (o *Orchestrator) summarize(registered, failed int) {
	o.logger.Successf("System optimized.")
	o.logger.Infof("1. Right-click any .exe and select '%s'.", shell.DisplayText)
	o.logger.Infof("2. Power plan locked to Ultimate Performance.")
	o.logger.Infof("%d default application(s) registered.", registered)
	if failed > 0 {
		o.logger.Warnf("%d registry write(s) failed. Re-run setup as administrator to retry.", failed)
	}
}

// absolute resolves path against the working directory. The store is keyed by
// absolute paths; if resolution fails the path is used as given.
func (o *Orchestrator) absolute(path string) string {
	abs, err := o.ports.Abs(path)
	if err != nil {
		o.logger.Warnf("Could not resolve %s (%v); registering it as given.", path, err)
		return path
	}
	return abs
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
