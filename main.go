package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"hybridgpu/internal/config"
	"hybridgpu/internal/elevation"
	"hybridgpu/internal/gpu"
	"hybridgpu/internal/log"
	"hybridgpu/internal/orchestrator"
	"hybridgpu/internal/power"
	"hybridgpu/internal/preference"
	"hybridgpu/internal/shell"
	"hybridgpu/internal/system"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dryRun     bool
	noPause    bool
	verbose    bool
	configPath string
	version    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("hybridgpu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.dryRun, "dry-run", false, "use in-memory stores and print powercfg commands instead of running them")
	fs.BoolVar(&opts.noPause, "no-pause", false, "skip the register pause and the final acknowledgement")
	fs.BoolVar(&opts.verbose, "verbose", false, "print debug messages")
	fs.StringVar(&opts.configPath, "config", "", "settings file (default <UserConfigDir>/hybridgpu/config.json)")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hybridgpu [flags] [path-to-executable]\n\n")
		fmt.Fprintf(stderr, "Without a path, runs interactive setup. With a path, registers that\nexecutable for the high-performance GPU.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "hybridgpu %s\n", Version)
		return exitOK
	}

	logger := log.NewConsoleLogger(stdout, opts.verbose)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		logger.Errorf("Config: %v", err)
		return exitUsage
	}
	if runtime.GOOS != "windows" && !opts.dryRun {
		logger.Errorf("CRITICAL: hybridgpu only runs on Windows. Use --dry-run to preview the steps.")
		return exitFailure
	}

	settings := orchestrator.SettingsFrom(cfg)
	if opts.noPause {
		settings.RegisterPause = 0
	}

	var ports orchestrator.Ports
	var report func()
	if opts.dryRun {
		ports, report = dryRunPorts(stdout, logger)
	} else {
		ports = livePorts(stdout, logger)
	}
	if !opts.noPause {
		ports.Acknowledge = acknowledge
	}

	inv := orchestrator.Invocation{Raw: args, Positional: fs.Args()}
	mode, err := orchestrator.New(ports, settings, logger).Run(context.Background(), inv)
	if err != nil {
		return exitFailure
	}
	logger.Debugf("finished in %s mode", mode)
	if report != nil && mode != orchestrator.ModeHandoff {
		report()
	}
	return exitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func livePorts(stdout io.Writer, logger log.Logger) orchestrator.Ports {
	prefix, err := shell.ResolvePrefix()
	if err != nil {
		logger.Debugf("invocation prefix: %v", err)
	}
	return orchestrator.Ports{
		Elevator: elevation.Native{},
		Detector: gpu.NewDetector(gpu.PowerShellEnumerator{}, logger),
		Store:    preference.NewRegistryStore(),
		Power:    power.NewEnforcer(power.Powercfg{}, logger),
		Menu:     shell.NewRegistrar(shell.NewRegistryMenuStore(), prefix, logger),
		Banner:   func() { printBanner(stdout, false) },
		Host:     hostLines,
	}
}

// dryRunPorts never touches the registry, powercfg or the process environment.
// The returned report prints what would have been written.
func dryRunPorts(stdout io.Writer, logger log.Logger) (orchestrator.Ports, func()) {
	prefix, err := shell.ResolvePrefix()
	if err != nil {
		logger.Debugf("invocation prefix: %v", err)
	}
	store := preference.NewMemoryStore()
	menu := shell.NewMemoryMenuStore()

	ports := orchestrator.Ports{
		Elevator: elevation.Bypass{},
		Detector: gpu.NewDetector(gpu.DryRun{Logger: logger}, logger),
		Store:    store,
		Power:    power.NewEnforcer(power.DryRun{Logger: logger}, logger),
		Menu:     shell.NewRegistrar(menu, prefix, logger),
		Setenv: func(name, value string) error {
			logger.Infof("[dry-run] set %s=%s", name, value)
			return nil
		},
		Banner: func() { printBanner(stdout, true) },
		Host:   hostLines,
	}
	report := func() {
		printDryRunReport(stdout, store.Entries(), menu)
	}
	return ports, report
}

func hostLines(ctx context.Context) []string {
	return system.Describe(ctx).Lines()
}
