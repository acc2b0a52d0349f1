// Package system describes the host for the setup banner.
package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Host is a one-line-per-field summary of the machine.
type Host struct {
	Hostname string
	Platform string
	Arch     string
	CPUModel string
	RAMTotal uint64
}

// Host details never change during a run.
var (
	hostOnce  sync.Once
	hostCache Host
)

// Describe collects the host summary once and caches it. Probe failures leave
// the corresponding field empty.
func Describe(ctx context.Context) Host {
	hostOnce.Do(func() {
		hostCache = collect(ctx)
	})
	return hostCache
}

func collect(ctx context.Context) Host {
	h := Host{Arch: runtime.GOARCH}

	if info, err := host.InfoWithContext(ctx); err == nil {
		h.Hostname = info.Hostname
		h.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		if info.KernelArch != "" {
			h.Arch = info.KernelArch
		}
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		h.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		h.RAMTotal = vm.Total
	}
	return h
}

// Lines renders the non-empty fields for the banner.
func (h Host) Lines() []string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Host", h.Hostname)
	add("OS", h.Platform)
	add("Arch", h.Arch)
	add("CPU", h.CPUModel)
	if h.RAMTotal > 0 {
		add("RAM", FormatBytes(h.RAMTotal))
	}
	return lines
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
