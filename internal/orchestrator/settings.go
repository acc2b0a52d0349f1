package orchestrator

import (
	"sort"
	"strings"
	"time"

	"hybridgpu/internal/config"
)

// DefaultApplications are registered during setup when present.
var DefaultApplications = []string{
	`C:\Program Files\Blender Foundation\Blender\blender.exe`,
	`C:\Windows\System32\cmd.exe`,
}

// EnvVar is one session environment override.
type EnvVar struct {
	Name  string
	Value string
}

// DefaultEnvironment enables the hybrid-graphics compatibility shim and
// limits CUDA to the first (discrete) device.
var DefaultEnvironment = []EnvVar{
	{Name: "SHIM_MCCOMPAT", Value: "0x800000001"},
	{Name: "CUDA_VISIBLE_DEVICES", Value: "0"},
}

// Settings are the run parameters derived from the config file.
type Settings struct {
	Applications  []string
	Environment   []EnvVar
	RegisterPause time.Duration
}

// SettingsFrom merges cfg onto the built-in defaults. Applications are
// deduplicated case-insensitively; environment names override defaults
// case-insensitively and new names are appended in sorted order.
func SettingsFrom(cfg *config.Config) Settings {
	if cfg == nil {
		cfg = config.Default()
	}
	return Settings{
		Applications:  mergeApplications(DefaultApplications, cfg.Applications),
		Environment:   mergeEnvironment(DefaultEnvironment, cfg.Environment),
		RegisterPause: cfg.RegisterPause(),
	}
}

func mergeApplications(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, app := range list {
			key := strings.ToLower(app)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, app)
		}
	}
	return out
}

func mergeEnvironment(base []EnvVar, overrides map[string]string) []EnvVar {
	out := make([]EnvVar, len(base))
	copy(out, base)

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

next:
	for _, name := range names {
		for i := range out {
			if strings.EqualFold(out[i].Name, name) {
				out[i].Value = overrides[name]
				continue next
			}
		}
		out = append(out, EnvVar{Name: name, Value: overrides[name]})
	}
	return out
}
