// Package preference stores per-executable GPU preferences in the DirectX
// UserGpuPreferences key.
package preference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hybridgpu/internal/log"
)

// RegistryPath is the HKCU key holding one string value per executable.
const RegistryPath = `Software\Microsoft\DirectX\UserGpuPreferences`

// ErrWrite wraps every rejected store write.
var ErrWrite = errors.New("preference write failed")

// Preference selects the adapter an executable renders on.
type Preference int

const (
	PowerSaving     Preference = 1
	HighPerformance Preference = 2
)

func (p Preference) String() string {
	switch p {
	case PowerSaving:
		return "Power Saving"
	case HighPerformance:
		return "High Performance"
	default:
		return "Preference(" + strconv.Itoa(int(p)) + ")"
	}
}

// FromHighPerformance maps the force flag onto a Preference.
func FromHighPerformance(force bool) Preference {
	if force {
		return HighPerformance
	}
	return PowerSaving
}

const field = "GpuPreference"

// Encode renders the stored value, e.g. "GpuPreference=2;".
func Encode(p Preference) string {
	return field + "=" + strconv.Itoa(int(p)) + ";"
}

// Decode extracts the GpuPreference field from a stored value. Other
// semicolon-separated settings Windows keeps in the same string are ignored.
func Decode(value string) (Preference, error) {
	for _, part := range strings.Split(value, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k != field {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("decode %q: %w", value, err)
		}
		switch p := Preference(n); p {
		case PowerSaving, HighPerformance:
			return p, nil
		default:
			return 0, fmt.Errorf("decode %q: unsupported preference %d", value, n)
		}
	}
	return 0, fmt.Errorf("decode %q: no %s field", value, field)
}

// Store persists preferences keyed by executable path. Writes are
// unconditional upserts.
type Store interface {
	SetPreference(executablePath string, p Preference) error
}

// Set writes the preference for executablePath and logs the outcome. The
// returned error is informational; callers continue with their next entry.
func Set(s Store, executablePath string, forceHighPerformance bool, logger log.Logger) error {
	p := FromHighPerformance(forceHighPerformance)
	if err := s.SetPreference(executablePath, p); err != nil {
		logger.Errorf("Registry write failed for %s: %v", executablePath, err)
		return fmt.Errorf("%w: %s: %w", ErrWrite, executablePath, err)
	}
	logger.Successf("Registry: %s -> %s", baseName(executablePath), p)
	return nil
}

// baseName handles both separators so Windows paths print the same on any OS.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
