//go:build windows

package preference

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore writes preferences to the live registry.
type RegistryStore struct {
	Root registry.Key
	Path string
}

// NewRegistryStore returns a store on HKCU\RegistryPath.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{Root: registry.CURRENT_USER, Path: RegistryPath}
}

// SetPreference creates the key if needed and overwrites the value named after
// the executable path.
func (s *RegistryStore) SetPreference(executablePath string, p Preference) error {
	key, _, err := registry.CreateKey(s.Root, s.Path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create key %s: %w", s.Path, err)
	}
	defer key.Close()
	return key.SetStringValue(executablePath, Encode(p))
}
