//go:build !windows

package preference

import (
	"errors"
	"fmt"
)

// RegistryStore is unavailable outside Windows.
type RegistryStore struct{}

// NewRegistryStore returns a store whose writes fail with errors.ErrUnsupported.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

func (s *RegistryStore) SetPreference(string, Preference) error {
	return fmt.Errorf("registry: %w", errors.ErrUnsupported)
}
