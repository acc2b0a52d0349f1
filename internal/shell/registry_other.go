//go:build !windows

package shell

import (
	"errors"
	"fmt"
)

// RegistryMenuStore is unavailable outside Windows.
type RegistryMenuStore struct{}

// NewRegistryMenuStore returns a store whose calls fail with errors.ErrUnsupported.
func NewRegistryMenuStore() *RegistryMenuStore {
	return &RegistryMenuStore{}
}

func (s *RegistryMenuStore) Command(string) (string, error) {
	return "", fmt.Errorf("registry: %w", errors.ErrUnsupported)
}

func (s *RegistryMenuStore) Put(Entry) error {
	return fmt.Errorf("registry: %w", errors.ErrUnsupported)
}
