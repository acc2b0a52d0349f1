//go:build windows

package shell

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryMenuStore writes verbs under a live registry root.
type RegistryMenuStore struct {
	Root registry.Key
}

// NewRegistryMenuStore returns a store rooted at HKCU, which needs no
// machine-wide rights.
func NewRegistryMenuStore() *RegistryMenuStore {
	return &RegistryMenuStore{Root: registry.CURRENT_USER}
}

// Command reads the default value of verb\command. A missing key or value
// yields "".
func (s *RegistryMenuStore) Command(verb string) (string, error) {
	key, err := registry.OpenKey(s.Root, verb+`\command`, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open %s\\command: %w", verb, err)
	}
	defer key.Close()

	val, _, err := key.GetStringValue("")
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	return val, err
}

// Put creates the verb key and its command subkey, overwriting existing values.
func (s *RegistryMenuStore) Put(e Entry) error {
	key, _, err := registry.CreateKey(s.Root, e.Verb, registry.SET_VALUE|registry.CREATE_SUB_KEY)
	if err != nil {
		return fmt.Errorf("create key %s: %w", e.Verb, err)
	}
	defer key.Close()

	if err := key.SetStringValue("", e.DisplayText); err != nil {
		return fmt.Errorf("set display text: %w", err)
	}
	if err := key.SetStringValue("Icon", e.Icon); err != nil {
		return fmt.Errorf("set icon: %w", err)
	}

	cmdKey, _, err := registry.CreateKey(key, "command", registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create key %s\\command: %w", e.Verb, err)
	}
	defer cmdKey.Close()
	return cmdKey.SetStringValue("", e.Command)
}
