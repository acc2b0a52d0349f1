// Package shell installs the Explorer context-menu verb that re-invokes
// hybridgpu against a right-clicked executable.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"hybridgpu/internal/log"
)

const (
	// VerbKey is relative to HKCU.
	VerbKey     = `Software\Classes\exefile\shell\RegisterHighPerfGPU`
	DisplayText = "Register for High-Performance GPU"
	Icon        = "imageres.dll,-1010"
	// Placeholder is replaced by Explorer with the clicked file.
	Placeholder = "%1"
)

var (
	ErrInstall  = errors.New("context menu install failed")
	ErrNoPrefix = errors.New("empty invocation prefix")
)

// Entry is the full content of the verb key and its command subkey.
type Entry struct {
	Verb        string
	DisplayText string
	Icon        string
	Command     string
}

// DefaultEntry returns the RegisterHighPerfGPU verb running command.
func DefaultEntry(command string) Entry {
	return Entry{
		Verb:        VerbKey,
		DisplayText: DisplayText,
		Icon:        Icon,
		Command:     command,
	}
}

// MenuStore reads and writes context-menu verbs. Command returns "" when the
// verb has no command yet.
type MenuStore interface {
	Command(verb string) (string, error)
	Put(e Entry) error
}

// Registrar installs the verb for a fixed invocation prefix.
type Registrar struct {
	store  MenuStore
	prefix []string
	logger log.Logger
}

// NewRegistrar creates a Registrar that installs a command re-invoking
// prefix through store.
func NewRegistrar(store MenuStore, prefix []string, logger log.Logger) *Registrar {
	return &Registrar{store: store, prefix: prefix, logger: logger}
}

// Install writes the verb, replacing whatever command was there before.
func (r *Registrar) Install() error {
	r.logger.Infof("Injecting context menu extension...")
	if len(r.prefix) == 0 {
		r.logger.Errorf("Context menu injection failed: %v", ErrNoPrefix)
		return fmt.Errorf("%w: %w", ErrInstall, ErrNoPrefix)
	}

	entry := DefaultEntry(CommandTemplate(r.prefix))
	prev, err := r.store.Command(entry.Verb)
	switch {
	case err != nil:
		r.logger.Debugf("read existing context menu command: %v", err)
	case prev == entry.Command:
		r.logger.Debugf("context menu command unchanged")
	case prev != "":
		r.logger.Infof("Replacing context menu entry that pointed at %s", ExtractExePath(prev))
	}

	if err := r.store.Put(entry); err != nil {
		r.logger.Errorf("Context menu injection failed: %v", err)
		return fmt.Errorf("%w: %w", ErrInstall, err)
	}
	r.logger.Successf("Context menu added! Right-click any .exe to register it.")
	return nil
}

// CommandTemplate quotes every prefix element and appends the quoted
// placeholder, e.g. `"C:\tools\hybridgpu.exe" "%1"`.
func CommandTemplate(prefix []string) string {
	parts := make([]string, 0, len(prefix)+1)
	for _, p := range prefix {
		parts = append(parts, `"`+p+`"`)
	}
	parts = append(parts, `"`+Placeholder+`"`)
	return strings.Join(parts, " ")
}

// ExtractExePath returns the executable of a stored command line, which may
// be quoted and followed by arguments.
func ExtractExePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if raw[0] == '"' {
		if end := strings.IndexByte(raw[1:], '"'); end >= 0 {
			return raw[1 : end+1]
		}
		return strings.Trim(raw, `"`)
	}

	if idx := strings.Index(strings.ToLower(raw), ".exe"); idx >= 0 {
		return raw[:idx+4]
	}
	if parts := strings.Fields(raw); len(parts) > 0 {
		return parts[0]
	}
	return raw
}
