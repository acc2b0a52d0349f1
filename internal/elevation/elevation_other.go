//go:build !windows

package elevation

import (
	"errors"
	"fmt"
)

// IsAdmin is always false outside Windows.
func IsAdmin() bool { return false }

func Relaunch([]string) error {
	return fmt.Errorf("relaunch: %w", errors.ErrUnsupported)
}
