// Package elevation checks for administrator rights and relaunches the
// current program through the UAC consent prompt.
package elevation

// Native uses the live process token and ShellExecute.
type Native struct{}

func (Native) IsElevated() bool            { return IsAdmin() }
func (Native) Relaunch(args []string) error { return Relaunch(args) }

// Bypass reports an elevated process without checking. Dry runs use it since
// they never touch privileged state.
type Bypass struct{}

func (Bypass) IsElevated() bool        { return true }
func (Bypass) Relaunch([]string) error { return nil }
