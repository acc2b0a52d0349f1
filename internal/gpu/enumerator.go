package gpu

import (
	"context"

	"hybridgpu/internal/cmd"
	"hybridgpu/internal/log"
)

// cimQuery lists every video controller as JSON. ConvertTo-Json emits a bare
// object instead of an array when exactly one controller exists.
const cimQuery = `Get-CimInstance Win32_VideoController | Select-Object Name, DeviceID, PNPDeviceID | ConvertTo-Json`

// PowerShellEnumerator queries Win32_VideoController through PowerShell.
type PowerShellEnumerator struct{}

// Enumerate runs the CIM query and returns its stdout.
func (PowerShellEnumerator) Enumerate(ctx context.Context) ([]byte, error) {
	return cmd.Output(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", cimQuery)
}

// DryRun logs the query instead of running it and reports no controllers.
type DryRun struct {
	Logger log.Logger
}

// Enumerate logs the query and returns an empty JSON array.
func (d DryRun) Enumerate(context.Context) ([]byte, error) {
	d.Logger.Infof("[dry-run] powershell -Command %s", cimQuery)
	return []byte("[]"), nil
}
