//go:build integration && windows

package gpu

import (
	"context"
	"testing"
)

// TestPowerShellEnumerator runs the live CIM query and checks the output parses.
func TestPowerShellEnumerator(t *testing.T) {
	out, err := PowerShellEnumerator{}.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	records, err := ParseDevices(out)
	if err != nil {
		t.Fatalf("ParseDevices: %v\noutput: %s", err, out)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one video controller")
	}
	for _, r := range records {
		t.Logf("Controller: Name=%q Class=%v PNP=%q", r.Name, Classify(r.Name), r.PNPDeviceID)
	}
}
