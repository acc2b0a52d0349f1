//go:build windows

package elevation

import "testing"

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"None", nil, ""},
		{"Plain", []string{`C:\Tools\app.exe`}, `C:\Tools\app.exe`},
		{"Spaces are quoted", []string{`C:\Program Files\Blender Foundation\Blender\blender.exe`}, `"C:\Program Files\Blender Foundation\Blender\blender.exe"`},
		{"Several", []string{"--verbose", "a b"}, `--verbose "a b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinArgs(tt.args); got != tt.want {
				t.Errorf("joinArgs(%q) = %s, want %s", tt.args, got, tt.want)
			}
		})
	}
}
