package system

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{17179869184, "16.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatBytes(tt.input); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHostLines(t *testing.T) {
	h := Host{
		Hostname: "RIG",
		Platform: "Microsoft Windows 11 Pro 10.0.22631",
		Arch:     "x86_64",
		RAMTotal: 17179869184,
	}
	want := []string{
		"Host: RIG",
		"OS: Microsoft Windows 11 Pro 10.0.22631",
		"Arch: x86_64",
		"RAM: 16.0 GiB",
	}
	if diff := cmp.Diff(want, h.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}

	if lines := (Host{}).Lines(); len(lines) != 0 {
		t.Errorf("empty Host rendered %v", lines)
	}
}

func TestDescribe(t *testing.T) {
	h := Describe(context.Background())
	if h.Arch == "" {
		t.Error("Describe() left Arch empty")
	}
	if again := Describe(context.Background()); again != h {
		t.Errorf("Describe() not cached: %+v vs %+v", h, again)
	}
	t.Logf("host: %+v", h)
}
