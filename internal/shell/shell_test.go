package shell

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"hybridgpu/internal/log"

	"github.com/google/go-cmp/cmp"
)

func TestCommandTemplate(t *testing.T) {
	tests := []struct {
		name   string
		prefix []string
		want   string
	}{
		{
			name:   "Native binary",
			prefix: []string{`C:\Tools\hybridgpu.exe`},
			want:   `"C:\Tools\hybridgpu.exe" "%1"`,
		},
		{
			name:   "Go run",
			prefix: []string{`C:\Program Files\Go\bin\go.exe`, "run", `C:\src\hybridgpu`},
			want:   `"C:\Program Files\Go\bin\go.exe" "run" "C:\src\hybridgpu" "%1"`,
		},
		{
			name:   "Empty prefix still carries placeholder",
			prefix: nil,
			want:   `"%1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommandTemplate(tt.prefix)
			if got != tt.want {
				t.Errorf("CommandTemplate() = %s, want %s", got, tt.want)
			}
			if !strings.HasSuffix(got, `"%1"`) {
				t.Errorf("CommandTemplate() = %s does not end with the quoted placeholder", got)
			}
		})
	}
}

func TestInstallWritesEntry(t *testing.T) {
	store := NewMemoryMenuStore()
	rec := &log.Recorder{}

	err := NewRegistrar(store, []string{`C:\Tools\hybridgpu.exe`}, rec).Install()
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got, ok := store.Entry(VerbKey)
	if !ok {
		t.Fatal("verb not stored")
	}
	want := Entry{
		Verb:        `Software\Classes\exefile\shell\RegisterHighPerfGPU`,
		DisplayText: "Register for High-Performance GPU",
		Icon:        "imageres.dll,-1010",
		Command:     `"C:\Tools\hybridgpu.exe" "%1"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored entry mismatch (-want +got):\n%s", diff)
	}
	if !rec.Contains(log.LevelSuccess, "Context menu added") {
		t.Errorf("missing success line: %+v", rec.Entries)
	}
}

func TestInstallReplacesPreviousCommand(t *testing.T) {
	store := NewMemoryMenuStore()
	_ = store.Put(DefaultEntry(`"D:\old\hybridgpu.exe" "%1"`))
	rec := &log.Recorder{}

	if err := NewRegistrar(store, []string{`C:\new\hybridgpu.exe`}, rec).Install(); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	cmd, _ := store.Command(VerbKey)
	if cmd != `"C:\new\hybridgpu.exe" "%1"` {
		t.Errorf("command = %s", cmd)
	}
	if !rec.Contains(log.LevelInfo, `D:\old\hybridgpu.exe`) {
		t.Errorf("replacement not logged: %+v", rec.Entries)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	store := NewMemoryMenuStore()
	r := NewRegistrar(store, []string{`C:\Tools\hybridgpu.exe`}, &log.Recorder{})
	_ = r.Install()

	rec := &log.Recorder{}
	r.logger = rec
	if err := r.Install(); err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if rec.Contains(log.LevelInfo, "Replacing") {
		t.Errorf("unchanged command reported as replaced: %+v", rec.Entries)
	}
}

type failingStore struct{ readErr, writeErr error }

func (f failingStore) Command(string) (string, error) { return "", f.readErr }
func (f failingStore) Put(Entry) error                { return f.writeErr }

func TestInstallErrors(t *testing.T) {
	denied := errors.New("access is denied")

	t.Run("Write failure", func(t *testing.T) {
		rec := &log.Recorder{}
		err := NewRegistrar(failingStore{writeErr: denied}, []string{"x.exe"}, rec).Install()
		if !errors.Is(err, ErrInstall) || !errors.Is(err, denied) {
			t.Errorf("Install() error = %v", err)
		}
		if rec.Count(log.LevelError) != 1 {
			t.Errorf("want one error line, got %+v", rec.Entries)
		}
	})

	t.Run("Read failure is not fatal", func(t *testing.T) {
		err := NewRegistrar(failingStore{readErr: denied}, []string{"x.exe"}, &log.Recorder{}).Install()
		if err != nil {
			t.Errorf("Install() error = %v", err)
		}
	})

	t.Run("Empty prefix", func(t *testing.T) {
		err := NewRegistrar(NewMemoryMenuStore(), nil, &log.Recorder{}).Install()
		if !errors.Is(err, ErrNoPrefix) {
			t.Errorf("Install() error = %v, want ErrNoPrefix", err)
		}
	})
}

func TestExtractExePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Quoted with placeholder", `"C:\Program Files\hybridgpu\hybridgpu.exe" "%1"`, `C:\Program Files\hybridgpu\hybridgpu.exe`},
		{"Unquoted with args", `C:\Tools\hybridgpu.exe "%1"`, `C:\Tools\hybridgpu.exe`},
		{"Unterminated quote", `"C:\Tools\hybridgpu.exe`, `C:\Tools\hybridgpu.exe`},
		{"No extension", `hybridgpu run`, `hybridgpu`},
		{"Whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractExePath(tt.input); got != tt.expected {
				t.Errorf("ExtractExePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPrefixFor(t *testing.T) {
	dir := t.TempDir()
	noGo := func(string) (string, error) { return "", errors.New("not found") }
	goTool := filepath.Join(dir, "go", "bin", "go")
	withGo := func(string) (string, error) { return goTool, nil }

	t.Run("Native binary", func(t *testing.T) {
		exe := filepath.Join(dir, "bin", "hybridgpu")
		got, err := prefixFor(exe, dir, noGo)
		if err != nil {
			t.Fatalf("prefixFor() error = %v", err)
		}
		if diff := cmp.Diff([]string{exe}, got); diff != "" {
			t.Errorf("prefix mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Go run build", func(t *testing.T) {
		exe := filepath.Join(dir, "go-build1234", "b001", "exe", "hybridgpu")
		got, err := prefixFor(exe, dir, withGo)
		if err != nil {
			t.Fatalf("prefixFor() error = %v", err)
		}
		if diff := cmp.Diff([]string{goTool, "run", dir}, got); diff != "" {
			t.Errorf("prefix mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Go run build without go tool", func(t *testing.T) {
		exe := filepath.Join(dir, "go-build1234", "b001", "exe", "hybridgpu")
		if _, err := prefixFor(exe, dir, noGo); err == nil {
			t.Error("prefixFor() should fail when the go tool cannot be found")
		}
	})

	t.Run("Relative path is made absolute", func(t *testing.T) {
		got, err := prefixFor("hybridgpu", dir, noGo)
		if err != nil {
			t.Fatalf("prefixFor() error = %v", err)
		}
		if len(got) != 1 || !filepath.IsAbs(got[0]) {
			t.Errorf("prefixFor() = %v, want one absolute path", got)
		}
	})
}

func TestIsGoRunBuild(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join("tmp", "go-build99", "b001", "exe", "hybridgpu"), true},
		{filepath.Join("tmp", "go-build99", "b001", "hybridgpu"), false},
		{filepath.Join("opt", "exe", "hybridgpu"), false},
		{filepath.Join("usr", "local", "bin", "hybridgpu"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isGoRunBuild(string(filepath.Separator) + tt.path); got != tt.want {
				t.Errorf("isGoRunBuild(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolvePrefix(t *testing.T) {
	prefix, err := ResolvePrefix()
	if err != nil {
		t.Fatalf("ResolvePrefix() error = %v", err)
	}
	if len(prefix) == 0 || !filepath.IsAbs(prefix[0]) {
		t.Errorf("ResolvePrefix() = %v, want an absolute first element", prefix)
	}
	t.Logf("prefix: %v", prefix)
}
