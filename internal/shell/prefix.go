package shell

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// ResolvePrefix returns the argument list that re-invokes this program
// without relying on the current directory or PATH.
//
// A native binary resolves to its own absolute path. Under `go run` the
// executable is a throw-away build in a go-build temp directory, so the
// prefix becomes the go tool, "run" and the package directory instead.
func ResolvePrefix() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	return prefixFor(exe, wd, exec.LookPath)
}

func prefixFor(exe, workDir string, lookPath func(string) (string, error)) ([]string, error) {
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	exe, err := filepath.Abs(exe)
	if err != nil {
		return nil, fmt.Errorf("absolute path of %s: %w", exe, err)
	}
	if !isGoRunBuild(exe) {
		return []string{exe}, nil
	}

	goTool, err := lookPath("go")
	if err != nil {
		return nil, fmt.Errorf("resolve go tool: %w", err)
	}
	if goTool, err = filepath.Abs(goTool); err != nil {
		return nil, fmt.Errorf("absolute path of go tool: %w", err)
	}
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("absolute path of %s: %w", workDir, err)
	}
	return []string{goTool, "run", dir}, nil
}

// isGoRunBuild matches .../go-buildNNN/bNNN/exe/<name>.
func isGoRunBuild(exe string) bool {
	dir := filepath.ToSlash(filepath.Dir(exe))
	return strings.Contains(dir, "/go-build") && path.Base(dir) == "exe"
}
