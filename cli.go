package main

import (
	"fmt"
	"io"

	"hybridgpu/internal/preference"
	"hybridgpu/internal/shell"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

func printBanner(w io.Writer, dryRun bool) {
	green := color.New(color.FgHiGreen, color.Bold)
	cyan := color.New(color.FgHiCyan)
	yellow := color.New(color.FgHiYellow)

	fmt.Fprintln(w)
	green.Fprintln(w, "  --- WDDM Hybrid Graphics Orchestrator ---")
	cyan.Fprintf(w, "  hybridgpu %s\n", Version)
	if dryRun {
		yellow.Fprintln(w, "  DRY RUN: nothing will be written")
	}
	fmt.Fprintln(w, "  ─────────────────────────────────────────────")
	fmt.Fprintln(w)
}

// acknowledge blocks until Enter.
func acknowledge() {
	prompt := promptui.Prompt{
		Label:       "Press Enter to exit",
		HideEntered: true,
	}
	// Ctrl+C and a closed stdin count as acknowledgement too.
	_, _ = prompt.Run()
}

func printDryRunReport(w io.Writer, entries []preference.Entry, menu *shell.MemoryMenuStore) {
	cyan := color.New(color.FgHiCyan)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "  Would write to HKCU\\"+preference.RegistryPath+":")
	if len(entries) == 0 {
		fmt.Fprintln(w, "    (nothing)")
	}
	for _, e := range entries {
		fmt.Fprintf(w, "    %s = %s\n", e.ExecutablePath, preference.Encode(e.Preference))
	}

	if entry, ok := menu.Entry(shell.VerbKey); ok {
		cyan.Fprintln(w, "  Would write to HKCU\\"+entry.Verb+":")
		fmt.Fprintf(w, "    (default) = %s\n", entry.DisplayText)
		fmt.Fprintf(w, "    Icon      = %s\n", entry.Icon)
		fmt.Fprintf(w, "    command   = %s\n", entry.Command)
	}
}
