// Package log defines the logger used across hybridgpu. The console logger
// renders coloured status lines; tests swap in a Recorder.
package log

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger is the logging interface every component receives.
type Logger interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// ConsoleLogger prints tagged, coloured lines to Out.
type ConsoleLogger struct {
	Out     io.Writer
	Verbose bool // Whether debug lines are shown.

	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	debug   *color.Color
}

// NewConsoleLogger creates a ConsoleLogger writing to out.
func NewConsoleLogger(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		Out:     out,
		Verbose: verbose,
		info:    color.New(color.FgHiCyan),
		success: color.New(color.FgHiGreen, color.Bold),
		warn:    color.New(color.FgHiYellow),
		fail:    color.New(color.FgHiRed, color.Bold),
		debug:   color.New(color.FgHiBlack),
	}
}

func (l *ConsoleLogger) Infof(format string, args ...any) {
	l.print(l.info, "[*]", format, args...)
}

func (l *ConsoleLogger) Successf(format string, args ...any) {
	l.print(l.success, "[+]", format, args...)
}

func (l *ConsoleLogger) Warnf(format string, args ...any) {
	l.print(l.warn, "[!]", format, args...)
}

func (l *ConsoleLogger) Errorf(format string, args ...any) {
	l.print(l.fail, "[ERROR]", format, args...)
}

func (l *ConsoleLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.print(l.debug, "[debug]", format, args...)
	}
}

func (l *ConsoleLogger) print(c *color.Color, tag, format string, args ...any) {
	c.Fprint(l.Out, tag)
	fmt.Fprintf(l.Out, " "+format+"\n", args...)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Infof(string, ...any)    {}
func (Discard) Successf(string, ...any) {}
func (Discard) Warnf(string, ...any)    {}
func (Discard) Errorf(string, ...any)   {}
func (Discard) Debugf(string, ...any)   {}
