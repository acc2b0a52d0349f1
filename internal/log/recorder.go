package log

import (
	"fmt"
	"strings"
)

// Level names the severity of a recorded message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
	LevelDebug   Level = "debug"
)

// Entry is a single recorded message.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory. Used by tests to assert on warnings.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Infof(format string, args ...any)    { r.add(LevelInfo, format, args) }
func (r *Recorder) Successf(format string, args ...any) { r.add(LevelSuccess, format, args) }
func (r *Recorder) Warnf(format string, args ...any)    { r.add(LevelWarn, format, args) }
func (r *Recorder) Errorf(format string, args ...any)   { r.add(LevelError, format, args) }
func (r *Recorder) Debugf(format string, args ...any)   { r.add(LevelDebug, format, args) }

func (r *Recorder) add(level Level, format string, args []any) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Count returns how many messages were recorded at level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether a message at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, e := range r.Entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
