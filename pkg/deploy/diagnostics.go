// Package deploy validates entity records and writes their Quadlet
// unit files under a working directory.
package deploy

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Diagnostics is the sink for non-fatal messages emitted during
// validation and generation. Fatal conditions are returned as a
// *FatalError instead of going through the sink.
type Diagnostics interface {
	Notef(format string, args ...any)
	Warnf(format string, args ...any)
}

// LogDiagnostics routes diagnostics to a charmbracelet logger.
type LogDiagnostics struct {
	Logger *log.Logger
}

func (l LogDiagnostics) Notef(format string, args ...any) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l LogDiagnostics) Warnf(format string, args ...any) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Recorder accumulates diagnostics for inspection in tests.
type Recorder struct {
	Notes    []string
	Warnings []string
}

func (r *Recorder) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
