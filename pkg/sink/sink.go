// Package sink defines where composed diagnostics are delivered.
//
// The linker driver owns the sink and decides what to do with a report;
// this module only produces messages. [LogSink] prints reports through a
// charmbracelet logger, [Writer] prints them verbatim, and [Recorder] keeps
// them in memory for tests.
package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Severity ranks a report.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Location points at source code. Diagnostics composed by this module carry
// no location.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Sink receives composed diagnostics.
type Sink interface {
	Report(severity Severity, message string, location *Location)
}

// Func adapts a function to the Sink interface.
type Func func(severity Severity, message string, location *Location)

// Report calls f.
func (f Func) Report(severity Severity, message string, location *Location) {
	f(severity, message, location)
}

// LogSink prints reports through a logger at the matching level.
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink returns a LogSink using l, or log.Default() if l is nil.
func NewLogSink(l *log.Logger) *LogSink {
	if l == nil {
		l = log.Default()
	}
	return &LogSink{Logger: l}
}

// Report logs message. A location is attached as the "at" key.
func (s *LogSink) Report(severity Severity, message string, location *Location) {
	var kv []any
	if location != nil {
		kv = append(kv, "at", location.String())
	}
	switch severity {
	case SeverityError:
		s.Logger.Error(message, kv...)
	case SeverityWarning:
		s.Logger.Warn(message, kv...)
	default:
		s.Logger.Info(message, kv...)
	}
}

// Writer prints each report verbatim, followed by a newline. Reports below
// Min are dropped.
type Writer struct {
	W   io.Writer
	Min Severity
}

// Report writes message to W.
func (s Writer) Report(severity Severity, message string, location *Location) {
	if severity < s.Min {
		return
	}
	if location != nil {
		fmt.Fprintf(s.W, "%s: %s: %s\n", location, severity, message)
		return
	}
	fmt.Fprintln(s.W, message)
}

// Entry is one recorded report.
type Entry struct {
	Severity Severity
	Message  string
	Location *Location
}

// Recorder keeps every report in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Report records the report.
func (r *Recorder) Report(severity Severity, message string, location *Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Severity: severity, Message: message, Location: location})
}

// Entries returns a copy of all recorded reports in arrival order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent report.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}
