package parser

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
)

// DiagnosticKind classifies a recoverable parse problem.
type DiagnosticKind int

const (
	StructuralMismatch DiagnosticKind = iota
	UnresolvedReference
	InvalidArgument
	RecursionDetected
	UnknownCommand
)

var diagnosticKindNames = map[DiagnosticKind]string{
	StructuralMismatch:  "structural-mismatch",
	UnresolvedReference: "unresolved-reference",
	InvalidArgument:     "invalid-argument",
	RecursionDetected:   "recursion-detected",
	UnknownCommand:      "unknown-command",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets diagnostics serialize their kind by name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	for kind, name := range diagnosticKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind %q", text)
}

// Diagnostic is one warning produced while parsing.
type Diagnostic struct {
	File    string         `json:"file"`
	Line    int            `json:"line"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: warning: %s", d.File, d.Line, d.Message)
}

func (d Diagnostic) Error() string {
	return d.String()
}

// DiagnosticSink receives parser warnings.
type DiagnosticSink interface {
	Warn(d Diagnostic)
}

// Collector is a DiagnosticSink that keeps every warning. It is safe for
// concurrent use.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (c *Collector) Warn(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of the collected warnings.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Count returns the number of collected warnings of the given kinds, or
// of all kinds when none are given.
func (c *Collector) Count(kinds ...DiagnosticKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(kinds) == 0 {
		return len(c.diagnostics)
	}
	n := 0
	for _, d := range c.diagnostics {
		for _, k := range kinds {
			if d.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = nil
}

// LogSink writes warnings to a commonlog logger.
type LogSink struct {
	Log commonlog.Logger
}

// NewLogSink returns a sink logging to the named logger.
func NewLogSink(name string) *LogSink {
	return &LogSink{Log: commonlog.GetLogger(name)}
}

func (s *LogSink) Warn(d Diagnostic) {
	s.Log.Warningf("%s:%d: %s", d.File, d.Line, d.Message)
}

// MultiSink forwards each warning to every sink in order.
type MultiSink []DiagnosticSink

func (m MultiSink) Warn(d Diagnostic) {
	for _, s := range m {
		s.Warn(d)
	}
}
