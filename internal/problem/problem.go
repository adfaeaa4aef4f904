// Package problem implements the accumulation of build diagnostics: C1 in
// the component table, ProblemCollector. Every phase of the descriptor
// build pipeline reports anomalies here instead of failing outright, so a
// single build can surface many problems before a severity threshold
// forces it to stop.
package problem

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Severity classifies how serious a Problem is.
type Severity int

const (
	// Warning is informational; it never blocks a build.
	Warning Severity = iota
	// Error defers a build failure to the next phase boundary.
	Error
	// Fatal aborts the current phase immediately.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Gate is the validation level at which a diagnostic becomes blocking.
// Gates are ordered; Base is always active, later gates are only compared
// against a request's validation level.
type Gate int

const (
	Base Gate = iota
	V20
	V30
	V31
	V37
)

// Location is the InputLocation of the data model: a pointer into the
// source document that produced a field, used for diagnostics.
type Location struct {
	Source string
	Line   int
	Column int
}

func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line <= 0 {
		return l.Source
	}
	return fmt.Sprintf("%s, line %d, column %d", l.Source, l.Line, l.Column)
}

// Problem is a single diagnostic: severity, the version gate it becomes
// blocking at, a source context, an optional location, a message, and an
// optional underlying Go error.
type Problem struct {
	Severity Severity
	Gate     Gate
	Source   string
	Location *Location
	Message  string
	Err      error
}

func (p Problem) Error() string {
	var b strings.Builder
	b.WriteString(p.Severity.String())
	if p.Source != "" {
		b.WriteString(" in ")
		b.WriteString(p.Source)
	}
	if p.Location != nil {
		b.WriteString(" @ ")
		b.WriteString(p.Location.String())
	}
	b.WriteString(": ")
	b.WriteString(p.Message)
	if p.Err != nil {
		b.WriteString(": ")
		b.WriteString(p.Err.Error())
	}
	return b.String()
}

// Collector accumulates Problems for a single build request. It is not
// shared across requests; a fresh Collector is created per build, mirroring
// the request-scoped lifecycle in SPEC_FULL.md §5.
type Collector struct {
	mu              sync.Mutex
	problems        []Problem
	source          string
	rootModelID     string
	validationLevel Gate
	correlationID   uuid.UUID
}

// NewCollector creates a Collector for a build at the given validation
// level. The level is only recorded; Add keeps every problem whatever its
// Gate.
func NewCollector(level Gate) *Collector {
	return &Collector{
		validationLevel: level,
		correlationID:   uuid.New(),
	}
}

// CorrelationID identifies this build for tracing problems that originate
// in a nested sub-build (dependency-management import) back to it.
func (c *Collector) CorrelationID() uuid.UUID {
	return c.correlationID
}

// SetSource records the context (a model or a plain source string) that
// subsequently added problems should be attributed to.
func (c *Collector) SetSource(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
}

// SetRootModel records which model is the root of the current build, used
// to decide whether a problem message needs a "for <id>" suffix.
func (c *Collector) SetRootModel(modelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rootModelID = modelID
}

// RootModel returns the model id set by SetRootModel.
func (c *Collector) RootModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rootModelID
}

// Add appends a single problem. Collection is monotonic: problems are only
// ever appended, never removed or rewritten.
func (c *Collector) Add(p Problem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Source == "" {
		p.Source = c.source
	}
	c.problems = append(c.problems, p)
}

// AddAll appends every problem in ps, in order.
func (c *Collector) AddAll(ps []Problem) {
	for _, p := range ps {
		c.Add(p)
	}
}

// HasErrors reports whether any collected problem is ERROR or FATAL.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.problems {
		if p.Severity == Error || p.Severity == Fatal {
			return true
		}
	}
	return false
}

// HasFatalErrors reports whether any collected problem is FATAL.
func (c *Collector) HasFatalErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.problems {
		if p.Severity == Fatal {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of every problem collected so far.
func (c *Collector) Snapshot() []Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Problem, len(c.problems))
	copy(out, c.problems)
	return out
}

// BuildFailedError is the aggregate error raised at a phase boundary once
// the collector has accumulated a blocking problem. It carries every
// problem gathered so far, not just the one that tipped the build over.
type BuildFailedError struct {
	Problems []Problem
}

// NewBuildFailedError wraps a problem snapshot into a BuildFailedError.
func NewBuildFailedError(problems []Problem) *BuildFailedError {
	return &BuildFailedError{Problems: append([]Problem(nil), problems...)}
}

func (e *BuildFailedError) Error() string {
	if len(e.Problems) == 0 {
		return "model build failed"
	}
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Severity == Error || p.Severity == Fatal {
			msgs = append(msgs, p.Error())
		}
	}
	return fmt.Sprintf("model build failed with %d problem(s):\n- %s", len(msgs), strings.Join(msgs, "\n- "))
}
