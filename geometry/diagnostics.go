package geometry

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// WarningKind classifies a numerical consistency warning
type WarningKind uint8

const (
	// DegenerateTriangle: a fan sub-triangle of a face has no positive area
	DegenerateTriangle WarningKind = iota
	// NonPositiveVolume: the accumulated volume of a cell is not positive
	NonPositiveVolume
)

func (k WarningKind) String() string {
	switch k {
	case DegenerateTriangle:
		return "DegenerateTriangle"
	case NonPositiveVolume:
		return "NonPositiveVolume"
	default:
		return fmt.Sprintf("WarningKind(%d)", uint8(k))
	}
}

// Warning is a non-fatal diagnostic. The computation that produced it has
// already stored the degenerate value; results for Element should be treated
// as unreliable.
type Warning struct {
	Kind     WarningKind
	Element  int     // face index for DegenerateTriangle, cell index for NonPositiveVolume
	Triangle int     // fan triangle within the face, -1 for cell warnings
	Value    float64 // offending sub-area or volume
}

func (w Warning) String() string {
	if w.Kind == NonPositiveVolume {
		return fmt.Sprintf("%s: cell %d volume %g", w.Kind, w.Element, w.Value)
	}
	return fmt.Sprintf("%s: face %d triangle %d area %g", w.Kind, w.Element, w.Triangle, w.Value)
}

// Diagnostics receives warnings. Implementations must be safe for concurrent
// use when the kernel runs with more than one worker.
type Diagnostics interface {
	Warn(w Warning)
}

// DiagnosticsFunc adapts a function to Diagnostics
type DiagnosticsFunc func(w Warning)

func (f DiagnosticsFunc) Warn(w Warning) { f(w) }

func warn(d Diagnostics, w Warning) {
	if d != nil {
		d.Warn(w)
	}
}

// Collector accumulates warnings in memory
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Warnings returns a copy of the collected warnings ordered by kind, element
// and triangle, independent of the order workers reported them in.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	out := append([]Warning(nil), c.warnings...)
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Element != b.Element {
			return a.Element < b.Element
		}
		return a.Triangle < b.Triangle
	})
	return out
}

// Len returns the number of collected warnings
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// Count returns the number of collected warnings of the given kind
func (c *Collector) Count(kind WarningKind) (n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return
}

// Reset discards all collected warnings
func (c *Collector) Reset() {
	c.mu.Lock()
	c.warnings = nil
	c.mu.Unlock()
}

// ZapSink logs every warning at warn level
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a sink writing to logger; a nil logger is replaced by a
// no-op logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger.Named("geometry")}
}

func (s *ZapSink) Warn(w Warning) {
	fields := []zap.Field{
		zap.Stringer("kind", w.Kind),
		zap.Int("element", w.Element),
		zap.Float64("value", w.Value),
	}
	if w.Triangle >= 0 {
		fields = append(fields, zap.Int("triangle", w.Triangle))
	}
	s.logger.Warn("numerical consistency warning", fields...)
}

// Tee fans a warning out to several sinks
type Tee []Diagnostics

func (t Tee) Warn(w Warning) {
	for _, d := range t {
		warn(d, w)
	}
}
