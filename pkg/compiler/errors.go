package compiler

import (
	"errors"
	"fmt"
)

// Structural errors raised by SymbolTable. These represent invariant
// violations in the compiler itself, never a mistake in the source program
// being compiled; any caller that lets one escape treats it as fatal.
var (
	ErrEmptyScope     = errors.New("symbol table has no open scope")
	ErrDuplicate      = errors.New("name already declared in this scope")
	ErrIllegalArgument = errors.New("nil name or entry passed to symbol table")
)

// ErrorReporter accumulates the user-visible semantic diagnostics of spec
// §4.2/§4.3 and tracks the process-wide "error encountered" flag described
// in spec §5 and §7. It never panics or unwinds; every diagnostic is a
// plain method call that returns nothing; the walk that produced it keeps
// going. Compare to ErrMsg.fatal / ErrMsg.fatalEncountered in
// original_source/P4/files/ast.java.
type ErrorReporter struct {
	lines   []string
	flagged bool
}

// NewErrorReporter returns a reporter with a clear error flag, matching the
// "cleared at compiler entry" lifecycle in spec §5.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// Report records one diagnostic in the shape mandated by spec §6:
// "<linenum>:<charnum> ***ERROR*** <message>".
func (r *ErrorReporter) Report(line, col int, message string) {
	r.lines = append(r.lines, fmt.Sprintf("%d:%d ***ERROR*** %s", line, col, message))
	r.flagged = true
}

// HasError reports whether any diagnostic has been recorded since
// construction (or the last Reset).
func (r *ErrorReporter) HasError() bool { return r.flagged }

// Count returns the number of diagnostics recorded so far.
func (r *ErrorReporter) Count() int { return len(r.lines) }

// Lines returns the diagnostics in report order, one per line, ready to be
// written to the error stream (spec §6).
func (r *ErrorReporter) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset clears accumulated diagnostics and the error flag. Used only to
// reuse a reporter across independent compilations (e.g. in tests); a
// single compilation never calls it.
func (r *ErrorReporter) Reset() {
	r.lines = nil
	r.flagged = false
}
