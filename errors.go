package lisp

import (
	"fmt"
	"runtime"
)

// Severity is one of the three levels of spec §7.
type Severity int

const (
	// Recoverable: a user error. One diagnostic line is written and
	// evaluation continues with Nil standing in for the failed result.
	Recoverable Severity = iota
	// FatalExpression: an internal invariant broke partway through
	// evaluating one top-level expression. The core makes no promise
	// about the state of that expression's side effects, but the REPL
	// loop itself survives to read the next one.
	FatalExpression
	// FatalProcess: allocation failure or the cell cap was exceeded.
	// The process exits.
	FatalProcess
)

// Diagnostic is the wire-format error of spec §6: one line,
// `(error "<message>" "<file>" <line>)`, where file/line name the Go
// source location of the diagnosing call.
type Diagnostic struct {
	Message string
	File    string
	Line    int
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf(`(error "%s" "%s" %d)`, d.Message, d.File, d.Line)
}

// fatalExpression is the panic value used to unwind out of a single
// evaluation without killing the process. Repl recovers it.
type fatalExpression struct {
	err *Diagnostic
}

// Diagnose writes one diagnostic line to the interpreter's logging
// stream and, depending on severity, either returns the Diagnostic as
// an ordinary error (Recoverable), panics with it wrapped so Repl's
// top-level recover can catch it (FatalExpression), or calls the
// interpreter's exit hook (FatalProcess). Whenever it returns, it
// returns the Diagnostic, so call sites can write
// `return ip.Nil, ip.Diagnose(...)` or simply
// `ip.Diagnose(...); return ip.Nil` depending on their signature.
func (ip *Interpreter) Diagnose(sev Severity, format string, args ...any) error {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "?", 0
	}
	d := &Diagnostic{Message: fmt.Sprintf(format, args...), File: file, Line: line}
	if ip.logging != nil {
		ip.logging.Puts([]byte(d.Error()))
		ip.logging.Putc('\n')
	}
	switch sev {
	case FatalProcess:
		if ip.output != nil {
			ip.output.Flush()
		}
		if ip.logging != nil {
			ip.logging.Flush()
		}
		ip.exit(1)
		return d
	case FatalExpression:
		panic(fatalExpression{err: d})
	default:
		return d
	}
}
