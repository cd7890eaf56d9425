// Package lisp implements the core of liblisp: the S-expression
// reader, the tagged value model, the tree-walking evaluator with
// lexical environments and user procedures, the fixed primitive table,
// and the mark-and-sweep collector. See SPEC_FULL.md for the full
// design; package consumers typically only need Init, Read, Eval,
// Print, and Repl.
package lisp

import (
	"io"
	"os"
)

// Interpreter is one interpreter instance (spec §9 design note: every
// piece of process-wide state in the distilled source — the heap, the
// singletons, the special-form markers, the global environment — is
// folded in here instead, so multiple interpreters can coexist). It is
// not safe for concurrent use from more than one goroutine (spec §5).
type Interpreter struct {
	heap *heap

	global *Cell // top-level bindings: primitives + define'd symbols
	env    *Cell // current lexical chain

	Nil *Cell
	T   *Cell

	specialForms       map[string]specialForm
	specialFormMarkers []*Cell

	input   *Stream
	output  *Stream
	logging *Stream

	config *Config

	gensymCounter int

	// exit is the process-exit hook used by Diagnose(FatalProcess, ...).
	// It defaults to os.Exit; tests override it so a simulated OOM
	// doesn't kill the test binary.
	exit func(code int)
}

// Init constructs a fresh interpreter with stdin/stdout/stderr as the
// default streams, per spec §6.
func Init() *Interpreter {
	ip := &Interpreter{
		config: NewConfig(),
		exit:   os.Exit,
	}
	ip.heap = newHeap(ip.config.GetInt("gc.max_cells"))

	ip.Nil = ip.Mkobj(TagNil)
	ip.T = ip.Mkobj(TagTee)
	ip.global = ip.Mkobj(TagList)
	ip.env = ip.Mkobj(TagList)

	ip.input = NewFileInStream(os.Stdin)
	ip.output = NewFileOutStream(os.Stdout)
	ip.logging = NewFileOutStream(os.Stderr)

	ip.initSpecialForms()
	ip.registerPrimitives()
	ip.Extend(ip.Mksym("t"), ip.T, ip.global)

	return ip
}

// SetInput, SetOutput, and SetLogging redirect the interpreter's three
// streams (spec §6).
func (ip *Interpreter) SetInput(s *Stream)   { ip.input = s }
func (ip *Interpreter) SetOutput(s *Stream)  { ip.output = s }
func (ip *Interpreter) SetLogging(s *Stream) { ip.logging = s }

// Input, Output, and Logging return the interpreter's three streams.
func (ip *Interpreter) Input() *Stream   { return ip.input }
func (ip *Interpreter) Output() *Stream  { return ip.output }
func (ip *Interpreter) Logging() *Stream { return ip.logging }

// Config exposes the interpreter's tuning knobs (SPEC_FULL.md).
func (ip *Interpreter) Config() *Config { return ip.config }

// GlobalEnv and Env expose the two environments spec §3 describes, for
// host code that wants to inspect or extend top-level bindings
// directly rather than only through Eval/define.
func (ip *Interpreter) GlobalEnv() *Cell { return ip.global }
func (ip *Interpreter) Env() *Cell       { return ip.env }

// Read parses one S-expression from s (spec §6).
func (ip *Interpreter) Read(s *Stream) (*Cell, error) {
	return newReader(ip, s).ReadExpr()
}

// Repl loops read/eval/print/collect until end-of-stream, per spec §6.
// A Recoverable diagnostic from the reader skips to the next
// expression; a FatalExpression panic from Eval is caught so one
// malformed form cannot end the session. Returns 0 on clean
// end-of-input.
func (ip *Interpreter) Repl() int {
	for {
		x, err := ip.Read(ip.input)
		if err == io.EOF {
			return 0
		}
		if err != nil {
			// Diagnose already logged it; skip to the next expression.
			continue
		}

		result := ip.safeEval(x)
		ip.Print(result, ip.output)
		ip.output.Putc('\n')
		ip.Clean()
	}
}

func (ip *Interpreter) safeEval(x *Cell) (result *Cell) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(fatalExpression)
			if !ok {
				panic(r)
			}
			_ = fe.err
			result = ip.Nil
		}
	}()
	return ip.Eval(x)
}

// End tears the interpreter down: sweep-without-marking frees every
// remaining cell (spec §4.9's lisp_end), and the interpreter's own
// fixed streams are released — stdio streams are only ever flushed,
// per §4.1/§5.
func (ip *Interpreter) End() {
	ip.sweep()
	ip.input.Flush()
	ip.output.Flush()
	ip.logging.Flush()
	ip.input.Close()
	ip.output.Close()
	ip.logging.Close()
}
