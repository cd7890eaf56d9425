package lisp

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter_InitDefaults(t *testing.T) {
	ip := Init()
	defer ip.End()

	assert.NotNil(t, ip.Nil)
	assert.NotNil(t, ip.T)
	assert.NotSame(t, ip.Nil, ip.T)
	assert.Greater(t, ip.GlobalEnv().Len(), 0, "primitives register as ordinary global bindings")
	// arithmetic primitives must already be registered
	assert.NotEqual(t, ip.Nil, ip.Find(ip.Env(), ip.Mksym("+")))
}

func TestInterpreter_ReadEOF(t *testing.T) {
	ip := Init()
	defer ip.End()

	_, err := ip.Read(NewStringInStream(nil))
	assert.Equal(t, io.EOF, err)
}

func TestInterpreter_ReplEvaluatesUntilEOF(t *testing.T) {
	ip := Init()
	defer ip.End()

	in := NewStringInStream([]byte("(define x 1)\n(+ x 1)\n"))
	out := NewStringOutStream(256)
	ip.SetInput(in)
	ip.SetOutput(out)

	code := ip.Repl()
	require.Equal(t, 0, code)
	assert.Contains(t, string(out.Bytes()), "2")
}

func TestInterpreter_ReplSurvivesAFatalExpression(t *testing.T) {
	ip := Init()
	defer ip.End()

	out := NewStringOutStream(256)
	ip.SetOutput(out)
	ip.SetLogging(NewStringOutStream(1024))

	// a symbol head that isn't bound is merely Recoverable, so force a
	// FatalExpression path directly to check the REPL loop survives it.
	ip.RegisterFunction("boom", func(ip *Interpreter, args *Cell) *Cell {
		ip.Diagnose(FatalExpression, "boom")
		return ip.Nil
	})

	ip.SetInput(NewStringInStream([]byte("(boom)\n42\n")))
	code := ip.Repl()
	require.Equal(t, 0, code)
	assert.Contains(t, string(out.Bytes()), "42")
}

func TestInterpreter_EndFreesHeap(t *testing.T) {
	ip := Init()
	evalString(t, ip, "(define x (cons 1 (cons 2 ())))")
	ip.End()
	n := 0
	for c := ip.heap.head; c != nil; c = c.next {
		n++
	}
	assert.Equal(t, 0, n)
}
