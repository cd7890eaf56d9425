package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printToString(t *testing.T, ip *Interpreter, c *Cell) string {
	t.Helper()
	out := NewStringOutStream(256)
	ip.Print(c, out)
	return string(out.Bytes())
}

func TestPrint_Atoms(t *testing.T) {
	ip := Init()
	defer ip.End()

	assert.Equal(t, "()", printToString(t, ip, ip.Nil))
	assert.Equal(t, "t", printToString(t, ip, ip.T))
	assert.Equal(t, "42", printToString(t, ip, ip.Mkint(42)))
	assert.Equal(t, "-7", printToString(t, ip, ip.Mkint(-7)))
	assert.Equal(t, "foo", printToString(t, ip, ip.Mksym("foo")))
}

func TestPrint_StringEscaping(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := ip.Mkstr([]byte("a\"b\\c\nd"))
	assert.Equal(t, `"a\"b\\c\nd"`, printToString(t, ip, c))
}

func TestPrint_List(t *testing.T) {
	ip := Init()
	defer ip.End()

	lst := ip.Mkobj(TagList)
	ip.Append(lst, ip.Mkint(1))
	ip.Append(lst, ip.Mkint(2))
	assert.Equal(t, "(1 2)", printToString(t, ip, lst))
}

func TestPrint_RoundTripsThroughReader(t *testing.T) {
	ip := Init()
	defer ip.End()

	src := `(1 2 "three" four)`
	x, err := ip.Read(NewStringInStream([]byte(src)))
	require.NoError(t, err)
	assert.Equal(t, src, printToString(t, ip, x))
}

func TestDebugTree_ListShape(t *testing.T) {
	ip := Init()
	defer ip.End()

	x, err := ip.Read(NewStringInStream([]byte("(1 2)")))
	require.NoError(t, err)
	tree := ip.DebugTree(x)
	assert.Contains(t, tree, "List<2>")
	assert.Contains(t, tree, "Integer(1)")
}
