package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_Constructors(t *testing.T) {
	ip := Init()
	defer ip.End()

	i := ip.Mkint(42)
	assert.Equal(t, TagInteger, i.Tag())
	assert.Equal(t, 42, i.Integer())

	s := ip.Mksym("foo")
	assert.Equal(t, TagSymbol, s.Tag())
	assert.Equal(t, "foo", string(s.Text()))

	str := ip.Mkstr([]byte("bar"))
	assert.Equal(t, TagString, str.Tag())
	assert.Equal(t, "bar", string(str.Text()))

	lst := ip.Mkobj(TagList)
	ip.Append(lst, i)
	ip.Append(lst, s)
	require.Equal(t, 2, lst.Len())
	assert.Equal(t, i, lst.Car())
	assert.Equal(t, s, lst.Cadr())
}

func TestCell_MkstrOwnsACopy(t *testing.T) {
	ip := Init()
	defer ip.End()

	src := []byte("hello")
	c := ip.Mkstr(src)
	src[0] = 'X'
	assert.Equal(t, "hello", string(c.Text()), "Mkstr must not alias the caller's slice")
}

func TestCell_NthOutOfRange(t *testing.T) {
	ip := Init()
	defer ip.End()

	lst := ip.Mkobj(TagList)
	assert.Nil(t, lst.Car())
	assert.Nil(t, lst.Nth(5))
}

func TestCell_MkprocSnapshotsEnv(t *testing.T) {
	ip := Init()
	defer ip.End()

	env := ip.Mkobj(TagList)
	ip.Extend(ip.Mksym("x"), ip.Mkint(1), env)

	params := ip.Mkobj(TagList)
	body := ip.Mksym("x")
	proc := ip.Mkproc(params, body, env)

	// mutating env after capture must not change the count already snapshotted
	ip.Extend(ip.Mksym("y"), ip.Mkint(2), env)
	assert.Equal(t, 1, proc.Caddr().Len())
}
