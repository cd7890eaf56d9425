package lisp

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOne(t *testing.T, ip *Interpreter, src string) *Cell {
	t.Helper()
	x, err := ip.Read(NewStringInStream([]byte(src)))
	require.NoError(t, err)
	return x
}

func TestReader_Integers(t *testing.T) {
	ip := Init()
	defer ip.End()

	tests := []struct {
		src  string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{"-7", -7},
		{"+7", 7},
		{"0x1F", 0x1F},
		{"017", 15},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := readOne(t, ip, tt.src)
			require.Equal(t, TagInteger, c.Tag())
			assert.Equal(t, tt.want, c.Integer())
		})
	}
}

func TestReader_HexDisabledFallsBackToSymbol(t *testing.T) {
	ip := Init()
	defer ip.End()
	ip.config.SetBool("reader.allow_hex", false)

	c := readOne(t, ip, "0x1F")
	assert.Equal(t, TagSymbol, c.Tag())
}

func TestReader_Symbol(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, "foo-bar?")
	assert.Equal(t, TagSymbol, c.Tag())
	assert.Equal(t, "foo-bar?", string(c.Text()))
}

func TestReader_String(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, `"hello\nworld"`)
	assert.Equal(t, TagString, c.Tag())
	assert.Equal(t, "hello\nworld", string(c.Text()))
}

func TestReader_StringOctalEscape(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, `"\101"`) // 'A'
	assert.Equal(t, "A", string(c.Text()))
}

func TestReader_NestedList(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, "(1 (2 3) 4)")
	require.Equal(t, TagList, c.Tag())
	require.Equal(t, 3, c.Len())
	assert.Equal(t, TagList, c.Nth(1).Tag())
	assert.Equal(t, 2, c.Nth(1).Len())
}

func TestReader_EmptyList(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, "()")
	assert.Equal(t, TagList, c.Tag())
	assert.Equal(t, 0, c.Len())
}

func TestReader_Comments(t *testing.T) {
	ip := Init()
	defer ip.End()

	c := readOne(t, ip, "; a comment\n42")
	assert.Equal(t, 42, c.Integer())
}

func TestReader_EOFCases(t *testing.T) {
	ip := Init()
	defer ip.End()

	_, err := ip.Read(NewStringInStream([]byte("")))
	assert.Equal(t, io.EOF, err)

	_, err = ip.Read(NewStringInStream([]byte("(1 2")))
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestReader_UnmatchedCloseParenIsRecoverable(t *testing.T) {
	ip := Init()
	defer ip.End()

	_, err := ip.Read(NewStringInStream([]byte(")")))
	assert.Error(t, err)
}

func TestReader_StringTooLong(t *testing.T) {
	ip := Init()
	defer ip.End()
	ip.config.SetInt("reader.max_string_len", 3)

	_, err := ip.Read(NewStringInStream([]byte(`"abcd"`)))
	assert.Error(t, err)
}
