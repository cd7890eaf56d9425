package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_StringInOut(t *testing.T) {
	in := NewStringInStream([]byte("ab"))
	assert.Equal(t, int('a'), in.Getc())
	assert.Equal(t, int('b'), in.Getc())
	assert.Equal(t, EOF, in.Getc())

	out := NewStringOutStream(3)
	require.Equal(t, 3, out.Puts([]byte("xyz")))
	assert.Equal(t, []byte("xyz"), out.Bytes())
	assert.Equal(t, EOF, out.Putc('!')) // at max
}

func TestStream_Ungetc(t *testing.T) {
	s := NewStringInStream([]byte("x"))
	c := s.Getc()
	require.Equal(t, int('x'), c)
	assert.True(t, s.Ungetc(byte(c)))
	assert.False(t, s.Ungetc('y'), "a second Ungetc before an intervening Getc must fail")
	assert.Equal(t, int('x'), s.Getc())
	assert.Equal(t, EOF, s.Getc())
}

func TestStream_Printd(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"zero", 0, "0"},
		{"positive", 123, "123"},
		{"negative", -45, "-45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewStringOutStream(16)
			out.Printd(tt.n)
			assert.Equal(t, tt.want, string(out.Bytes()))
		})
	}
}

func TestStream_StringOutOverflow(t *testing.T) {
	out := NewStringOutStream(2)
	assert.Equal(t, 2, out.Puts([]byte("ab")))
	assert.Equal(t, EOF, out.Puts([]byte("c")))
}
