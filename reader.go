package lisp

import (
	"io"
	"strconv"
)

// reader is the recursive-descent S-expression parser of spec §4.4. It
// holds no state beyond the owning interpreter and the stream it reads
// from — there is nothing to reset between top-level reads other than
// constructing a fresh one per call, which Interpreter.Read does.
type reader struct {
	ip *Interpreter
	s  *Stream
}

func newReader(ip *Interpreter, s *Stream) *reader {
	return &reader{ip: ip, s: s}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

// skipWhitespaceAndComments skips runs of whitespace, and (when
// reader.allow_comments is set) a `;` to end-of-line comment — spec
// §6's grammar marks comments optional-but-supported, and this port
// supports them.
func (r *reader) skipWhitespaceAndComments() {
	allowComments := r.ip.config.GetBool("reader.allow_comments")
	for {
		b := r.s.Getc()
		switch {
		case b == EOF:
			return
		case isSpace(byte(b)):
			continue
		case allowComments && b == ';':
			for {
				c := r.s.Getc()
				if c == EOF || c == '\n' {
					break
				}
			}
			continue
		default:
			r.s.Ungetc(byte(b))
			return
		}
	}
}

// ReadExpr parses one top-level S-expression, per spec §4.4's
// dispatch: skip whitespace, then branch on the next byte. It returns
// io.EOF (not an interpreter Diagnostic) when the stream is exhausted
// with nothing left to read, so Repl can tell "clean end of input"
// apart from "a parse error occurred".
func (r *reader) ReadExpr() (*Cell, error) {
	r.skipWhitespaceAndComments()
	b := r.s.Getc()
	switch {
	case b == EOF:
		return nil, io.EOF
	case b == '(':
		return r.parseList()
	case b == '"':
		return r.parseString()
	case b == ')':
		return nil, r.ip.Diagnose(Recoverable, "unmatched )")
	default:
		r.s.Ungetc(byte(b))
		return r.parseAtom()
	}
}

func (r *reader) parseList() (*Cell, error) {
	lst := r.ip.Mkobj(TagList)
	for {
		r.skipWhitespaceAndComments()
		b := r.s.Getc()
		switch {
		case b == ')':
			return lst, nil
		case b == EOF:
			return nil, r.ip.Diagnose(Recoverable, "EOF inside list")
		case b == '(':
			child, err := r.parseList()
			if err != nil {
				return nil, err
			}
			lst.list = append(lst.list, child)
		case b == '"':
			child, err := r.parseString()
			if err != nil {
				return nil, err
			}
			lst.list = append(lst.list, child)
		default:
			r.s.Ungetc(byte(b))
			child, err := r.parseAtom()
			if err != nil {
				return nil, err
			}
			lst.list = append(lst.list, child)
		}
	}
}

func (r *reader) parseString() (*Cell, error) {
	maxLen := r.ip.config.GetInt("reader.max_string_len")
	var buf []byte
	for {
		b := r.s.Getc()
		switch {
		case b == EOF:
			return nil, r.ip.Diagnose(Recoverable, "EOF inside string")
		case b == '"':
			return r.ip.Mkstr(buf), nil
		case b == '\\':
			esc, err := r.parseEscape()
			if err != nil {
				return nil, err
			}
			buf = append(buf, esc)
		default:
			buf = append(buf, byte(b))
		}
		if len(buf) > maxLen {
			return nil, r.ip.Diagnose(Recoverable, "string exceeds maximum length of %d bytes", maxLen)
		}
	}
}

// parseEscape consumes the byte(s) following a `\` inside a string
// literal: a single-byte mapping, or a three-digit octal escape.
func (r *reader) parseEscape() (byte, error) {
	b := r.s.Getc()
	if b == EOF {
		return 0, r.ip.Diagnose(Recoverable, "EOF inside string escape")
	}
	switch byte(b) {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '(':
		return '(', nil
	case ')':
		return ')', nil
	default:
		if !isOctalDigit(byte(b)) {
			return 0, r.ip.Diagnose(Recoverable, "invalid escape sequence `\\%c`", byte(b))
		}
		d1 := byte(b) - '0'
		d2 := r.s.Getc()
		d3 := r.s.Getc()
		if d2 == EOF || d3 == EOF || !isOctalDigit(byte(d2)) || !isOctalDigit(byte(d3)) {
			return 0, r.ip.Diagnose(Recoverable, "invalid octal escape")
		}
		val := int(d1)*64 + int(byte(d2)-'0')*8 + int(byte(d3)-'0')
		return byte(val), nil
	}
}

// parseAtom accumulates bytes until whitespace, `(`, or `)`, pushing
// the terminator back unless it was whitespace (spec §4.4). The
// accumulated token is then classified as an Integer or a Symbol.
func (r *reader) parseAtom() (*Cell, error) {
	var buf []byte
	for {
		b := r.s.Getc()
		if b == EOF {
			break
		}
		if isSpace(byte(b)) {
			break
		}
		if b == '(' || b == ')' {
			r.s.Ungetc(byte(b))
			break
		}
		buf = append(buf, byte(b))
	}
	if len(buf) == 0 {
		return nil, r.ip.Diagnose(Recoverable, "empty token")
	}
	if n, ok := r.parseIntegerLiteral(buf); ok {
		return r.ip.Mkint(n), nil
	}
	return r.ip.Mksym(string(buf)), nil
}

// parseIntegerLiteral implements the grammar
// `[+-]?(0|0[xX][0-9a-fA-F]+|[1-9][0-9]*|0[0-7]+)` of spec §4.4/§6.
func (r *reader) parseIntegerLiteral(tok []byte) (int, bool) {
	s := string(tok)
	neg := false
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	rest := s[i:]
	if rest == "" {
		return 0, false
	}

	var n int64
	var err error

	switch {
	case rest == "0":
		n = 0

	case len(rest) > 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X'):
		if !r.ip.config.GetBool("reader.allow_hex") {
			return 0, false
		}
		n, err = strconv.ParseInt(rest[2:], 16, 64)
		if err != nil {
			return 0, false
		}

	case rest[0] == '0':
		if !r.ip.config.GetBool("reader.allow_octal") {
			return 0, false
		}
		for _, c := range rest[1:] {
			if c < '0' || c > '7' {
				return 0, false
			}
		}
		n, err = strconv.ParseInt(rest[1:], 8, 64)
		if err != nil {
			return 0, false
		}

	case rest[0] >= '1' && rest[0] <= '9':
		for _, c := range rest {
			if c < '0' || c > '9' {
				return 0, false
			}
		}
		n, err = strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return 0, false
		}

	default:
		return 0, false
	}

	if neg {
		n = -n
	}
	return int(n), true
}
