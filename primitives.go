package lisp

import (
	"fmt"
	"os"
	"os/exec"
)

// registerPrimitives fills the fixed table of spec §4.8 plus the
// supplemental primitives of SPEC_FULL.md. Registration goes through
// RegisterFunction exactly like a host embedder's own primitives would
// (spec §6), so there is nothing privileged about the built-in set.
func (ip *Interpreter) registerPrimitives() {
	table := map[string]PrimitiveFunc{
		// arithmetic
		"+":   primAdd,
		"-":   primSub,
		"*":   primMul,
		"/":   primDiv,
		"mod": primMod,

		// list surgery
		"car":     primCar,
		"cdr":     primCdr,
		"cons":    primCons,
		"nth":     primNth,
		"length":  primLength,
		"reverse": primReverse,

		// string variants
		"scar":  primScar,
		"scdr":  primScdr,
		"scons": primScons,

		// comparison / type
		"=":   primEq,
		"eqt": primEqt,

		// I/O
		"print":  primPrint,
		"system": primSystem,

		// supplemental
		"list":       primList,
		"not":        primNot,
		"atom":       primAtom,
		"null":       primNull,
		"gensym":     primGensym,
		"open":       primOpen,
		"close":      primClose,
		"read-line":  primReadLine,
		"write-line": primWriteLine,
		"apply":      primApply,
	}
	for name, fn := range table {
		ip.RegisterFunction(name, fn)
	}
}

// RegisterFunction adds a host-implemented primitive under name,
// exactly as spec §6 describes.
func (ip *Interpreter) RegisterFunction(name string, fn PrimitiveFunc) int {
	sym := ip.Mksym(name)
	prim := ip.Mkprimop(fn)
	ip.Extend(sym, prim, ip.global)
	return 0
}

// ---- arithmetic ----

func primAdd(ip *Interpreter, args *Cell) *Cell {
	sum := 0
	for _, a := range args.list {
		if a.tag != TagInteger {
			ip.Diagnose(Recoverable, "+: expected integer arguments")
			return ip.Nil
		}
		sum += a.integer
	}
	return ip.Mkint(sum)
}

func primSub(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) == 0 {
		ip.Diagnose(Recoverable, "-: expected at least 1 argument")
		return ip.Nil
	}
	for _, a := range args.list {
		if a.tag != TagInteger {
			ip.Diagnose(Recoverable, "-: expected integer arguments")
			return ip.Nil
		}
	}
	result := args.list[0].integer
	for _, a := range args.list[1:] {
		result -= a.integer
	}
	return ip.Mkint(result)
}

func primMul(ip *Interpreter, args *Cell) *Cell {
	product := 1
	for _, a := range args.list {
		if a.tag != TagInteger {
			ip.Diagnose(Recoverable, "*: expected integer arguments")
			return ip.Nil
		}
		product *= a.integer
	}
	return ip.Mkint(product)
}

func primDiv(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) == 0 {
		ip.Diagnose(Recoverable, "/: expected at least 1 argument")
		return ip.Nil
	}
	for _, a := range args.list {
		if a.tag != TagInteger {
			ip.Diagnose(Recoverable, "/: expected integer arguments")
			return ip.Nil
		}
	}
	result := args.list[0].integer
	for _, a := range args.list[1:] {
		if a.integer == 0 {
			ip.Diagnose(Recoverable, "div 0")
			return ip.Nil
		}
		result /= a.integer
	}
	return ip.Mkint(result)
}

func primMod(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 {
		ip.Diagnose(Recoverable, "mod: expected 2 arguments")
		return ip.Nil
	}
	a, b := args.list[0], args.list[1]
	if a.tag != TagInteger || b.tag != TagInteger {
		ip.Diagnose(Recoverable, "mod: expected integer arguments")
		return ip.Nil
	}
	if b.integer == 0 {
		ip.Diagnose(Recoverable, "div 0")
		return ip.Nil
	}
	return ip.Mkint(a.integer % b.integer)
}

// ---- list surgery ----

func primCar(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "car: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	if x.tag != TagList {
		ip.Diagnose(Recoverable, "car: expected a list")
		return ip.Nil
	}
	if len(x.list) == 0 {
		return ip.Nil
	}
	return x.list[0]
}

func primCdr(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "cdr: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	if x.tag != TagList {
		ip.Diagnose(Recoverable, "cdr: expected a list")
		return ip.Nil
	}
	if len(x.list) <= 1 {
		return ip.Nil
	}
	rest := ip.Mkobj(TagList)
	rest.list = append(rest.list, x.list[1:]...)
	return rest
}

func primCons(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 {
		ip.Diagnose(Recoverable, "cons: expected 2 arguments")
		return ip.Nil
	}
	a, b := args.list[0], args.list[1]
	result := ip.Mkobj(TagList)
	switch {
	case b == ip.Nil:
		result.list = []*Cell{a}
	case b.tag == TagList:
		result.list = append([]*Cell{a}, b.list...)
	default:
		result.list = []*Cell{a, b}
	}
	return result
}

func primNth(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 {
		ip.Diagnose(Recoverable, "nth: expected 2 arguments")
		return ip.Nil
	}
	idxCell, coll := args.list[0], args.list[1]
	if idxCell.tag != TagInteger {
		ip.Diagnose(Recoverable, "nth: index must be an integer")
		return ip.Nil
	}
	idx := idxCell.integer
	switch coll.tag {
	case TagList:
		n := len(coll.list)
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			ip.Diagnose(Recoverable, "nth: index out of range")
			return ip.Nil
		}
		return coll.list[i]
	case TagString:
		n := len(coll.text)
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			ip.Diagnose(Recoverable, "nth: index out of range")
			return ip.Nil
		}
		return ip.Mkstr(coll.text[i : i+1])
	default:
		ip.Diagnose(Recoverable, "nth: expected a list or a string")
		return ip.Nil
	}
}

func primLength(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "length: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	switch x.tag {
	case TagList:
		return ip.Mkint(len(x.list))
	case TagString:
		return ip.Mkint(len(x.text))
	default:
		ip.Diagnose(Recoverable, "length: expected a list or a string")
		return ip.Nil
	}
}

func primReverse(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "reverse: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	switch x.tag {
	case TagList:
		n := len(x.list)
		out := make([]*Cell, n)
		for i, c := range x.list {
			out[n-1-i] = c
		}
		r := ip.Mkobj(TagList)
		r.list = out
		return r
	case TagString:
		n := len(x.text)
		out := make([]byte, n)
		for i, b := range x.text {
			out[n-1-i] = b
		}
		return ip.Mkstr(out)
	default:
		ip.Diagnose(Recoverable, "reverse: expected a list or a string")
		return ip.Nil
	}
}

// ---- string variants: scar/scdr/scons mirror car/cdr/cons byte-wise ----

func primScar(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "scar: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	if x.tag != TagString {
		ip.Diagnose(Recoverable, "scar: expected a string")
		return ip.Nil
	}
	if len(x.text) == 0 {
		return ip.Nil
	}
	return ip.Mkstr(x.text[0:1])
}

func primScdr(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "scdr: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	if x.tag != TagString {
		ip.Diagnose(Recoverable, "scdr: expected a string")
		return ip.Nil
	}
	if len(x.text) <= 1 {
		return ip.Nil
	}
	return ip.Mkstr(x.text[1:])
}

// primScons resolves the Open Question of spec §9: both arguments must
// be String cells, otherwise it diagnoses — the canonical behaviour,
// as opposed to the differing mixed-argument handling across revisions
// of the distilled source.
func primScons(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 {
		ip.Diagnose(Recoverable, "scons: expected 2 arguments")
		return ip.Nil
	}
	a, b := args.list[0], args.list[1]
	if a.tag != TagString || b.tag != TagString {
		ip.Diagnose(Recoverable, "scons: both arguments must be strings")
		return ip.Nil
	}
	out := append(append([]byte{}, a.text...), b.text...)
	return ip.Mkstr(out)
}

// ---- comparison / type ----

func primEq(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) == 0 {
		return ip.T
	}
	first := args.list[0]
	if first.tag != TagInteger {
		ip.Diagnose(Recoverable, "=: expected integer arguments")
		return ip.Nil
	}
	for _, a := range args.list[1:] {
		if a.tag != TagInteger {
			ip.Diagnose(Recoverable, "=: expected integer arguments")
			return ip.Nil
		}
		if a.integer != first.integer {
			return ip.Nil
		}
	}
	return ip.T
}

func primEqt(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) == 0 {
		return ip.T
	}
	tag := args.list[0].tag
	for _, a := range args.list[1:] {
		if a.tag != tag {
			return ip.Nil
		}
	}
	return ip.T
}

// ---- I/O ----

func primPrint(ip *Interpreter, args *Cell) *Cell {
	for _, a := range args.list {
		ip.Print(a, ip.output)
	}
	return ip.Nil
}

// ---- system ----

func primSystem(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 || args.list[0].tag != TagString {
		ip.Diagnose(Recoverable, "system: expected 1 string argument")
		return ip.Nil
	}
	cmd := exec.Command("/bin/sh", "-c", string(args.list[0].text))
	cmd.Stdout = ip.output
	cmd.Stderr = ip.logging
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	code := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			ip.Diagnose(Recoverable, "system: %s", err)
			return ip.Nil
		}
		code = exitErr.ExitCode()
	}
	if code < 0 {
		return ip.Nil
	}
	return ip.Mkint(code)
}

// ---- supplemental primitives (SPEC_FULL.md) ----

// primList's argument list is already a freshly-built List of
// evaluated values by the time a primitive sees it (evalList builds
// `args` itself), so `list` needs no work beyond returning it.
func primList(ip *Interpreter, args *Cell) *Cell {
	return args
}

func primNot(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "not: expected 1 argument")
		return ip.Nil
	}
	if args.list[0] == ip.Nil {
		return ip.T
	}
	return ip.Nil
}

func primAtom(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "atom: expected 1 argument")
		return ip.Nil
	}
	x := args.list[0]
	if x.tag == TagList && len(x.list) > 0 {
		return ip.Nil
	}
	return ip.T
}

func primNull(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 {
		ip.Diagnose(Recoverable, "null: expected 1 argument")
		return ip.Nil
	}
	if args.list[0] == ip.Nil {
		return ip.T
	}
	return ip.Nil
}

func primGensym(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 0 {
		ip.Diagnose(Recoverable, "gensym: expected 0 arguments")
		return ip.Nil
	}
	ip.gensymCounter++
	return ip.Mksym(fmt.Sprintf("g%d", ip.gensymCounter))
}

func primOpen(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 || args.list[0].tag != TagString || args.list[1].tag != TagString {
		ip.Diagnose(Recoverable, "open: expected a path string and a mode string")
		return ip.Nil
	}
	path := string(args.list[0].text)
	mode := string(args.list[1].text)

	var (
		f   *os.File
		err error
		s   *Stream
	)
	switch mode {
	case "r":
		f, err = os.Open(path)
		if err == nil {
			s = NewFileInStream(f)
		}
	case "w":
		f, err = os.Create(path)
		if err == nil {
			s = NewFileOutStream(f)
		}
	default:
		ip.Diagnose(Recoverable, `open: mode must be "r" or "w"`)
		return ip.Nil
	}
	if err != nil {
		ip.Diagnose(Recoverable, "open: %s", err)
		return ip.Nil
	}
	c := ip.Mkobj(TagFile)
	c.file = s
	return c
}

func primClose(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 || args.list[0].tag != TagFile {
		ip.Diagnose(Recoverable, "close: expected 1 file argument")
		return ip.Nil
	}
	args.list[0].file.Close()
	return ip.T
}

func primReadLine(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 1 || args.list[0].tag != TagFile {
		ip.Diagnose(Recoverable, "read-line: expected 1 file argument")
		return ip.Nil
	}
	s := args.list[0].file
	var buf []byte
	for {
		b := s.Getc()
		if b == EOF {
			if len(buf) == 0 {
				return ip.Nil
			}
			break
		}
		if b == '\n' {
			break
		}
		buf = append(buf, byte(b))
	}
	return ip.Mkstr(buf)
}

func primWriteLine(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 || args.list[0].tag != TagFile || args.list[1].tag != TagString {
		ip.Diagnose(Recoverable, "write-line: expected a file argument and a string argument")
		return ip.Nil
	}
	f := args.list[0].file
	f.Puts(args.list[1].text)
	f.Putc('\n')
	return ip.T
}

func primApply(ip *Interpreter, args *Cell) *Cell {
	if len(args.list) != 2 {
		ip.Diagnose(Recoverable, "apply: expected 2 arguments")
		return ip.Nil
	}
	proc, argList := args.list[0], args.list[1]
	if argList.tag != TagList {
		ip.Diagnose(Recoverable, "apply: second argument must be a list")
		return ip.Nil
	}
	result, err := ip.Apply(proc, argList)
	if err != nil {
		return ip.Nil
	}
	return result
}
