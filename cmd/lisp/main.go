package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	lisp "github.com/howerj/liblisp-go"
)

type args struct {
	load        *string
	interactive *bool
	trace       *bool
	color       *bool
}

func readArgs() *args {
	a := &args{
		load:        flag.String("load", "", "Load and evaluate a file of forms, then start the REPL"),
		interactive: flag.Bool("i", false, "Force the REPL even after running positional files"),
		trace:       flag.Bool("trace", false, "Set the eval.trace config key (the evaluator does not read it)"),
		color:       flag.Bool("color", false, "Colorize the debug tree printer"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	ip := lisp.Init()
	ip.Config().SetBool("eval.trace", *a.trace)
	ip.Config().SetBool("printer.color", *a.color)

	if *a.load != "" {
		runFile(ip, *a.load)
	}

	ran := false
	for _, path := range flag.Args() {
		ran = true
		runFile(ip, path)
	}

	if *a.interactive || !ran || *a.load != "" {
		repl(ip)
	}

	ip.End()
}

// runSource reads and evaluates every top-level form in src, printing
// each result, the way the teacher's interactive shell prints the
// match value of every line it reads.
func runSource(ip *lisp.Interpreter, src []byte) {
	s := lisp.NewStringInStream(src)
	for {
		x, err := ip.Read(s)
		if err != nil {
			return
		}
		result := ip.Eval(x)
		ip.Print(result, ip.Output())
		ip.Output().Putc('\n')
		ip.Clean()
	}
}

func runFile(ip *lisp.Interpreter, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("can't open input file: %s", err)
	}
	defer f.Close()

	s := lisp.NewFileInStream(f)
	for {
		x, rerr := ip.Read(s)
		if rerr != nil {
			return
		}
		ip.Eval(x)
		ip.Clean()
	}
}

// repl mirrors the teacher's interactive shell shape (bufio.NewReader
// over stdin, one line at a time, a leading "> " prompt) but reads and
// prints Lisp values instead of grammar matches.
func repl(ip *lisp.Interpreter) {
	stdin := bufio.NewReader(os.Stdin)
	fmt.Print("> ")
	for {
		line, err := stdin.ReadString('\n')
		if line == "" && err != nil {
			fmt.Println()
			return
		}
		runSource(ip, []byte(line))
		fmt.Print("> ")
	}
}
