// Command calcexpr evaluates arithmetic expressions from its arguments or an
// interactive prompt.
//
// Each non-flag argument is one expression. The result prints as a decimal,
// followed by hexadecimal and binary renderings when the value is a
// non-negative 64-bit integer. With -json, each result prints as a JSON
// object with decimal, hex, and binary fields instead. With -i, calcexpr
// reads one expression per line from an interactive prompt.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chzyer/readline"

	"github.com/kephrin/calcexpr"
)

func main() {
	log.SetFlags(0)
	var (
		asJSON      bool
		interactive bool
	)
	flag.BoolVar(&asJSON, "json", false, "print results as JSON")
	flag.BoolVar(&interactive, "i", false, "read expressions interactively")
	flag.Parse()

	if interactive {
		if err := repl(asJSON); err != nil {
			log.Fatal(err)
		}
		return
	}
	if flag.NArg() == 0 {
		log.Fatal("no expression given (use -i for interactive mode)")
	}
	for _, arg := range flag.Args() {
		r, err := calcexpr.EvalString(arg)
		if err != nil {
			log.Fatalf("%s: %v", arg, err)
		}
		emit(r, asJSON)
	}
}

func repl(asJSON bool) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if line == "" {
			continue
		}
		r, err := calcexpr.EvalString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		emit(r, asJSON)
	}
}

func emit(r calcexpr.Result, asJSON bool) {
	if !asJSON {
		fmt.Println(r)
		return
	}
	b, err := json.Marshal(r)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))
}
