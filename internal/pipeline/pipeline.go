// Package pipeline wires the lexer, parser, semantic analyzer, and
// evaluator into the single call a rover daemon makes each time it picks
// up a new command.
package pipeline

import (
	"fmt"
	"io"

	"github.com/roverscript/roverscript/internal/host"
	"github.com/roverscript/roverscript/internal/interp"
	"github.com/roverscript/roverscript/internal/lexer"
	"github.com/roverscript/roverscript/internal/parser"
	"github.com/roverscript/roverscript/internal/semantic"
)

// CompileError wraps the errors produced by a failed lex/parse/check stage
// so callers can tell a command-level failure apart from an execution-time
// error.
type CompileError struct {
	Stage  string
	Errors []error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %d error(s)", e.Stage, len(e.Errors))
}

// Run lexes, parses, type-checks, and evaluates source against h, writing
// any print statements to out. It returns a *CompileError if the program
// never reached evaluation, or the evaluator's runtime error otherwise.
func Run(source string, h host.RoverHost, out io.Writer) error {
	toks, err := lexer.Lex(source)
	if err != nil {
		return &CompileError{Stage: "lex", Errors: []error{err}}
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return &CompileError{Stage: "parse", Errors: []error{err}}
	}

	if errs := semantic.New(source).Check(prog); len(errs) > 0 {
		return &CompileError{Stage: "check", Errors: errs}
	}

	return interp.New(h, out, source).Run(prog)
}
