package runner

import (
	"fmt"
	"io"

	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/diagnostics"
	"github.com/kievzenit/ylox/internal/interpreter"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/parser"
)

type Status int

const (
	StatusOK Status = iota
	StatusSyntaxError
	StatusRuntimeError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSyntaxError:
		return "syntax error"
	case StatusRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Hooks lets a caller look at the intermediate products of a run. Either
// field may be nil.
type Hooks struct {
	Tokens func(tokens []lexer.Token)
	Stmts  func(stmts []ast.Stmt)
}

// Runner pushes source text through scanning, parsing and evaluation.
// It keeps one interpreter, so globals survive from one Run to the next.
type Runner struct {
	interpreter *interpreter.Interpreter
	eh          *diagnostics.WriterErrorHandler
	stderr      io.Writer

	hooks Hooks
}

func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{
		interpreter: interpreter.NewInterpreter(stdout),
		eh:          diagnostics.NewErrorHandler(stderr),
		stderr:      stderr,
	}
}

func (r *Runner) SetHooks(hooks Hooks) {
	r.hooks = hooks
}

// Run executes one piece of source. Any lexical or syntax error means
// nothing is executed; a runtime error stops execution at the failing
// statement. Either way the problem has been written to stderr by the
// time Run returns.
func (r *Runner) Run(source string) Status {
	r.eh.Reset()

	tokens := lexer.NewLexer(source, r.eh).Tokenize()
	if r.hooks.Tokens != nil {
		r.hooks.Tokens(tokens)
	}

	stmts := parser.NewParser(lexer.NewTokenScanner(tokens), r.eh).Parse()
	if r.eh.HasErrors() {
		return StatusSyntaxError
	}
	if r.hooks.Stmts != nil {
		r.hooks.Stmts(stmts)
	}

	if err := r.interpreter.Interpret(stmts); err != nil {
		r.reportRuntimeError(err)
		return StatusRuntimeError
	}

	return StatusOK
}

// reportRuntimeError writes "{message}\n[line N]" for runtime errors; any
// other failure (e.g. a broken stdout) is written as is.
func (r *Runner) reportRuntimeError(err error) {
	fmt.Fprintln(r.stderr, err.Error())
}
