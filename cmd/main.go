package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/config"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/runner"
	"github.com/sanity-io/litter"
)

// Exit codes follow sysexits.h.
const (
	exitOK          = 0
	exitUsage       = 64
	exitDataErr     = 65
	exitNoInput     = 66
	exitSoftware    = 70
	exitConfigError = 78
)

type options struct {
	tokens     bool
	ast        bool
	astDump    bool
	configPath string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ylox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: ylox [flags] [script]")
		fs.PrintDefaults()
	}

	var opts options
	fs.BoolVar(&opts.tokens, "tokens", false, "print every token before running")
	fs.BoolVar(&opts.ast, "ast", false, "print the parsed program as s-expressions before running")
	fs.BoolVar(&opts.astDump, "ast-dump", false, "dump the raw syntax tree before running")
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "Usage: ylox [script]")
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfigError
	}
	opts.tokens = opts.tokens || cfg.DumpTokens
	opts.ast = opts.ast || cfg.DumpAST

	r := runner.NewRunner(stdout, stderr)
	r.SetHooks(hooksFor(opts, stdout, stderr))

	if fs.NArg() == 1 {
		return runFile(r, fs.Arg(0), stderr)
	}

	repl := newLinerPrompt(cfg, stderr)
	defer repl.Close()

	runPrompt(r, repl, stdout)
	return exitOK
}

func runFile(r *runner.Runner, path string, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitNoInput
	}

	switch r.Run(string(source)) {
	case runner.StatusSyntaxError:
		return exitDataErr
	case runner.StatusRuntimeError:
		return exitSoftware
	default:
		return exitOK
	}
}

func hooksFor(opts options, stdout, stderr io.Writer) runner.Hooks {
	var hooks runner.Hooks

	if opts.tokens {
		hooks.Tokens = func(tokens []lexer.Token) {
			for _, token := range tokens {
				fmt.Fprintln(stdout, token.String())
			}
		}
	}

	if opts.ast || opts.astDump {
		hooks.Stmts = func(stmts []ast.Stmt) {
			if opts.ast {
				printed, err := ast.NewPrinter().PrintStmts(stmts)
				if err != nil {
					fmt.Fprintln(stderr, err)
				} else {
					fmt.Fprint(stdout, printed)
				}
			}
			if opts.astDump {
				fmt.Fprintln(stdout, litter.Sdump(stmts))
			}
		}
	}

	return hooks
}
