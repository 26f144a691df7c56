package interpreter

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/diagnostics"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/parser"
	"github.com/kievzenit/ylox/internal/runtime"
	"github.com/kievzenit/ylox/internal/value"
)

// --- helpers ---------------------------------------------------------------

func parseSrc(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	var errs bytes.Buffer
	eh := diagnostics.NewErrorHandler(&errs)
	tokens := lexer.NewLexer(src, eh).Tokenize()
	stmts := parser.NewParser(lexer.NewTokenScanner(tokens), eh).Parse()
	if eh.HasErrors() {
		t.Fatalf("syntax errors in %q:\n%s", src, errs.String())
	}
	return stmts
}

func run(t *testing.T, ip *Interpreter, src string) error {
	t.Helper()
	return ip.Interpret(parseSrc(t, src))
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	ip := NewInterpreter(&out)
	if err := run(t, ip, src); err != nil {
		t.Fatalf("runtime error for %q: %v", src, err)
	}
	return out.String()
}

func runtimeErr(t *testing.T, src string) (*runtime.RuntimeError, string) {
	t.Helper()
	var out bytes.Buffer
	ip := NewInterpreter(&out)
	err := run(t, ip, src)
	var rtErr *runtime.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected a runtime error for %q, got %v", src, err)
	}
	return rtErr, out.String()
}

func eval(t *testing.T, src string) value.Value {
	t.Helper()
	stmts := parseSrc(t, src+";")
	stmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("%q is not an expression", src)
	}
	v, err := NewInterpreter(&bytes.Buffer{}).Evaluate(stmt.Expr)
	if err != nil {
		t.Fatalf("evaluate %q: %v", src, err)
	}
	return v
}

// --- expressions -----------------------------------------------------------

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		{"1 + 2 * 3", value.Number(7)},
		{"(1 + 2) * 3", value.Number(9)},
		{"10 - 4 - 3", value.Number(3)},
		{"7 / 2", value.Number(3.5)},
		{"0.1 + 0.2", value.Number(0.1 + 0.2)},
		{"-(3)", value.Number(-3)},
		{"--3", value.Number(3)},
		{"1 < 2", value.Bool(true)},
		{"2 <= 2", value.Bool(true)},
		{"1 > 2", value.Bool(false)},
		{"3 >= 4", value.Bool(false)},
		{"1 == 1", value.Bool(true)},
		{"1 != 1", value.Bool(false)},
		{"1 == 2", value.Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := eval(t, tt.src); got != tt.want {
				t.Fatalf("%s = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	if got := eval(t, "1 / 0"); !math.IsInf(float64(got.(value.Number)), 1) {
		t.Fatalf("1 / 0 = %#v, want +Inf", got)
	}
	if got := eval(t, "0 / 0"); !math.IsNaN(float64(got.(value.Number))) {
		t.Fatalf("0 / 0 = %#v, want NaN", got)
	}
}

func TestStringConcatenation(t *testing.T) {
	if got := eval(t, `"foo" + "bar"`); got != value.String("foobar") {
		t.Fatalf("got %#v", got)
	}

	rtErr, _ := runtimeErr(t, `"foo" + 1;`)
	if rtErr.Message != "Operands must be two numbers or two strings." {
		t.Fatalf("message = %q", rtErr.Message)
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"!nil", true},
		{"!false", true},
		{"!0", false},
		{`!""`, false},
		{"!true", false},
		{"!!1", true},
	}

	for _, tt := range tests {
		if got := eval(t, tt.src); got != value.Bool(tt.want) {
			t.Errorf("%s = %#v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestLogicalReturnsOperand(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		{`nil or "yes"`, value.String("yes")},
		{`1 or 2`, value.Number(1)},
		{`nil and 2`, value.Nil{}},
		{`1 and 2`, value.Number(2)},
		{`false or false`, value.Bool(false)},
	}

	for _, tt := range tests {
		if got := eval(t, tt.src); got != tt.want {
			t.Errorf("%s = %#v, want %#v", tt.src, got, tt.want)
		}
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	out := runOK(t, `
var x = 0;
(x = 1) or (x = 2);
print x;
var y = 0;
(y = nil) and (y = 2);
print y;
`)
	if out != "1\nnil\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestShortCircuitSkipsRuntimeErrors(t *testing.T) {
	out := runOK(t, `print true or undefined; print false and -"x";`)
	if out != "true\nfalse\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestBinaryEvaluatesBothOperandsLeftFirst(t *testing.T) {
	out := runOK(t, `var a = "";
(a = a + "l") + (a = a + "r");
print a;`)
	if out != "lr\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestOperandTypeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`-"a";`, "Operand must be a number."},
		{`-nil;`, "Operand must be a number."},
		{`1 - "a";`, "Operands must be numbers."},
		{`"a" * 2;`, "Operands must be numbers."},
		{`true / 1;`, "Operands must be numbers."},
		{`1 < "2";`, "Operands must be numbers."},
		{`nil >= nil;`, "Operands must be numbers."},
		{`"a" == "a";`, "Operands must be numbers."},
		{`nil != 1;`, "Operands must be numbers."},
		{`true + true;`, "Operands must be two numbers or two strings."},
		{`nil + "a";`, "Operands must be two numbers or two strings."},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			rtErr, _ := runtimeErr(t, tt.src)
			if rtErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", rtErr.Message, tt.want)
			}
		})
	}
}

func TestRuntimeErrorCarriesOperatorLine(t *testing.T) {
	rtErr, _ := runtimeErr(t, "print 1;\n\nprint 1 -\n nil;")
	if rtErr.Token.Lexeme != "-" || rtErr.GetLine() != 3 {
		t.Fatalf("error located at %q line %d", rtErr.Token.Lexeme, rtErr.GetLine())
	}
}

// --- statements ------------------------------------------------------------

func TestPrintDisplayForms(t *testing.T) {
	out := runOK(t, `print 1; print 2.5; print true; print false; print nil; print "text"; print 10 / 4;`)
	want := "1\n2.5\ntrue\nfalse\nnil\ntext\n2.5\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestVarDefaultsToNil(t *testing.T) {
	if out := runOK(t, "var a; print a;"); out != "nil\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRedeclarationReplaces(t *testing.T) {
	if out := runOK(t, "var a = 1; var a = 2; print a;"); out != "2\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestAssignmentIsAnExpression(t *testing.T) {
	if out := runOK(t, "var a; var b; a = b = 3; print a; print b; print a = 4;"); out != "3\n3\n4\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestBlockShadowing(t *testing.T) {
	out := runOK(t, "var a = 1; { var a = a + 1; print a; } print a;")
	if out != "2\n1\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestBlockAssignsOuterVariable(t *testing.T) {
	out := runOK(t, "var a = 1; { a = 5; { a = a * 2; } } print a;")
	if out != "10\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestBlockVariableIsGoneAfterBlock(t *testing.T) {
	rtErr, out := runtimeErr(t, "{ var inner = 1; print inner; }\nprint inner;")
	if out != "1\n" {
		t.Fatalf("output = %q", out)
	}
	if rtErr.Message != "Undefined variable 'inner'." || rtErr.GetLine() != 2 {
		t.Fatalf("unexpected error %v", rtErr)
	}
}

func TestAssignUndeclaredFails(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter(&out)
	err := run(t, ip, "{ x = 1; }")
	if err == nil || err.Error() != "Undefined variable 'x'.\n[line 1]" {
		t.Fatalf("unexpected error %v", err)
	}
	if len(ip.Globals().Keys()) != 0 {
		t.Fatalf("a failed assignment must not create a global, got %v", ip.Globals().Keys())
	}
}

func TestErrorStopsRemainingStatements(t *testing.T) {
	rtErr, out := runtimeErr(t, `print "before"; print -"x"; print "after";`)
	if out != "before\n" {
		t.Fatalf("output = %q", out)
	}
	if rtErr.Message != "Operand must be a number." {
		t.Fatalf("message = %q", rtErr.Message)
	}
}

func TestScopeRestoredAfterErrorInBlock(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter(&out)

	err := run(t, ip, "var a = \"global\"; { var a = \"inner\"; { print -a; } }")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if ip.env != ip.Globals() {
		t.Fatalf("the global scope should be active again after the error")
	}

	if err := run(t, ip, "print a;"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if out.String() != "global\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter(&out)
	if err := run(t, ip, "var counter = 1;"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, ip, "counter = counter + 1; print counter;"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "2\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestIfElse(t *testing.T) {
	out := runOK(t, `
if (1 < 2) print "then"; else print "else";
if (nil) print "then"; else print "else";
if (false) print "skipped";
if (0) { print "zero is truthy"; }
`)
	if out != "then\nelse\nzero is truthy\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestWhile(t *testing.T) {
	out := runOK(t, `
var i = 0;
var sum = 0;
while (i < 5) {
  sum = sum + i;
  i = i + 1;
}
print sum;
`)
	if out != "10\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestWhileBodyScopeIsFreshEachIteration(t *testing.T) {
	out := runOK(t, `
var i = 0;
while (i < 2) {
  var seen;
  print seen;
  seen = i;
  i = i + 1;
}
`)
	if out != "nil\nnil\n" {
		t.Fatalf("output = %q", out)
	}
}

// --- properties ------------------------------------------------------------

func TestLiteralRoundTrip(t *testing.T) {
	literals := []string{"0", "7", "2.5", "123.456", "1000000", `"hello"`, `""`, `"multi word"`, "true", "false", "nil"}

	for _, src := range literals {
		t.Run(src, func(t *testing.T) {
			first := eval(t, src)

			display := first.String()
			if _, ok := first.(value.String); ok {
				display = `"` + display + `"`
			}

			var errs bytes.Buffer
			tokens := lexer.NewLexer(display, diagnostics.NewErrorHandler(&errs)).Tokenize()
			if errs.Len() != 0 || len(tokens) != 2 {
				t.Fatalf("display form %q did not rescan as one token: %s", display, errs.String())
			}
			if !value.Equal(tokens[0].Literal, first) {
				t.Fatalf("round trip of %q: got %#v, want %#v", src, tokens[0].Literal, first)
			}
		})
	}
}

func TestInvalidOperatorIsTypedError(t *testing.T) {
	ip := NewInterpreter(&bytes.Buffer{})
	bogus := &lexer.Token{Kind: lexer.PRINT, Lexeme: "print", Line: 4}
	one := &ast.LiteralExpr{Value: value.Number(1)}

	exprs := []ast.Expr{
		&ast.BinaryExpr{Left: one, Op: bogus, Right: one},
		&ast.UnaryExpr{Op: bogus, Right: one},
		&ast.LogicalExpr{Left: one, Op: bogus, Right: one},
	}
	for _, expr := range exprs {
		_, err := ip.Evaluate(expr)
		var rtErr *runtime.RuntimeError
		if !errors.As(err, &rtErr) {
			t.Fatalf("expected *RuntimeError for %T, got %v", expr, err)
		}
		if !strings.Contains(rtErr.Message, "Invalid") || rtErr.GetLine() != 4 {
			t.Fatalf("unexpected error %q", rtErr.Message)
		}
	}
}
