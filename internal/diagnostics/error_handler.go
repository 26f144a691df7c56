package diagnostics

import (
	"fmt"
	"io"
)

// Diagnostic is a lexical or syntax error located at a source line.
type Diagnostic interface {
	GetMessage() string
	GetLine() int
	// GetWhere returns the location suffix placed after "Error": empty,
	// " at end", or " at '<lexeme>'".
	GetWhere() string
}

type ErrorHandler interface {
	AddError(err Diagnostic)
	HasErrors() bool
	Errors() []Diagnostic
	Reset()
}

// WriterErrorHandler reports every diagnostic to a writer as soon as it is
// added and remembers it until the next Reset.
type WriterErrorHandler struct {
	errors []Diagnostic
	writer io.Writer
}

func NewErrorHandler(outputWriter io.Writer) *WriterErrorHandler {
	return &WriterErrorHandler{
		errors: make([]Diagnostic, 0),
		writer: outputWriter,
	}
}

func (eh *WriterErrorHandler) AddError(err Diagnostic) {
	eh.errors = append(eh.errors, err)
	fmt.Fprintln(eh.writer, Format(err))
}

func (eh *WriterErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *WriterErrorHandler) Errors() []Diagnostic {
	return eh.errors
}

func (eh *WriterErrorHandler) Reset() {
	eh.errors = eh.errors[:0]
}

func Format(err Diagnostic) string {
	return fmt.Sprintf("[line %d] Error%s: %s", err.GetLine(), err.GetWhere(), err.GetMessage())
}
