package langium

import (
	"fmt"
	"strings"

	"github.com/ava12/llx"
	"github.com/pterm/pterm"

	"github.com/johnholliday/glsp-generator-sub001/errors"
	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

// ErrorContext indicates the environment where parser errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (logs, editors)
	ErrorContextPlain ErrorContext = "plain"
)

// Severity indicates the severity level of a diagnostic or parser error
type Severity string

const (
	SeverityError   Severity = "error"   // prevents a Model from being produced
	SeverityWarning Severity = "warning" // informational, parse continues
	SeverityInfo    Severity = "info"    // purely informational
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	KindFileNotFound ErrorKind = "file-not-found" // source missing or unreadable
	KindLex          ErrorKind = "lex"            // tokenization failure
	KindSyntax       ErrorKind = "syntax"         // grammar structure failure
	KindSemantic     ErrorKind = "semantic"       // requested validation failed
)

// ParseError is a fatal parse failure with precise location context.
// It wraps the matching sentinel from the errors package so callers can
// classify with errors.Is without importing this package.
type ParseError struct {
	Err     error     // underlying sentinel or cause
	Kind    ErrorKind // error category
	File    string    // source path or URI
	Line    int       // 1-based, 0 when unknown
	Column  int       // 1-based, 0 when unknown
	Message string    // human-readable message without location prefix

	// Range is the full source span when known (validation diagnostics);
	// Line/Column always mirror Range.Start when it is set.
	Range *syntax.Range
}

// sentinelFor maps an error kind to its package-level sentinel.
func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindFileNotFound:
		return errors.ErrFileNotFound
	case KindLex:
		return errors.ErrLex
	case KindSemantic:
		return errors.ErrSemantic
	default:
		return errors.ErrSyntax
	}
}

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Err:     sentinelFor(kind),
		Kind:    kind,
		Message: message,
	}
}

// WithLocation sets the source file and 1-based line/column.
func (e *ParseError) WithLocation(file string, line, col int) *ParseError {
	e.File = file
	e.Line = line
	e.Column = col
	return e
}

// WithRange sets the full source span and syncs Line/Column to its start.
func (e *ParseError) WithRange(r syntax.Range) *ParseError {
	e.Range = &r
	e.Line = r.Start.Line
	e.Column = r.Start.Column
	return e
}

// WithUnderlying records the causing error while keeping the sentinel
// reachable through the message.
func (e *ParseError) WithUnderlying(err error) *ParseError {
	if err != nil {
		e.Err = errors.Wrap(sentinelFor(e.Kind), err.Error())
	}
	return e
}

// Error implements the error interface using the plain format.
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Unwrap exposes the sentinel for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError renders a context-appropriate message.
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

// formatPlainError renders "file:line:col: message" for logs and editors.
// Engine messages already embed their own location suffix; those are left
// untouched to avoid stating the position twice.
func (e *ParseError) formatPlainError() string {
	if e.File == "" || strings.Contains(e.Message, "at line ") {
		return e.Message
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// formatTerminalError renders a colored message for interactive use.
func (e *ParseError) formatTerminalError() string {
	msg := pterm.Red(e.Message)
	loc := ""
	if e.File != "" {
		if e.Line > 0 {
			loc = fmt.Sprintf("\n  %s %s:%d:%d", pterm.LightCyan("at"), e.File, e.Line, e.Column)
		} else {
			loc = fmt.Sprintf("\n  %s %s", pterm.LightCyan("in"), e.File)
		}
	}
	return fmt.Sprintf("%s (%s)%s", msg, pterm.Yellow(string(e.Kind)), loc)
}

// translateEngineError converts an llx engine failure into a ParseError.
// llx reports 1-based line/column already, so locations pass through
// unchanged. Error codes below the syntax class are lexer failures.
func translateEngineError(err error, uri string) *ParseError {
	var le *llx.Error
	if errors.As(err, &le) {
		kind := KindSyntax
		if le.Code >= llx.LexicalErrors && le.Code < llx.SyntaxErrors {
			kind = KindLex
		}
		file := le.SourceName
		if file == "" {
			file = uri
		}
		return NewParseError(kind, le.Message).
			WithLocation(file, le.Line, le.Col).
			WithUnderlying(err)
	}
	return NewParseError(KindSyntax, err.Error()).
		WithLocation(uri, 0, 0).
		WithUnderlying(err)
}
