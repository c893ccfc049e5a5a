package langium

import (
	"context"

	lxparser "github.com/ava12/llx/parser"
	"github.com/ava12/llx/source"
	"github.com/ava12/llx/tree"

	"github.com/johnholliday/glsp-generator-sub001/errors"
	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

// Diagnostic codes emitted by the document validation pass.
const (
	CodeDuplicateDeclaration = "duplicate-declaration"
	CodeUnresolvedReference  = "unresolved-reference"
)

// Diagnostic is a structured finding from parsing or validation.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Range    syntax.Range `json:"range"`
	Message  string       `json:"message"`
	Code     string       `json:"code,omitempty"`
}

// Document is a successfully parsed grammar source together with the
// findings of the validation pass. Error-severity diagnostics only appear
// after reference validation has been requested; until then everything
// the validator finds is a warning.
type Document struct {
	URI         string
	Grammar     *syntax.Grammar
	Diagnostics []Diagnostic
}

// Warnings returns the non-fatal diagnostics collected during validation.
func (d *Document) Warnings() []Diagnostic {
	var res []Diagnostic
	for _, diag := range d.Diagnostics {
		if diag.Severity == SeverityWarning {
			res = append(res, diag)
		}
	}
	return res
}

// BuildDocument parses text into a Document using the shared engine.
//
// It is a pure function of (text, uri): identical inputs produce
// structurally identical documents and diagnostics. On lexer or parser
// failure the first error-severity engine diagnostic is returned as a
// *ParseError; no partial document is produced.
func BuildDocument(text, uri string) (*Document, error) {
	p, err := engine()
	if err != nil {
		return nil, err
	}

	q := source.NewQueue().Append(source.New(uri, []byte(text)))
	hooks := lxparser.Hooks{
		Nodes: lxparser.NodeHooks{lxparser.AnyNode: tree.NodeHook},
	}
	res, err := p.Parse(context.Background(), q, hooks)
	if err != nil {
		return nil, translateEngineError(err, uri)
	}

	root, ok := res.(tree.Element)
	if !ok {
		return nil, errors.AssertionFailedf("engine returned %T, want a tree node", res)
	}
	g, err := lowerGrammar(root)
	if err != nil {
		return nil, err
	}

	doc := &Document{URI: uri, Grammar: g}
	doc.Diagnostics = validateDocument(g)
	return doc, nil
}

// Translate filters diagnostics by severity: error-severity entries are
// converted into fatal ParseErrors carrying 1-based line/column context,
// everything else is returned unchanged as informational.
func Translate(uri string, diags []Diagnostic) (fatal []*ParseError, informational []Diagnostic) {
	for _, d := range diags {
		if d.Severity != SeverityError {
			informational = append(informational, d)
			continue
		}
		fatal = append(fatal, NewParseError(KindSemantic, d.Message).
			WithRange(d.Range).
			WithLocation(uri, d.Range.Start.Line, d.Range.Start.Column))
	}
	return fatal, informational
}

// ValidateReferences treats unresolved-reference diagnostics as fatal
// and returns the first one as a ParseError, or nil when every reference
// resolves. The stored diagnostics keep their warning severity so a
// cached document reads the same regardless of which caller asked.
func (d *Document) ValidateReferences() *ParseError {
	for _, diag := range d.Diagnostics {
		if diag.Code != CodeUnresolvedReference {
			continue
		}
		return NewParseError(KindSemantic, diag.Message).
			WithRange(diag.Range).
			WithLocation(d.URI, diag.Range.Start.Line, diag.Range.Start.Column)
	}
	return nil
}
