// Package langium parses modeling-language grammar sources into the
// syntax AST and translates engine diagnostics into the module's error
// taxonomy.
//
// The heavy lifting is delegated to the llx engine: languageDef below
// describes the surface language in llx's EBNF dialect, langdef compiles
// it into a parse table, and the generic tree hook yields a parse tree
// that lower.go converts into syntax's tagged variants.
package langium

import (
	"sync"

	"github.com/ava12/llx/grammar"
	"github.com/ava12/llx/langdef"
	lxparser "github.com/ava12/llx/parser"

	"github.com/johnholliday/glsp-generator-sub001/errors"
)

// languageDef is the llx grammar for the modeling language. Parser rules,
// explicit interface declarations and type aliases share one token set;
// keywords ('grammar', 'interface', 'type', 'fragment', 'returns',
// 'extends') are plain name tokens matched literally, so declarations may
// still use them as feature names.
const languageDef = `
$space = /[ \t\r\n\f]+/;
$comment = /\/\/[^\n]*/;
$block-comment = /\/\*(?:[^*]|\*+[^*\/])*\*+\//;
$string = /(?:"[^"\n]*")|(?:'[^'\n]*')/;
$name = /[A-Za-z_][A-Za-z_0-9]*/;
$op = /\?=|\+=|[:;{}()\[\]|=?*+,@]/;
!side $space $comment $block-comment;

grammar = [header], {declaration};
header = 'grammar', $name, [';'];
declaration = interface-decl | type-decl | rule-decl;

interface-decl = 'interface', $name, [extends-clause], '{', {attribute}, '}', [';'];
extends-clause = 'extends', $name, {',', $name};
attribute = $name, ['?'], ':', type-expr, [';'];

type-decl = 'type', $name, '=', type-expr, [';'];

type-expr = array-type, {'|', array-type};
array-type = primary-type, {'[', ']'};
primary-type = $name | $string | reference-type;
reference-type = '@', $name;

rule-decl = ['fragment'], $name, ['returns', $name], ':', alternatives, ';';
alternatives = sequence, {'|', sequence};
sequence = element, {element};
element = atom, [card];
card = '?' | '*' | '+';
atom = assignment | keyword | cross-ref | group | rule-call;
assignment = $name, assign-op, assign-value;
assign-op = '=' | '?=' | '+=';
assign-value = keyword | cross-ref | group | rule-call;
keyword = $string;
rule-call = $name;
cross-ref = '[', $name, [':', $name], ']';
group = '(', alternatives, ')';
`

var (
	engineOnce    sync.Once
	engineGrammar *grammar.Grammar
	engineParser  *lxparser.Parser
	engineErr     error
)

// engine compiles the language definition once and returns the shared
// parser. The parser itself is stateless; per-parse state lives in the
// llx parse context, so concurrent calls are safe.
func engine() (*lxparser.Parser, error) {
	engineOnce.Do(func() {
		engineGrammar, engineErr = langdef.ParseString("glsp-grammar.llx", languageDef)
		if engineErr != nil {
			engineErr = errors.Wrap(engineErr, "compiling modeling-language grammar")
			return
		}
		engineParser, engineErr = lxparser.New(engineGrammar)
	})
	return engineParser, engineErr
}
