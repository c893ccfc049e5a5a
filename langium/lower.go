package langium

import (
	"github.com/ava12/llx/tree"

	"github.com/johnholliday/glsp-generator-sub001/errors"
	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

// asideTokens are lexer trivia recorded by the generic tree hook;
// lowering skips them.
var asideTokens = map[string]bool{
	"space":         true,
	"comment":       true,
	"block-comment": true,
}

func kids(n tree.Element) []tree.Element {
	var res []tree.Element
	for _, c := range tree.Children(n) {
		if !c.IsNode() && asideTokens[c.TypeName()] {
			continue
		}
		res = append(res, c)
	}
	return res
}

func posOf(n tree.Element) syntax.Position {
	if n == nil {
		return syntax.Position{}
	}
	if t := n.Token(); t != nil {
		line, col := t.LineCol()
		return syntax.Position{Line: line, Column: col}
	}
	return syntax.Position{}
}

func tokText(n tree.Element) string {
	if n == nil || n.IsNode() || n.Token() == nil {
		return ""
	}
	return n.Token().Text()
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// lowerGrammar converts the engine's generic parse tree into the syntax
// AST. Shape mismatches indicate a drift between languageDef and this
// file, not bad user input, so they surface as assertion failures.
func lowerGrammar(root tree.Element) (*syntax.Grammar, error) {
	if root == nil || !root.IsNode() || root.TypeName() != "grammar" {
		return nil, errors.AssertionFailedf("engine returned unexpected root node")
	}

	g := &syntax.Grammar{}
	for _, c := range kids(root) {
		if !c.IsNode() {
			continue
		}
		switch c.TypeName() {
		case "header":
			hk := kids(c)
			if len(hk) >= 2 {
				g.Name = tokText(hk[1])
			}
		case "declaration":
			dk := kids(c)
			if len(dk) != 1 {
				return nil, errors.AssertionFailedf("declaration node with %d children", len(dk))
			}
			d, err := lowerDecl(dk[0])
			if err != nil {
				return nil, err
			}
			g.Decls = append(g.Decls, d)
		default:
			return nil, errors.AssertionFailedf("unexpected top-level node %q", c.TypeName())
		}
	}
	return g, nil
}

func lowerDecl(n tree.Element) (syntax.Decl, error) {
	switch n.TypeName() {
	case "interface-decl":
		return lowerInterfaceDecl(n), nil
	case "type-decl":
		return lowerTypeDecl(n), nil
	case "rule-decl":
		return lowerRuleDecl(n)
	default:
		return nil, errors.AssertionFailedf("unexpected declaration node %q", n.TypeName())
	}
}

func lowerInterfaceDecl(n tree.Element) *syntax.InterfaceDecl {
	d := &syntax.InterfaceDecl{At: posOf(n)}
	k := kids(n)
	if len(k) >= 2 {
		d.Name = tokText(k[1])
	}
	for _, c := range k {
		if !c.IsNode() {
			continue
		}
		switch c.TypeName() {
		case "extends-clause":
			for _, ec := range kids(c) {
				if !ec.IsNode() && ec.TypeName() == "name" && tokText(ec) != "extends" {
					d.SuperTypes = append(d.SuperTypes, tokText(ec))
				}
			}
		case "attribute":
			d.Attrs = append(d.Attrs, lowerAttribute(c))
		}
	}
	return d
}

func lowerAttribute(n tree.Element) syntax.Attribute {
	a := syntax.Attribute{At: posOf(n)}
	k := kids(n)
	if len(k) > 0 {
		a.Name = tokText(k[0])
	}
	for _, c := range k[1:] {
		if tokText(c) == "?" {
			a.Optional = true
		}
		if c.IsNode() && c.TypeName() == "type-expr" {
			a.Type = lowerTypeExpr(c)
		}
	}
	return a
}

func lowerTypeDecl(n tree.Element) *syntax.TypeAliasDecl {
	d := &syntax.TypeAliasDecl{At: posOf(n)}
	names := 0
	for _, c := range kids(n) {
		// The first name token is the 'type' keyword itself.
		if !c.IsNode() && c.TypeName() == "name" {
			names++
			if names == 2 {
				d.Name = tokText(c)
			}
		}
		if c.IsNode() && c.TypeName() == "type-expr" {
			d.Type = lowerTypeExpr(c)
		}
	}
	return d
}

func lowerTypeExpr(n tree.Element) syntax.TypeExpr {
	var items []syntax.TypeExpr
	for _, c := range kids(n) {
		if c.IsNode() && c.TypeName() == "array-type" {
			items = append(items, lowerArrayType(c))
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 0 {
		return nil
	}
	return &syntax.UnionType{Items: items, At: posOf(n)}
}

func lowerArrayType(n tree.Element) syntax.TypeExpr {
	k := kids(n)
	if len(k) == 0 {
		return nil
	}
	t := lowerPrimaryType(k[0])
	for _, c := range k[1:] {
		if tokText(c) == "[" {
			t = &syntax.ArrayType{Elem: t, At: posOf(n)}
		}
	}
	return t
}

func lowerPrimaryType(n tree.Element) syntax.TypeExpr {
	k := kids(n)
	if len(k) == 0 {
		return nil
	}
	c := k[0]
	if c.IsNode() {
		if c.TypeName() != "reference-type" {
			return nil
		}
		for _, rc := range kids(c) {
			if !rc.IsNode() && rc.TypeName() == "name" {
				return &syntax.ReferenceType{Target: tokText(rc), At: posOf(c)}
			}
		}
		return nil
	}
	switch c.TypeName() {
	case "string":
		return &syntax.StringType{Literal: unquote(tokText(c)), At: posOf(c)}
	case "name":
		return &syntax.SimpleType{Name: tokText(c), At: posOf(c)}
	default:
		return nil
	}
}

func lowerRuleDecl(n tree.Element) (*syntax.ParserRule, error) {
	r := &syntax.ParserRule{At: posOf(n)}

	var toks []string
	var body tree.Element
	for _, c := range kids(n) {
		if c.IsNode() {
			if c.TypeName() == "alternatives" {
				body = c
			}
			continue
		}
		toks = append(toks, tokText(c))
	}
	if body == nil {
		return nil, errors.AssertionFailedf("rule declaration without a body")
	}

	// Leading tokens are [fragment] name [returns name] followed by ':'.
	// A rule legitimately named "fragment" is recognized by the ':' that
	// immediately follows it.
	j := 0
	if j+1 < len(toks) && toks[j] == "fragment" && toks[j+1] != ":" {
		r.Fragment = true
		j++
	}
	if j >= len(toks) {
		return nil, errors.AssertionFailedf("rule declaration without a name")
	}
	r.Name = toks[j]
	j++
	if j+1 < len(toks) && toks[j] == "returns" && toks[j+1] != ":" {
		r.Returns = toks[j+1]
	}

	r.Body = lowerAlternatives(body)
	return r, nil
}

func lowerAlternatives(n tree.Element) syntax.Expr {
	var items []syntax.Expr
	for _, c := range kids(n) {
		if c.IsNode() && c.TypeName() == "sequence" {
			if e := lowerSequence(c); e != nil {
				items = append(items, e)
			}
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 0 {
		return nil
	}
	return &syntax.Alternatives{Items: items, At: posOf(n)}
}

func lowerSequence(n tree.Element) syntax.Expr {
	var items []syntax.Expr
	for _, c := range kids(n) {
		if c.IsNode() && c.TypeName() == "element" {
			if e := lowerElement(c); e != nil {
				items = append(items, e)
			}
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 0 {
		return nil
	}
	return &syntax.Sequence{Items: items, At: posOf(n)}
}

func lowerElement(n tree.Element) syntax.Expr {
	k := kids(n)
	if len(k) == 0 {
		return nil
	}
	expr := lowerAtom(k[0])
	card := syntax.CardNone
	for _, c := range k[1:] {
		if c.IsNode() && c.TypeName() == "card" {
			if ck := kids(c); len(ck) > 0 {
				card = syntax.Cardinality(tokText(ck[0]))
			}
		}
	}
	if expr == nil || card == syntax.CardNone {
		return expr
	}
	switch v := expr.(type) {
	case *syntax.Assignment:
		v.Card = card
	case *syntax.Group:
		v.Card = card
	default:
		expr = &syntax.Group{Body: expr, Card: card, At: posOf(n)}
	}
	return expr
}

func lowerAtom(n tree.Element) syntax.Expr {
	k := kids(n)
	if len(k) == 0 || !k[0].IsNode() {
		return nil
	}
	c := k[0]
	if c.TypeName() == "assignment" {
		return lowerAssignment(c)
	}
	return lowerValueNode(c)
}

// lowerValueNode handles the atom kinds that may also appear as an
// assignment's right-hand side.
func lowerValueNode(c tree.Element) syntax.Expr {
	switch c.TypeName() {
	case "keyword":
		if ck := kids(c); len(ck) > 0 {
			return &syntax.Keyword{Value: unquote(tokText(ck[0])), At: posOf(c)}
		}
	case "rule-call":
		if ck := kids(c); len(ck) > 0 {
			return &syntax.RuleCall{Rule: tokText(ck[0]), At: posOf(c)}
		}
	case "cross-ref":
		cr := &syntax.CrossReference{At: posOf(c)}
		for _, rc := range kids(c) {
			if !rc.IsNode() && rc.TypeName() == "name" {
				if cr.Target == "" {
					cr.Target = tokText(rc)
				} else if cr.Token == "" {
					cr.Token = tokText(rc)
				}
			}
		}
		return cr
	case "group":
		for _, gc := range kids(c) {
			if gc.IsNode() && gc.TypeName() == "alternatives" {
				return &syntax.Group{Body: lowerAlternatives(gc), At: posOf(c)}
			}
		}
	}
	return nil
}

func lowerAssignment(n tree.Element) *syntax.Assignment {
	a := &syntax.Assignment{At: posOf(n), Op: syntax.OpAssign}
	k := kids(n)
	if len(k) > 0 {
		a.Feature = tokText(k[0])
	}
	for _, c := range k[1:] {
		if !c.IsNode() {
			continue
		}
		switch c.TypeName() {
		case "assign-op":
			if ck := kids(c); len(ck) > 0 {
				a.Op = syntax.AssignOp(tokText(ck[0]))
			}
		case "assign-value":
			if ck := kids(c); len(ck) > 0 && ck[0].IsNode() {
				a.Value = lowerValueNode(ck[0])
			}
		}
	}
	return a
}
