package langium

import (
	"fmt"

	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

// builtinTerminals are terminal names understood without a declaration;
// the normalizer maps them onto primitive semantic types.
var builtinTerminals = map[string]bool{
	"ID":      true,
	"STRING":  true,
	"NUMBER":  true,
	"INT":     true,
	"BOOLEAN": true,
}

// primitiveNames are type names with built-in meaning in type expressions.
var primitiveNames = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
}

// validateDocument runs the engine-side validation pass: duplicate
// top-level declarations and unresolved name references. Everything is
// reported as a warning; promotion to fatal happens in
// Document.ValidateReferences when the caller asked for it.
func validateDocument(g *syntax.Grammar) []Diagnostic {
	var diags []Diagnostic

	declared := make(map[string]bool)
	for _, d := range g.Decls {
		if r, ok := d.(*syntax.ParserRule); ok && r.Returns != "" {
			declared[r.Returns] = true
		}
		declared[d.DeclName()] = true
	}

	seen := make(map[string]bool)
	for _, d := range g.Decls {
		name := d.DeclName()
		if seen[name] {
			diags = append(diags, warnAt(d.Pos(), name, CodeDuplicateDeclaration,
				fmt.Sprintf("duplicate declaration of %q", name)))
		}
		seen[name] = true

		switch decl := d.(type) {
		case *syntax.ParserRule:
			diags = append(diags, checkRuleBody(decl.Body, declared)...)
		case *syntax.InterfaceDecl:
			for _, super := range decl.SuperTypes {
				if !declared[super] {
					diags = append(diags, warnAt(decl.At, super, CodeUnresolvedReference,
						fmt.Sprintf("interface %q extends undeclared type %q", decl.Name, super)))
				}
			}
			for _, attr := range decl.Attrs {
				diags = append(diags, checkTypeExpr(attr.Type, attr.At, declared)...)
			}
		case *syntax.TypeAliasDecl:
			diags = append(diags, checkTypeExpr(decl.Type, decl.At, declared)...)
		}
	}
	return diags
}

func checkRuleBody(e syntax.Expr, declared map[string]bool) []Diagnostic {
	var diags []Diagnostic
	walkExpr(e, func(node syntax.Expr) {
		switch v := node.(type) {
		case *syntax.RuleCall:
			if !declared[v.Rule] && !builtinTerminals[v.Rule] {
				diags = append(diags, warnAt(v.At, v.Rule, CodeUnresolvedReference,
					fmt.Sprintf("call to undeclared rule %q", v.Rule)))
			}
		case *syntax.CrossReference:
			if !declared[v.Target] {
				diags = append(diags, warnAt(v.At, v.Target, CodeUnresolvedReference,
					fmt.Sprintf("cross-reference to undeclared type %q", v.Target)))
			}
			if v.Token != "" && !declared[v.Token] && !builtinTerminals[v.Token] {
				diags = append(diags, warnAt(v.At, v.Token, CodeUnresolvedReference,
					fmt.Sprintf("cross-reference uses undeclared terminal %q", v.Token)))
			}
		}
	})
	return diags
}

func checkTypeExpr(t syntax.TypeExpr, at syntax.Position, declared map[string]bool) []Diagnostic {
	var diags []Diagnostic
	walkType(t, func(node syntax.TypeExpr) {
		switch v := node.(type) {
		case *syntax.SimpleType:
			if !primitiveNames[v.Name] && !declared[v.Name] {
				diags = append(diags, warnAt(pick(v.At, at), v.Name, CodeUnresolvedReference,
					fmt.Sprintf("reference to undeclared type %q", v.Name)))
			}
		case *syntax.ReferenceType:
			if !declared[v.Target] {
				diags = append(diags, warnAt(pick(v.At, at), v.Target, CodeUnresolvedReference,
					fmt.Sprintf("reference to undeclared type %q", v.Target)))
			}
		}
	})
	return diags
}

// walkExpr visits every node of a rule body, including assignment values,
// in source order.
func walkExpr(e syntax.Expr, visit func(syntax.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch v := e.(type) {
	case *syntax.Alternatives:
		for _, item := range v.Items {
			walkExpr(item, visit)
		}
	case *syntax.Sequence:
		for _, item := range v.Items {
			walkExpr(item, visit)
		}
	case *syntax.Group:
		walkExpr(v.Body, visit)
	case *syntax.Assignment:
		walkExpr(v.Value, visit)
	case *syntax.RuleCall, *syntax.Keyword, *syntax.CrossReference:
		// leaves
	}
}

// walkType visits every node of a type expression in source order.
func walkType(t syntax.TypeExpr, visit func(syntax.TypeExpr)) {
	if t == nil {
		return
	}
	visit(t)
	switch v := t.(type) {
	case *syntax.ArrayType:
		walkType(v.Elem, visit)
	case *syntax.UnionType:
		for _, item := range v.Items {
			walkType(item, visit)
		}
	case *syntax.SimpleType, *syntax.StringType, *syntax.ReferenceType:
		// leaves
	}
}

func pick(primary, fallback syntax.Position) syntax.Position {
	if primary.Valid() {
		return primary
	}
	return fallback
}

func warnAt(at syntax.Position, name, code, msg string) Diagnostic {
	end := at
	if at.Valid() {
		end.Column += len(name)
	}
	return Diagnostic{
		Severity: SeverityWarning,
		Range:    syntax.Range{Start: at, End: end},
		Message:  msg,
		Code:     code,
	}
}
