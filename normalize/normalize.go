// Package normalize turns the syntax AST into the typed Model consumed by
// downstream generators.
//
// The normalizer is a pure, single-pass function over an already-built
// AST: it performs no I/O, honors source declaration order, and never
// aborts on an unsupported shape inside an otherwise-recognized
// declaration. Such shapes degrade the affected property to the unknown
// sentinel so generation coverage is preserved for the rest of the model.
package normalize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/johnholliday/glsp-generator-sub001/logger"
	"github.com/johnholliday/glsp-generator-sub001/model"
	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

// terminalPrimitives maps recognized terminal names onto primitive
// semantic types. Rule calls to any other name keep the called rule's
// name as a nested interface reference.
var terminalPrimitives = map[string]model.SemanticType{
	"ID":      model.TypeString,
	"STRING":  model.TypeString,
	"NUMBER":  model.TypeNumber,
	"INT":     model.TypeNumber,
	"BOOLEAN": model.TypeBoolean,
}

// Normalizer converts grammar ASTs into model interfaces and type
// aliases. The zero value is usable; New wires a logger for anomaly
// reporting.
type Normalizer struct {
	log *zap.SugaredLogger
}

// New returns a Normalizer logging anomalies through log, or the global
// logger when log is nil.
func New(log *zap.SugaredLogger) *Normalizer {
	if log == nil {
		log = logger.Default()
	}
	return &Normalizer{log: log}
}

// Normalize walks the grammar's top-level declarations in source order
// and produces the interface and type-alias lists of the Model.
func (n *Normalizer) Normalize(g *syntax.Grammar) ([]model.Interface, []model.TypeAlias) {
	interfaces := make([]model.Interface, 0)
	types := make([]model.TypeAlias, 0)
	if g == nil {
		return interfaces, types
	}

	for _, decl := range g.Decls {
		switch d := decl.(type) {
		case *syntax.ParserRule:
			if iface, ok := n.ruleInterface(d); ok {
				interfaces = append(interfaces, iface)
			}
		case *syntax.InterfaceDecl:
			interfaces = append(interfaces, n.explicitInterface(d))
		case *syntax.TypeAliasDecl:
			types = append(types, n.typeAlias(d))
		}
	}
	return interfaces, types
}

// ruleInterface builds the implicit interface for a parser rule. Fragment
// rules and rules without assignments produce no interface.
func (n *Normalizer) ruleInterface(rule *syntax.ParserRule) (model.Interface, bool) {
	if rule.Fragment {
		return model.Interface{}, false
	}

	assignments := collectAssignments(rule.Body)
	if len(assignments) == 0 {
		return model.Interface{}, false
	}

	iface := model.Interface{
		Name:       rule.TypeName(),
		Properties: make([]model.Property, 0, len(assignments)),
		SuperTypes: []string{},
	}

	seen := make(map[string]bool)
	for _, a := range assignments {
		// First occurrence wins; later duplicates are dropped silently.
		if seen[a.Feature] {
			continue
		}
		seen[a.Feature] = true

		prop := model.Property{Name: a.Feature, Type: n.inferType(rule.Name, a)}
		// The boolean-assign operator and the append operator take
		// precedence over the element cardinality; only one of
		// optional/array is ever set.
		switch {
		case a.Op == syntax.OpBoolAssign:
			prop.Optional = true
		case a.Op == syntax.OpAppend:
			prop.Array = true
		case a.Card == syntax.CardOptional:
			prop.Optional = true
		case a.Card == syntax.CardMany || a.Card == syntax.CardAtLeastOne:
			prop.Array = true
		}
		iface.Properties = append(iface.Properties, prop)
	}
	return iface, true
}

// inferType classifies an assignment's right-hand side.
func (n *Normalizer) inferType(rule string, a *syntax.Assignment) model.SemanticType {
	switch v := a.Value.(type) {
	case *syntax.CrossReference:
		// References are foreign keys to another declared element, not
		// inline values; the property type is the referenced name.
		return v.Target
	case *syntax.RuleCall:
		if prim, ok := terminalPrimitives[v.Rule]; ok {
			return prim
		}
		return v.Rule
	case *syntax.Keyword:
		return model.TypeString
	default:
		n.log.Debugw("unsupported assignment value, degrading to unknown",
			logger.FieldRule, rule,
			logger.FieldProperty, a.Feature,
			logger.FieldLine, a.At.Line,
			logger.FieldCol, a.At.Column)
		return model.TypeUnknown
	}
}

// collectAssignments gathers every assignment in a rule body in source
// order, descending through alternatives, sequences, groups, and
// assignment values that wrap further structure.
func collectAssignments(e syntax.Expr) []*syntax.Assignment {
	var res []*syntax.Assignment
	var walk func(syntax.Expr)
	walk = func(e syntax.Expr) {
		switch v := e.(type) {
		case *syntax.Alternatives:
			for _, item := range v.Items {
				walk(item)
			}
		case *syntax.Sequence:
			for _, item := range v.Items {
				walk(item)
			}
		case *syntax.Group:
			walk(v.Body)
		case *syntax.Assignment:
			res = append(res, v)
			walk(v.Value)
		case *syntax.RuleCall, *syntax.Keyword, *syntax.CrossReference, nil:
			// leaves
		}
	}
	walk(e)
	return res
}

// explicitInterface converts a declared interface. Attribute types are
// explicit, so no inference is needed; resolution still degrades
// unrecognized shapes to unknown instead of failing.
func (n *Normalizer) explicitInterface(d *syntax.InterfaceDecl) model.Interface {
	iface := model.Interface{
		Name:       d.Name,
		Properties: make([]model.Property, 0, len(d.Attrs)),
		SuperTypes: append([]string{}, d.SuperTypes...),
	}

	seen := make(map[string]bool)
	for _, attr := range d.Attrs {
		if seen[attr.Name] {
			continue
		}
		seen[attr.Name] = true

		typ, array := n.resolveTypeExpr(d.Name, attr.Name, attr.Type)
		iface.Properties = append(iface.Properties, model.Property{
			Name:     attr.Name,
			Type:     typ,
			Optional: attr.Optional,
			Array:    array,
		})
	}
	return iface
}

// resolveTypeExpr maps an explicit type expression to a semantic type and
// an array flag.
func (n *Normalizer) resolveTypeExpr(iface, attr string, t syntax.TypeExpr) (model.SemanticType, bool) {
	switch v := t.(type) {
	case *syntax.SimpleType:
		return v.Name, false
	case *syntax.StringType:
		// A quoted literal used as a type stays quoted; it denotes a
		// single union member, not the string primitive.
		return "'" + v.Literal + "'", false
	case *syntax.ReferenceType:
		return v.Target, false
	case *syntax.ArrayType:
		elem, _ := n.resolveTypeExpr(iface, attr, v.Elem)
		return elem, true
	case *syntax.UnionType:
		return RenderTypeExpr(v), false
	default:
		n.log.Debugw("unsupported attribute type, degrading to unknown",
			logger.FieldInterface, iface,
			logger.FieldProperty, attr)
		return model.TypeUnknown, false
	}
}

// typeAlias converts a type alias declaration, projecting pure
// string-literal unions into the UnionTypes list used for enum codegen.
func (n *Normalizer) typeAlias(d *syntax.TypeAliasDecl) model.TypeAlias {
	alias := model.TypeAlias{
		Name:       d.Name,
		Definition: RenderTypeExpr(d.Type),
	}
	if values, ok := literalUnion(d.Type); ok {
		alias.UnionTypes = values
	}
	if alias.Definition == "" {
		alias.Definition = model.TypeUnknown
		n.log.Debugw("unsupported alias definition, degrading to unknown",
			logger.FieldTypeAlias, d.Name)
	}
	return alias
}

// RenderTypeExpr renders a type expression the way it would be written in
// source: quoted literals keep their quotes, arrays append [], unions
// join members with " | ".
func RenderTypeExpr(t syntax.TypeExpr) string {
	switch v := t.(type) {
	case *syntax.SimpleType:
		return v.Name
	case *syntax.StringType:
		return "'" + v.Literal + "'"
	case *syntax.ReferenceType:
		return "@" + v.Target
	case *syntax.ArrayType:
		return RenderTypeExpr(v.Elem) + "[]"
	case *syntax.UnionType:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, RenderTypeExpr(item))
		}
		return strings.Join(parts, " | ")
	default:
		return ""
	}
}

// literalUnion reports the ordered literal values when t is a pure union
// of string literals (a single literal counts as a one-member union).
func literalUnion(t syntax.TypeExpr) ([]string, bool) {
	switch v := t.(type) {
	case *syntax.StringType:
		return []string{v.Literal}, true
	case *syntax.UnionType:
		values := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			lit, ok := item.(*syntax.StringType)
			if !ok {
				return nil, false
			}
			values = append(values, lit.Literal)
		}
		return values, true
	default:
		return nil, false
	}
}
