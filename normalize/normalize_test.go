package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnholliday/glsp-generator-sub001/model"
	"github.com/johnholliday/glsp-generator-sub001/syntax"
)

func assign(feature string, op syntax.AssignOp, value syntax.Expr) *syntax.Assignment {
	return &syntax.Assignment{Feature: feature, Op: op, Value: value}
}

func rule(name string, body ...syntax.Expr) *syntax.ParserRule {
	return &syntax.ParserRule{Name: name, Body: &syntax.Sequence{Items: body}}
}

func TestNormalizeImplicitInterface(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		rule("Transition",
			assign("name", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
			&syntax.Keyword{Value: "to"},
			assign("target", syntax.OpAssign, &syntax.CrossReference{Target: "State", Token: "ID"}),
		),
	}}

	interfaces, types := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	assert.Empty(t, types)

	iface := interfaces[0]
	assert.Equal(t, "Transition", iface.Name)
	require.Len(t, iface.Properties, 2)
	assert.Equal(t, model.Property{Name: "name", Type: model.TypeString}, iface.Properties[0])
	assert.Equal(t, model.Property{Name: "target", Type: "State"}, iface.Properties[1])
}

func TestNormalizeTypeInference(t *testing.T) {
	tests := []struct {
		name  string
		value syntax.Expr
		want  model.SemanticType
	}{
		{name: "terminal ID", value: &syntax.RuleCall{Rule: "ID"}, want: model.TypeString},
		{name: "terminal STRING", value: &syntax.RuleCall{Rule: "STRING"}, want: model.TypeString},
		{name: "terminal NUMBER", value: &syntax.RuleCall{Rule: "NUMBER"}, want: model.TypeNumber},
		{name: "terminal INT", value: &syntax.RuleCall{Rule: "INT"}, want: model.TypeNumber},
		{name: "terminal BOOLEAN", value: &syntax.RuleCall{Rule: "BOOLEAN"}, want: model.TypeBoolean},
		{name: "nested rule", value: &syntax.RuleCall{Rule: "Expression"}, want: "Expression"},
		{name: "cross reference", value: &syntax.CrossReference{Target: "State"}, want: "State"},
		{name: "keyword literal", value: &syntax.Keyword{Value: "public"}, want: model.TypeString},
		{name: "unsupported shape", value: &syntax.Group{Body: &syntax.Keyword{Value: "x"}}, want: model.TypeUnknown},
		{name: "missing value", value: nil, want: model.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &syntax.Grammar{Decls: []syntax.Decl{
				rule("R", assign("prop", syntax.OpAssign, tt.value)),
			}}
			interfaces, _ := New(nil).Normalize(g)
			require.Len(t, interfaces, 1)
			require.Len(t, interfaces[0].Properties, 1)
			assert.Equal(t, tt.want, interfaces[0].Properties[0].Type)
		})
	}
}

func TestNormalizeCardinality(t *testing.T) {
	tests := []struct {
		name         string
		op           syntax.AssignOp
		card         syntax.Cardinality
		wantOptional bool
		wantArray    bool
	}{
		{name: "plain", op: syntax.OpAssign, card: syntax.CardNone},
		{name: "bool assign", op: syntax.OpBoolAssign, card: syntax.CardNone, wantOptional: true},
		{name: "append", op: syntax.OpAppend, card: syntax.CardNone, wantArray: true},
		{name: "optional card", op: syntax.OpAssign, card: syntax.CardOptional, wantOptional: true},
		{name: "star card", op: syntax.OpAssign, card: syntax.CardMany, wantArray: true},
		{name: "plus card", op: syntax.OpAssign, card: syntax.CardAtLeastOne, wantArray: true},
		// Operator semantics beat the trailing cardinality marker; only
		// one flag is ever set.
		{name: "append with optional card", op: syntax.OpAppend, card: syntax.CardOptional, wantArray: true},
		{name: "bool assign with star card", op: syntax.OpBoolAssign, card: syntax.CardMany, wantOptional: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assign("prop", tt.op, &syntax.RuleCall{Rule: "ID"})
			a.Card = tt.card
			g := &syntax.Grammar{Decls: []syntax.Decl{rule("R", a)}}

			interfaces, _ := New(nil).Normalize(g)
			require.Len(t, interfaces, 1)
			p := interfaces[0].Properties[0]
			assert.Equal(t, tt.wantOptional, p.Optional)
			assert.Equal(t, tt.wantArray, p.Array)
			assert.False(t, p.Optional && p.Array)
		})
	}
}

func TestNormalizeFirstOccurrenceWins(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		rule("Node",
			assign("value", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
			assign("value", syntax.OpAssign, &syntax.RuleCall{Rule: "NUMBER"}),
		),
	}}

	interfaces, _ := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	require.Len(t, interfaces[0].Properties, 1)
	assert.Equal(t, model.TypeString, interfaces[0].Properties[0].Type)
}

func TestNormalizeCollectsThroughNesting(t *testing.T) {
	// (a=ID | (b=ID c=ID)*) — assignments inside alternatives and nested
	// repeated groups are all collected, in source order.
	g := &syntax.Grammar{Decls: []syntax.Decl{
		rule("R", &syntax.Alternatives{Items: []syntax.Expr{
			assign("a", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
			&syntax.Group{
				Card: syntax.CardMany,
				Body: &syntax.Sequence{Items: []syntax.Expr{
					assign("b", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
					assign("c", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
				}},
			},
		}}),
	}}

	interfaces, _ := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	props := interfaces[0].Properties
	require.Len(t, props, 3)
	assert.Equal(t, "a", props[0].Name)
	assert.Equal(t, "b", props[1].Name)
	assert.Equal(t, "c", props[2].Name)
	// Group cardinality stays on the group; it does not leak into the
	// nested assignments.
	assert.False(t, props[1].Array)
}

func TestNormalizeSkipsFragmentsAndPlainRules(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		&syntax.ParserRule{Name: "Frag", Fragment: true, Body: &syntax.Sequence{Items: []syntax.Expr{
			assign("x", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
		}}},
		rule("NoAssignments", &syntax.Keyword{Value: "end"}),
		rule("Keep", assign("x", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"})),
	}}

	interfaces, _ := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	assert.Equal(t, "Keep", interfaces[0].Name)
}

func TestNormalizeReturnsClause(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		&syntax.ParserRule{Name: "StateRule", Returns: "State", Body: &syntax.Sequence{Items: []syntax.Expr{
			assign("name", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
		}}},
	}}

	interfaces, _ := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	assert.Equal(t, "State", interfaces[0].Name)
}

func TestNormalizeExplicitInterface(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		&syntax.InterfaceDecl{
			Name:       "Node",
			SuperTypes: []string{"Element"},
			Attrs: []syntax.Attribute{
				{Name: "name", Type: &syntax.SimpleType{Name: "string"}},
				{Name: "children", Type: &syntax.ArrayType{Elem: &syntax.SimpleType{Name: "Node"}}},
				{Name: "parent", Optional: true, Type: &syntax.ReferenceType{Target: "Node"}},
				{Name: "kind", Type: &syntax.UnionType{Items: []syntax.TypeExpr{
					&syntax.StringType{Literal: "leaf"},
					&syntax.StringType{Literal: "branch"},
				}}},
			},
		},
	}}

	interfaces, _ := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)

	iface := interfaces[0]
	assert.Equal(t, "Node", iface.Name)
	assert.Equal(t, []string{"Element"}, iface.SuperTypes)
	require.Len(t, iface.Properties, 4)
	assert.Equal(t, model.Property{Name: "name", Type: model.TypeString}, iface.Properties[0])
	assert.Equal(t, model.Property{Name: "children", Type: "Node", Array: true}, iface.Properties[1])
	assert.Equal(t, model.Property{Name: "parent", Type: "Node", Optional: true}, iface.Properties[2])
	assert.Equal(t, model.Property{Name: "kind", Type: model.SemanticType("'leaf' | 'branch'")}, iface.Properties[3])
}

func TestNormalizeRoundTripEquivalence(t *testing.T) {
	// The same semantics declared through a rule assignment and an
	// explicit attribute normalize to the same (type, optional, array).
	implicit := &syntax.Grammar{Decls: []syntax.Decl{
		rule("Node", func() *syntax.Assignment {
			a := assign("name", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"})
			a.Card = syntax.CardOptional
			return a
		}()),
	}}
	explicit := &syntax.Grammar{Decls: []syntax.Decl{
		&syntax.InterfaceDecl{Name: "Node", Attrs: []syntax.Attribute{
			{Name: "name", Optional: true, Type: &syntax.SimpleType{Name: "string"}},
		}},
	}}

	a, _ := New(nil).Normalize(implicit)
	b, _ := New(nil).Normalize(explicit)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Properties, b[0].Properties)
}

func TestNormalizeTypeAlias(t *testing.T) {
	tests := []struct {
		name     string
		expr     syntax.TypeExpr
		wantDef  string
		wantEnum []string
	}{
		{
			name: "string literal union",
			expr: &syntax.UnionType{Items: []syntax.TypeExpr{
				&syntax.StringType{Literal: "circle"},
				&syntax.StringType{Literal: "square"},
			}},
			wantDef:  "'circle' | 'square'",
			wantEnum: []string{"circle", "square"},
		},
		{
			name:     "single literal",
			expr:     &syntax.StringType{Literal: "only"},
			wantDef:  "'only'",
			wantEnum: []string{"only"},
		},
		{
			name: "mixed union has no enum projection",
			expr: &syntax.UnionType{Items: []syntax.TypeExpr{
				&syntax.StringType{Literal: "none"},
				&syntax.SimpleType{Name: "Shape"},
			}},
			wantDef: "'none' | Shape",
		},
		{
			name:    "array alias",
			expr:    &syntax.ArrayType{Elem: &syntax.SimpleType{Name: "Node"}},
			wantDef: "Node[]",
		},
		{
			name:    "reference alias",
			expr:    &syntax.ReferenceType{Target: "Node"},
			wantDef: "@Node",
		},
		{
			name:    "missing expression degrades",
			expr:    nil,
			wantDef: model.TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &syntax.Grammar{Decls: []syntax.Decl{
				&syntax.TypeAliasDecl{Name: "Shape", Type: tt.expr},
			}}
			_, types := New(nil).Normalize(g)
			require.Len(t, types, 1)
			assert.Equal(t, "Shape", types[0].Name)
			assert.Equal(t, tt.wantDef, types[0].Definition)
			assert.Equal(t, tt.wantEnum, types[0].UnionTypes)
		})
	}
}

func TestNormalizeOrderPreservation(t *testing.T) {
	g := &syntax.Grammar{Decls: []syntax.Decl{
		rule("B", assign("x", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"})),
		&syntax.TypeAliasDecl{Name: "T2", Type: &syntax.StringType{Literal: "b"}},
		&syntax.InterfaceDecl{Name: "A", Attrs: []syntax.Attribute{
			{Name: "y", Type: &syntax.SimpleType{Name: "string"}},
		}},
		&syntax.TypeAliasDecl{Name: "T1", Type: &syntax.StringType{Literal: "a"}},
	}}

	interfaces, types := New(nil).Normalize(g)
	require.Len(t, interfaces, 2)
	require.Len(t, types, 2)
	assert.Equal(t, "B", interfaces[0].Name)
	assert.Equal(t, "A", interfaces[1].Name)
	assert.Equal(t, "T2", types[0].Name)
	assert.Equal(t, "T1", types[1].Name)
}

func TestNormalizeDegradationIsLocal(t *testing.T) {
	// One unsupported shape degrades one property; the rest of the
	// interface and the other declarations are unaffected.
	g := &syntax.Grammar{Decls: []syntax.Decl{
		rule("R",
			assign("good", syntax.OpAssign, &syntax.RuleCall{Rule: "ID"}),
			assign("bad", syntax.OpAssign, &syntax.Sequence{Items: []syntax.Expr{&syntax.Keyword{Value: "x"}}}),
			assign("alsoGood", syntax.OpAssign, &syntax.CrossReference{Target: "State"}),
		),
		&syntax.TypeAliasDecl{Name: "Shape", Type: &syntax.StringType{Literal: "circle"}},
	}}

	interfaces, types := New(nil).Normalize(g)
	require.Len(t, interfaces, 1)
	require.Len(t, types, 1)

	props := interfaces[0].Properties
	require.Len(t, props, 3)
	assert.Equal(t, model.TypeString, props[0].Type)
	assert.Equal(t, model.TypeUnknown, props[1].Type)
	assert.Equal(t, model.SemanticType("State"), props[2].Type)
}

func TestNormalizeEmptyGrammar(t *testing.T) {
	interfaces, types := New(nil).Normalize(&syntax.Grammar{})
	assert.NotNil(t, interfaces)
	assert.NotNil(t, types)
	assert.Empty(t, interfaces)
	assert.Empty(t, types)

	interfaces, types = New(nil).Normalize(nil)
	assert.NotNil(t, interfaces)
	assert.NotNil(t, types)
}
