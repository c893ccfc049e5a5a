// Package syntax defines the abstract syntax tree for the modeling
// language. The upstream engine produces a generic parse tree; the
// langium package lowers it into this closed set of tagged variants so
// the normalizer can dispatch with a single exhaustive type switch
// instead of shape-probing.
package syntax

// Grammar is the root of a parsed grammar document.
type Grammar struct {
	// Name comes from the optional `grammar Name` header; empty if absent.
	Name string

	// Decls holds top-level declarations in source order.
	Decls []Decl
}

// Decl is a top-level declaration. The concrete types are ParserRule,
// InterfaceDecl and TypeAliasDecl.
type Decl interface {
	// DeclName is the declared name (rule, interface, or alias name).
	DeclName() string
	Pos() Position
	decl()
}

// ParserRule is a grammar production. Non-fragment rules whose body
// contains at least one Assignment act as implicit interface declarations.
type ParserRule struct {
	Name string

	// Returns overrides the implicit interface name when present
	// (`Rule returns Type: ...`).
	Returns string

	// Fragment rules are inlined into their callers and never become
	// interfaces of their own.
	Fragment bool

	// Body is the rule's top-level Alternatives.
	Body Expr

	At Position
}

func (r *ParserRule) DeclName() string { return r.Name }
func (r *ParserRule) Pos() Position    { return r.At }
func (r *ParserRule) decl()            {}

// TypeName is the name the implicit interface takes: the returns clause
// when present, the rule name otherwise.
func (r *ParserRule) TypeName() string {
	if r.Returns != "" {
		return r.Returns
	}
	return r.Name
}

// InterfaceDecl is an explicit interface declaration.
type InterfaceDecl struct {
	Name       string
	SuperTypes []string
	Attrs      []Attribute
	At         Position
}

func (d *InterfaceDecl) DeclName() string { return d.Name }
func (d *InterfaceDecl) Pos() Position    { return d.At }
func (d *InterfaceDecl) decl()            {}

// Attribute is one typed feature of an explicit interface.
type Attribute struct {
	Name     string
	Optional bool
	Type     TypeExpr
	At       Position
}

// TypeAliasDecl is an explicit type alias declaration.
type TypeAliasDecl struct {
	Name string
	Type TypeExpr
	At   Position
}

func (d *TypeAliasDecl) DeclName() string { return d.Name }
func (d *TypeAliasDecl) Pos() Position    { return d.At }
func (d *TypeAliasDecl) decl()            {}

// AssignOp is the operator of an assignment inside a rule body.
type AssignOp string

const (
	OpAssign     AssignOp = "="  // plain assignment
	OpBoolAssign AssignOp = "?=" // boolean/optional assignment
	OpAppend     AssignOp = "+=" // list append
)

// Cardinality is the repetition marker attached to a rule body element.
type Cardinality string

const (
	CardNone       Cardinality = ""
	CardOptional   Cardinality = "?"
	CardMany       Cardinality = "*"
	CardAtLeastOne Cardinality = "+"
)

// Expr is a rule body expression. The concrete types are Alternatives,
// Sequence, Assignment, CrossReference, RuleCall, Keyword and Group.
type Expr interface {
	Pos() Position
	expr()
}

// Alternatives is an ordered choice: a | b | c.
type Alternatives struct {
	Items []Expr
	At    Position
}

func (e *Alternatives) Pos() Position { return e.At }
func (e *Alternatives) expr()         {}

// Sequence is a concatenation of elements.
type Sequence struct {
	Items []Expr
	At    Position
}

func (e *Sequence) Pos() Position { return e.At }
func (e *Sequence) expr()         {}

// Assignment binds a feature name to a value: name=ID, flag?='on',
// items+=Item.
type Assignment struct {
	Feature string
	Op      AssignOp

	// Value is the assigned expression. CrossReference, RuleCall and
	// Keyword values have well-defined semantic types; anything else
	// degrades the property to the unknown sentinel during normalization.
	Value Expr

	// Card is the cardinality attached to the assignment element itself
	// (`name=ID?`, `items+=Item*`).
	Card Cardinality

	At Position
}

func (e *Assignment) Pos() Position { return e.At }
func (e *Assignment) expr()         {}

// CrossReference names another declared element rather than holding an
// inline value: [State] or [State:ID].
type CrossReference struct {
	Target string

	// Token is the terminal used to parse the reference text, empty when
	// omitted ([State] instead of [State:ID]).
	Token string

	At Position
}

func (e *CrossReference) Pos() Position { return e.At }
func (e *CrossReference) expr()         {}

// RuleCall invokes another rule or terminal by name.
type RuleCall struct {
	Rule string
	At   Position
}

func (e *RuleCall) Pos() Position { return e.At }
func (e *RuleCall) expr()         {}

// Keyword is a literal token in a rule body, quotes stripped.
type Keyword struct {
	Value string
	At    Position
}

func (e *Keyword) Pos() Position { return e.At }
func (e *Keyword) expr()         {}

// Group is a parenthesized sub-expression with optional cardinality.
type Group struct {
	Body Expr
	Card Cardinality
	At   Position
}

func (e *Group) Pos() Position { return e.At }
func (e *Group) expr()         {}

// TypeExpr is a type expression on an explicit interface attribute or a
// type alias. The concrete types are SimpleType, StringType,
// ReferenceType, ArrayType and UnionType.
type TypeExpr interface {
	Pos() Position
	typeExpr()
}

// SimpleType is a bare name: a primitive (string/number/boolean) or a
// declared interface/alias name.
type SimpleType struct {
	Name string
	At   Position
}

func (t *SimpleType) Pos() Position { return t.At }
func (t *SimpleType) typeExpr()     {}

// StringType is a quoted string literal used as a type, quotes stripped.
// These appear as members of string-literal unions.
type StringType struct {
	Literal string
	At      Position
}

func (t *StringType) Pos() Position { return t.At }
func (t *StringType) typeExpr()     {}

// ReferenceType is a reference to another element: @Name, sigil stripped.
type ReferenceType struct {
	Target string
	At     Position
}

func (t *ReferenceType) Pos() Position { return t.At }
func (t *ReferenceType) typeExpr()     {}

// ArrayType wraps an element type: T[].
type ArrayType struct {
	Elem TypeExpr
	At   Position
}

func (t *ArrayType) Pos() Position { return t.At }
func (t *ArrayType) typeExpr()     {}

// UnionType is an ordered union: A | B | C.
type UnionType struct {
	Items []TypeExpr
	At    Position
}

func (t *UnionType) Pos() Position { return t.At }
func (t *UnionType) typeExpr()     {}
