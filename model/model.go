// Package model defines the normalized grammar model consumed by every
// downstream artifact generator (templates, schemas, documentation, tests).
//
// A ParsedGrammar is produced once per parse and never mutated afterwards;
// generators may traverse it concurrently.
package model

// SemanticType is the inferred type of a property: one of the primitive
// names below, the name of another interface (inline or reference), or
// the Unknown sentinel when the syntactic shape could not be classified.
type SemanticType = string

const (
	TypeString  SemanticType = "string"
	TypeNumber  SemanticType = "number"
	TypeBoolean SemanticType = "boolean"

	// TypeUnknown is the degraded type assigned when a property's syntactic
	// shape cannot be classified. Normalization never aborts on such shapes;
	// the property is kept so overall generation coverage is preserved.
	TypeUnknown SemanticType = "unknown"
)

// ParsedGrammar is the normalized result of parsing one grammar source.
type ParsedGrammar struct {
	// ProjectName is derived from the source file name, sanitized to
	// [a-z0-9-] (see Sanitize).
	ProjectName string `json:"projectName"`

	// Interfaces in source declaration order.
	Interfaces []Interface `json:"interfaces"`

	// Types in source declaration order.
	Types []TypeAlias `json:"types"`
}

// Interface is a named record type with ordered, typed properties.
type Interface struct {
	Name string `json:"name"`

	// Properties preserve declaration order. Property names are unique
	// within one interface: when the source declares a feature twice,
	// only the first occurrence's inferred type is retained.
	Properties []Property `json:"properties"`

	// SuperTypes lists raw supertype names as declared. Whether the named
	// supertypes exist is not verified here; that belongs to a separate
	// validator.
	SuperTypes []string `json:"superTypes"`
}

// Property is a single typed feature of an interface.
type Property struct {
	Name     string       `json:"name"`
	Type     SemanticType `json:"type"`
	Optional bool         `json:"optional"`
	Array    bool         `json:"array"`
}

// TypeAlias is a named type expression, typically a union of string
// literals used for string-literal enums in generated code.
type TypeAlias struct {
	Name string `json:"name"`

	// Definition is the rendered type expression, e.g. "'circle' | 'square'".
	Definition string `json:"definition"`

	// UnionTypes holds the ordered literal values when Definition is a pure
	// string-literal union, and is nil otherwise. This is the projection
	// codegen uses for string-literal enums.
	UnionTypes []string `json:"unionTypes,omitempty"`
}

// InterfaceByName returns the interface with the given name, or nil.
func (g *ParsedGrammar) InterfaceByName(name string) *Interface {
	for i := range g.Interfaces {
		if g.Interfaces[i].Name == name {
			return &g.Interfaces[i]
		}
	}
	return nil
}

// TypeByName returns the type alias with the given name, or nil.
func (g *ParsedGrammar) TypeByName(name string) *TypeAlias {
	for i := range g.Types {
		if g.Types[i].Name == name {
			return &g.Types[i]
		}
	}
	return nil
}

// HasUnknownTypes reports whether any property degraded to the unknown
// sentinel during normalization. Callers that want strict grammars can
// inspect this after a successful parse.
func (g *ParsedGrammar) HasUnknownTypes() bool {
	for _, iface := range g.Interfaces {
		for _, p := range iface.Properties {
			if p.Type == TypeUnknown {
				return true
			}
		}
	}
	return false
}
