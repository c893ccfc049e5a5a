package syntax

import "fmt"

// Position is a location in grammar source text.
// Line and Column are both 1-based, matching how editors and compilers
// report locations to humans.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Valid reports whether the position carries real location information.
func (p Position) Valid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a source span from Start to End (inclusive start, exclusive end).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
