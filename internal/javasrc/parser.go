// Package javasrc gives the converter a structural view of Java source.
//
// Parser is the capability the procedure locator depends on. It reports every
// method declaration in declaration order with its raw pieces (modifiers,
// parameters with the comment attached to each, body text between the braces)
// and leaves selection and cleanup to the caller. TreeSitterParser is the
// implementation in use; any parser producing a Unit can be substituted.
package javasrc

import (
	"context"
	"fmt"
)

// Parser turns Java source into a Unit.
type Parser interface {
	// Parse returns the structural view of src, or a *SyntaxError when src
	// is not well formed.
	Parse(ctx context.Context, src []byte) (*Unit, error)

	// Language names the grammar, for logs.
	Language() string
}

// Unit is one parsed compilation unit.
type Unit struct {
	// Methods in declaration order (pre-order over nested types).
	Methods []Method
}

// Method is one method declaration.
type Method struct {
	Name string
	// Modifiers holds the keyword modifiers as written ("public", "static", ...).
	// Annotations are not included.
	Modifiers []string
	// InInterface is set when the method is declared directly in an interface
	// (or annotation type) body.
	InInterface bool
	Params      []Param
	// Body is the text strictly between the body braces; nil for methods
	// without a body.
	Body *string
	// Line is the 1-based line of the declaration.
	Line int
}

// HasModifier reports whether m carries the keyword modifier mod.
func (m Method) HasModifier(mod string) bool {
	for _, have := range m.Modifiers {
		if have == mod {
			return true
		}
	}
	return false
}

// Param is one formal parameter.
type Param struct {
	Type string
	Name string
	// Comment is the raw text (delimiters included) of the comment attached
	// to the parameter, or "" when it has none.
	Comment string
}

// SyntaxError reports source that could not be parsed.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
