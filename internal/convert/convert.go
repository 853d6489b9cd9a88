// Package convert is the engine facade: script text to class text and back.
// Both directions are pure functions of their input; a Converter may be
// shared between goroutines.
package convert

import (
	"context"
	"errors"

	"javaxify/internal/classgen"
	"javaxify/internal/javasrc"
	"javaxify/internal/locate"
	"javaxify/internal/script"
	"javaxify/internal/scriptgen"
)

// Kind labels a conversion failure for the host.
type Kind string

const (
	KindNone         Kind = ""
	KindNotFound     Kind = "not_found"
	KindParseFailure Kind = "parse_failure"
	KindInternal     Kind = "internal"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, locate.ErrNotFound):
		return KindNotFound
	case errors.Is(err, locate.ErrParseFailure):
		return KindParseFailure
	default:
		return KindInternal
	}
}

// ClassResult is the output of ScriptToClass.
type ClassResult struct {
	Text string
	// Vars are the bindings the class loads; the host creates one input file per entry.
	Vars []script.Variable
}

// Converter runs conversions in both directions.
type Converter struct {
	locator *locate.Locator
}

// New returns a Converter whose reverse direction uses parser.
func New(parser javasrc.Parser) *Converter {
	return &Converter{locator: locate.New(parser)}
}

// NewDefault returns a Converter backed by the tree-sitter Java parser.
func NewDefault() *Converter {
	return New(javasrc.NewTreeSitterParser())
}

// ScriptToClass converts script text into a class named className in package
// packageName (empty for the default package). Lines that are not bindings
// become business logic; this direction does not fail.
func (c *Converter) ScriptToClass(src, packageName, className string) ClassResult {
	vars := script.Extract(src)
	body, _ := script.Partition(src, vars)
	text := classgen.Generate(classgen.Unit{
		Package:   packageName,
		ClassName: className,
		Vars:      vars,
		Body:      body,
	})
	return ClassResult{Text: text, Vars: vars}
}

// ClassToScript converts class text back into script text. It fails with
// locate.ErrNotFound or a *locate.ParseError.
func (c *Converter) ClassToScript(ctx context.Context, src string) (string, error) {
	proc, err := c.Inspect(ctx, src)
	if err != nil {
		return "", err
	}
	return scriptgen.Generate(proc), nil
}

// Inspect returns the located run procedure of class text.
func (c *Converter) Inspect(ctx context.Context, src string) (*locate.Procedure, error) {
	return c.locator.Locate(ctx, src)
}
