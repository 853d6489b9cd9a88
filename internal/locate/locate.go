// Package locate finds the entry procedure of a class-form unit: the first
// method named "run" that is public and static, in declaration order.
package locate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"javaxify/internal/javasrc"
	"javaxify/internal/logging"
)

// ProcedureName is the only method name eligible for extraction.
const ProcedureName = "run"

var (
	// ErrNotFound is returned when no public static run method exists.
	ErrNotFound = errors.New("no public static run method found")

	// ErrParseFailure is the sentinel every *ParseError unwraps to.
	ErrParseFailure = errors.New("class text could not be parsed")
)

// ParseError carries the parser diagnostic for malformed class text.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse failure at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse failure: %s", e.Message)
}

// Is lets errors.Is(err, ErrParseFailure) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parameter is one parameter of the located procedure.
type Parameter struct {
	Type string
	Name string
	// Comment is the attached comment with its delimiters removed; "" when absent.
	Comment string
}

// Procedure is the located run method.
type Procedure struct {
	Parameters []Parameter
	// Body is the method body without braces, common indentation removed.
	Body string
}

// String renders a human readable summary of p.
func (p *Procedure) String() string {
	var b strings.Builder
	b.WriteString("Parameters:\n")
	for _, param := range p.Parameters {
		fmt.Fprintf(&b, "  %s %s // %s\n", param.Type, param.Name, param.Comment)
	}
	b.WriteString("\nMethod Body:\n")
	b.WriteString(p.Body)
	return strings.TrimRight(b.String(), "\n")
}

// Locator selects the run method using a structural parser.
type Locator struct {
	parser javasrc.Parser
}

// New returns a Locator backed by parser.
func New(parser javasrc.Parser) *Locator {
	return &Locator{parser: parser}
}

// Locate parses src and returns its run procedure.
func (l *Locator) Locate(ctx context.Context, src string) (*Procedure, error) {
	unit, err := l.parser.Parse(ctx, []byte(src))
	if err != nil {
		var serr *javasrc.SyntaxError
		if errors.As(err, &serr) {
			return nil, &ParseError{Line: serr.Line, Column: serr.Column, Message: serr.Message, Err: err}
		}
		return nil, &ParseError{Message: err.Error(), Err: err}
	}

	for _, m := range unit.Methods {
		if !Qualifies(m) {
			continue
		}
		logging.LocateDebug("locate: selected %s at line %d (%d params)", m.Name, m.Line, len(m.Params))
		return procedureFrom(m), nil
	}

	logging.LocateDebug("locate: none of %d method(s) qualifies", len(unit.Methods))
	return nil, ErrNotFound
}

// Qualifies reports whether m is named run, externally visible and callable
// without an instance. Static interface methods are implicitly public, so an
// interface's static run qualifies without an explicit public modifier
// unless it is declared private. This is wider than a check on the written
// modifiers alone, which would reject such a method.
func Qualifies(m javasrc.Method) bool {
	if m.Name != ProcedureName || !m.HasModifier("static") {
		return false
	}
	if m.HasModifier("public") {
		return true
	}
	return m.InInterface && !m.HasModifier("private")
}

func procedureFrom(m javasrc.Method) *Procedure {
	p := &Procedure{Parameters: make([]Parameter, 0, len(m.Params))}
	for _, param := range m.Params {
		p.Parameters = append(p.Parameters, Parameter{
			Type:    strings.TrimSpace(param.Type),
			Name:    strings.TrimSpace(param.Name),
			Comment: CommentText(param.Comment),
		})
	}
	if m.Body != nil {
		p.Body = TrimIndent(*m.Body)
	}
	return p
}

var (
	leadingDelims  = regexp.MustCompile(`^\s*[/*]+`)
	trailingDelims = regexp.MustCompile(`[/*]+\s*$`)
)

// CommentText strips comment delimiters from raw and collapses it to a single
// trimmed line. Javadoc-style leading stars on continuation lines are removed.
func CommentText(raw string) string {
	s := leadingDelims.ReplaceAllString(raw, "")
	s = trailingDelims.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	parts := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i > 0 {
			line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// TrimIndent drops a blank first and last line and removes the smallest
// indentation shared by the non-blank lines, along with trailing whitespace on
// every line. Blank lines inside become empty.
func TrimIndent(s string) string {
	lines := strings.Split(s, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || w < minIndent {
			minIndent = w
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	out := make([]string, 0, len(lines))
	last := len(lines) - 1
	for i, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && (i == 0 || i == last) {
			continue
		}
		if blank {
			out = append(out, "")
			continue
		}
		out = append(out, strings.TrimRight(line[minIndent:], " \t\r"))
	}
	return strings.Join(out, "\n")
}
