// Package script reads the script form: it finds placeholder bindings
// (`Type name = ... **key ...;`) and separates them from the business logic.
//
// Script text is treated as lines matched by a single anchored pattern, not as
// a parsed grammar. Bindings spanning several lines, several statements on one
// line and semicolons inside string literals are not supported.
package script

import (
	"regexp"
	"strings"

	"javaxify/internal/logging"
)

// PlaceholderMarker precedes the argument key in a binding statement.
const PlaceholderMarker = "**"

// Variable is one placeholder binding found in script text.
type Variable struct {
	// Type is the declared type text with whitespace runs collapsed to one space.
	Type string
	Name string
	// Argument is the placeholder key; the generated class reads inputs/<Argument>.json.
	Argument string
	// Line is the 1-based line number of the binding statement.
	Line int
	// Statement is the original line, untouched.
	Statement string
}

// bindingPattern must match the whole trimmed line. Lines starting with "//"
// are rejected before matching since RE2 has no lookahead.
var bindingPattern = regexp.MustCompile(
	`^\s*(?P<type>[\w.$<>,\s]+?)\s+(?P<name>\w+)\s*=\s*.*?\*\*(?P<arg>\w+).*?;\s*$`,
)

var (
	typeGroup = bindingPattern.SubexpIndex("type")
	nameGroup = bindingPattern.SubexpIndex("name")
	argGroup  = bindingPattern.SubexpIndex("arg")

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// scanState is the block-comment state carried across lines.
type scanState int

const (
	stateNormal scanState = iota
	stateInBlockComment
)

// scan is the fold accumulator.
type scan struct {
	state scanState
	vars  []Variable
}

// step consumes one line. Order matters: an opening "/*" wins over a closing
// "*/" on the same line, so a one-line block comment leaves the scanner inside
// a comment until a later line ends with "*/".
func (s scan) step(lineNo int, line string) scan {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "/*"):
		s.state = stateInBlockComment
	case strings.HasSuffix(trimmed, "*/"):
		s.state = stateNormal
	case s.state == stateInBlockComment:
	default:
		if v, ok := matchBinding(lineNo, line, trimmed); ok {
			s.vars = append(s.vars, v)
		}
	}
	return s
}

func matchBinding(lineNo int, line, trimmed string) (Variable, bool) {
	if strings.HasPrefix(trimmed, "//") {
		return Variable{}, false
	}
	m := bindingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Variable{}, false
	}
	return Variable{
		Type:      whitespaceRun.ReplaceAllString(m[typeGroup], " "),
		Name:      m[nameGroup],
		Argument:  m[argGroup],
		Line:      lineNo,
		Statement: line,
	}, true
}

// Lines splits text the way the extractor and partitioner number it:
// on "\n" only, with a trailing "\r" stripped from each line.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Extract returns the placeholder bindings of text in line order.
// Lines inside a block comment are never captured.
func Extract(text string) []Variable {
	acc := scan{state: stateNormal}
	for i, line := range Lines(text) {
		acc = acc.step(i+1, line)
	}
	logging.ExtractDebug("Extract: %d binding(s) found", len(acc.vars))
	return acc.vars
}
