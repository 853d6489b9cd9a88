// Package scriptgen renders a located run procedure back into script form.
package scriptgen

import (
	"fmt"
	"strings"

	"javaxify/internal/locate"
	"javaxify/internal/logging"
	"javaxify/internal/script"
)

// Generate emits one binding per parameter, a blank line, then the body.
//
// A parameter with a comment uses the comment text as its initializer,
// unchecked. Without one it becomes `(T) **name`, keyed by the parameter name.
func Generate(p *locate.Procedure) string {
	var b strings.Builder
	for _, param := range p.Parameters {
		b.WriteString(Binding(param))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(p.Body)
	if p.Body != "" && !strings.HasSuffix(p.Body, "\n") {
		b.WriteByte('\n')
	}

	logging.GenerateDebug("scriptgen: %d binding(s), %d body byte(s)", len(p.Parameters), len(p.Body))
	return b.String()
}

// Binding renders the statement for one parameter, terminated with ";".
func Binding(param locate.Parameter) string {
	init := strings.TrimSpace(param.Comment)
	if init == "" {
		init = fmt.Sprintf("(%s) %s%s", param.Type, script.PlaceholderMarker, param.Name)
	}
	stmt := fmt.Sprintf("%s %s = %s", param.Type, param.Name, init)
	if !strings.HasSuffix(stmt, ";") {
		stmt += ";"
	}
	return stmt
}
