package ux

import (
	"fmt"
	"io"
	"sync"
	"time"

	"javaxify/internal/convert"
	"javaxify/internal/workspace"

	"github.com/charmbracelet/lipgloss"
)

// Notifier writes one line per conversion outcome. It is safe for use from
// several goroutines.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	plain  bool
	styles Styles
}

// NewNotifier returns a Notifier writing to out. With noColor set, output
// carries no escape sequences.
func NewNotifier(out io.Writer, noColor bool) *Notifier {
	return &Notifier{
		out:    out,
		plain:  noColor,
		styles: NewStyles(lipgloss.NewRenderer(out), DetectTheme()),
	}
}

func (n *Notifier) render(s lipgloss.Style, text string) string {
	if n.plain {
		return text
	}
	return s.Render(text)
}

func (n *Notifier) println(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, line)
}

// Success reports a written output file.
func (n *Notifier) Success(source, output string) {
	n.println(fmt.Sprintf("%s %s %s %s",
		n.render(n.styles.OK, "✓"),
		n.render(n.styles.Path, source),
		n.render(n.styles.Muted, "->"),
		n.render(n.styles.Path, output)))
}

// Failure reports a failed conversion, labelled with its kind.
func (n *Notifier) Failure(source string, err error) {
	n.println(fmt.Sprintf("%s %s %s %v",
		n.render(n.styles.Fail, "✗"),
		n.render(n.styles.Path, source),
		n.render(n.styles.Kind, "["+string(convert.KindOf(err))+"]"),
		err))
}

// Created reports newly created input stubs.
func (n *Notifier) Created(paths []string) {
	for _, p := range paths {
		n.println(fmt.Sprintf("   %s %s", n.render(n.styles.Muted, "created"), n.render(n.styles.Path, p)))
	}
}

// Result reports a single workspace result.
func (n *Notifier) Result(res workspace.Result) {
	if res.Err != nil {
		n.Failure(res.Source, res.Err)
		return
	}
	n.Success(res.Source, res.Output)
	n.Created(res.Created)
}

// Report reports every result of a batch run followed by a summary line.
func (n *Notifier) Report(r *workspace.Report) {
	for _, res := range r.Results {
		n.Result(res)
	}
	n.println(fmt.Sprintf("%s %d succeeded, %d failed %s",
		n.render(n.styles.Heading, string(r.Direction)+":"),
		r.Succeeded, r.Failed,
		n.render(n.styles.Muted, fmt.Sprintf("(run %s, %v)", r.RunID, r.Duration.Round(time.Millisecond)))))
}
