package javasrc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"javaxify/internal/logging"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// TreeSitterParser implements Parser using the tree-sitter Java grammar.
// A fresh sitter.Parser is created per call, so one TreeSitterParser can be
// shared between goroutines.
type TreeSitterParser struct{}

// NewTreeSitterParser creates a new tree-sitter backed Java parser.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Language returns "java".
func (p *TreeSitterParser) Language() string {
	return "java"
}

// Parse extracts every method declaration from src.
func (p *TreeSitterParser) Parse(ctx context.Context, src []byte) (*Unit, error) {
	start := time.Now()
	logging.ParseDebug("TreeSitter: parsing Java source (%d bytes)", len(src))

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		logging.Get(logging.CategoryParse).Error("TreeSitter: Java parse failed: %v", err)
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		serr := firstSyntaxError(root, src)
		logging.ParseDebug("TreeSitter: syntax error at %s", serr.Error())
		return nil, serr
	}

	unit := &Unit{}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "method_declaration" {
			unit.Methods = append(unit.Methods, methodFrom(n, src))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	logging.ParseDebug("TreeSitter: %d method(s) in %v", len(unit.Methods), time.Since(start))
	return unit, nil
}

// firstSyntaxError returns the first ERROR or MISSING node in pre-order.
func firstSyntaxError(root *sitter.Node, src []byte) *SyntaxError {
	var found *SyntaxError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found != nil {
			return
		}
		pos := n.StartPoint()
		switch {
		case n.IsMissing():
			found = &SyntaxError{
				Line:    int(pos.Row) + 1,
				Column:  int(pos.Column) + 1,
				Message: fmt.Sprintf("missing %s", n.Type()),
			}
			return
		case n.Type() == "ERROR":
			found = &SyntaxError{
				Line:    int(pos.Row) + 1,
				Column:  int(pos.Column) + 1,
				Message: fmt.Sprintf("unexpected %q", snippet(n.Content(src))),
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.HasError() || child.IsMissing() || child.Type() == "ERROR" {
				walk(child)
			}
		}
	}
	walk(root)

	if found == nil {
		found = &SyntaxError{Line: 1, Column: 1, Message: "syntax error"}
	}
	return found
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

func methodFrom(n *sitter.Node, src []byte) Method {
	m := Method{Line: int(n.StartPoint().Row) + 1}

	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = name.Content(src)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "modifiers" {
			m.Modifiers = keywordModifiers(child)
			break
		}
	}

	if parent := n.Parent(); parent != nil {
		switch parent.Type() {
		case "interface_body", "annotation_type_body":
			m.InInterface = true
		}
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Params = paramsFrom(params, src)
	}

	if body := n.ChildByFieldName("body"); body != nil {
		text := body.Content(src)
		if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") && len(text) >= 2 {
			inner := text[1 : len(text)-1]
			m.Body = &inner
		}
	}

	return m
}

// keywordModifiers returns the anonymous keyword children of a modifiers node.
func keywordModifiers(mods *sitter.Node) []string {
	var out []string
	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(i)
		if !child.IsNamed() {
			out = append(out, child.Type())
		}
	}
	return out
}

func isComment(n *sitter.Node) bool {
	return strings.HasSuffix(n.Type(), "comment")
}

// paramItem is a parameter or a comment in source order.
type paramItem struct {
	comment  string
	row      uint32
	param    int // index into params, -1 for comments
	attached bool
}

// paramsFrom reads a formal_parameters node.
//
// Comment attachment: a line comment starting on the row where a parameter
// ends belongs to that parameter; any other comment belongs to the next
// parameter after it. When several comments compete for one parameter the
// closest one wins.
func paramsFrom(fp *sitter.Node, src []byte) []Param {
	var params []Param
	var items []paramItem
	var lastEnd []uint32

	addComment := func(c *sitter.Node) {
		items = append(items, paramItem{comment: c.Content(src), row: c.StartPoint().Row, param: -1})
	}

	for i := 0; i < int(fp.NamedChildCount()); i++ {
		child := fp.NamedChild(i)
		switch {
		case isComment(child):
			addComment(child)
		case child.Type() == "formal_parameter" || child.Type() == "spread_parameter":
			p, nameEnd := paramFrom(child, src)
			var trailing []*sitter.Node
			for j := 0; j < int(child.NamedChildCount()); j++ {
				inner := child.NamedChild(j)
				if !isComment(inner) {
					continue
				}
				if inner.StartByte() >= nameEnd {
					trailing = append(trailing, inner)
				} else {
					addComment(inner)
				}
			}
			items = append(items, paramItem{param: len(params)})
			params = append(params, p)
			lastEnd = append(lastEnd, codeEndRow(child))
			for _, c := range trailing {
				addComment(c)
			}
		}
	}

	// Same-line trailing line comments first.
	prev := -1
	for i := range items {
		it := &items[i]
		if it.param >= 0 {
			prev = it.param
			continue
		}
		if prev >= 0 && strings.HasPrefix(it.comment, "//") &&
			it.row == lastEnd[prev] && params[prev].Comment == "" {
			params[prev].Comment = it.comment
			it.attached = true
		}
	}

	// Remaining comments attach forward.
	pending := ""
	for _, it := range items {
		if it.param < 0 {
			if !it.attached {
				pending = it.comment
			}
			continue
		}
		if pending != "" && params[it.param].Comment == "" {
			params[it.param].Comment = pending
		}
		pending = ""
	}

	return params
}

// codeEndRow is the row on which the parameter's non-comment text ends.
func codeEndRow(param *sitter.Node) uint32 {
	for j := int(param.ChildCount()) - 1; j >= 0; j-- {
		inner := param.Child(j)
		if !isComment(inner) {
			return inner.EndPoint().Row
		}
	}
	return param.EndPoint().Row
}

// paramFrom reads one formal_parameter or spread_parameter. Varargs are
// reported with an array type. The second result is the end byte of the name.
func paramFrom(n *sitter.Node, src []byte) (Param, uint32) {
	var p Param
	var nameEnd uint32

	if n.Type() == "spread_parameter" {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch {
			case isComment(child), child.Type() == "modifiers":
			case child.Type() == "variable_declarator":
				if name := child.ChildByFieldName("name"); name != nil {
					p.Name = strings.TrimSpace(name.Content(src))
					nameEnd = name.EndByte()
				}
			case p.Type == "":
				p.Type = strings.TrimSpace(child.Content(src)) + "[]"
			}
		}
		return p, nameEnd
	}

	if typ := n.ChildByFieldName("type"); typ != nil {
		p.Type = strings.TrimSpace(typ.Content(src))
	}
	if name := n.ChildByFieldName("name"); name != nil {
		p.Name = strings.TrimSpace(name.Content(src))
		nameEnd = name.EndByte()
	}
	if dims := n.ChildByFieldName("dimensions"); dims != nil {
		p.Type += strings.Join(strings.Fields(dims.Content(src)), "")
		nameEnd = dims.EndByte()
	}
	return p, nameEnd
}
