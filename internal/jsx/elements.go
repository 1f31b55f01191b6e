// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package jsx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Attr is one JSX attribute. Value holds the static value when one can be
// read without evaluation: true for a bare attribute, string, float64,
// bool, nil for null, or types.Expr for anything else.
type Attr struct {
	Name   string
	Value  any
	Raw    string // Value source text, empty for a bare attribute
	Spread bool   // {...props}; Value holds the spread expression
	Line   int

	// ValueStart and ValueEnd span the value source; both are zero for a
	// bare or spread attribute.
	ValueStart int
	ValueEnd   int
}

// Element is a JSX element. Byte ranges index the file source: [Start, End)
// spans the whole element and, for non-self-closing elements, the children
// are [OpenEnd, CloseStart).
type Element struct {
	Name        string
	Line        int
	Start       int
	End         int
	OpenEnd     int
	CloseStart  int
	SelfClosing bool
	Attrs       []Attr
	Parent      int  // Index of the enclosing element, -1 at top level
	Malformed   bool // Contains a syntax error inside the tag
}

// Root returns the first segment of a member-expression name such as
// "Card" in "Card.Header".
func (e Element) Root() string {
	if i := strings.IndexByte(e.Name, '.'); i >= 0 {
		return e.Name[:i]
	}
	return e.Name
}

// IsComponent reports whether the element names a component rather than an
// intrinsic DOM element.
func (e Element) IsComponent() bool {
	r := e.Root()
	return r != "" && r[0] >= 'A' && r[0] <= 'Z'
}

// Attr returns the named attribute.
func (e Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if !a.Spread && a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// HasAttr reports whether the element sets the named attribute.
func (e Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// HasSpread reports whether the element spreads props, which may supply any
// attribute.
func (e Element) HasSpread() bool {
	for _, a := range e.Attrs {
		if a.Spread {
			return true
		}
	}
	return false
}

// Elements returns every JSX element in document order. Parents precede
// their descendants.
func (f *File) Elements() []Element {
	if f.elements != nil {
		return f.elements
	}
	out := []Element{}
	var visit func(n *sitter.Node, parent int)
	visit = func(n *sitter.Node, parent int) {
		switch n.Type() {
		case "jsx_element", "jsx_self_closing_element":
			el := f.element(n)
			el.Parent = parent
			out = append(out, el)
			parent = len(out) - 1
		}
		for _, c := range namedChildren(n) {
			visit(c, parent)
		}
	}
	visit(f.root, -1)
	f.elements = out
	return out
}

// Children returns the indexes of the direct child elements of els[i].
func Children(els []Element, i int) []int {
	var out []int
	for j := i + 1; j < len(els); j++ {
		if els[j].Start >= els[i].End {
			break
		}
		if els[j].Parent == i {
			out = append(out, j)
		}
	}
	return out
}

func (f *File) element(n *sitter.Node) Element {
	el := Element{Start: f.skipSpace(start(n), end(n)), End: end(n)}
	el.Line = f.LineAt(el.Start)
	tag := n
	if n.Type() == "jsx_element" {
		tag = n.ChildByFieldName("open_tag")
		if tag == nil {
			for _, c := range namedChildren(n) {
				if c.Type() == "jsx_opening_element" {
					tag = c
					break
				}
			}
		}
		if tag == nil {
			el.Malformed = true
			return el
		}
		el.OpenEnd = end(tag)
		el.CloseStart = el.End
		if closeTag := n.ChildByFieldName("close_tag"); closeTag != nil {
			el.CloseStart = f.skipSpace(start(closeTag), end(closeTag))
		} else {
			for _, c := range namedChildren(n) {
				if c.Type() == "jsx_closing_element" {
					el.CloseStart = f.skipSpace(start(c), end(c))
				}
			}
		}
	} else {
		el.SelfClosing = true
		el.OpenEnd = el.End
		el.CloseStart = el.End
	}
	el.Malformed = tag.HasError()

	if name := tag.ChildByFieldName("name"); name != nil {
		el.Name = f.content(name)
	}
	for _, c := range namedChildren(tag) {
		switch c.Type() {
		case "identifier", "member_expression", "nested_identifier", "jsx_namespace_name":
			if el.Name == "" {
				el.Name = f.content(c)
			}
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, f.attribute(c))
		case "jsx_expression":
			inner := innerExpr(f.content(c))
			el.Attrs = append(el.Attrs, Attr{
				Spread: true,
				Value:  types.Expr(inner),
				Raw:    strings.TrimSpace(f.content(c)),
				Line:   f.LineAt(f.skipSpace(start(c), end(c))),
			})
		}
	}
	return el
}

func (f *File) attribute(n *sitter.Node) Attr {
	a := Attr{Line: f.LineAt(f.skipSpace(start(n), end(n))), Value: true}
	kids := namedChildren(n)
	if len(kids) == 0 {
		return a
	}
	a.Name = f.content(kids[0])
	if len(kids) < 2 {
		return a
	}
	v := kids[1]
	a.ValueStart, a.ValueEnd = f.skipSpace(start(v), end(v)), end(v)
	a.Raw = f.Text(a.ValueStart, a.ValueEnd)
	switch v.Type() {
	case "string":
		a.Value = unquote(a.Raw)
	case "jsx_expression":
		a.Value = Literal(innerExpr(a.Raw))
	default:
		a.Value = types.Expr(a.Raw)
	}
	return a
}

// innerExpr strips the braces of a JSX expression container.
func innerExpr(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	return strings.TrimSpace(raw)
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

var numberLiteral = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// Literal converts a JavaScript expression to a static value when it is a
// number, boolean, null or plain string literal. Anything else is returned
// as types.Expr.
func Literal(expr string) any {
	switch expr {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if numberLiteral.MatchString(expr) {
		if n, err := strconv.ParseFloat(expr, 64); err == nil {
			return n
		}
	}
	if len(expr) >= 2 {
		q := expr[0]
		if (q == '"' || q == '\'' || q == '`') && expr[len(expr)-1] == q {
			body := expr[1 : len(expr)-1]
			if !strings.ContainsRune(body, rune(q)) && !strings.Contains(body, "\\") &&
				!(q == '`' && strings.Contains(body, "${")) {
				return body
			}
		}
	}
	return types.Expr(expr)
}

// FormatAttr renders a prop as JSX attribute source.
func FormatAttr(name string, v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return name
		}
		return name + "={false}"
	case string:
		if strings.ContainsAny(x, "\"\n{}") {
			return name + "={" + strconv.Quote(x) + "}"
		}
		return name + `="` + x + `"`
	case float64:
		return name + "={" + strconv.FormatFloat(x, 'f', -1, 64) + "}"
	case int:
		return name + "={" + strconv.Itoa(x) + "}"
	case nil:
		return name + "={null}"
	case types.Expr:
		return name + "={" + string(x) + "}"
	default:
		return name + "={" + fmt.Sprint(x) + "}"
	}
}

// FormatSpread renders a spread attribute.
func FormatSpread(v any) string {
	s := fmt.Sprint(v)
	if !strings.HasPrefix(s, "...") {
		s = "..." + s
	}
	return "{" + s + "}"
}

// InnerText returns the concatenated jsx_text of an element and its
// descendants, with whitespace collapsed.
func (f *File) InnerText(el Element) string {
	if el.SelfClosing {
		return ""
	}
	var b strings.Builder
	walk(f.root, func(n *sitter.Node) bool {
		s, e := start(n), end(n)
		if e <= el.OpenEnd || s >= el.CloseStart {
			return false
		}
		if n.Type() == "jsx_text" && s >= el.OpenEnd && e <= el.CloseStart {
			b.WriteString(f.content(n))
			b.WriteByte(' ')
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// HasExpressionChild reports whether an element has a {expression} child,
// which may render text at runtime.
func (f *File) HasExpressionChild(el Element) bool {
	if el.SelfClosing {
		return false
	}
	found := false
	walk(f.root, func(n *sitter.Node) bool {
		if found {
			return false
		}
		s, e := start(n), end(n)
		if e <= el.OpenEnd || s >= el.CloseStart {
			return false
		}
		if n.Type() == "jsx_expression" && s >= el.OpenEnd && e <= el.CloseStart {
			if innerExpr(f.content(n)) != "" && !strings.HasPrefix(strings.TrimSpace(innerExpr(f.content(n))), "/*") {
				found = true
			}
			return false
		}
		return true
	})
	return found
}
