// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package codemod rewrites legacy component markup into unified component
// markup. Each component family is a separate pass over a fresh parse of
// the previous pass's output; within a pass, matched elements are replaced
// by byte range, outermost first, with nested matches rewritten inside
// their parent's children.
package codemod

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/internal/props"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Result is the outcome of applying the codemod to one file.
type Result struct {
	Text            string
	Changed         bool
	Transformations []types.TransformationRecord
	Warnings        []string
}

// Engine applies the family passes.
type Engine struct {
	table  *mapping.Table
	logger zerolog.Logger
}

// New returns an engine for the components in table.
func New(table *mapping.Table, logger zerolog.Logger) *Engine {
	return &Engine{table: table, logger: logger}
}

// Apply runs the card, button, table and layout passes in that order.
func (e *Engine) Apply(ctx context.Context, path, text string) (*Result, error) {
	res := &Result{Text: text}
	for _, f := range mapping.Families {
		if err := e.applyFamily(ctx, path, f, res); err != nil {
			return nil, err
		}
	}
	res.Changed = res.Text != text
	return res, nil
}

func (e *Engine) applyFamily(ctx context.Context, path string, f mapping.Family, res *Result) error {
	file, err := jsx.ParseString(ctx, path, res.Text)
	if err != nil {
		return fmt.Errorf("codemod %s pass: %w", f, err)
	}
	p := e.newPass(file, f)
	if len(p.sites) == 0 {
		return nil
	}
	res.Text = p.splice(0, len(file.Src))
	res.Transformations = append(res.Transformations, p.records...)
	res.Warnings = append(res.Warnings, p.warnings...)
	e.logger.Debug().
		Str("file", path).
		Str("family", string(f)).
		Int("sites", len(p.records)).
		Msg("codemod pass applied")
	return nil
}

// site is one element to rewrite.
type site struct {
	index   int
	el      jsx.Element
	mapping mapping.Mapping
	tag     string // Tag name to emit
}

type pass struct {
	file     *jsx.File
	src      string
	family   mapping.Family
	sites    []site
	elements []jsx.Element
	records  []types.TransformationRecord
	warnings []string
}

// newPass selects the elements of family f. Elements are matched by the
// local name their import bound, so `import { PrimaryButton as Btn }`
// matches <Btn>; aliased tags keep their local name since the import
// rewriter keeps the alias.
func (e *Engine) newPass(file *jsx.File, f mapping.Family) *pass {
	p := &pass{file: file, src: string(file.Src), family: f, elements: file.Elements()}

	local := make(map[string]string)
	for _, imp := range file.Imports() {
		for _, s := range imp.Named {
			if e.table.IsDeprecated(s.Imported) {
				local[s.Local] = s.Imported
			}
		}
	}

	for i, el := range p.elements {
		if el.Malformed || el.Name == "" {
			continue
		}
		legacy, aliased := local[el.Name]
		if !aliased || legacy == el.Name {
			legacy, aliased = el.Name, false
		}
		m, ok := e.table.Lookup(legacy)
		if !ok || m.Family != f {
			continue
		}
		tag := m.UnifiedName
		if aliased {
			tag = el.Name
		}
		p.sites = append(p.sites, site{index: i, el: el, mapping: m, tag: tag})
	}
	return p
}

// splice returns src[lo:hi] with every site inside it rewritten.
func (p *pass) splice(lo, hi int) string {
	var b strings.Builder
	cursor := lo
	for _, s := range p.sites {
		if s.el.Start < cursor || s.el.End > hi {
			continue
		}
		b.WriteString(p.src[cursor:s.el.Start])
		b.WriteString(p.render(s))
		cursor = s.el.End
	}
	b.WriteString(p.src[cursor:hi])
	return b.String()
}

func (p *pass) render(s site) string {
	res := props.TransformOrdered(s.mapping, attrsToProps(p.spliceAttrs(s.el.Attrs)))
	out := res.Props
	if p.family == mapping.FamilyCard {
		out = dropDefaultVariant(out)
	}
	for _, w := range res.Warnings {
		p.warnings = append(p.warnings, fmt.Sprintf("line %d: %s", s.el.Line, w.Message))
	}

	open := "<" + s.tag + formatProps(out)
	rec := types.TransformationRecord{
		Type:       transformType(p.family),
		LegacyName: s.mapping.LegacyName,
		Line:       s.el.Line,
		Original:   p.src[s.el.Start:s.el.OpenEnd],
	}
	if s.el.SelfClosing {
		rec.Transformed = open + " />"
		p.records = append(p.records, rec)
		return rec.Transformed
	}
	rec.Transformed = open + ">"
	p.records = append(p.records, rec)
	recIdx := len(p.records) - 1

	if p.family == mapping.FamilyCard {
		if heading, ok := p.headingChild(s.index); ok {
			p.records[recIdx].Type = types.TransformCardCompound
			return p.renderCompound(s, open+">", heading)
		}
	}
	children := p.splice(s.el.OpenEnd, s.el.CloseStart)
	return open + ">" + children + "</" + s.tag + ">"
}

// spliceAttrs rewrites sites nested in attribute values, such as
// action={<InfoCard />}, which the children splice never reaches.
func (p *pass) spliceAttrs(attrs []jsx.Attr) []jsx.Attr {
	out := make([]jsx.Attr, len(attrs))
	copy(out, attrs)
	for i, a := range out {
		if a.ValueEnd == 0 || !p.hasSiteIn(a.ValueStart, a.ValueEnd) {
			continue
		}
		raw := p.splice(a.ValueStart, a.ValueEnd)
		out[i].Raw = raw
		if inner, ok := strings.CutPrefix(raw, "{"); ok {
			out[i].Value = jsx.Literal(strings.TrimSpace(strings.TrimSuffix(inner, "}")))
		} else {
			out[i].Value = types.Expr(raw)
		}
	}
	return out
}

func (p *pass) hasSiteIn(lo, hi int) bool {
	for _, s := range p.sites {
		if s.el.Start >= lo && s.el.End <= hi {
			return true
		}
	}
	return false
}

var headingVariant = regexp.MustCompile(`^h[1-6]$`)

// headingChild finds a direct <Typography variant="hN"> child of the
// element at index i.
func (p *pass) headingChild(i int) (jsx.Element, bool) {
	for _, c := range jsx.Children(p.elements, i) {
		el := p.elements[c]
		if el.Name != "Typography" || el.Start < p.elements[i].OpenEnd {
			continue
		}
		if a, ok := el.Attr("variant"); ok {
			if v, isStr := a.Value.(string); isStr && headingVariant.MatchString(v) {
				return el, true
			}
		}
	}
	return jsx.Element{}, false
}

// renderCompound emits the header/body form of a card whose children start
// with a heading.
func (p *pass) renderCompound(s site, open string, heading jsx.Element) string {
	indent := lineIndent(p.src, s.el.Start)
	header := strings.TrimSpace(p.splice(heading.Start, heading.End))
	body := strings.TrimSpace(p.splice(s.el.OpenEnd, heading.Start) + p.splice(heading.End, s.el.CloseStart))

	var b strings.Builder
	b.WriteString(open)
	section := func(name, content string) {
		fmt.Fprintf(&b, "\n%s  <%s.%s>\n%s    %s\n%s  </%s.%s>", indent, s.tag, name, indent, content, indent, s.tag, name)
	}
	section("Header", header)
	if body != "" {
		section("Body", body)
	}
	fmt.Fprintf(&b, "\n%s</%s>", indent, s.tag)
	return b.String()
}

func lineIndent(src string, offset int) string {
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := start
	for end < offset && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}

func attrsToProps(attrs []jsx.Attr) []props.Prop {
	out := make([]props.Prop, len(attrs))
	for i, a := range attrs {
		out[i] = props.Prop{Name: a.Name, Value: a.Value, Spread: a.Spread}
	}
	return out
}

func dropDefaultVariant(in []props.Prop) []props.Prop {
	out := in[:0:0]
	for _, p := range in {
		if !p.Spread && p.Name == "variant" && p.Value == mapping.VariantDefault {
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatProps(ps []props.Prop) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteByte(' ')
		if p.Spread {
			b.WriteString(jsx.FormatSpread(p.Value))
			continue
		}
		b.WriteString(jsx.FormatAttr(p.Name, p.Value))
	}
	return b.String()
}

func transformType(f mapping.Family) types.TransformType {
	switch f {
	case mapping.FamilyCard:
		return types.TransformCardSimple
	case mapping.FamilyButton:
		return types.TransformButton
	case mapping.FamilyTable:
		return types.TransformTable
	default:
		return types.TransformLayout
	}
}
