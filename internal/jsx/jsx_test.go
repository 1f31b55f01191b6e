// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package jsx

import (
	"context"
	"testing"

	"github.com/petar-djukic/unimigrate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, path, src string) *File {
	t.Helper()
	f, err := ParseString(context.Background(), path, src)
	require.NoError(t, err)
	return f
}

func TestLanguageFor(t *testing.T) {
	for _, ext := range []string{"a.js", "a.jsx", "a.ts", "a.tsx", "A.JSX", "a.mjs"} {
		_, ok := LanguageFor(ext)
		assert.True(t, ok, ext)
	}
	_, ok := LanguageFor("style.css")
	assert.False(t, ok)
	assert.False(t, Supported("README.md"))
}

func TestParse_Unsupported(t *testing.T) {
	_, err := ParseString(context.Background(), "a.css", ".a {}")
	assert.ErrorIs(t, err, ErrUnsupported)
}

const dashboardSrc = `import React from 'react';
import { EnhancedCard, PrimaryButton as Btn } from "../legacy";
import * as Icons from './icons';

export default function Dashboard({ title, onSave }) {
  return (
    <EnhancedCard elevation={2} title="Vitals" outlined>
      <Btn onClick={onSave} size='sm' {...rest}>Save</Btn>
      <img src={logo} />
    </EnhancedCard>
  );
}
`

func TestImports(t *testing.T) {
	f := parse(t, "Dashboard.jsx", dashboardSrc)
	imps := f.Imports()
	require.Len(t, imps, 3)

	assert.Equal(t, "react", imps[0].Source)
	assert.Equal(t, "React", imps[0].Default)
	assert.Equal(t, byte('\''), imps[0].Quote)
	assert.True(t, imps[0].Semicolon)
	assert.Equal(t, 1, imps[0].Line)

	assert.Equal(t, "../legacy", imps[1].Source)
	assert.Equal(t, byte('"'), imps[1].Quote)
	assert.Equal(t, []Specifier{
		{Imported: "EnhancedCard", Local: "EnhancedCard"},
		{Imported: "PrimaryButton", Local: "Btn"},
	}, imps[1].Named)
	assert.Equal(t, 2, imps[1].Line)

	assert.Equal(t, "Icons", imps[2].Namespace)
	assert.Equal(t, []string{"Icons"}, imps[2].Locals())

	stmt := f.Text(imps[1].Start, imps[1].End)
	assert.Equal(t, `import { EnhancedCard, PrimaryButton as Btn } from "../legacy";`, stmt)
}

func TestExports(t *testing.T) {
	src := `export function EnhancedCard() { return null; }
export const InfoCard = () => null, StatsCard = () => null;
class CustomCard {}
export { CustomCard };
`
	f := parse(t, "cards.js", src)
	var names []string
	for _, e := range f.Exports() {
		names = append(names, e.Name+"="+e.Local)
	}
	assert.Equal(t, []string{
		"EnhancedCard=EnhancedCard",
		"InfoCard=InfoCard",
		"StatsCard=StatsCard",
		"CustomCard=CustomCard",
	}, names)
}

func TestExports_Default(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		local string
	}{
		{"identifier", "const EnhancedCard = () => null;\nexport default EnhancedCard;\n", "EnhancedCard"},
		{"function declaration", "export default function EnhancedCard() { return null; }\n", "EnhancedCard"},
		{"wrapped", "const EnhancedCard = () => null;\nexport default React.memo(EnhancedCard);\n", "EnhancedCard"},
		{"anonymous", "export default () => null;\n", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exps := parse(t, "card.jsx", tc.src).Exports()
			require.Len(t, exps, 1)
			assert.True(t, exps[0].Default)
			assert.Equal(t, "default", exps[0].Name)
			assert.Equal(t, tc.local, exps[0].Local)
		})
	}
}

func TestDeclarations(t *testing.T) {
	src := `import Foo from './foo';
function Page({ Header, footer: Footer }) {
  const Body = () => null;
  let [First, Second] = pair;
  class Panel {}
  return <Header />;
}
const render = Item => <Item />;
`
	decl := parse(t, "page.jsx", src).Declarations()
	for _, name := range []string{"Page", "Header", "Footer", "Body", "First", "Second", "Panel", "render", "Item"} {
		assert.True(t, decl[name], name)
	}
	assert.False(t, decl["Foo"], "imports are not declarations")
	assert.False(t, decl["footer"], "pair keys are not bindings")
}

func TestElements(t *testing.T) {
	f := parse(t, "Dashboard.jsx", dashboardSrc)
	els := f.Elements()
	require.Len(t, els, 3)

	card := els[0]
	assert.Equal(t, "EnhancedCard", card.Name)
	assert.Equal(t, 7, card.Line)
	assert.Equal(t, -1, card.Parent)
	assert.False(t, card.SelfClosing)
	assert.False(t, card.Malformed)
	require.Len(t, card.Attrs, 3)
	elevation := card.Attrs[0]
	assert.Equal(t, "elevation", elevation.Name)
	assert.Equal(t, 2.0, elevation.Value)
	assert.Equal(t, "{2}", elevation.Raw)
	assert.Equal(t, 7, elevation.Line)
	assert.Equal(t, "{2}", f.Text(elevation.ValueStart, elevation.ValueEnd))
	assert.Equal(t, "Vitals", card.Attrs[1].Value)
	assert.Equal(t, true, card.Attrs[2].Value)
	assert.Equal(t, "</EnhancedCard>", f.Text(card.CloseStart, card.End))

	btn := els[1]
	assert.Equal(t, "Btn", btn.Name)
	assert.Equal(t, 0, btn.Parent)
	assert.Equal(t, 8, btn.Line)
	assert.Equal(t, "<Btn onClick={onSave} size='sm' {...rest}>", f.Text(btn.Start, btn.OpenEnd))
	assert.Equal(t, "</Btn>", f.Text(btn.CloseStart, btn.End))
	assert.Equal(t, 8, btn.Attrs[2].Line)
	assert.Equal(t, types.Expr("onSave"), btn.Attrs[0].Value)
	assert.Equal(t, "sm", btn.Attrs[1].Value)
	assert.True(t, btn.Attrs[2].Spread)
	assert.Equal(t, types.Expr("...rest"), btn.Attrs[2].Value)
	assert.True(t, btn.HasSpread())
	assert.Equal(t, "Save", f.Text(btn.OpenEnd, btn.CloseStart))

	img := els[2]
	assert.True(t, img.SelfClosing)
	assert.Equal(t, 9, img.Line)
	assert.Equal(t, "<img src={logo} />", f.Text(img.Start, img.End))
	assert.False(t, img.IsComponent())
	assert.Equal(t, []int{1, 2}, Children(els, 0))
}

func TestElements_NestedRangesStartAtTag(t *testing.T) {
	src := "const x = (\n  <div>\n    <h2>Title</h2>\n    <Widget />\n  </div>\n);\n"
	f := parse(t, "a.jsx", src)
	els := f.Elements()
	require.Len(t, els, 3)

	tests := []struct {
		name string
		line int
		text string
	}{
		{name: "div", line: 2, text: "<div>\n    <h2>Title</h2>\n    <Widget />\n  </div>"},
		{name: "h2", line: 3, text: "<h2>Title</h2>"},
		{name: "Widget", line: 4, text: "<Widget />"},
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, els[i].Name)
			assert.Equal(t, tc.line, els[i].Line)
			assert.Equal(t, tc.text, f.Text(els[i].Start, els[i].End))
		})
	}
	assert.Equal(t, "</div>", f.Text(els[0].CloseStart, els[0].End))
}

func TestElements_MemberName(t *testing.T) {
	f := parse(t, "a.jsx", "const x = <Card.Header>Hi</Card.Header>;\n")
	els := f.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "Card.Header", els[0].Name)
	assert.Equal(t, "Card", els[0].Root())
	assert.True(t, els[0].IsComponent())
}

func TestElements_TSX(t *testing.T) {
	src := `import { DataTable } from '@/legacy';
type Props = { rows: Row[] };
export const Patients = ({ rows }: Props) => <DataTable data={rows} striped />;
`
	f := parse(t, "Patients.tsx", src)
	els := f.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "DataTable", els[0].Name)
	assert.Equal(t, types.Expr("rows"), els[0].Attrs[0].Value)
	assert.Equal(t, true, els[0].Attrs[1].Value)
}

func TestInnerText(t *testing.T) {
	f := parse(t, "a.jsx", "const b = <button>\n  <span>Save</span>\n  changes\n</button>;\nconst c = <button>{label}</button>;\nconst d = <button><Icon /></button>;\n")
	els := f.Elements()
	require.Len(t, els, 5)

	assert.Equal(t, "Save changes", f.InnerText(els[0]))
	assert.False(t, f.HasExpressionChild(els[0]))
	assert.Equal(t, "", f.InnerText(els[2]))
	assert.True(t, f.HasExpressionChild(els[2]))
	assert.Equal(t, "", f.InnerText(els[3]))
	assert.False(t, f.HasExpressionChild(els[3]))
}

func TestIdentifiers(t *testing.T) {
	src := "import { EnhancedCard } from './legacy';\nconst Styled = styled(EnhancedCard);\nconst x = <EnhancedCard>a</EnhancedCard>;\nconst y = obj.EnhancedCard;\n"
	f := parse(t, "a.jsx", src)
	ranges := f.Identifiers("EnhancedCard")
	require.Len(t, ranges, 3, "import binding and property access are excluded")
	for _, r := range ranges {
		assert.Equal(t, "EnhancedCard", f.Text(r.Start, r.End))
		assert.Greater(t, f.LineAt(r.Start), 1)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"2", 2.0},
		{"-1.5", -1.5},
		{"true", true},
		{"false", false},
		{"null", nil},
		{`"x"`, "x"},
		{"'y'", "y"},
		{"`z`", "z"},
		{"`a${b}`", types.Expr("`a${b}`")},
		{"0x10", types.Expr("0x10")},
		{"Infinity", types.Expr("Infinity")},
		{"handleSave", types.Expr("handleSave")},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Literal(tc.in), tc.in)
	}
}

func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"outlined", true, "outlined"},
		{"disabled", false, "disabled={false}"},
		{"variant", "contained", `variant="contained"`},
		{"label", `say "hi"`, `label={"say \"hi\""}`},
		{"elevation", 2.0, "elevation={2}"},
		{"onClick", types.Expr("handleSave"), "onClick={handleSave}"},
		{"value", nil, "value={null}"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatAttr(tc.name, tc.v))
	}
	assert.Equal(t, "{...rest}", FormatSpread(types.Expr("...rest")))
}
