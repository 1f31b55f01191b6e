// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package jsx

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Specifier is one named import, `Imported as Local`.
type Specifier struct {
	Imported string
	Local    string
}

// Import is a top-level import statement.
type Import struct {
	Source    string // Module specifier without quotes
	Quote     byte   // Quote character used for Source
	Default   string // Local name of the default import
	Namespace string // Local name of `* as ns`
	Named     []Specifier
	TypeOnly  bool // `import type { ... }`
	Semicolon bool
	Line      int
	Start     int
	End       int
}

// Locals returns every name the statement binds.
func (i Import) Locals() []string {
	var out []string
	if i.Default != "" {
		out = append(out, i.Default)
	}
	if i.Namespace != "" {
		out = append(out, i.Namespace)
	}
	for _, s := range i.Named {
		out = append(out, s.Local)
	}
	return out
}

// Imports returns the top-level import statements in source order.
func (f *File) Imports() []Import {
	var out []Import
	for _, n := range namedChildren(f.root) {
		if n.Type() != "import_statement" {
			continue
		}
		out = append(out, f.importFrom(n))
	}
	return out
}

func (f *File) importFrom(n *sitter.Node) Import {
	imp := Import{
		Line:      line(n),
		Start:     start(n),
		End:       end(n),
		Quote:     '\'',
		TypeOnly:  hasToken(n, "type"),
		Semicolon: strings.HasSuffix(strings.TrimSpace(f.content(n)), ";"),
	}

	src := n.ChildByFieldName("source")
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "string":
			if src == nil {
				src = c
			}
		case "import_clause":
			f.importClause(c, &imp)
		}
	}
	if src != nil {
		raw := f.content(src)
		if len(raw) >= 2 {
			imp.Quote = raw[0]
			imp.Source = raw[1 : len(raw)-1]
		}
	}
	return imp
}

func (f *File) importClause(n *sitter.Node, imp *Import) {
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "identifier":
			imp.Default = f.content(c)
		case "namespace_import":
			for _, id := range namedChildren(c) {
				if id.Type() == "identifier" {
					imp.Namespace = f.content(id)
				}
			}
		case "named_imports":
			for _, spec := range namedChildren(c) {
				if spec.Type() != "import_specifier" {
					continue
				}
				s := f.specifier(spec)
				if s.Imported != "" {
					imp.Named = append(imp.Named, s)
				}
			}
		}
	}
}

func (f *File) specifier(n *sitter.Node) Specifier {
	var s Specifier
	if name := n.ChildByFieldName("name"); name != nil {
		s.Imported = f.content(name)
	}
	if alias := n.ChildByFieldName("alias"); alias != nil {
		s.Local = f.content(alias)
	}
	if s.Imported == "" {
		ids := namedChildren(n)
		if len(ids) > 0 {
			s.Imported = f.content(ids[0])
		}
		if len(ids) > 1 {
			s.Local = f.content(ids[1])
		}
	}
	if s.Local == "" {
		s.Local = s.Imported
	}
	return s
}

// Export is an exported binding. Name is the exported name ("default" for
// default exports); Local is the binding in this file, empty for anonymous
// defaults.
type Export struct {
	Name    string
	Local   string
	Default bool
	Line    int
}

// Exports returns the top-level exports in source order.
func (f *File) Exports() []Export {
	var out []Export
	for _, n := range namedChildren(f.root) {
		if n.Type() != "export_statement" {
			continue
		}
		out = append(out, f.exportsFrom(n)...)
	}
	return out
}

func (f *File) exportsFrom(n *sitter.Node) []Export {
	isDefault := hasToken(n, "default")
	ln := line(n)

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		var out []Export
		for _, name := range f.declaredNames(decl) {
			e := Export{Name: name, Local: name, Line: ln}
			if isDefault {
				e.Name, e.Default = "default", true
			}
			out = append(out, e)
		}
		return out
	}

	if isDefault {
		e := Export{Name: "default", Default: true, Line: ln}
		if v := n.ChildByFieldName("value"); v != nil {
			e.Local = f.defaultLocal(v)
		}
		return []Export{e}
	}

	var out []Export
	for _, c := range namedChildren(n) {
		if c.Type() != "export_clause" {
			continue
		}
		for _, spec := range namedChildren(c) {
			if spec.Type() != "export_specifier" {
				continue
			}
			s := f.specifier(spec)
			e := Export{Name: s.Local, Local: s.Imported, Line: ln}
			if e.Name == "default" {
				e.Default = true
			}
			out = append(out, e)
		}
	}
	return out
}

// defaultLocal resolves the binding behind `export default <value>`. For a
// wrapped component such as memo(Card) or withRouter(Card) it returns the
// first identifier argument.
func (f *File) defaultLocal(v *sitter.Node) string {
	switch v.Type() {
	case "identifier":
		return f.content(v)
	case "function", "function_expression", "class", "generator_function":
		if name := v.ChildByFieldName("name"); name != nil {
			return f.content(name)
		}
	case "call_expression":
		args := v.ChildByFieldName("arguments")
		if args == nil {
			return ""
		}
		for _, a := range namedChildren(args) {
			switch a.Type() {
			case "identifier":
				return f.content(a)
			case "call_expression":
				if local := f.defaultLocal(a); local != "" {
					return local
				}
			}
		}
	}
	return ""
}

// declaredNames returns the names bound by a declaration node.
func (f *File) declaredNames(n *sitter.Node) []string {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration", "class_declaration",
		"abstract_class_declaration", "function_signature":
		if name := n.ChildByFieldName("name"); name != nil {
			return []string{f.content(name)}
		}
	case "lexical_declaration", "variable_declaration":
		var out []string
		for _, d := range namedChildren(n) {
			if d.Type() != "variable_declarator" {
				continue
			}
			out = append(out, f.patternNames(d.ChildByFieldName("name"))...)
		}
		return out
	}
	return nil
}

// patternNames returns the identifiers bound by a binding pattern.
func (f *File) patternNames(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	walk(n, func(c *sitter.Node) bool {
		switch c.Type() {
		case "identifier", "shorthand_property_identifier_pattern":
			out = append(out, f.content(c))
			return false
		case "pair_pattern":
			// Only the value side of `key: value` binds a name.
			if v := c.ChildByFieldName("value"); v != nil {
				out = append(out, f.patternNames(v)...)
			}
			return false
		case "assignment_pattern", "object_assignment_pattern":
			if l := c.ChildByFieldName("left"); l != nil {
				out = append(out, f.patternNames(l)...)
			}
			return false
		}
		return true
	})
	return out
}

// Declarations returns every name bound anywhere in the file by a function,
// class or variable declaration, or by a function parameter. Imported names
// are not included.
func (f *File) Declarations() map[string]bool {
	out := make(map[string]bool)
	walk(f.root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			return false
		case "function_declaration", "generator_function_declaration", "class_declaration",
			"abstract_class_declaration", "class", "function", "function_expression":
			if name := n.ChildByFieldName("name"); name != nil {
				out[f.content(name)] = true
			}
		case "lexical_declaration", "variable_declaration":
			for _, name := range f.declaredNames(n) {
				out[name] = true
			}
		case "formal_parameters":
			for _, p := range namedChildren(n) {
				target := p
				if pat := p.ChildByFieldName("pattern"); pat != nil {
					target = pat
				}
				for _, name := range f.patternNames(target) {
					out[name] = true
				}
			}
		case "arrow_function":
			if p := n.ChildByFieldName("parameter"); p != nil {
				out[f.content(p)] = true
			}
		}
		return true
	})
	return out
}
