// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package jsx parses JavaScript and TypeScript sources with tree-sitter and
// exposes the pieces the migration tools work on: import statements,
// exports, declarations and JSX elements with byte ranges into the source.
package jsx

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupported is returned for files with no registered grammar.
var ErrUnsupported = errors.New("unsupported file type")

// languages maps file extensions to grammars. JSX in .js files is handled by
// the javascript grammar; .ts files use the non-JSX TypeScript grammar so
// that angle-bracket casts parse.
var languages = map[string]func() *sitter.Language{
	".js":  javascript.GetLanguage,
	".jsx": javascript.GetLanguage,
	".mjs": javascript.GetLanguage,
	".cjs": javascript.GetLanguage,
	".ts":  typescript.GetLanguage,
	".tsx": tsx.GetLanguage,
}

// DefaultExtensions are the source extensions scanned when none are
// configured.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// LanguageFor returns the grammar for path's extension.
func LanguageFor(path string) (*sitter.Language, bool) {
	get, ok := languages[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return get(), true
}

// Supported reports whether path has a registered grammar.
func Supported(path string) bool {
	_, ok := languages[strings.ToLower(filepath.Ext(path))]
	return ok
}

// File is a parsed source file. It is read-only; rewrites produce new text
// that must be parsed again.
type File struct {
	Path string
	Src  []byte
	root *sitter.Node
	lang *sitter.Language

	elements []Element
}

// Parse parses src with the grammar selected by path's extension.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang, ok := LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	root, err := sitter.ParseCtx(ctx, src, lang)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if root == nil {
		return nil, fmt.Errorf("parsing %s: empty tree", path)
	}
	return &File{Path: path, Src: src, root: root, lang: lang}, nil
}

// ParseString is Parse for string input.
func ParseString(ctx context.Context, path, src string) (*File, error) {
	return Parse(ctx, path, []byte(src))
}

// HasErrors reports whether the tree contains syntax errors. Extraction
// still works on the well-formed parts.
func (f *File) HasErrors() bool { return f.root.HasError() }

// Text returns the source text of the byte range [start, end).
func (f *File) Text(start, end int) string { return string(f.Src[start:end]) }

// LineAt returns the 1-based line of a byte offset.
func (f *File) LineAt(offset int) int {
	if offset > len(f.Src) {
		offset = len(f.Src)
	}
	return strings.Count(string(f.Src[:offset]), "\n") + 1
}

func (f *File) content(n *sitter.Node) string { return n.Content(f.Src) }

// skipSpace advances offset past whitespace, stopping at limit. JSX child
// nodes can start at the line break before their first token.
func (f *File) skipSpace(offset, limit int) int {
	for offset < limit && offset < len(f.Src) {
		switch f.Src[offset] {
		case ' ', '\t', '\n', '\r':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func line(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }

func start(n *sitter.Node) int { return int(n.StartByte()) }

func end(n *sitter.Node) int { return int(n.EndByte()) }

// namedChildren returns the named children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// hasToken reports whether n has an anonymous child with the given text,
// such as the "default" keyword of an export.
func hasToken(n *sitter.Node, tok string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

// walk visits n and its descendants in document order. Returning false from
// visit skips the node's children.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range namedChildren(n) {
		walk(c, visit)
	}
}

// Range is a byte range into a file's source.
type Range struct {
	Start int
	End   int
}

// Identifiers returns the ranges of every identifier node whose text is
// name, outside import statements. JSX tag names are identifier nodes, so
// this covers opening and closing tags as well as value references.
func (f *File) Identifiers(name string) []Range {
	q, err := sitter.NewQuery([]byte(`(identifier) @ref`), f.lang)
	if err != nil {
		return nil
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, f.root)

	var out []Range
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			if f.content(c.Node) != name || insideImport(c.Node) {
				continue
			}
			out = append(out, Range{Start: start(c.Node), End: end(c.Node)})
		}
	}
	return out
}

func insideImport(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "import_statement" {
			return true
		}
	}
	return false
}
