// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diffview renders line diffs of planned file changes for dry-run
// previews.
package diffview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 2

type line struct {
	op   diffmatchpatch.Operation
	text string
}

// Unified returns a unified-style diff of before and after, or "" when they
// are equal. Unchanged runs longer than twice the context are elided with a
// "@@" marker carrying the line number of the next hunk.
func Unified(path, before, after string, context int) string {
	if before == after {
		return ""
	}
	if context < 0 {
		context = DefaultContext
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []line
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			lines = append(lines, line{op: d.Type, text: l})
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	oldLine := 0
	for i := 0; i < len(lines); {
		if lines[i].op != diffmatchpatch.DiffEqual {
			writeLine(&sb, lines[i])
			if lines[i].op == diffmatchpatch.DiffDelete {
				oldLine++
			}
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].op == diffmatchpatch.DiffEqual {
			j++
		}
		run := j - i
		lead, trail := context, context
		if i == 0 {
			lead = 0
		}
		if j == len(lines) {
			trail = 0
		}
		if run <= lead+trail {
			for k := i; k < j; k++ {
				writeLine(&sb, lines[k])
			}
		} else {
			for k := i; k < i+lead; k++ {
				writeLine(&sb, lines[k])
			}
			if j < len(lines) {
				fmt.Fprintf(&sb, "@@ line %d @@\n", oldLine+run-trail+1)
			}
			for k := j - trail; k < j; k++ {
				writeLine(&sb, lines[k])
			}
		}
		oldLine += run
		i = j
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, l line) {
	switch l.op {
	case diffmatchpatch.DiffInsert:
		sb.WriteString("+")
	case diffmatchpatch.DiffDelete:
		sb.WriteString("-")
	default:
		sb.WriteString(" ")
	}
	sb.WriteString(l.text)
	sb.WriteString("\n")
}

// Similarity returns the Levenshtein similarity of a and b in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
