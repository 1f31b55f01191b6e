// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package verify

import (
	"fmt"
	"os"
	"strings"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

// CodeContext returns the numbered lines around line in the file at path,
// with the line itself marked. It returns "" when the file cannot be read.
func CodeContext(path string, line, contextLines int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := max(0, line-contextLines-1)
	end := min(len(lines), line+contextLines)

	var buf strings.Builder
	for i := start; i < end; i++ {
		n := i + 1
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&buf, "%s%4d │ %s\n", marker, n, lines[i])
	}
	return buf.String()
}

// Format renders a verification result for the terminal.
func Format(v *types.Verification) string {
	var buf strings.Builder
	status := "passed"
	if !v.OK {
		status = "failed"
	}
	fmt.Fprintf(&buf, "Verification %s: %s (%s)\n", status, v.Command, v.Duration.Round(1e6))

	for _, p := range v.Problems {
		if p.Column > 0 {
			fmt.Fprintf(&buf, "\n%s:%d:%d: %s\n", p.FilePath, p.Line, p.Column, p.Message)
		} else {
			fmt.Fprintf(&buf, "\n%s:%d: %s\n", p.FilePath, p.Line, p.Message)
		}
		buf.WriteString(p.Context)
	}
	if !v.OK && len(v.Problems) == 0 && v.Output != "" {
		buf.WriteString("\n")
		buf.WriteString(v.Output)
		buf.WriteString("\n")
	}
	return buf.String()
}
