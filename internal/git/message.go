// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

const (
	maxSubjectLength = 72
	maxListedFiles   = 20
)

// commitTypes maps summary keywords to conventional commit types.
var commitTypes = []struct {
	keywords []string
	prefix   string
}{
	{[]string{"fix", "repair", "restore"}, "fix"},
	{[]string{"prune", "remove", "delete", "clean up", "cleanup", "unused"}, "chore"},
	{[]string{"css", "style", "styles", "stylesheet"}, "style"},
	{[]string{"test", "tests", "coverage"}, "test"},
	{[]string{"migrate", "codemod", "replace", "rename", "refactor"}, "refactor"},
}

// GenerateMessage creates a conventional commit message from a run summary
// and the touched files.
func GenerateMessage(summary string, files []string) string {
	if strings.TrimSpace(summary) == "" {
		summary = "migrate legacy components to the unified library"
	}
	msg := buildSubject(inferCommitType(summary), summary)
	if body := buildBody(files); body != "" {
		msg += "\n\n" + body
	}
	return msg + "\n\n" + migratedByTrailer
}

// inferCommitType determines the conventional commit type from summary
// keywords, defaulting to refactor.
func inferCommitType(summary string) string {
	lower := strings.ToLower(summary)
	for _, ct := range commitTypes {
		for _, kw := range ct.keywords {
			if containsWord(lower, kw) {
				return ct.prefix
			}
		}
	}
	return "refactor"
}

// containsWord checks whether text contains keyword as a whole word.
// Multi-word keywords fall back to substring matching.
func containsWord(text, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}
	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		leftOK := start == 0 || !unicode.IsLetter(rune(text[start-1]))
		rightOK := end == len(text) || !unicode.IsLetter(rune(text[end]))
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

// buildSubject creates the first line: "type: summary", at most 72 chars.
func buildSubject(commitType, summary string) string {
	summary = strings.TrimSpace(summary)
	summary = strings.ToLower(summary[:1]) + summary[1:]
	summary = strings.TrimRight(summary, ".")

	subject := fmt.Sprintf("%s: %s", commitType, summary)
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

// buildBody lists the touched files, capped at maxListedFiles.
func buildBody(files []string) string {
	if len(files) == 0 {
		return ""
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Touched files (%d):\n", len(files))
	for i, f := range files {
		if i == maxListedFiles {
			fmt.Fprintf(&buf, "- ... and %d more\n", len(files)-maxListedFiles)
			break
		}
		fmt.Fprintf(&buf, "- %s\n", path.Clean(f))
	}
	return buf.String()
}
