// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package verify runs a project's lint or build command after a migration
// and parses its diagnostics.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

const (
	defaultTimeout      = 120 * time.Second
	defaultContextLines = 2
	defaultMaxOutput    = 4096
)

// ErrNoCommand is returned when no command is configured.
var ErrNoCommand = errors.New("no verification command")

// Config configures Run.
type Config struct {
	WorkDir      string
	Command      string        // Split on whitespace; no shell quoting
	Timeout      time.Duration // Default 120s
	ContextLines int           // Lines of code around each problem (default 2)
	MaxOutput    int           // Raw output kept in the result (default 4096 bytes)
}

// Run executes the command in cfg.WorkDir and parses its output. A
// non-zero exit is reported through Verification.OK, not as an error;
// errors are returned only when the command cannot be configured.
func Run(ctx context.Context, cfg Config) (*types.Verification, error) {
	parts := strings.Fields(cfg.Command)
	if len(parts) == 0 {
		return nil, ErrNoCommand
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	contextLines := cfg.ContextLines
	if contextLines == 0 {
		contextLines = defaultContextLines
	}
	maxOutput := cfg.MaxOutput
	if maxOutput == 0 {
		maxOutput = defaultMaxOutput
	}

	start := time.Now()
	out, err := runCommand(ctx, cfg.WorkDir, timeout, parts[0], parts[1:]...)
	res := &types.Verification{
		Command:  cfg.Command,
		OK:       err == nil,
		Duration: time.Since(start),
		Problems: ParseProblems(out),
	}
	if err != nil && !res.OK && len(res.Problems) == 0 {
		out = strings.TrimSpace(out + "\n" + err.Error())
	}
	if len(out) > maxOutput {
		out = out[:maxOutput] + "\n... (truncated)"
	}
	res.Output = out

	for i := range res.Problems {
		p := &res.Problems[i]
		path := p.FilePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.WorkDir, path)
		} else if rel, err := filepath.Rel(cfg.WorkDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			p.FilePath = filepath.ToSlash(rel)
		}
		p.Context = CodeContext(path, p.Line, contextLines)
	}
	return res, nil
}

// runCommand executes a command with a timeout and captures combined output.
func runCommand(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return buf.String(), fmt.Errorf("%s timed out after %s", name, timeout)
	}
	return buf.String(), err
}

// Diagnostic line formats:
//
//	src/App.jsx:10:5: message      (eslint unix, stylelint)
//	src/App.jsx:10: message
//	src/App.tsx(10,5): error TS2304: message      (tsc)
var (
	colonRegex = regexp.MustCompile(`^(.+?\.(?:jsx?|tsx?|mjs|cjs|css|scss)):(\d+)(?::(\d+))?:? (.+)$`)
	tscRegex   = regexp.MustCompile(`^(.+?\.(?:jsx?|tsx?|mjs|cjs))\((\d+),(\d+)\): (.+)$`)
)

// ParseProblems extracts file diagnostics from command output.
func ParseProblems(output string) []types.VerifyProblem {
	var problems []types.VerifyProblem
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := colonRegex.FindStringSubmatch(line)
		if m == nil {
			m = tscRegex.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}
		lineNum, _ := strconv.Atoi(m[2])
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		problems = append(problems, types.VerifyProblem{
			FilePath: m[1],
			Line:     lineNum,
			Column:   col,
			Message:  m[4],
		})
	}
	return problems
}
