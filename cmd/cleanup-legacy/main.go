// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command cleanup-legacy migrates a React source tree off the legacy
// component set: it rewrites legacy imports (and optionally markup),
// removes unused legacy files, prunes dead styles and writes
// migration-report.json.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/unimigrate/internal/config"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree reading from in and writing reports
// to out and logs to errOut.
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:           "cleanup-legacy",
		Short:         "Migrate legacy components to the unified library",
		Long:          "cleanup-legacy scans the source tree for legacy components, rewrites their imports to the unified library, removes legacy files nothing imports, and writes migration-report.json.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyWorkDir, ".", "Source tree root")
	pf.String(config.KeyMappingsFile, "", "YAML mapping overlay file")
	pf.BoolP("verbose", "v", false, "Debug logging; show diffs and warnings")
	pf.Bool("log-json", false, "Log JSON lines instead of console output")

	// Cleanup flags.
	f := rootCmd.Flags()
	f.Bool("dry-run", false, "Report intended changes without touching files")
	f.Bool("no-backup", false, "Do not write .backup files before changing files")
	f.Bool("interactive", false, "Confirm each stage before it runs")
	f.Bool("codemod", false, "Also rewrite legacy markup and props")
	f.Bool("prune-styles", false, "Remove unused CSS class rules")
	f.Bool("restore", false, "Restore every file from its backup and exit")
	f.String(config.KeyReportDir, ".", "Directory for report files (relative to workdir)")
	f.String(config.KeyVerifyCmd, "", "Lint/build command run after changes (e.g. 'npx eslint --format unix src')")
	f.Duration(config.KeyVerifyTimeout, 0, "Timeout for the verification command (default 2m)")
	f.Bool(config.KeyGitCommit, false, "Commit the touched files when the run succeeds")
	f.Bool(config.KeyRequireClean, false, "Refuse to run on a dirty git work tree")
	f.Bool(config.KeyDirtyCommit, false, "Commit uncommitted changes before the run so it can be undone cleanly")

	// Bind flags to viper; env UNIMIGRATE_* and .unimigrate.yaml fill the rest.
	if err := config.BindFlags(v, pf); err != nil {
		panic(err)
	}
	if err := config.BindFlags(v, f); err != nil {
		panic(err)
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCleanup(cmd, v)
	}

	rootCmd.AddCommand(newUndoCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print cleanup-legacy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cleanup-legacy %s\n", version)
		},
	}
}
