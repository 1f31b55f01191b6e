// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command validate-migration checks a migrated source tree for broken
// references and accessibility regressions and prints a scored report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/unimigrate/internal/config"
	"github.com/petar-djukic/unimigrate/internal/logging"
	"github.com/petar-djukic/unimigrate/internal/report"
	"github.com/petar-djukic/unimigrate/pkg/migrate"
)

const version = "0.1.0"

var errValidationFailed = errors.New("migration validation failed")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:           "validate-migration",
		Short:         "Validate a migrated source tree",
		Long:          "validate-migration resolves every import and component reference, runs the accessibility checks and scores the migration out of 100. It exits non-zero when the migration does not pass.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyWorkDir, ".", "Source tree root")
	pf.BoolP("verbose", "v", false, "Show every finding and debug logging")
	pf.Bool("log-json", false, "Log JSON lines instead of console output")

	f := rootCmd.Flags()
	f.Bool("json", false, "Print the report as JSON")
	f.Bool("save-report", false, "Write validation-report.json")
	f.Int("min-score", 0, "Fail when the overall score is below this value")
	f.String(config.KeyReportDir, ".", "Directory for the saved report (relative to workdir)")
	f.String(config.KeyMappingsFile, "", "YAML mapping overlay file")
	f.Int(config.KeyLabelWindow, 0, "Characters after an input searched for a label (default 200)")

	if err := config.BindFlags(v, pf); err != nil {
		panic(err)
	}
	if err := config.BindFlags(v, f); err != nil {
		panic(err)
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, v)
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print validate-migration version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "validate-migration %s\n", version)
		},
	})
	return rootCmd
}

func runValidate(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	logJSON, _ := flags.GetBool("log-json")
	asJSON, _ := flags.GetBool("json")
	save, _ := flags.GetBool("save-report")
	minScore, _ := flags.GetInt("min-score")

	logger := logging.New(cmd.ErrOrStderr(), verbose, logJSON)
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	m, err := migrate.New(cfg.Migrate(logger))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	r, err := m.Validate(ctx, save)
	if r == nil {
		return err
	}
	if err != nil {
		logger.Warn().Err(err).Msg("saving report")
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else if err := report.RenderValidation(out, r, verbose); err != nil {
		return err
	}

	if !r.Passed() {
		return errValidationFailed
	}
	if r.OverallScore.Overall < minScore {
		return fmt.Errorf("%w: score %d is below --min-score %d", errValidationFailed, r.OverallScore.Overall, minScore)
	}
	return nil
}
