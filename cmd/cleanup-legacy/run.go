// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/unimigrate/internal/config"
	gitpkg "github.com/petar-djukic/unimigrate/internal/git"
	"github.com/petar-djukic/unimigrate/internal/logging"
	"github.com/petar-djukic/unimigrate/internal/report"
	"github.com/petar-djukic/unimigrate/pkg/migrate"
)

var (
	errNotTerminal        = errors.New("--interactive requires a terminal on stdin")
	errVerificationFailed = errors.New("verification command failed")
)

// setup resolves configuration and the logger shared by every subcommand.
func setup(cmd *cobra.Command, v *viper.Viper) (*config.Config, zerolog.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	logger := logging.New(cmd.ErrOrStderr(), verbose, logJSON)

	cfg, err := config.Load(v)
	if err != nil {
		return nil, logger, err
	}
	if cfg.ConfigFile != "" {
		logger.Debug().Str("file", cfg.ConfigFile).Msg("config loaded")
	}
	return cfg, logger, nil
}

// runCleanup executes a cleanup run, or a restore with --restore.
func runCleanup(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	dryRun, _ := flags.GetBool("dry-run")
	noBackup, _ := flags.GetBool("no-backup")
	interactive, _ := flags.GetBool("interactive")
	codemod, _ := flags.GetBool("codemod")
	pruneStyles, _ := flags.GetBool("prune-styles")
	restore, _ := flags.GetBool("restore")

	cfg, logger, err := setup(cmd, v)
	if err != nil {
		return err
	}

	m, err := migrate.New(cfg.Migrate(logger))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if restore {
		restored, err := m.Restore()
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d files from backups.\n", len(restored))
		return err
	}

	opts := migrate.ApplyOptions{
		DryRun:        dryRun,
		CreateBackups: !noBackup,
		Codemod:       codemod,
		PruneStyles:   pruneStyles,
	}
	if interactive {
		if !stdinIsTerminal(cmd.InOrStdin()) {
			return errNotTerminal
		}
		opts.Confirm = confirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := m.Cleanup(ctx, opts)
	if res != nil {
		if rerr := report.RenderCleanup(cmd.OutOrStdout(), res.Report, verbose); rerr != nil {
			logger.Warn().Err(rerr).Msg("rendering report")
		}
		for _, a := range res.Artifacts {
			logger.Info().Str("file", a).Msg("report written")
		}
	}
	if err != nil {
		return err
	}
	if res.Failed {
		return errVerificationFailed
	}
	return nil
}

// stdinIsTerminal reports whether in is a terminal.
func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && logging.IsTerminal(f)
}

// confirmer asks a yes/no question per stage on out and reads the answer
// from in. Anything but y or yes declines.
func confirmer(in io.Reader, out io.Writer) func(stage string, files int) bool {
	reader := bufio.NewReader(in)
	return func(stage string, files int) bool {
		fmt.Fprintf(out, "Run %s on %d files? [y/N] ", stage, files)
		line, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

// newUndoCmd creates the "undo" command.
func newUndoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last unimigrate commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by cleanup-legacy --git-commit. The migrated files stay in the working tree.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd, v)
			if err != nil {
				return err
			}

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: cfg.WorkDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last unimigrate commit.")
			return nil
		},
	}
}
