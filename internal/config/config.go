// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config layers command-line flags, UNIMIGRATE_* environment
// variables, an optional .unimigrate.yaml and defaults into one Config.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/internal/validate"
	"github.com/petar-djukic/unimigrate/pkg/migrate"
)

// Config keys. Flags of the same name are bound to them.
const (
	KeyWorkDir       = "workdir"
	KeyExcludeDirs   = "exclude-dirs"
	KeyExtensions    = "extensions"
	KeyReportDir     = "report-dir"
	KeyMappingsFile  = "mappings-file"
	KeyAliases       = "aliases"
	KeyLabelWindow   = "label-window"
	KeyVerifyCmd     = "verify-cmd"
	KeyVerifyTimeout = "verify-timeout"
	KeyGitCommit     = "git-commit"
	KeyRequireClean  = "require-clean"
	KeyDirtyCommit   = "dirty-commit"
	KeyConcurrency   = "concurrency"
)

const (
	envPrefix      = "UNIMIGRATE"
	configName     = ".unimigrate"
	configType     = "yaml"
	defaultTimeout = 120 * time.Second
)

// Config is the resolved configuration shared by both commands.
type Config struct {
	WorkDir       string
	ExcludeDirs   []string
	Extensions    []string
	ReportDir     string // Relative paths resolve against WorkDir
	MappingsFile  string
	Aliases       map[string]string
	LabelWindow   int
	VerifyCmd     string
	VerifyTimeout time.Duration
	GitCommit     bool
	RequireClean  bool
	DirtyCommit   bool
	Concurrency   int
	ConfigFile    string // The file read, or "" when none was found
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkDir, ".")
	v.SetDefault(KeyExcludeDirs, scanner.DefaultExcludeDirs)
	v.SetDefault(KeyReportDir, ".")
	v.SetDefault(KeyAliases, map[string]string{"@": "src"})
	v.SetDefault(KeyLabelWindow, validate.DefaultLabelWindow)
	v.SetDefault(KeyVerifyTimeout, defaultTimeout)

	// UNIMIGRATE_VERIFY_CMD, UNIMIGRATE_REPORT_DIR, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs whose name is a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case KeyWorkDir, KeyExcludeDirs, KeyExtensions, KeyReportDir, KeyMappingsFile,
			KeyLabelWindow, KeyVerifyCmd, KeyVerifyTimeout, KeyGitCommit, KeyRequireClean, KeyDirtyCommit, KeyConcurrency:
			if err := v.BindPFlag(f.Name, f); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional .unimigrate.yaml from the work directory or the
// current directory and resolves the configuration. A missing config file
// is not an error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	workDir := v.GetString(KeyWorkDir)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(workDir)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		WorkDir:       v.GetString(KeyWorkDir),
		ExcludeDirs:   v.GetStringSlice(KeyExcludeDirs),
		Extensions:    v.GetStringSlice(KeyExtensions),
		ReportDir:     v.GetString(KeyReportDir),
		MappingsFile:  v.GetString(KeyMappingsFile),
		Aliases:       v.GetStringMapString(KeyAliases),
		LabelWindow:   v.GetInt(KeyLabelWindow),
		VerifyCmd:     v.GetString(KeyVerifyCmd),
		VerifyTimeout: v.GetDuration(KeyVerifyTimeout),
		GitCommit:     v.GetBool(KeyGitCommit),
		RequireClean:  v.GetBool(KeyRequireClean),
		DirtyCommit:   v.GetBool(KeyDirtyCommit),
		Concurrency:   v.GetInt(KeyConcurrency),
		ConfigFile:    v.ConfigFileUsed(),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	abs, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return fmt.Errorf("resolving workdir: %w", err)
	}
	c.WorkDir = abs

	if c.ReportDir == "" {
		c.ReportDir = "."
	}
	if !filepath.IsAbs(c.ReportDir) {
		c.ReportDir = filepath.Join(c.WorkDir, c.ReportDir)
	}
	if c.MappingsFile != "" && !filepath.IsAbs(c.MappingsFile) {
		c.MappingsFile = filepath.Join(c.WorkDir, c.MappingsFile)
	}

	for i, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") {
			c.Extensions[i] = "." + e
		}
	}
	if c.LabelWindow < 0 {
		return fmt.Errorf("%s must not be negative", KeyLabelWindow)
	}
	if c.VerifyTimeout <= 0 {
		c.VerifyTimeout = defaultTimeout
	}
	return nil
}

// WalkOptions returns the scanner walk options for this configuration.
func (c *Config) WalkOptions() scanner.WalkOptions {
	return scanner.WalkOptions{ExcludeDirs: c.ExcludeDirs, Extensions: c.Extensions}
}

// Migrate returns the migrate.Config for this configuration.
func (c *Config) Migrate(logger zerolog.Logger) migrate.Config {
	return migrate.Config{
		WorkDir:       c.WorkDir,
		ReportDir:     c.ReportDir,
		MappingsFile:  c.MappingsFile,
		Aliases:       c.Aliases,
		ExcludeDirs:   c.ExcludeDirs,
		Extensions:    c.Extensions,
		LabelWindow:   c.LabelWindow,
		Concurrency:   c.Concurrency,
		VerifyCmd:     c.VerifyCmd,
		VerifyTimeout: c.VerifyTimeout,
		GitCommit:     c.GitCommit,
		RequireClean:  c.RequireClean,
		DirtyCommit:   c.DirtyCommit,
		Logger:        logger,
	}
}
