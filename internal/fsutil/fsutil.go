// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fsutil provides the file operations every mutating migration step
// shares: atomic writes, suffixed backups, and restoring from backups.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Backup suffixes, one per mutating operation.
const (
	SuffixStyles  = ".backup"
	SuffixCodemod = ".codemod.backup"
	SuffixCleanup = ".cleanup.backup"
	SuffixRemoved = ".removed.backup"
)

// BackupSuffixes lists every suffix, earliest-stage first. A file backed up
// by several stages is restored from the first suffix present in this
// order, which holds the content from before any stage ran.
var BackupSuffixes = []string{SuffixCodemod, SuffixCleanup, SuffixRemoved, SuffixStyles}

// ErrNotRegular is returned when a write target exists but is not a
// regular file.
var ErrNotRegular = errors.New("not a regular file")

// AtomicWrite writes data to path through a temp file in the same
// directory and a rename, keeping the original permissions. A new file
// gets 0644.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrNotRegular, path)
		}
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".unimigrate-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteBackup saves the given original content next to path with suffix
// and returns the backup path. An existing backup is kept, so repeated runs
// never overwrite the oldest content.
func WriteBackup(path string, original []byte, suffix string) (string, error) {
	backup := path + suffix
	if _, err := os.Stat(backup); err == nil {
		return backup, nil
	}
	if err := AtomicWrite(backup, original); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backup, err)
	}
	return backup, nil
}

// Restored records one file restored from a backup.
type Restored struct {
	FilePath string `json:"filePath"`
	Backup   string `json:"backup"`
}

// backupTarget splits a backup path into the original path and suffix,
// matching the longest suffix first.
func backupTarget(path string) (string, string, bool) {
	suffixes := append([]string(nil), BackupSuffixes...)
	sort.Slice(suffixes, func(i, j int) bool { return len(suffixes[i]) > len(suffixes[j]) })
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) && len(path) > len(s) {
			return strings.TrimSuffix(path, s), s, true
		}
	}
	return "", "", false
}

// FindBackups returns backup files under root grouped by original path.
// skip reports directories to leave out.
func FindBackups(root string, skip func(name string) bool) (map[string][]string, error) {
	found := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && skip != nil && skip(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if orig, _, ok := backupTarget(path); ok {
			found[orig] = append(found[orig], path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return found, nil
}

// RestoreBackups restores every file under root that has backups and
// removes the backups. Removed files are recreated.
func RestoreBackups(root string, skip func(name string) bool) ([]Restored, error) {
	found, err := FindBackups(root, skip)
	if err != nil {
		return nil, err
	}
	origs := make([]string, 0, len(found))
	for o := range found {
		origs = append(origs, o)
	}
	sort.Strings(origs)

	var (
		restored []Restored
		errs     []error
	)
	for _, orig := range origs {
		backups := found[orig]
		chosen := pickBackup(backups)
		data, err := os.ReadFile(chosen)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", chosen, err))
			continue
		}
		if err := AtomicWrite(orig, data); err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", orig, err))
			continue
		}
		for _, b := range backups {
			if err := os.Remove(b); err != nil {
				errs = append(errs, fmt.Errorf("removing %s: %w", b, err))
			}
		}
		restored = append(restored, Restored{FilePath: orig, Backup: chosen})
	}
	return restored, errors.Join(errs...)
}

func pickBackup(backups []string) string {
	for _, suffix := range BackupSuffixes {
		for _, b := range backups {
			if _, s, _ := backupTarget(b); s == suffix {
				return b
			}
		}
	}
	return backups[0]
}
