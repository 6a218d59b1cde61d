// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package browser is the file-browser external collaborator's core
// interface as fixed by SPEC_FULL.md: directory listing and cwd
// tracking only — no Git-status colouring (an explicit Non-goal). It
// uses os.ReadDir directly, the same as the teacher's own file-tree
// helpers, since directory listing has no third-party equivalent in the
// example pack worth adopting over the standard library.
package browser

import (
	"os"
	"path/filepath"
	"sort"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Browser tracks the file browser's current working directory and the
// most recent listing of it.
type Browser struct {
	cwd     string
	entries []Entry
}

// New starts the browser rooted at start.
func New(start string) (*Browser, error) {
	b := &Browser{}
	if err := b.Chdir(start); err != nil {
		return nil, err
	}
	return b, nil
}

// Cwd returns the currently displayed directory.
func (b *Browser) Cwd() string { return b.cwd }

// Entries returns the last listing.
func (b *Browser) Entries() []Entry { return b.entries }

// Chdir changes into path and re-lists it. Directories sort before
// files; both groups sort alphabetically.
func (b *Browser) Chdir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	b.cwd = abs
	b.entries = entries
	return nil
}

// Enter descends into a child directory of the current listing.
func (b *Browser) Enter(name string) error {
	return b.Chdir(filepath.Join(b.cwd, name))
}

// Up moves to the parent directory.
func (b *Browser) Up() error {
	return b.Chdir(filepath.Dir(b.cwd))
}
