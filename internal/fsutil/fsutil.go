// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

// Package fsutil bridges the game's DOS-era filename expectations onto
// modern filesystems. Asset files are referenced with whatever casing the
// original tools felt like (MAIN.DAT, main.dat, Main.Dat), so lookups are
// ASCII case-insensitive.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve finds the entry in available matching name under ASCII
// case-insensitive comparison and returns it with its original casing. An
// exact match always wins over a case-folded one.
func Resolve(name string, available []string) (string, bool) {
	for _, a := range available {
		if a == name {
			return a, true
		}
	}
	for _, a := range available {
		if strings.EqualFold(a, name) {
			return a, true
		}
	}
	return "", false
}

// FindFile locates name in dir case-insensitively and returns the full
// path with the on-disk casing.
func FindFile(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	found, ok := Resolve(name, names)
	if !ok {
		return "", fmt.Errorf("no file matching %q in %s", name, dir)
	}
	return filepath.Join(dir, found), nil
}

// Dir is a directory-backed file store. Reads resolve names
// case-insensitively; writes use the name as given.
type Dir string

// WriteFile writes data under the given name inside the directory.
func (d Dir) WriteFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(string(d), name), data, 0o644)
}

// ReadFile reads the named file, matching case-insensitively the way the
// game's own loader would.
func (d Dir) ReadFile(name string) ([]byte, error) {
	path, err := FindFile(string(d), name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
