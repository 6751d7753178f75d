// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	available := []string{"MAIN.DAT", "main.dat", "VgaGr0.dat", "readme.txt"}

	cases := []struct {
		name  string
		want  string
		found bool
	}{
		{"main.dat", "main.dat", true}, // exact match beats case-folded
		{"MAIN.DAT", "MAIN.DAT", true},
		{"Main.Dat", "MAIN.DAT", true}, // first case-insensitive hit
		{"vgagr0.dat", "VgaGr0.dat", true},
		{"vgagr1.dat", "", false},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.name, available)
		if ok != tc.found || got != tc.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tc.name, got, ok, tc.want, tc.found)
		}
	}
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GROUND0O.DAT"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := FindFile(dir, "ground0o.dat")
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if filepath.Base(path) != "GROUND0O.DAT" {
		t.Fatalf("got %s, want on-disk casing GROUND0O.DAT", path)
	}

	if _, err := FindFile(dir, "ground1o.dat"); err == nil {
		t.Fatal("found a file that does not exist")
	}
}

func TestDirStore(t *testing.T) {
	d := Dir(t.TempDir())

	if err := d.WriteFile("Terrain0.BMP", []byte("bmp")); err != nil {
		t.Fatal(err)
	}
	data, err := d.ReadFile("terrain0.bmp")
	if err != nil {
		t.Fatalf("case-insensitive read: %v", err)
	}
	if string(data) != "bmp" {
		t.Fatalf("got %q", data)
	}
}
