// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestReadElements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elements.tsv")
	content := "read1\tgypsy\nread2\tcopia\n\n"
	if err := ioutil.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readElements(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"read1": "gypsy", "read2": "copia"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d entries, want %d", len(got), len(want))
	}
}

func TestReadElementsRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elements.tsv")
	if err := ioutil.WriteFile(path, []byte("not-tab-separated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readElements(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestReadElementsMissingFile(t *testing.T) {
	if _, err := readElements(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}
