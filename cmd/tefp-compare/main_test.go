// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "testing"

func TestSplitPair(t *testing.T) {
	name, path, err := splitPair("sample1=/data/sample1.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "sample1" || path != "/data/sample1.db" {
		t.Errorf("got (%q, %q), want (%q, %q)", name, path, "sample1", "/data/sample1.db")
	}
}

func TestSplitPairRejectsMalformed(t *testing.T) {
	if _, _, err := splitPair("no-equals-sign"); err == nil {
		t.Error("expected error for malformed value")
	}
}
