// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func TestLessKeyOrdersByReferenceThenStrandThenCategoryThenSource(t *testing.T) {
	a := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "s1"}
	b := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "s2"}
	if !lessKey(a, b) {
		t.Errorf("expected %v < %v", a, b)
	}
	if lessKey(b, a) {
		t.Errorf("expected %v not < %v", b, a)
	}

	c := loci.ReadGroupKey{Reference: "chr2", Strand: '+', Category: "gypsy", Source: "s1"}
	if !lessKey(a, c) {
		t.Errorf("expected %v < %v", a, c)
	}

	d := loci.ReadGroupKey{Reference: "chr1", Strand: '-', Category: "copia", Source: "s1"}
	if !lessKey(b, d) {
		t.Errorf("expected %v < %v", b, d)
	}

	e := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "copia", Source: "s2"}
	if !lessKey(e, a) {
		t.Errorf("expected %v < %v", e, a)
	}
}
