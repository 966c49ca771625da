// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concordance

import (
	"testing"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func bins(key loci.BinGroupKey, ivs ...cluster.Interval) *loci.ComparativeBins {
	b := loci.NewComparativeBins()
	fp := loci.NewFingerprint()
	fp.Insert(loci.ReadGroupKey{Reference: key.Reference, Strand: key.Strand, Category: key.Category, Source: "x"}, ivs)
	b = loci.FromUnion(fp)
	return b
}

func TestCompareFullAgreement(t *testing.T) {
	key := loci.BinGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy"}
	a := bins(key, cluster.Interval{Start: 100, Stop: 199})
	b := bins(key, cluster.Interval{Start: 100, Stop: 199})

	rec, mismatches, err := Compare(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Agree != 100 {
		t.Errorf("agree = %d, want 100", rec.Agree)
	}
	if rec.Mismatch != 0 || rec.AMissing != 0 || rec.BMissing != 0 {
		t.Errorf("unexpected discordance: %+v", rec)
	}
	if len(mismatches) != 0 {
		t.Errorf("unexpected mismatches: %v", mismatches)
	}
}

func TestCompareMismatchAndMissing(t *testing.T) {
	aKey := loci.BinGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy"}
	bKey := loci.BinGroupKey{Reference: "chr1", Strand: '+', Category: "copia"}
	a := bins(aKey, cluster.Interval{Start: 100, Stop: 199})
	b := bins(bKey, cluster.Interval{Start: 150, Stop: 249})

	rec, mismatches, err := Compare(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100-149 only in a (50 bases), 150-199 disagree (50 bases), 200-249 only in b (50 bases).
	if rec.AMissing != 50 {
		t.Errorf("a_missing = %d, want 50", rec.AMissing)
	}
	if rec.BMissing != 50 {
		t.Errorf("b_missing = %d, want 50", rec.BMissing)
	}
	if rec.Mismatch != 50 {
		t.Errorf("mismatch = %d, want 50", rec.Mismatch)
	}
	if mismatches[CategoryPair{A: "gypsy", B: "copia"}] != 50 {
		t.Errorf("mismatches[gypsy,copia] = %d, want 50", mismatches[CategoryPair{A: "gypsy", B: "copia"}])
	}
}
