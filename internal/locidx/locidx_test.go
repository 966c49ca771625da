// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locidx

import (
	"reflect"
	"testing"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func TestIndexOverlapping(t *testing.T) {
	bins := loci.NewComparativeBins()
	fp := loci.NewFingerprint()
	key := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "x"}
	fp.Insert(key, []cluster.Interval{{Start: 100, Stop: 200}, {Start: 1000, Stop: 1100}})
	bins = loci.FromUnion(fp)

	idx := Build(bins)
	got := idx.Overlapping(key.Bin(), cluster.Interval{Start: 150, Stop: 160})
	want := []cluster.Interval{{Start: 100, Stop: 200}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	none := idx.Overlapping(key.Bin(), cluster.Interval{Start: 500, Stop: 600})
	if len(none) != 0 {
		t.Errorf("got %v, want none", none)
	}
}

func TestCullDropsContainedLowerWeight(t *testing.T) {
	bin := loci.BinGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy"}
	cmp := loci.NewComparison()
	cmp.Insert(bin, []loci.ComparisonBin{
		{Interval: cluster.Interval{Start: 100, Stop: 200}, Samples: []string{"s"}, Counts: []int{10}},
		{Interval: cluster.Interval{Start: 120, Stop: 130}, Samples: []string{"s"}, Counts: []int{1}},
		{Interval: cluster.Interval{Start: 500, Stop: 600}, Samples: []string{"s"}, Counts: []int{1}},
	})

	culled := Cull(cmp)
	rows := culled.Bins(bin)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	for _, r := range rows {
		if r.Interval == (cluster.Interval{Start: 120, Stop: 130}) {
			t.Errorf("contained lower-weight row was not culled: %v", rows)
		}
	}
}

func TestCullKeepsTies(t *testing.T) {
	bin := loci.BinGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy"}
	cmp := loci.NewComparison()
	cmp.Insert(bin, []loci.ComparisonBin{
		{Interval: cluster.Interval{Start: 100, Stop: 200}, Samples: []string{"s"}, Counts: []int{5}},
		{Interval: cluster.Interval{Start: 120, Stop: 130}, Samples: []string{"s"}, Counts: []int{5}},
	})

	culled := Cull(cmp)
	if len(culled.Bins(bin)) != 2 {
		t.Errorf("got %d rows, want 2 (ties kept)", len(culled.Bins(bin)))
	}
}
