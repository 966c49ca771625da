// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package locidx indexes comparative bins for fast overlap lookup and
// culls bins that are wholly contained within a higher-evidence bin of
// the same reference/strand/category group.
package locidx

import (
	"github.com/biogo/store/interval"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

// Index supports overlap queries over a ComparativeBins, one interval
// tree per reference/strand/category group.
type Index struct {
	trees map[loci.BinGroupKey]*interval.IntTree
}

// Build indexes every bin in bins.
func Build(bins *loci.ComparativeBins) *Index {
	idx := &Index{trees: make(map[loci.BinGroupKey]*interval.IntTree)}
	for _, key := range bins.Groups() {
		t := &interval.IntTree{}
		for i, iv := range bins.Bins(key) {
			if err := t.Insert(entry{id: uintptr(i), Interval: iv}, true); err != nil {
				// Insert only fails on duplicate IDs, which cannot happen
				// since i is already unique per group.
				panic(err)
			}
		}
		t.AdjustRanges()
		idx.trees[key] = t
	}
	return idx
}

// Overlapping returns every interval in the named group overlapping query.
func (idx *Index) Overlapping(key loci.BinGroupKey, query cluster.Interval) []cluster.Interval {
	t, ok := idx.trees[key]
	if !ok {
		return nil
	}
	hits := t.Get(entry{Interval: query})
	out := make([]cluster.Interval, len(hits))
	for i, h := range hits {
		out[i] = h.(entry).Interval
	}
	return out
}

// Cull removes comparison rows that are completely contained within
// another row of the same group with a higher total read count,
// leaving tied or non-overlapping rows untouched.
func Cull(cmp *loci.Comparison) *loci.Comparison {
	out := loci.NewComparison()
	for _, key := range cmp.Groups() {
		rows := cmp.Bins(key)
		var tree interval.IntTree
		for i, row := range rows {
			if err := tree.Insert(containmentEntry{id: uintptr(i), Interval: row.Interval}, true); err != nil {
				panic(err)
			}
		}
		tree.AdjustRanges()

		weight := make([]int, len(rows))
		for i, row := range rows {
			for _, c := range row.Counts {
				weight[i] += c
			}
		}

		var kept []loci.ComparisonBin
	outer:
		for i, row := range rows {
			hits := tree.Get(containmentEntry{Interval: row.Interval})
			for _, h := range hits {
				j := int(h.(containmentEntry).id)
				if j != i && weight[j] > weight[i] {
					continue outer
				}
			}
			kept = append(kept, row)
		}
		out.Insert(key, kept)
	}
	return out
}

// entry is a standard half-open overlap test: Range() reports the
// closed interval as [Start, Stop+1) and Overlap reports true
// intervals overlap, not containment.
type entry struct {
	id uintptr
	cluster.Interval
}

func (e entry) ID() uintptr { return e.id }
func (e entry) Range() interval.IntRange {
	return interval.IntRange{Start: int(e.Start), End: int(e.Stop) + 1}
}
func (e entry) Overlap(b interval.IntRange) bool {
	return int(e.Start) < b.End && b.Start < int(e.Stop)+1
}

// containmentEntry reports overlap only when the candidate range b
// wholly contains the receiver's interval. Used as the query in Cull,
// it matches the rows that contain the queried row, mirroring the
// teacher's cull idiom of discarding rows subsumed by a stronger one.
type containmentEntry struct {
	id uintptr
	cluster.Interval
}

func (e containmentEntry) ID() uintptr { return e.id }
func (e containmentEntry) Range() interval.IntRange {
	return interval.IntRange{Start: int(e.Start), End: int(e.Stop) + 1}
}
func (e containmentEntry) Overlap(b interval.IntRange) bool {
	return b.Start <= int(e.Start) && int(e.Stop)+1 <= b.End
}
