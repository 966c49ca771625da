// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import (
	"sort"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
)

// ComparativeBins holds, per reference/strand/category, the melted
// union of cluster intervals drawn from every sample's Fingerprint.
type ComparativeBins struct {
	groups map[BinGroupKey][]cluster.Interval
}

// NewComparativeBins returns an empty ComparativeBins.
func NewComparativeBins() *ComparativeBins {
	return &ComparativeBins{groups: make(map[BinGroupKey][]cluster.Interval)}
}

// Groups returns the bin-group keys present.
func (c *ComparativeBins) Groups() []BinGroupKey {
	keys := make([]BinGroupKey, 0, len(c.groups))
	for k := range c.groups {
		keys = append(keys, k)
	}
	return keys
}

// Bins returns the melted intervals stored under key.
func (c *ComparativeBins) Bins(key BinGroupKey) []cluster.Interval {
	return c.groups[key]
}

// FromUnion builds comparative bins from several samples' fingerprints:
// every fingerprint group is projected onto its BinGroupKey, the
// intervals of all samples sharing a projection are pooled, and the
// pool is melted into a disjoint union.
func FromUnion(fingerprints ...*Fingerprint) *ComparativeBins {
	pooled := make(map[BinGroupKey][]cluster.Interval)
	for _, fp := range fingerprints {
		for _, key := range fp.Groups() {
			bin := key.Bin()
			pooled[bin] = append(pooled[bin], fp.Loci(key)...)
		}
	}

	bins := NewComparativeBins()
	for bin, ivs := range pooled {
		bins.groups[bin] = MeltIntervals(ivs)
	}
	return bins
}

// Buffer widens every bin by value on both ends. A negative value
// shrinks bins, which may drop them entirely if they invert.
func (c *ComparativeBins) Buffer(value int64) *ComparativeBins {
	out := NewComparativeBins()
	for bin, ivs := range c.groups {
		widened := make([]cluster.Interval, 0, len(ivs))
		for _, iv := range ivs {
			start, stop := iv.Start-value, iv.Stop+value
			if start > stop {
				continue
			}
			widened = append(widened, cluster.Interval{Start: start, Stop: stop})
		}
		if len(widened) > 0 {
			out.groups[bin] = MeltIntervals(widened)
		}
	}
	return out
}

// Compare counts, for every bin, the number of read tips falling within
// it contributed by each sample that has a ReadLoci group sharing the
// bin's (reference, strand, category): samples appearing only in other
// partitions of reads are not listed.
func (c *ComparativeBins) Compare(reads *ReadLoci) *Comparison {
	samplesByBin := make(map[BinGroupKey]map[string]struct{})
	for _, key := range reads.Groups() {
		bin := key.Bin()
		set, ok := samplesByBin[bin]
		if !ok {
			set = make(map[string]struct{})
			samplesByBin[bin] = set
		}
		set[key.Source] = struct{}{}
	}

	cmp := NewComparison()
	for _, bin := range c.Groups() {
		sampleSet := samplesByBin[bin]
		samples := make([]string, 0, len(sampleSet))
		for s := range sampleSet {
			samples = append(samples, s)
		}
		sort.Strings(samples)

		sampleTips := make([][]int64, len(samples))
		for i, sample := range samples {
			key := ReadGroupKey{Reference: bin.Reference, Strand: bin.Strand, Category: bin.Category, Source: sample}
			sampleTips[i] = reads.Tips(key)
		}

		rows := make([]ComparisonBin, len(c.Bins(bin)))
		for i, iv := range c.Bins(bin) {
			counts := make([]int, len(samples))
			for j, tips := range sampleTips {
				counts[j] = countWithin(tips, iv)
			}
			rows[i] = ComparisonBin{Interval: iv, Samples: samples, Counts: counts}
		}
		cmp.groups[bin] = rows
	}
	return cmp
}

func countWithin(tips []int64, iv cluster.Interval) int {
	n := 0
	for _, t := range tips {
		if t >= iv.Start && t <= iv.Stop {
			n++
		}
	}
	return n
}
