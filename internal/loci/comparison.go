// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import "github.com/PlantandFoodResearch/tefingerprint/internal/cluster"

// ComparisonBin is one bin's per-sample tip counts.
type ComparisonBin struct {
	Interval cluster.Interval
	Samples  []string
	Counts   []int
}

// Comparison holds, per reference/strand/category, the per-sample tip
// counts within each comparative bin.
type Comparison struct {
	groups map[BinGroupKey][]ComparisonBin
}

// NewComparison returns an empty Comparison.
func NewComparison() *Comparison {
	return &Comparison{groups: make(map[BinGroupKey][]ComparisonBin)}
}

// Groups returns the bin-group keys present.
func (c *Comparison) Groups() []BinGroupKey {
	keys := make([]BinGroupKey, 0, len(c.groups))
	for k := range c.groups {
		keys = append(keys, k)
	}
	return keys
}

// Bins returns the comparison rows stored under key.
func (c *Comparison) Bins(key BinGroupKey) []ComparisonBin {
	return c.groups[key]
}

// Insert replaces the rows stored under key.
func (c *Comparison) Insert(key BinGroupKey, rows []ComparisonBin) {
	c.groups[key] = rows
}
