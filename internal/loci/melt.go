// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import (
	"sort"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
)

// MeltIntervals collapses a set of closed genomic intervals into their
// disjoint union, merging on non-strict touch: two intervals that only
// share an endpoint (next.Start == prev.Stop) are melted into one. This
// is the coordinate-space counterpart of cluster.MeltSlices, which
// instead requires strict overlap; the two are not interchangeable.
//
// The merge sorts starts and stops independently rather than sorting
// intervals as pairs: for a union of closed intervals this sweep
// produces the same disjoint result as the conventional sort-by-start
// merge, and it is how the reference implementation performs it.
func MeltIntervals(ivs []cluster.Interval) []cluster.Interval {
	n := len(ivs)
	if n == 0 {
		return nil
	}
	starts := make([]int64, n)
	stops := make([]int64, n)
	for i, iv := range ivs {
		starts[i] = iv.Start
		stops[i] = iv.Stop
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	sort.Slice(stops, func(i, j int) bool { return stops[i] < stops[j] })

	out := make([]cluster.Interval, 0, n)
	cur := cluster.Interval{Start: starts[0], Stop: stops[0]}
	for i := 1; i < n; i++ {
		if starts[i] <= cur.Stop {
			if stops[i] > cur.Stop {
				cur.Stop = stops[i]
			}
			continue
		}
		out = append(out, cur)
		cur = cluster.Interval{Start: starts[i], Stop: stops[i]}
	}
	out = append(out, cur)
	return out
}
