// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// ForkEpsilon returns the largest epsilon at which sorted x, clustered
// with min_points k, forks into two or more sub-clusters, or ok=false if
// no such epsilon exists ("no fork" — the whole array is one cluster down
// to its smallest feasible epsilon).
//
// The returned value already has the conventional "-1" applied: a
// retained peak of value v means a sub-cluster first forms at epsilon v,
// so the split is only visible one unit of epsilon below that.
func ForkEpsilon(x []int64, k int) (epsilon int64, ok bool) {
	n := len(x)
	if n <= k {
		// Every point shares the same core distance; there is nothing
		// to split.
		return 0, false
	}

	spans := windowSpans(x, k)
	splits := coverageMinimum(spans, k-1)

	deduped := dedupePlateaus(splits)
	peak, found := maxStrictPeak(deduped)
	if !found {
		return 0, false
	}
	return peak - 1, true
}

// dedupePlateaus removes consecutive runs of equal values, keeping the
// first element of each run.
func dedupePlateaus(values []int64) []int64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]int64, 1, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			out = append(out, values[i])
		}
	}
	return out
}

// maxStrictPeak returns the largest value that is strictly greater than
// both of its neighbours. The first and last elements can never be peaks.
func maxStrictPeak(values []int64) (peak int64, found bool) {
	for i := 1; i+1 < len(values); i++ {
		if values[i] > values[i-1] && values[i] > values[i+1] {
			if !found || values[i] > peak {
				peak = values[i]
				found = true
			}
		}
	}
	return peak, found
}
