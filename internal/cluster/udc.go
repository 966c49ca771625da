// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// UDC is the flat univariate density clusterer (DBSCAN*-like): points
// within min_points-windows of span at most Epsilon form sub-clusters,
// which are then melted into maximal disjoint runs.
type UDC struct {
	MinPoints int
	Epsilon   int64
}

// Fit clusters the sorted array x, returning disjoint index slices in
// ascending order. The result is empty if MinPoints exceeds len(x).
func (u UDC) Fit(x []int64) ([]Slice, error) {
	if u.MinPoints < 2 {
		return nil, ErrMinPoints
	}
	if !sortedAscending(x) {
		return nil, ErrUnsorted
	}
	return udcCluster(x, u.MinPoints, u.Epsilon), nil
}

// udcCluster implements the sub-cluster-scan-then-melt pipeline shared by
// UDC.Fit and HUDC's internal re-clustering step. It does not validate its
// arguments; callers are expected to have already checked them.
func udcCluster(x []int64, k int, epsilon int64) []Slice {
	slices := SubCluster(x, k, epsilon)
	if len(slices) > 1 {
		slices = MeltSlices(slices)
	}
	return slices
}
