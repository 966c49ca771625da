// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "errors"

// Sentinel errors identifying invariant violations in the clustering
// primitives. All of them are fatal: callers must not retry without
// correcting the input.
var (
	// ErrUnsorted is returned when an input array is not sorted ascending.
	ErrUnsorted = errors.New("cluster: input array is not sorted ascending")

	// ErrMinPoints is returned when min_points is less than 2.
	// CoreDistances also returns it, wrapped, when min_points exceeds
	// the array length.
	ErrMinPoints = errors.New("cluster: min_points must be at least 2")

	// ErrMethod is returned when a HUDC method string does not name a
	// known support-scoring method.
	ErrMethod = errors.New("cluster: unrecognised method")
)

func sortedAscending(x []int64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			return false
		}
	}
	return true
}
