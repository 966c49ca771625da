// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "sort"

// Method selects how HUDC scores a parent cluster against its children.
type Method int

const (
	// Conservative scores a parent against the global epsilon ceiling,
	// so a deeply nested cluster is judged against the user's absolute
	// density threshold.
	Conservative Method = iota
	// Aggressive scores a parent against the epsilon at which it was
	// entered from its own parent, a tighter, locally adaptive ceiling.
	Aggressive
)

// ParseMethod parses a HUDC method name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "conservative":
		return Conservative, nil
	case "aggressive":
		return Aggressive, nil
	default:
		return 0, ErrMethod
	}
}

func (m Method) String() string {
	switch m {
	case Conservative:
		return "conservative"
	case Aggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// HUDC is the hierarchical univariate density clusterer. It descends a
// density tree induced by varying epsilon between MinEps and MaxEps,
// selecting flat clusters by a support score, per Method.
type HUDC struct {
	MinPoints int
	// MaxEps bounds the search from above. If nil, it defaults to one
	// below the root fork epsilon, so the root itself is never selected.
	MaxEps *int64
	// MinEps raises the floor on core distances, shrinking small
	// clusters into noise. Optional.
	MinEps *int64
	Method Method
}

// Fit clusters the sorted array x, returning disjoint index slices in
// ascending order.
func (h HUDC) Fit(x []int64) ([]Slice, error) {
	if h.MinPoints < 2 {
		return nil, ErrMinPoints
	}
	if !sortedAscending(x) {
		return nil, ErrUnsorted
	}
	if h.Method != Conservative && h.Method != Aggressive {
		return nil, ErrMethod
	}

	n := len(x)
	if n < h.MinPoints {
		return nil, nil
	}

	d, err := CoreDistances(x, h.MinPoints)
	if err != nil {
		return nil, err
	}
	if h.MinEps != nil {
		floor := *h.MinEps
		for i, v := range d {
			if v < floor {
				d[i] = floor
			}
		}
	}

	maxEps := int64(0)
	if h.MaxEps != nil {
		maxEps = *h.MaxEps
	} else {
		f, ok := ForkEpsilon(x, h.MinPoints)
		if ok {
			maxEps = f - 1
		} else {
			// The whole array never forks; any ceiling at or above
			// the largest core distance keeps it as a single root
			// cluster, which is what the traversal below will emit
			// regardless of the exact value.
			maxEps = maxInt64(d)
		}
	}

	seeds := udcCluster(x, h.MinPoints, maxEps)

	type frame struct {
		lower, upper int
		epsMax       int64
	}
	stack := make([]frame, len(seeds))
	for i, s := range seeds {
		stack[i] = frame{s.Lower, s.Upper, maxEps}
	}

	var result []Slice
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sub := x[cur.lower:cur.upper]
		f, forks := ForkEpsilon(sub, h.MinPoints)
		if !forks {
			result = append(result, Slice{cur.lower, cur.upper})
			continue
		}

		epsMin := f
		var support, supportChildren int64
		for i := cur.lower; i < cur.upper; i++ {
			dv := d[i]
			floor := epsMin
			if dv > floor {
				floor = dv
			}
			ceil := maxEps
			if h.Method == Aggressive {
				ceil = cur.epsMax
			}
			support += ceil - floor
			if gap := epsMin - dv; gap > 0 {
				supportChildren += gap
			}
		}

		if support >= supportChildren {
			result = append(result, Slice{cur.lower, cur.upper})
			continue
		}

		children := udcCluster(sub, h.MinPoints, epsMin-1)
		for _, c := range children {
			stack = append(stack, frame{cur.lower + c.Lower, cur.lower + c.Upper, epsMin})
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Lower < result[j].Lower })
	return result, nil
}

func maxInt64(x []int64) int64 {
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
