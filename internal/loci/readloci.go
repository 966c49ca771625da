// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import (
	"sort"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
)

// ReadInterval is a single read's aligned span, carried through to
// fingerprinting so diagnostics can name the read a cluster came from.
type ReadInterval struct {
	Start, Stop int64
	Name        string
}

// ReadLoci holds raw per-read intervals grouped by reference, strand,
// category and sample.
type ReadLoci struct {
	groups map[ReadGroupKey][]ReadInterval
}

// NewReadLoci returns an empty ReadLoci.
func NewReadLoci() *ReadLoci {
	return &ReadLoci{groups: make(map[ReadGroupKey][]ReadInterval)}
}

// Insert appends loci to the named group, creating it if absent.
func (r *ReadLoci) Insert(key ReadGroupKey, loci []ReadInterval) {
	r.groups[key] = append(r.groups[key], loci...)
}

// Groups returns the read-group keys present, in no particular order.
func (r *ReadLoci) Groups() []ReadGroupKey {
	keys := make([]ReadGroupKey, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	return keys
}

// Loci returns the raw intervals stored under key.
func (r *ReadLoci) Loci(key ReadGroupKey) []ReadInterval {
	return r.groups[key]
}

// MergeReadLoci combines several ReadLoci, later arguments overwriting
// groups of the same key carried by earlier ones.
func MergeReadLoci(parts ...*ReadLoci) *ReadLoci {
	merged := NewReadLoci()
	for _, p := range parts {
		for k, v := range p.groups {
			merged.groups[k] = v
		}
	}
	return merged
}

// Tips reduces each group's read intervals to their tip coordinate: the
// 3' end of the insertion evidence, which is the read's Stop on the
// forward strand and its Start on the reverse strand. The returned
// slice is sorted ascending, as clustering requires.
func (r *ReadLoci) Tips(key ReadGroupKey) []int64 {
	loci := r.groups[key]
	tips := make([]int64, len(loci))
	if key.Strand == '+' {
		for i, l := range loci {
			tips[i] = l.Stop
		}
	} else {
		for i, l := range loci {
			tips[i] = l.Start
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i] < tips[j] })
	return tips
}

// FingerprintOptions configures Fingerprint.
type FingerprintOptions struct {
	MinPoints    int
	Epsilon      int64
	MinEps       int64
	Hierarchical bool
	Method       cluster.Method
}

// Fingerprint clusters the tip coordinates of every group and records
// the resulting cluster extents as a Fingerprint.
func (r *ReadLoci) Fingerprint(opt FingerprintOptions) (*Fingerprint, error) {
	fp := NewFingerprint()
	for _, key := range r.Groups() {
		tips := r.Tips(key)
		var slices []cluster.Slice
		if opt.Hierarchical {
			minEps := opt.MinEps
			h := cluster.HUDC{MinPoints: opt.MinPoints, MaxEps: &opt.Epsilon, MinEps: &minEps, Method: opt.Method}
			s, err := h.Fit(tips)
			if err != nil {
				return nil, err
			}
			slices = s
		} else {
			u := cluster.UDC{MinPoints: opt.MinPoints, Epsilon: opt.Epsilon}
			s, err := u.Fit(tips)
			if err != nil {
				return nil, err
			}
			slices = s
		}
		fp.groups[key] = cluster.Extremities(tips, slices)
	}
	return fp, nil
}
