// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import "github.com/PlantandFoodResearch/tefingerprint/internal/cluster"

// Fingerprint holds clustered insertion-evidence intervals grouped by
// reference, strand, category and sample.
type Fingerprint struct {
	groups map[ReadGroupKey][]cluster.Interval
}

// NewFingerprint returns an empty Fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{groups: make(map[ReadGroupKey][]cluster.Interval)}
}

// Groups returns the read-group keys present.
func (f *Fingerprint) Groups() []ReadGroupKey {
	keys := make([]ReadGroupKey, 0, len(f.groups))
	for k := range f.groups {
		keys = append(keys, k)
	}
	return keys
}

// Loci returns the cluster intervals stored under key.
func (f *Fingerprint) Loci(key ReadGroupKey) []cluster.Interval {
	return f.groups[key]
}

// Insert replaces the intervals stored under key.
func (f *Fingerprint) Insert(key ReadGroupKey, ivs []cluster.Interval) {
	f.groups[key] = ivs
}

// MergeFingerprints combines several Fingerprints, later arguments
// overwriting groups of the same key carried by earlier ones.
func MergeFingerprints(parts ...*Fingerprint) *Fingerprint {
	merged := NewFingerprint()
	for _, p := range parts {
		for k, v := range p.groups {
			merged.groups[k] = v
		}
	}
	return merged
}
