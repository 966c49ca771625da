// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

// BinGroupKey identifies a group of loci sharing a reference sequence,
// strand and transposon category, independent of sample.
type BinGroupKey struct {
	Reference string
	Strand    byte // '+' or '-'
	Category  string
}

// ReadGroupKey identifies a group of reads within a single sample.
type ReadGroupKey struct {
	Reference string
	Strand    byte
	Category  string
	Source    string // sample name
}

// Bin drops the sample, projecting a ReadGroupKey onto its BinGroupKey.
func (k ReadGroupKey) Bin() BinGroupKey {
	return BinGroupKey{k.Reference, k.Strand, k.Category}
}
