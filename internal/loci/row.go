// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loci

import "github.com/PlantandFoodResearch/tefingerprint/internal/cluster"

// Row is the flattened, serializable form of a single locus: one row
// per interval, tagged with its full group key. Name, Source, Samples
// and Counts are populated only for the shapes that carry them; the
// rest are left at their zero value.
type Row struct {
	Reference string
	Strand    byte
	Category  string
	Source    string
	Start     int64
	Stop      int64
	Name      string
	Samples   []string
	Counts    []int
}

// AsArray flattens r into rows, one per stored read interval.
func (r *ReadLoci) AsArray() []Row {
	var out []Row
	for _, key := range r.Groups() {
		for _, l := range r.Loci(key) {
			out = append(out, Row{
				Reference: key.Reference, Strand: key.Strand, Category: key.Category, Source: key.Source,
				Start: l.Start, Stop: l.Stop, Name: l.Name,
			})
		}
	}
	return out
}

// ReadLociFromRows rebuilds a ReadLoci from rows produced by AsArray. A
// row carrying Samples or Counts has no meaning for this shape and is
// rejected.
func ReadLociFromRows(rows []Row) (*ReadLoci, error) {
	out := NewReadLoci()
	for _, row := range rows {
		if row.Samples != nil || row.Counts != nil {
			return nil, ErrIncompatibleShape
		}
		key := ReadGroupKey{Reference: row.Reference, Strand: row.Strand, Category: row.Category, Source: row.Source}
		out.Insert(key, []ReadInterval{{Start: row.Start, Stop: row.Stop, Name: row.Name}})
	}
	return out, nil
}

// AsArray flattens f into rows, one per cluster interval.
func (f *Fingerprint) AsArray() []Row {
	var out []Row
	for _, key := range f.Groups() {
		for _, iv := range f.Loci(key) {
			out = append(out, Row{
				Reference: key.Reference, Strand: key.Strand, Category: key.Category, Source: key.Source,
				Start: iv.Start, Stop: iv.Stop,
			})
		}
	}
	return out
}

// FingerprintFromRows rebuilds a Fingerprint from rows produced by
// AsArray. A row carrying a Name, Samples or Counts has no meaning for
// this shape and is rejected.
func FingerprintFromRows(rows []Row) (*Fingerprint, error) {
	out := NewFingerprint()
	for _, row := range rows {
		if row.Name != "" || row.Samples != nil || row.Counts != nil {
			return nil, ErrIncompatibleShape
		}
		key := ReadGroupKey{Reference: row.Reference, Strand: row.Strand, Category: row.Category, Source: row.Source}
		out.groups[key] = append(out.groups[key], cluster.Interval{Start: row.Start, Stop: row.Stop})
	}
	return out, nil
}

// AsArray flattens c into rows, one per bin.
func (c *ComparativeBins) AsArray() []Row {
	var out []Row
	for _, key := range c.Groups() {
		for _, iv := range c.Bins(key) {
			out = append(out, Row{
				Reference: key.Reference, Strand: key.Strand, Category: key.Category,
				Start: iv.Start, Stop: iv.Stop,
			})
		}
	}
	return out
}

// ComparativeBinsFromRows rebuilds a ComparativeBins from rows produced
// by AsArray. A row carrying a Source, Name, Samples or Counts has no
// meaning for this shape and is rejected.
func ComparativeBinsFromRows(rows []Row) (*ComparativeBins, error) {
	out := NewComparativeBins()
	for _, row := range rows {
		if row.Source != "" || row.Name != "" || row.Samples != nil || row.Counts != nil {
			return nil, ErrIncompatibleShape
		}
		key := BinGroupKey{Reference: row.Reference, Strand: row.Strand, Category: row.Category}
		out.groups[key] = append(out.groups[key], cluster.Interval{Start: row.Start, Stop: row.Stop})
	}
	return out, nil
}

// AsArray flattens c into rows, one per comparison bin.
func (c *Comparison) AsArray() []Row {
	var out []Row
	for _, key := range c.Groups() {
		for _, bin := range c.Bins(key) {
			out = append(out, Row{
				Reference: key.Reference, Strand: key.Strand, Category: key.Category,
				Start: bin.Interval.Start, Stop: bin.Interval.Stop,
				Samples: bin.Samples, Counts: bin.Counts,
			})
		}
	}
	return out
}
