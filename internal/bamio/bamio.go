// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bamio enumerates tagged insertion-evidence reads out of an
// indexed BAM file into the internal/loci read-group shape.
package bamio

import (
	"fmt"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
	"github.com/PlantandFoodResearch/tefingerprint/internal/reads"
)

// Enumerator reads tagged insertion-evidence reads from a single
// sample's BAM file, using its BAI index to restrict iteration to one
// reference at a time.
type Enumerator struct {
	f           *os.File
	r           *bam.Reader
	idx         *bam.Index
	sample      string
	categoryTag string
}

// Open opens the BAM file at path and its path+".bai" index, reading
// tagged reads for sample under the named auxiliary category tag
// (conventionally "ME").
func Open(path, sample, categoryTag string) (*Enumerator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bamio: opening bam file: %w", err)
	}
	r, err := bam.NewReader(f, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bamio: opening bam stream: %w", err)
	}

	ir, err := os.Open(path + ".bai")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bamio: opening bai file: %w", err)
	}
	idx, err := bam.ReadIndex(ir)
	ir.Close()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bamio: reading bai data: %w", err)
	}

	return &Enumerator{f: f, r: r, idx: idx, sample: sample, categoryTag: categoryTag}, nil
}

// Close releases the underlying file handle.
func (e *Enumerator) Close() error {
	return e.f.Close()
}

// References returns the BAM header's reference sequences.
func (e *Enumerator) References() []*sam.Reference {
	return e.r.Header().Refs()
}

// ReadLoci reads every tagged record aligned to ref into a ReadLoci,
// grouped by strand and category. Unmapped records are skipped; a
// mapped record without a readable category tag is treated as a data
// error and ends the scan.
func (e *Enumerator) ReadLoci(ref *sam.Reference) (*loci.ReadLoci, error) {
	chunks, err := e.idx.Chunks(ref, 0, ref.Len())
	if err != nil {
		return nil, fmt.Errorf("bamio: getting chunks for %s: %w", ref.Name(), err)
	}
	it, err := bam.NewIterator(e.r, chunks)
	if err != nil {
		return nil, fmt.Errorf("bamio: creating iterator for %s: %w", ref.Name(), err)
	}
	defer it.Close()

	out := loci.NewReadLoci()
	for it.Next() {
		rec := it.Record()
		rd, ok, err := reads.FromRecord(rec, e.categoryTag)
		if err != nil {
			return nil, fmt.Errorf("bamio: reading %s: %w", rec.Name, err)
		}
		if !ok {
			continue
		}
		key := loci.ReadGroupKey{
			Reference: ref.Name(),
			Strand:    byte(rd.Strand),
			Category:  rd.Category,
			Source:    e.sample,
		}
		out.Insert(key, []loci.ReadInterval{{Start: rd.Start, Stop: rd.Stop, Name: rd.Name}})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("bamio: iterating %s: %w", ref.Name(), err)
	}
	return out, nil
}

// AllReadLoci reads every reference in the BAM header and merges the
// result into one ReadLoci.
func (e *Enumerator) AllReadLoci() (*loci.ReadLoci, error) {
	merged := loci.NewReadLoci()
	for _, ref := range e.References() {
		g, err := e.ReadLoci(ref)
		if err != nil {
			return nil, err
		}
		merged = loci.MergeReadLoci(merged, g)
	}
	return merged, nil
}
