// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reads extracts transposon-tagged read positions from aligned
// SAM/BAM records: strand, tip/tail coordinates and the mate-element
// category carried in an auxiliary tag.
package reads

import (
	"errors"

	"github.com/biogo/hts/sam"
)

// ErrUntagged is returned when a record has no mate-element category tag.
var ErrUntagged = errors.New("reads: record has no mate-element tag")

// Strand is the strand a read aligned to.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) String() string { return string(s) }

// StrandOf reports the strand a record aligned to from its SAM flags.
func StrandOf(r *sam.Record) Strand {
	if r.Flags&sam.Reverse != 0 {
		return Reverse
	}
	return Forward
}

// Read is a single aligned read's evidence for an insertion: its
// 1-based inclusive span, strand, mate-element category and name.
type Read struct {
	Name     string
	Category string
	Strand   Strand
	Start    int64
	Stop     int64
}

// Tip returns the coordinate of the read's 3' end relative to the
// direction of the insertion it provides evidence for: the alignment's
// downstream end on the forward strand, upstream end on the reverse.
func (r Read) Tip() int64 {
	if r.Strand == Forward {
		return r.Stop
	}
	return r.Start
}

// Tail returns the coordinate opposite Tip.
func (r Read) Tail() int64 {
	if r.Strand == Forward {
		return r.Start
	}
	return r.Stop
}

// FromRecord builds a Read from an aligned SAM record, reading its
// mate-element category from the named auxiliary tag (conventionally
// "ME"). It returns ErrUntagged if the record has no such tag, and
// reports false, nil for unmapped records without error since those
// are routinely filtered out of a BAM stream rather than a fault.
func FromRecord(r *sam.Record, categoryTag string) (Read, bool, error) {
	if r.Flags&sam.Unmapped != 0 {
		return Read{}, false, nil
	}
	tag := sam.NewTag(categoryTag)
	aux, ok := r.Tag(tag[:])
	if !ok {
		return Read{}, false, ErrUntagged
	}
	category, ok := aux.Value().(string)
	if !ok {
		return Read{}, false, ErrUntagged
	}

	start := int64(r.Start()) + 1 // sam.Record positions are 0-based
	stop := start + int64(r.Seq.Length) - 1 // full SEQ span, not CIGAR-consumed length
	return Read{
		Name:     r.Name,
		Category: category,
		Strand:   StrandOf(r),
		Start:    start,
		Stop:     stop,
	}, true, nil
}
