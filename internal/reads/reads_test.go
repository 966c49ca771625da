// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reads

import (
	"testing"

	"github.com/biogo/hts/sam"
)

func mustRecord(t *testing.T, name string, pos int, length int, flags sam.Flags, category string) *sam.Record {
	t.Helper()
	r := &sam.Record{
		Name:  name,
		Pos:   pos,
		Flags: flags,
		Cigar: sam.Cigar{sam.NewCigarOp(sam.CigarMatch, length)},
		Seq:   sam.Seq{Length: length, Seq: make([]sam.Doublet, (length+1)/2)},
	}
	if category != "" {
		aux, err := sam.NewAux(sam.NewTag("ME"), category)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r.AuxFields = append(r.AuxFields, aux)
	}
	return r
}

// mustSoftClippedRecord builds a record whose CIGAR-consumed reference
// span (matchLength) differs from its raw SEQ length (seqLength), as
// happens with soft clips or indels.
func mustSoftClippedRecord(t *testing.T, name string, pos, clipLength, matchLength int, category string) *sam.Record {
	t.Helper()
	seqLength := clipLength + matchLength
	r := &sam.Record{
		Name: name,
		Pos:  pos,
		Cigar: sam.Cigar{
			sam.NewCigarOp(sam.CigarSoftClipped, clipLength),
			sam.NewCigarOp(sam.CigarMatch, matchLength),
		},
		Seq: sam.Seq{Length: seqLength, Seq: make([]sam.Doublet, (seqLength+1)/2)},
	}
	aux, err := sam.NewAux(sam.NewTag("ME"), category)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.AuxFields = append(r.AuxFields, aux)
	return r
}

func TestFromRecordForward(t *testing.T) {
	r := mustRecord(t, "read1", 99, 10, 0, "gypsy")
	got, ok, err := FromRecord(r, "ME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	want := Read{Name: "read1", Category: "gypsy", Strand: Forward, Start: 100, Stop: 109}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Tip() != 109 || got.Tail() != 100 {
		t.Errorf("tip/tail = %d/%d, want 109/100", got.Tip(), got.Tail())
	}
}

func TestFromRecordReverse(t *testing.T) {
	r := mustRecord(t, "read2", 99, 10, sam.Reverse, "gypsy")
	got, ok, err := FromRecord(r, "ME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	if got.Strand != Reverse {
		t.Errorf("strand = %v, want -", got.Strand)
	}
	if got.Tip() != 100 || got.Tail() != 109 {
		t.Errorf("tip/tail = %d/%d, want 100/109", got.Tip(), got.Tail())
	}
}

func TestFromRecordUnmapped(t *testing.T) {
	r := mustRecord(t, "read3", 0, 10, sam.Unmapped, "gypsy")
	_, ok, err := FromRecord(r, "ME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected unmapped record to be skipped")
	}
}

func TestFromRecordSoftClippedUsesSeqLengthNotCigarSpan(t *testing.T) {
	// 5bp soft clip + 10bp match: CIGAR consumes only 10bp of reference,
	// but the full 15bp SEQ must set the read's span, per the tip rule.
	r := mustSoftClippedRecord(t, "read5", 99, 5, 10, "gypsy")
	got, ok, err := FromRecord(r, "ME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	want := Read{Name: "read5", Category: "gypsy", Strand: Forward, Start: 100, Stop: 114}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if wrong := int64(r.End()); wrong == got.Stop {
		t.Fatalf("test does not distinguish r.End() (%d) from SEQ length", wrong)
	}
}

func TestFromRecordUntagged(t *testing.T) {
	r := mustRecord(t, "read4", 0, 10, 0, "")
	_, _, err := FromRecord(r, "ME")
	if err != ErrUntagged {
		t.Errorf("got %v, want %v", err, ErrUntagged)
	}
}
