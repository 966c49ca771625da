// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gffio emits fingerprints and comparisons as GFF3 features.
package gffio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func strandOf(b byte) seq.Strand {
	switch b {
	case '+':
		return seq.Plus
	case '-':
		return seq.Minus
	default:
		return seq.None
	}
}

// WriteFingerprint writes one GFF3 feature per cluster in fp. The
// feature source is the cluster's sample name; source prefixes each
// feature's ID.
func WriteFingerprint(w io.Writer, source string, fp *loci.Fingerprint) error {
	enc := gff.NewWriter(w, 60, true)
	n := 0
	for _, key := range fp.Groups() {
		for _, iv := range fp.Loci(key) {
			n++
			_, err := enc.Write(&gff.Feature{
				SeqName:    key.Reference,
				Source:     key.Source,
				Feature:    "transposon_insertion_site",
				FeatStart:  int(iv.Start),
				FeatEnd:    int(iv.Stop),
				FeatStrand: strandOf(key.Strand),
				FeatFrame:  gff.NoFrame,
				FeatAttributes: gff.Attributes{
					{Tag: "ID", Value: fmt.Sprintf("%s_%d", source, n)},
					{Tag: "Name", Value: key.Category},
					{Tag: "Sample", Value: key.Source},
				},
			})
			if err != nil {
				return fmt.Errorf("gffio: writing feature: %w", err)
			}
		}
	}
	return nil
}

// WriteComparison writes one GFF3 feature per comparative bin, with the
// bin's samples and their tip counts encoded as "samples" and "counts"
// attributes, each a comma-joined list in the bin's sample order.
func WriteComparison(w io.Writer, source string, cmp *loci.Comparison) error {
	enc := gff.NewWriter(w, 60, true)
	n := 0
	for _, key := range cmp.Groups() {
		for _, bin := range cmp.Bins(key) {
			n++
			counts := make([]string, len(bin.Counts))
			for i, c := range bin.Counts {
				counts[i] = strconv.Itoa(c)
			}
			_, err := enc.Write(&gff.Feature{
				SeqName:    key.Reference,
				Source:     source,
				Feature:    "transposon_insertion_bin",
				FeatStart:  int(bin.Interval.Start),
				FeatEnd:    int(bin.Interval.Stop),
				FeatStrand: strandOf(key.Strand),
				FeatFrame:  gff.NoFrame,
				FeatAttributes: gff.Attributes{
					{Tag: "ID", Value: fmt.Sprintf("%s_bin_%d", source, n)},
					{Tag: "Name", Value: key.Category},
					{Tag: "samples", Value: strings.Join(bin.Samples, ",")},
					{Tag: "counts", Value: strings.Join(counts, ",")},
				},
			})
			if err != nil {
				return fmt.Errorf("gffio: writing feature: %w", err)
			}
		}
	}
	return nil
}
