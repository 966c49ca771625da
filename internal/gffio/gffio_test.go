// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gffio

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func TestWriteFingerprint(t *testing.T) {
	fp := loci.NewFingerprint()
	key := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "sampleA"}
	fp.Insert(key, []cluster.Interval{{Start: 100, Stop: 200}, {Start: 300, Stop: 310}})

	var buf bytes.Buffer
	if err := WriteFingerprint(&buf, "tefp", fp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := featureLines(buf.String())
	if len(lines) != 2 {
		t.Fatalf("got %d feature lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, "chr1") || !strings.Contains(l, "gypsy") {
			t.Errorf("feature line missing expected fields: %q", l)
		}
	}
}

func TestWriteComparison(t *testing.T) {
	fp := loci.NewFingerprint()
	key := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "sampleA"}
	fp.Insert(key, []cluster.Interval{{Start: 100, Stop: 200}})
	comparative := loci.FromUnion(fp)

	reads := loci.NewReadLoci()
	reads.Insert(key, []loci.ReadInterval{{Start: 150, Stop: 150}})
	comparison := comparative.Compare(reads)

	var buf bytes.Buffer
	if err := WriteComparison(&buf, "tefp", comparison); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := featureLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("got %d feature lines, want 1:\n%s", len(lines), buf.String())
	}
	if !regexp.MustCompile(`samples[= ]"?sampleA\b`).MatchString(lines[0]) || !regexp.MustCompile(`counts[= ]"?1\b`).MatchString(lines[0]) {
		t.Errorf("feature line missing samples/counts attributes: %q", lines[0])
	}
}

func featureLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
