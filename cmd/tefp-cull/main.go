// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tefp-cull discards bins from a comparison that are completely
// contained within a higher-support bin of the same reference, strand
// and category.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PlantandFoodResearch/tefingerprint/internal/bamio"
	"github.com/PlantandFoodResearch/tefingerprint/internal/gffio"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
	"github.com/PlantandFoodResearch/tefingerprint/internal/locidx"
	"github.com/PlantandFoodResearch/tefingerprint/internal/resultstore"
)

func main() {
	var fps, bams sliceValue
	flag.Var(&fps, "fp", "specify a sample's fingerprint database as sample=path.db (required - may be present more than once)")
	flag.Var(&bams, "bam", "specify a sample's indexed BAM file as sample=path.bam, for read-tip counting (required - may be present more than once)")
	tag := flag.String("tag", "ME", "specify the auxiliary tag carrying the mate-element category")
	buffer := flag.Int64("buffer", 0, "specify a distance to widen every bin by before counting")
	out := flag.String("out", "-", "specify the GFF3 output path (- for stdout)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] -fp s1=s1.db -bam s1=s1.bam [-fp s2=s2.db -bam s2=s2.bam ...] >out.gff3

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(fps) == 0 || len(bams) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	fingerprints, err := loadFingerprints(fps)
	if err != nil {
		log.Fatal(err)
	}
	reads, err := loadReads(bams, *tag)
	if err != nil {
		log.Fatal(err)
	}

	bins := loci.FromUnion(fingerprints...)
	if *buffer != 0 {
		bins = bins.Buffer(*buffer)
	}
	cmp := locidx.Cull(bins.Compare(reads))

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("creating output: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := gffio.WriteComparison(w, "tefp-cull", cmp); err != nil {
		log.Fatalf("writing comparison: %v", err)
	}
}

func loadFingerprints(vals sliceValue) ([]*loci.Fingerprint, error) {
	out := make([]*loci.Fingerprint, 0, len(vals))
	for _, v := range vals {
		_, path, err := splitPair(v)
		if err != nil {
			return nil, err
		}
		store, err := resultstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		fp, err := store.Fingerprint()
		store.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out = append(out, fp)
	}
	return out, nil
}

func loadReads(vals sliceValue, tag string) (*loci.ReadLoci, error) {
	merged := loci.NewReadLoci()
	for _, v := range vals {
		sample, path, err := splitPair(v)
		if err != nil {
			return nil, err
		}
		e, err := bamio.Open(path, sample, tag)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		g, err := e.AllReadLoci()
		e.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		merged = loci.MergeReadLoci(merged, g)
	}
	return merged, nil
}

func splitPair(v string) (name, path string, err error) {
	i := strings.IndexByte(v, '=')
	if i < 0 {
		return "", "", fmt.Errorf("malformed value %q, want name=path", v)
	}
	return v[:i], v[i+1:], nil
}

// sliceValue is a multi-value flag value.
type sliceValue []string

// Set adds the string to the sliceValue.
func (s *sliceValue) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// String satisfies the flag.Value interface.
func (s *sliceValue) String() string {
	return fmt.Sprintf("%q", []string(*s))
}
