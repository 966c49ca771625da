// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tefp-concordance compares the comparative bins built from two sets of
// sample fingerprint databases and reports, in JSON on stdout, how many
// bases agree on category and how many are discordant or present in only
// one side. If -dot is given, the discordant category pairs are also
// written as a weighted graph in DOT format.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PlantandFoodResearch/tefingerprint/internal/concordance"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
	"github.com/PlantandFoodResearch/tefingerprint/internal/resultstore"
)

func main() {
	var aFps, bFps sliceValue
	flag.Var(&aFps, "a", "specify side a's fingerprint database as sample=path.db (required - may repeat)")
	flag.Var(&bFps, "b", "specify side b's fingerprint database as sample=path.db (required - may repeat)")
	dot := flag.String("dot", "", "specify a path for a DOT file describing disagreements")
	none := flag.String("none", "none", "specify the label for 'no annotation'")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] -a s1=s1.db [-a s2=s2.db ...] -b s3=s3.db [-b s4=s4.db ...]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(aFps) == 0 || len(bFps) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := comparativeBins(aFps)
	if err != nil {
		log.Fatal(err)
	}
	b, err := comparativeBins(bFps)
	if err != nil {
		log.Fatal(err)
	}

	rec, mismatches, err := concordance.Compare(a, b)
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(rec); err != nil {
		log.Fatal(err)
	}

	if *dot != "" {
		if err := concordance.WriteDOT(*dot, "a", "b", mismatches, *none); err != nil {
			log.Fatal(err)
		}
	}
}

func comparativeBins(fps sliceValue) (*loci.ComparativeBins, error) {
	fingerprints, err := loadFingerprints(fps)
	if err != nil {
		return nil, err
	}
	return loci.FromUnion(fingerprints...), nil
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
