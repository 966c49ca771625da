// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tefp-audit dumps the contents of a resultstore database generated by
// tefingerprint as a JSON stream on stdout, one record per cluster.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
	"github.com/PlantandFoodResearch/tefingerprint/internal/resultstore"
)

// clusterRecord is the JSON shape of one persisted cluster.
type clusterRecord struct {
	Reference string
	Strand    string
	Category  string
	Sample    string
	Start     int64
	Stop      int64
	Count     int
}

func main() {
	path := flag.String("db", "", "specify db file to audit (required)")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	store, err := resultstore.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	clusters, err := store.Clusters()
	if err != nil {
		log.Fatal(err)
	}

	sort.Slice(clusters, func(i, j int) bool {
		a, b := clusters[i], clusters[j]
		if !lessKey(a.Key, b.Key) && !lessKey(b.Key, a.Key) {
			return a.Interval.Start < b.Interval.Start
		}
		return lessKey(a.Key, b.Key)
	})

	enc := json.NewEncoder(os.Stdout)
	for _, c := range clusters {
		err := enc.Encode(clusterRecord{
			Reference: c.Key.Reference,
			Strand:    string(c.Key.Strand),
			Category:  c.Key.Category,
			Sample:    c.Key.Source,
			Start:     c.Interval.Start,
			Stop:      c.Interval.Stop,
			Count:     c.Count,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}

func lessKey(a, b loci.ReadGroupKey) bool {
	if a.Reference != b.Reference {
		return a.Reference < b.Reference
	}
	if a.Strand != b.Strand {
		return a.Strand < b.Strand
	}
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	return a.Source < b.Source
}
