// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstore

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

func TestClusterKeyRoundTrip(t *testing.T) {
	k := ClusterKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "sampleA", Start: 100, Stop: 200}
	got := UnmarshalClusterKey(MarshalClusterKey(k))
	if got != k {
		t.Errorf("got %+v, want %+v", got, k)
	}
}

func TestByGroupPositionOrdersPlusBeforeMinus(t *testing.T) {
	plus := MarshalClusterKey(ClusterKey{Reference: "chr1", Strand: '+', Start: 1, Stop: 2})
	minus := MarshalClusterKey(ClusterKey{Reference: "chr1", Strand: '-', Start: 1, Stop: 2})
	if ByGroupPosition(plus, minus) >= 0 {
		t.Error("expected '+' to sort before '-'")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fingerprint.db")

	fp := loci.NewFingerprint()
	key := loci.ReadGroupKey{Reference: "chr1", Strand: '+', Category: "gypsy", Source: "sampleA"}
	fp.Insert(key, []cluster.Interval{{Start: 100, Stop: 200}, {Start: 300, Stop: 310}})

	reads := loci.NewReadLoci()
	reads.Insert(key, []loci.ReadInterval{
		{Start: 150, Stop: 150}, {Start: 180, Stop: 180}, {Start: 305, Stop: 305},
	})

	s, err := Create(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.PutFingerprint(fp, reads); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Fingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotIvs := append([]cluster.Interval(nil), got.Loci(key)...)
	sort.Slice(gotIvs, func(i, j int) bool { return gotIvs[i].Start < gotIvs[j].Start })
	want := []cluster.Interval{{Start: 100, Stop: 200}, {Start: 300, Stop: 310}}
	if !reflect.DeepEqual(gotIvs, want) {
		t.Errorf("got %v, want %v", gotIvs, want)
	}

	clusters, err := reopened.Clusters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Interval.Start < clusters[j].Interval.Start })
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if clusters[0].Count != 2 {
		t.Errorf("counts[0] = %d, want 2 (tips 150, 180 in [100,200])", clusters[0].Count)
	}
	if clusters[1].Count != 1 {
		t.Errorf("counts[1] = %d, want 1 (tip 305 in [300,310])", clusters[1].Count)
	}
}
