// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstore

import (
	"fmt"
	"io"

	"modernc.org/kv"

	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

// writeBatch bounds how many Set calls accumulate in a single kv
// transaction before it is committed.
const writeBatch = 500

// Store is an ordered key/value store of clustered insertion
// intervals, keyed by ByGroupPosition so a full scan yields results
// grouped by reference, strand and category.
type Store struct {
	db *kv.DB
}

// Create makes a new store at path, overwriting any existing file.
func Create(path string) (*Store, error) {
	db, err := kv.Create(path, &kv.Options{Compare: ByGroupPosition})
	if err != nil {
		return nil, fmt.Errorf("resultstore: creating %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Open opens an existing store at path.
func Open(path string) (*Store, error) {
	db, err := kv.Open(path, &kv.Options{Compare: ByGroupPosition})
	if err != nil {
		return nil, fmt.Errorf("resultstore: opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoredCluster is one persisted cluster: the group it belongs to, its
// interval, and the number of that group's raw read tips falling
// within the interval.
type StoredCluster struct {
	Key      loci.ReadGroupKey
	Interval cluster.Interval
	Count    int
}

// PutFingerprint writes every cluster interval in fp, batching writes
// into transactions of writeBatch records at a time. reads supplies
// the raw read tips each interval's read-support count is drawn from;
// it must be the same ReadLoci fp was built from.
func (s *Store) PutFingerprint(fp *loci.Fingerprint, reads *loci.ReadLoci) error {
	i := 0
	for _, key := range fp.Groups() {
		tips := reads.Tips(key)
		for _, iv := range fp.Loci(key) {
			if i%writeBatch == 0 {
				if err := s.db.BeginTransaction(); err != nil {
					return fmt.Errorf("resultstore: begin transaction: %w", err)
				}
			}

			k := ClusterKey{
				Reference: key.Reference, Strand: key.Strand, Category: key.Category, Source: key.Source,
				Start: iv.Start, Stop: iv.Stop,
			}
			count := countTipsWithin(tips, iv)
			if err := s.db.Set(MarshalClusterKey(k), MarshalCount(count)); err != nil {
				return fmt.Errorf("resultstore: set: %w", err)
			}
			i++

			if i%writeBatch == 0 {
				if err := s.db.Commit(); err != nil {
					return fmt.Errorf("resultstore: commit: %w", err)
				}
			}
		}
	}
	if i%writeBatch != 0 {
		if err := s.db.Commit(); err != nil {
			return fmt.Errorf("resultstore: final commit: %w", err)
		}
	}
	return nil
}

func countTipsWithin(tips []int64, iv cluster.Interval) int {
	n := 0
	for _, t := range tips {
		if t >= iv.Start && t <= iv.Stop {
			n++
		}
	}
	return n
}

// Clusters reads every record in the store back as StoredClusters,
// in ByGroupPosition order.
func (s *Store) Clusters() ([]StoredCluster, error) {
	it, err := s.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("resultstore: seeking first record: %w", err)
	}

	var out []StoredCluster
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("resultstore: reading record: %w", err)
		}
		ck := UnmarshalClusterKey(k)
		out = append(out, StoredCluster{
			Key:      loci.ReadGroupKey{Reference: ck.Reference, Strand: ck.Strand, Category: ck.Category, Source: ck.Source},
			Interval: cluster.Interval{Start: ck.Start, Stop: ck.Stop},
			Count:    UnmarshalCount(v),
		})
	}
	return out, nil
}

// Fingerprint reads every record in the store back into a Fingerprint,
// discarding read-support counts. Use Clusters to retain them.
func (s *Store) Fingerprint() (*loci.Fingerprint, error) {
	clusters, err := s.Clusters()
	if err != nil {
		return nil, err
	}

	pooled := make(map[loci.ReadGroupKey][]cluster.Interval)
	for _, c := range clusters {
		pooled[c.Key] = append(pooled[c.Key], c.Interval)
	}

	fp := loci.NewFingerprint()
	for key, ivs := range pooled {
		fp.Insert(key, ivs)
	}
	return fp, nil
}
