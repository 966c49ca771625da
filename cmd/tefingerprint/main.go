// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tefingerprint clusters transposon-tagged reads from one or more indexed
// BAM files into per-sample insertion fingerprints, writing the result as
// a resultstore database and, optionally, as a GFF3 stream.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/PlantandFoodResearch/tefingerprint/internal/bamio"
	"github.com/PlantandFoodResearch/tefingerprint/internal/cluster"
	"github.com/PlantandFoodResearch/tefingerprint/internal/gffio"
	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
	"github.com/PlantandFoodResearch/tefingerprint/internal/resultstore"
)

func main() {
	var bams sliceValue
	flag.Var(&bams, "bam", "specify a sample's indexed BAM file as sample=path.bam (required - may be present more than once)")
	tag := flag.String("tag", "ME", "specify the auxiliary tag carrying the mate-element category")
	minReads := flag.Int("min-reads", 5, "specify the minimum number of reads to form a cluster")
	eps := flag.Int64("eps", 100, "specify the maximum cluster separation distance")
	minEps := flag.Int64("min-eps", 0, "specify the minimum separation distance for hierarchical clustering")
	hierarchical := flag.Bool("hierarchical", true, "specify hierarchical clustering (HUDC) in place of flat clustering (UDC)")
	method := flag.String("method", "conservative", "specify the HUDC support-scoring method: conservative or aggressive")
	cores := flag.Int("cores", runtime.NumCPU(), "specify the maximum number of cores to use (<=0 is use all cores)")
	db := flag.String("db", "", "specify the path to write the result database (required)")
	gffOut := flag.String("gff", "", "specify a path to also write the fingerprint as GFF3 (- for stdout)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] -bam sample1=a.bam [-bam sample2=b.bam ...] -db out.db

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(bams) == 0 || *db == "" {
		flag.Usage()
		os.Exit(2)
	}

	samples, err := parseSamples(bams)
	if err != nil {
		log.Fatal(err)
	}

	m, err := cluster.ParseMethod(*method)
	if err != nil {
		log.Fatal(err)
	}

	n := *cores
	if n <= 0 {
		n = runtime.NumCPU()
	}

	jobs, err := discoverJobs(samples, *tag)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("dispatching %d sample/reference partitions across %d workers", len(jobs), n)

	merged, err := fingerprintAll(jobs, *tag, n)
	if err != nil {
		log.Fatal(err)
	}

	fp, err := merged.Fingerprint(loci.FingerprintOptions{
		MinPoints:    *minReads,
		Epsilon:      *eps,
		MinEps:       *minEps,
		Hierarchical: *hierarchical,
		Method:       m,
	})
	if err != nil {
		log.Fatal(err)
	}

	store, err := resultstore.Create(*db)
	if err != nil {
		log.Fatalf("creating result database: %v", err)
	}
	if err := store.PutFingerprint(fp, merged); err != nil {
		store.Close()
		log.Fatalf("writing result database: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Fatalf("closing result database: %v", err)
	}

	if *gffOut != "" {
		out := os.Stdout
		if *gffOut != "-" {
			f, err := os.Create(*gffOut)
			if err != nil {
				log.Fatalf("creating gff output: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := gffio.WriteFingerprint(out, "tefingerprint", fp); err != nil {
			log.Fatalf("writing gff output: %v", err)
		}
	}
}

// sample names one sample's path.
type sample struct {
	name, path string
}

func parseSamples(vals sliceValue) ([]sample, error) {
	out := make([]sample, 0, len(vals))
	for _, v := range vals {
		i := strings.IndexByte(v, '=')
		if i < 0 {
			return nil, fmt.Errorf("malformed -bam value %q, want sample=path.bam", v)
		}
		out = append(out, sample{name: v[:i], path: v[i+1:]})
	}
	return out, nil
}

// job is one sample's scan of one reference sequence.
type job struct {
	sample  sample
	refName string
}

// discoverJobs opens each sample's BAM file once to list its references,
// then closes it; workers reopen per job so no two goroutines ever share
// a bam.Reader.
func discoverJobs(samples []sample, tag string) ([]job, error) {
	var jobs []job
	for _, s := range samples {
		e, err := bamio.Open(s.path, s.name, tag)
		if err != nil {
			return nil, err
		}
		for _, ref := range e.References() {
			jobs = append(jobs, job{sample: s, refName: ref.Name()})
		}
		if err := e.Close(); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// fingerprintAll scans every job's reference with n concurrent workers,
// each holding its own Enumerator, and merges the resulting read loci.
// Grounded on the buffered-channel/WaitGroup worker pool used by
// grailbio-bio's markduplicates.generateBAM.
func fingerprintAll(jobs []job, tag string, n int) (*loci.ReadLoci, error) {
	jobCh := make(chan job, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	type result struct {
		loci *loci.ReadLoci
		err  error
	}
	resultCh := make(chan result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				g, err := scanJob(j, tag)
				resultCh <- result{loci: g, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	merged := loci.NewReadLoci()
	var firstErr error
	for r := range resultCh {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		merged = loci.MergeReadLoci(merged, r.loci)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return merged, nil
}

func scanJob(j job, tag string) (*loci.ReadLoci, error) {
	e, err := bamio.Open(j.sample.path, j.sample.name, tag)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	for _, ref := range e.References() {
		if ref.Name() != j.refName {
			continue
		}
		return e.ReadLoci(ref)
	}
	return nil, fmt.Errorf("reference %q not found in %s", j.refName, j.sample.path)
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
