// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tefp-tag tags genome-aligned "dangler" reads with the mate-element
// category their mate aligned to in a repeat library, completing the
// read side of the preprocessing boundary: mapping reads to a repeat
// library and back to the genome with an external aligner stays outside
// this repository, but stamping the resulting alignments with their
// category is pure bookkeeping and belongs here.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

func main() {
	in := flag.String("bam", "", "specify the genome-aligned dangler BAM file (required)")
	elements := flag.String("elements", "", "specify a read-name\\tcategory mapping file (required)")
	tag := flag.String("tag", "ME", "specify the auxiliary tag to write the category under")
	out := flag.String("out", "", "specify the tagged output BAM file (required)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -bam danglers.bam -elements mates.tsv -out tagged.bam

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if *in == "" || *elements == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	categoryOf, err := readElements(*elements)
	if err != nil {
		log.Fatal(err)
	}

	if err := tagBAM(*in, *out, *tag, categoryOf); err != nil {
		log.Fatal(err)
	}
}

// readElements reads a read-name\tcategory mapping, one pair per line,
// as produced by the external mate-mapping step.
func readElements(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening elements file: %w", err)
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed elements line: %q", line)
		}
		m[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading elements file: %w", err)
	}
	return m, nil
}

func tagBAM(inPath, outPath, tagName string, categoryOf map[string]string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening bam file: %w", err)
	}
	defer in.Close()

	r, err := bam.NewReader(in, 0)
	if err != nil {
		return fmt.Errorf("opening bam stream: %w", err)
	}
	defer r.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output bam file: %w", err)
	}
	defer out.Close()

	w, err := bam.NewWriter(out, r.Header(), 1)
	if err != nil {
		return fmt.Errorf("opening bam writer: %w", err)
	}
	defer w.Close()

	tag := sam.NewTag(tagName)
	n, tagged := 0, 0
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("reading bam record: %w", err)
		}
		n++
		if category, ok := categoryOf[rec.Name]; ok {
			aux, err := sam.NewAux(tag, category)
			if err != nil {
				return fmt.Errorf("tagging %s: %w", rec.Name, err)
			}
			rec.AuxFields = append(rec.AuxFields, aux)
			tagged++
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", rec.Name, err)
		}
	}
	log.Printf("tagged %d of %d reads", tagged, n)
	return nil
}
