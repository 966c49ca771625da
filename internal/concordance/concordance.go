// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package concordance compares two comparative-bin result sets at
// base-pair resolution, reporting how many bases agree on transposon
// category and how many are discordant or present in only one set.
package concordance

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/biogo/store/step"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/PlantandFoodResearch/tefingerprint/internal/loci"
)

// Record tallies base counts for one side of a comparison.
type Record struct {
	Agree    int `json:"agree"`
	AMissing int `json:"a_missing"`
	BMissing int `json:"b_missing"`
	Mismatch int `json:"mismatch"`
}

// CategoryPair names the two categories found discordant at a position,
// an empty string meaning "no annotation".
type CategoryPair struct {
	A, B string
}

type refStrand struct {
	reference string
	strand    byte
}

// categories is a step vector element recording which category each of
// two comparative-bin sets assigns to a base. Overlapping bins of
// different categories within the same set overwrite each other; bins
// carry no score to break ties on.
type categories struct {
	a, b string
}

func (c categories) Equal(e step.Equaler) bool {
	return c == e.(categories)
}

func (c categories) isZero() bool {
	return c == categories{}
}

// Compare reports base-level agreement between a and b's category
// annotations, together with a breakdown of which category pairs
// account for the discordant bases.
func Compare(a, b *loci.ComparativeBins) (Record, map[CategoryPair]int, error) {
	vectors := make(map[refStrand]*step.Vector)

	vectorFor := func(key refStrand) (*step.Vector, error) {
		v, ok := vectors[key]
		if ok {
			return v, nil
		}
		v, err := step.New(0, 1, categories{})
		if err != nil {
			return nil, err
		}
		v.Relaxed = true
		vectors[key] = v
		return v, nil
	}

	apply := func(bins *loci.ComparativeBins, set func(c categories, category string) categories) error {
		for _, key := range bins.Groups() {
			v, err := vectorFor(refStrand{key.Reference, key.Strand})
			if err != nil {
				return err
			}
			for _, iv := range bins.Bins(key) {
				err := v.ApplyRange(int(iv.Start), int(iv.Stop)+1, func(e step.Equaler) step.Equaler {
					return set(e.(categories), key.Category)
				})
				if err != nil {
					return fmt.Errorf("concordance: applying range: %w", err)
				}
			}
		}
		return nil
	}

	if err := apply(a, func(c categories, category string) categories { c.a = category; return c }); err != nil {
		return Record{}, nil, err
	}
	if err := apply(b, func(c categories, category string) categories { c.b = category; return c }); err != nil {
		return Record{}, nil, err
	}

	keys := make([]refStrand, 0, len(vectors))
	for k := range vectors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].reference != keys[j].reference {
			return keys[i].reference < keys[j].reference
		}
		return keys[i].strand < keys[j].strand
	})

	var rec Record
	mismatches := make(map[CategoryPair]int)
	for _, key := range keys {
		vectors[key].Do(func(start, end int, e step.Equaler) {
			c := e.(categories)
			if c.isZero() {
				return
			}
			n := end - start
			switch {
			case c.a == c.b:
				rec.Agree += n
			case c.a == "":
				rec.AMissing += n
				mismatches[CategoryPair{A: "", B: c.b}] += n
			case c.b == "":
				rec.BMissing += n
				mismatches[CategoryPair{A: c.a, B: ""}] += n
			default:
				rec.Mismatch += n
				mismatches[CategoryPair{A: c.a, B: c.b}] += n
			}
		})
	}
	return rec, mismatches, nil
}

// WriteDOT writes the discordant category pairs as a weighted
// undirected graph in DOT format, with edge weights equal to the
// number of discordant bases between the two categories. aLabel and
// bLabel prefix node names so the same category from each side is
// distinguishable; none labels a missing annotation.
func WriteDOT(path, aLabel, bLabel string, mismatches map[CategoryPair]int, none string) error {
	g := newNameGraph(none)
	for p, w := range mismatches {
		e := edge{f: g.nodeFor(aLabel, p.A), t: g.nodeFor(bLabel, p.B), w: float64(w)}
		g.SetWeightedEdge(e)
	}
	b, err := dot.Marshal(g, "discord", "", "\t")
	if err != nil {
		return fmt.Errorf("concordance: marshalling dot: %w", err)
	}
	return ioutil.WriteFile(path, b, 0o664)
}

type nameGraph struct {
	*simple.WeightedUndirectedGraph
	idFor map[string]int64
	none  string
}

func newNameGraph(none string) nameGraph {
	return nameGraph{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, 0),
		idFor:                   make(map[string]int64),
		none:                    none,
	}
}

func (g nameGraph) nodeFor(label, category string) graph.Node {
	if category == "" {
		category = g.none
	}
	name := label + ":" + category
	id, ok := g.idFor[name]
	if ok {
		return g.Node(id)
	}
	id = g.WeightedUndirectedGraph.NewNode().ID()
	g.idFor[name] = id
	n := node{id: id, name: name}
	g.AddNode(n)
	return n
}

type node struct {
	id   int64
	name string
}

func (n node) ID() int64     { return n.id }
func (n node) DOTID() string { return n.name }

type edge struct {
	f, t graph.Node
	w    float64
}

func (e edge) From() graph.Node         { return e.f }
func (e edge) To() graph.Node           { return e.t }
func (e edge) ReversedEdge() graph.Edge { return edge{f: e.t, t: e.f, w: e.w} }
func (e edge) Weight() float64          { return e.w }
func (e edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "weight", Value: fmt.Sprint(e.w)}}
}
