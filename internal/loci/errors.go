// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loci models genomic loci grouped by reference, strand and
// transposon category: raw per-read intervals, their clustered
// fingerprints, the comparative bins built across samples, and the
// per-sample read-count comparison table built from those bins.
package loci

import "errors"

// ErrIncompatibleShape is returned when a flattened Row carries fields
// that have no meaning for the shape it is being decoded into, for
// example a Source on a row destined for a ComparativeBins group.
var ErrIncompatibleShape = errors.New("loci: row incompatible with target shape")
