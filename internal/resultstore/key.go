// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultstore persists clustered insertion fingerprints to an
// ordered on-disk key/value store, so a run's results can be resumed,
// audited or merged without recomputation.
package resultstore

import (
	"bytes"
	"encoding/binary"
)

var order = binary.BigEndian

// ClusterKey identifies a single clustered insertion interval.
type ClusterKey struct {
	Reference string
	Strand    byte
	Category  string
	Source    string
	Start     int64
	Stop      int64
}

// MarshalClusterKey encodes k as a length-prefixed binary key, ordered
// so that ByGroupPosition can compare encoded keys directly.
func MarshalClusterKey(k ClusterKey) []byte {
	var (
		buf bytes.Buffer
		b   [8]byte
	)
	writeString := func(s string) {
		order.PutUint64(b[:], uint64(len(s)))
		buf.Write(b[:])
		buf.WriteString(s)
	}
	writeInt64 := func(n int64) {
		order.PutUint64(b[:], uint64(n))
		buf.Write(b[:])
	}

	writeString(k.Reference)
	buf.WriteByte(k.Strand)
	writeString(k.Category)
	writeString(k.Source)
	writeInt64(k.Start)
	writeInt64(k.Stop)
	return buf.Bytes()
}

// UnmarshalClusterKey decodes a key produced by MarshalClusterKey.
func UnmarshalClusterKey(data []byte) ClusterKey {
	var k ClusterKey
	const n64 = 8

	readString := func() string {
		n := order.Uint64(data[:n64])
		data = data[n64:]
		s := string(data[:n])
		data = data[n:]
		return s
	}
	readInt64 := func() int64 {
		n := int64(order.Uint64(data[:n64]))
		data = data[n64:]
		return n
	}

	k.Reference = readString()
	k.Strand = data[0]
	data = data[1:]
	k.Category = readString()
	k.Source = readString()
	k.Start = readInt64()
	k.Stop = readInt64()
	return k
}

// MarshalCount encodes a read-support count as a kv value.
func MarshalCount(n int) []byte {
	var b [8]byte
	order.PutUint64(b[:], uint64(n))
	return b[:]
}

// UnmarshalCount decodes a count produced by MarshalCount. A nil or
// empty value, as written by older databases that carried no count,
// decodes to zero.
func UnmarshalCount(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return int(order.Uint64(data))
}

// ByGroupPosition is a kv compare function ordering keys by reference,
// strand, category, source and position. '+' (0x2B) sorts before '-'
// (0x2D) under plain byte order, which is the order callers expect.
func ByGroupPosition(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	rx := UnmarshalClusterKey(x)
	ry := UnmarshalClusterKey(y)

	switch {
	case rx.Reference < ry.Reference:
		return -1
	case rx.Reference > ry.Reference:
		return 1
	}
	switch {
	case rx.Strand < ry.Strand:
		return -1
	case rx.Strand > ry.Strand:
		return 1
	}
	switch {
	case rx.Category < ry.Category:
		return -1
	case rx.Category > ry.Category:
		return 1
	}
	switch {
	case rx.Source < ry.Source:
		return -1
	case rx.Source > ry.Source:
		return 1
	}
	switch {
	case rx.Start < ry.Start:
		return -1
	case rx.Start > ry.Start:
		return 1
	}
	switch {
	case rx.Stop < ry.Stop:
		return -1
	case rx.Stop > ry.Stop:
		return 1
	}

	panic("unreachable")
}
