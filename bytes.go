// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

// Bytes is an immutable view over a contiguous byte range. Several Bytes
// values may share the same underlying storage; SubRange never copies.
// The zero value is an empty view.
type Bytes struct {
	data       []byte
	begin, end int
}

// NewBytes wraps b as a Bytes view over its full length. b is not copied;
// callers that need an owned copy should use ToOwned on the result or copy
// b themselves first.
func NewBytes(b []byte) Bytes {
	return Bytes{data: b, begin: 0, end: len(b)}
}

// Len returns the number of bytes in the view.
func (b Bytes) Len() int {
	return b.end - b.begin
}

// Raw returns the bytes of the view without copying. Callers must not
// mutate the returned slice; it may be shared with other Bytes views.
func (b Bytes) Raw() []byte {
	return b.data[b.begin:b.end]
}

// ToOwned copies the view into a freshly allocated slice.
func (b Bytes) ToOwned() []byte {
	out := make([]byte, b.Len())
	copy(out, b.Raw())
	return out
}

// SubRange returns a new Bytes sharing storage with b, covering
// [lo, hi) relative to b's own range. It panics if the requested range
// falls outside b's bounds, the same invariant the source maintains by
// construction rather than by a public bounds-check API.
func (b Bytes) SubRange(lo, hi int) Bytes {
	if lo < 0 || hi > b.Len() || lo > hi {
		panic("bson: Bytes.SubRange out of bounds")
	}
	return Bytes{data: b.data, begin: b.begin + lo, end: b.begin + hi}
}

// Reader returns a RawBsonReader positioned at the start of the view.
func (b Bytes) Reader() *RawBsonReader {
	return &RawBsonReader{bytes: b}
}
