// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"math"

	"github.com/valyala/bytebufferpool"
)

// MaxDocumentLen is the largest document/array bsonkit will emit or
// accept, matching the MongoDB 16 MiB convention. Documents larger than
// this, or larger than math.MaxInt32 bytes, fail with
// KindDocumentTooLarge.
const MaxDocumentLen = 16 * 1024 * 1024

var bufferPool bytebufferpool.Pool

// RawBsonWriter is an append-only sink for the little-endian BSON
// primitives. Its backing storage comes from a pooled
// *bytebufferpool.ByteBuffer (github.com/valyala/bytebufferpool) so
// repeated document builds don't re-allocate their backing array from
// scratch.
type RawBsonWriter struct {
	buf *bytebufferpool.ByteBuffer
}

// NewRawBsonWriter returns a writer backed by a buffer drawn from the
// shared pool. Callers that build many documents should call Release when
// done so the buffer can be reused.
func NewRawBsonWriter() *RawBsonWriter {
	return &RawBsonWriter{buf: bufferPool.Get()}
}

// Release returns the backing buffer to the pool. The writer must not be
// used afterward.
func (w *RawBsonWriter) Release() {
	if w.buf != nil {
		bufferPool.Put(w.buf)
		w.buf = nil
	}
}

// Len returns the number of bytes written so far.
func (w *RawBsonWriter) Len() int {
	return w.buf.Len()
}

// Bytes returns the bytes written so far without copying. The slice is
// invalidated by the next write or by Release.
func (w *RawBsonWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// PutAt overwrites 4 bytes at absolute offset off with the little-endian
// encoding of v. Used to backpatch a document's length prefix once its
// size is known.
func (w *RawBsonWriter) PutAt(off int, v int32) {
	b := w.buf.Bytes()
	u := uint32(v)
	b[off] = byte(u)
	b[off+1] = byte(u >> 8)
	b[off+2] = byte(u >> 16)
	b[off+3] = byte(u >> 24)
}

func (w *RawBsonWriter) WriteU8(v byte) {
	w.buf.WriteByte(v)
}

func (w *RawBsonWriter) WriteI8(v int8) {
	w.buf.WriteByte(byte(v))
}

func (w *RawBsonWriter) WriteI32LE(v int32) {
	w.writeU32LE(uint32(v))
}

func (w *RawBsonWriter) writeU32LE(u uint32) {
	var b [4]byte
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
	w.buf.Write(b[:])
}

func (w *RawBsonWriter) WriteI64LE(v int64) {
	w.WriteU64LE(uint64(v))
}

func (w *RawBsonWriter) WriteU64LE(u uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	w.buf.Write(b[:])
}

func (w *RawBsonWriter) WriteF64LE(v float64) {
	w.WriteU64LE(math.Float64bits(v))
}

// WriteCString strips every embedded 0x00 from s before writing it, then
// always appends a trailing 0x00, matching the BSON cstring grammar.
func (w *RawBsonWriter) WriteCString(s string) {
	if !containsNul(s) {
		w.buf.WriteString(s)
		w.buf.WriteByte(0x00)
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] != 0x00 {
			w.buf.WriteByte(s[i])
		}
	}
	w.buf.WriteByte(0x00)
}

func containsNul(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0x00 {
			return true
		}
	}
	return false
}

// WriteString writes a BSON string: int32 (len+1), the UTF-8 bytes, then
// a trailing 0x00.
func (w *RawBsonWriter) WriteString(s string) {
	w.WriteI32LE(int32(len(s) + 1))
	w.buf.WriteString(s)
	w.buf.WriteByte(0x00)
}

// WriteRawBytes appends p verbatim, with no framing of any kind.
func (w *RawBsonWriter) WriteRawBytes(p []byte) {
	w.buf.Write(p)
}
