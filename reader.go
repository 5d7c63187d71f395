// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"math"
	"unicode/utf8"
)

// RawBsonReader is a cursor over a Bytes source. It tracks a monotonic
// read position and exposes the little-endian primitives the BSON wire
// format is built from. It has no notion of document structure; that is
// DocumentReader's job.
type RawBsonReader struct {
	bytes Bytes
	pos   int
}

// Pos returns the number of bytes consumed so far.
func (r *RawBsonReader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *RawBsonReader) Remaining() int {
	return r.bytes.Len() - r.pos
}

// Request reports whether at least n bytes remain unread.
func (r *RawBsonReader) Request(n int) bool {
	return r.Remaining() >= n
}

func (r *RawBsonReader) require(n int) error {
	if !r.Request(n) {
		return errUnexpectedEOF(n, r.Remaining())
	}
	return nil
}

// Peek returns a view of the next n bytes without advancing the cursor.
func (r *RawBsonReader) Peek(n int) (Bytes, error) {
	if err := r.require(n); err != nil {
		return Bytes{}, err
	}
	return r.bytes.SubRange(r.pos, r.pos+n), nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *RawBsonReader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadBytes consumes and copies the next n bytes.
func (r *RawBsonReader) ReadBytes(n int) ([]byte, error) {
	v, err := r.ReadBytesView(n)
	if err != nil {
		return nil, err
	}
	return v.ToOwned(), nil
}

// ReadBytesView consumes the next n bytes and returns a zero-copy view
// sharing storage with the reader's source.
func (r *RawBsonReader) ReadBytesView(n int) (Bytes, error) {
	v, err := r.Peek(n)
	if err != nil {
		return Bytes{}, err
	}
	r.pos += n
	return v, nil
}

func (r *RawBsonReader) ReadU8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.bytes.Raw()[r.pos]
	r.pos++
	return b, nil
}

func (r *RawBsonReader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

func (r *RawBsonReader) ReadI32LE() (int32, error) {
	u, err := r.readU32LE()
	return int32(u), err
}

// PeekI32LE reads the next four bytes as a little-endian int32 without
// advancing the cursor. Several field-size computations in DocumentReader
// need to inspect a length prefix before deciding how many bytes the value
// occupies.
func (r *RawBsonReader) PeekI32LE() (int32, error) {
	v, err := r.Peek(4)
	if err != nil {
		return 0, err
	}
	raw := v.Raw()
	u := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	return int32(u), nil
}

func (r *RawBsonReader) readU32LE() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	raw := r.bytes.Raw()[r.pos : r.pos+4]
	u := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	r.pos += 4
	return u, nil
}

func (r *RawBsonReader) ReadI64LE() (int64, error) {
	u, err := r.ReadU64LE()
	return int64(u), err
}

func (r *RawBsonReader) ReadU64LE() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	raw := r.bytes.Raw()[r.pos : r.pos+8]
	var u uint64
	for i := 7; i >= 0; i-- {
		u = u<<8 | uint64(raw[i])
	}
	r.pos += 8
	return u, nil
}

func (r *RawBsonReader) ReadF64LE() (float64, error) {
	u, err := r.ReadU64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// ReadCString reads bytes up to (not including) the first 0x00, UTF-8
// decodes them, and consumes the terminator.
func (r *RawBsonReader) ReadCString() (string, error) {
	raw := r.bytes.Raw()
	for i := r.pos; i < len(raw); i++ {
		if raw[i] == 0x00 {
			s := raw[r.pos:i]
			if !utf8.Valid(s) {
				return "", newError(KindInvalidUTF8, "cstring is not valid utf-8")
			}
			str := string(s)
			r.pos = i + 1
			return str, nil
		}
	}
	return "", newError(KindUnterminatedCString, "no terminating nul before EOF")
}

// SkipCString scans past the next cstring without allocating its content.
func (r *RawBsonReader) SkipCString() error {
	raw := r.bytes.Raw()
	for i := r.pos; i < len(raw); i++ {
		if raw[i] == 0x00 {
			r.pos = i + 1
			return nil
		}
	}
	return newError(KindUnterminatedCString, "no terminating nul before EOF")
}

// ReadString reads a length-prefixed BSON string: an int32 byte count
// (including the terminator), that many bytes minus one as UTF-8, then the
// terminator.
func (r *RawBsonReader) ReadString() (string, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", newErrorf(KindLengthMismatch, "string length %d is less than the minimum of 1", n)
	}
	raw, err := r.ReadBytesView(int(n))
	if err != nil {
		return "", err
	}
	body := raw.Raw()
	if body[len(body)-1] != 0x00 {
		return "", newError(KindLengthMismatch, "string is not terminated by nul at declared length")
	}
	s := body[:len(body)-1]
	if !utf8.Valid(s) {
		return "", newError(KindInvalidUTF8, "string is not valid utf-8")
	}
	return string(s), nil
}
