// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import "sync"

// Array is an immutable owner of a complete BSON array's wire bytes — a
// document whose field names happen to be "0", "1", "2", and so on. It
// mirrors Document's lazy, shared-reader design exactly.
type Array struct {
	raw   Bytes
	ctx   *Context
	cache *lazyArrayReader
}

type lazyArrayReader struct {
	once sync.Once
	ar   *ArrayReader
}

// NewArray wraps raw as an Array, applying the same length-prefix and
// terminator validation as NewDocument.
func NewArray(ctx *Context, raw Bytes) (Array, error) {
	d, err := NewDocument(ctx, raw)
	if err != nil {
		return Array{}, err
	}
	return Array{raw: d.raw, ctx: d.ctx, cache: &lazyArrayReader{}}, nil
}

// DecodeArray decodes b as a top-level array using Background.
func DecodeArray(b []byte) (Array, error) {
	return NewArray(Background, NewBytes(b))
}

func (a Array) ToBytes() []byte {
	return a.raw.ToOwned()
}

func (a Array) Len() int {
	return a.raw.Len()
}

// Reader returns the array's (shared, lazily built) ArrayReader.
func (a Array) Reader() *ArrayReader {
	a.cache.once.Do(func() {
		payload := a.raw.SubRange(4, a.raw.Len()-1)
		a.cache.ar = newArrayReader(a.ctx, payload)
	})
	return a.cache.ar
}

func (a Array) String() string {
	return renderArrayReader(a.Reader())
}

// ArrayReader is a lazy cursor over an array's elements, addressed by
// position in encoded order rather than by field name (the on-the-wire
// key text is ignored), but otherwise identical in mechanics to
// DocumentReader — it reuses the same fieldCache and scanning loop.
type ArrayReader struct {
	dr *DocumentReader
}

func newArrayReader(ctx *Context, payload Bytes) *ArrayReader {
	return &ArrayReader{dr: newDocumentReader(ctx, payload)}
}

// Read returns the element at index i. It returns ok=false if the array
// has fewer than i+1 elements.
func (a *ArrayReader) Read(i int) (ValueReader, bool, error) {
	return a.dr.ReadAt(i)
}

// Elements forces a full scan and returns every element in index order.
func (a *ArrayReader) Elements() ([]ValueReader, error) {
	elems, err := a.dr.Elements()
	if err != nil {
		return nil, err
	}
	out := make([]ValueReader, len(elems))
	for i, e := range elems {
		out[i] = e.Value
	}
	return out, nil
}

// Len forces a full scan and returns the element count.
func (a *ArrayReader) Len() (int, error) {
	return a.dr.Len()
}
