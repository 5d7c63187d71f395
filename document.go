// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"sync"

	"go.uber.org/zap"
)

// Document is an immutable owner of a complete BSON byte slice — the
// leading int32 length and trailing 0x00 included. It lazily builds a
// DocumentReader on first access; every copy of a Document shares that
// reader (and its field cache) via the pointer in cache, using
// double-checked publication so concurrent first accesses race safely
// onto a single build.
type Document struct {
	raw   Bytes
	ctx   *Context
	cache *lazyDocumentReader
}

type lazyDocumentReader struct {
	once sync.Once
	dr   *DocumentReader
}

// NewDocument wraps raw as a Document, validating the length prefix and
// trailing terminator. ctx may be nil, in which case Background is used.
func NewDocument(ctx *Context, raw Bytes) (Document, error) {
	if ctx == nil {
		ctx = Background
	}
	if raw.Len() > ctx.maxDocumentLen() {
		return Document{}, errDocumentTooLarge(raw.Len())
	}
	if raw.Len() < 5 {
		return Document{}, newErrorf(KindLengthMismatch, "document of %d bytes is shorter than the 5 byte minimum", raw.Len())
	}
	declared, err := raw.Reader().PeekI32LE()
	if err != nil {
		return Document{}, err
	}
	if int(declared) != raw.Len() {
		return Document{}, newErrorf(KindLengthMismatch, "declared length %d does not match buffer length %d", declared, raw.Len())
	}
	if raw.Raw()[raw.Len()-1] != 0x00 {
		return Document{}, newError(KindLengthMismatch, "document is missing its trailing nul terminator")
	}
	return Document{raw: raw, ctx: ctx, cache: &lazyDocumentReader{}}, nil
}

// DecodeDocument decodes b as a top-level document using Background.
func DecodeDocument(b []byte) (Document, error) {
	return NewDocument(Background, NewBytes(b))
}

// ToBytes returns the complete wire bytes of the document, length prefix
// and terminator included.
func (d Document) ToBytes() []byte {
	return d.raw.ToOwned()
}

// Len returns the document's total encoded length, including its own
// length prefix and terminator.
func (d Document) Len() int {
	return d.raw.Len()
}

// Reader returns the document's (shared, lazily built) DocumentReader.
func (d Document) Reader() *DocumentReader {
	d.cache.once.Do(func() {
		payload := d.raw.SubRange(4, d.raw.Len()-1)
		d.cache.dr = newDocumentReader(d.ctx, payload)
	})
	return d.cache.dr
}

// String renders the document in bsonkit's canonical Extended-JSON-like
// textual form.
func (d Document) String() string {
	return renderDocumentReader(d.Reader())
}

// DocumentReader is a lazy cursor over one document's fields. It scans
// forward only as far as it needs to in order to answer a Read, caching
// every field it passes along the way so later lookups — including ones
// for fields already scanned past — are free.
type DocumentReader struct {
	ctx    *Context
	bytes  Bytes
	cursor *RawBsonReader
	cache  *fieldCache
	done   bool
}

func newDocumentReader(ctx *Context, payload Bytes) *DocumentReader {
	return &DocumentReader{
		ctx:    ctx,
		bytes:  payload,
		cursor: payload.Reader(),
		cache:  newFieldCache(),
	}
}

// Read looks up name, resuming the underlying scan only if the cache
// doesn't already have an answer. It returns (reader, true, nil) on a hit,
// (zero, false, nil) if the document was fully scanned without finding
// name, and a non-nil error if the bytes are malformed.
func (d *DocumentReader) Read(name string) (ValueReader, bool, error) {
	if vr, ok := d.cache.get(name); ok {
		d.ctx.metrics.fieldCacheHits.Inc(1)
		return vr, true, nil
	}
	d.ctx.metrics.fieldCacheMisses.Inc(1)
	for !d.done {
		entry, err := d.scanOne()
		if err != nil {
			return ValueReader{}, false, err
		}
		if entry == nil {
			d.done = true
			break
		}
		d.cache.put(entry.name, entry.vr)
		if entry.name == name {
			return entry.vr, true, nil
		}
	}
	d.ctx.Logger().Debug("lazy scan reached end of document without finding field",
		zap.String("field", name), zap.Int("fields_scanned", d.cache.len()))
	return ValueReader{}, false, nil
}

// scanOne reads one element from the cursor, or returns (nil, nil) at the
// end of the document.
func (d *DocumentReader) scanOne() (*cacheEntry, error) {
	d.ctx.metrics.lazyScans.Inc(1)
	if d.cursor.Remaining() == 0 {
		return nil, nil
	}
	tb, err := d.cursor.ReadU8()
	if err != nil {
		return nil, err
	}
	t := Type(tb)
	name, err := d.cursor.ReadCString()
	if err != nil {
		return nil, err
	}
	valBytes, err := readValueBytes(d.cursor, t)
	if err != nil {
		return nil, err
	}
	return &cacheEntry{name: name, vr: ValueReader{ctx: d.ctx, Type: t, bytes: valBytes}}, nil
}

// ReadAt returns the element at position i in encoded order, regardless of
// its field name. ArrayReader uses this rather than Read(itoa(i)) because
// an array's on-the-wire keys are not guaranteed to be well-formed decimal
// indices (see spec scenario S5): positional addressing must not depend on
// the key text at all.
func (d *DocumentReader) ReadAt(i int) (ValueReader, bool, error) {
	if i < 0 {
		return ValueReader{}, false, nil
	}
	for !d.done && d.cache.len() <= i {
		entry, err := d.scanOne()
		if err != nil {
			return ValueReader{}, false, err
		}
		if entry == nil {
			d.done = true
			break
		}
		d.cache.put(entry.name, entry.vr)
	}
	entries := d.cache.all()
	if i >= len(entries) {
		return ValueReader{}, false, nil
	}
	return entries[i].vr, true, nil
}

// forceFullScan scans every remaining field, as Elements/Entries need to.
func (d *DocumentReader) forceFullScan() error {
	for !d.done {
		entry, err := d.scanOne()
		if err != nil {
			return err
		}
		if entry == nil {
			d.done = true
			break
		}
		d.cache.put(entry.name, entry.vr)
	}
	return nil
}

// Element is one (name, ValueReader) pair from a full enumeration.
type Element struct {
	Name  string
	Value ValueReader
}

// Elements forces a full scan and returns every field in encoded order,
// including duplicate names: both are preserved on full enumeration even
// though Read only ever returns the last binding for a name.
func (d *DocumentReader) Elements() ([]Element, error) {
	if err := d.forceFullScan(); err != nil {
		return nil, err
	}
	entries := d.cache.all()
	out := make([]Element, len(entries))
	for i, e := range entries {
		out[i] = Element{Name: e.name, Value: e.vr}
	}
	return out, nil
}

// Len forces a full scan and returns the number of elements, duplicates
// included.
func (d *DocumentReader) Len() (int, error) {
	if err := d.forceFullScan(); err != nil {
		return 0, err
	}
	return d.cache.len(), nil
}
