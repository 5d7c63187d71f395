// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleDoc(t *testing.T) Document {
	t.Helper()
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		if err := fw.WriteInt32("a", 1); err != nil {
			return err
		}
		if err := fw.WriteString("b", "two"); err != nil {
			return err
		}
		return fw.WriteBoolean("c", true)
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := buildSimpleDoc(t)

	decoded, err := DecodeDocument(doc.ToBytes())
	require.NoError(t, err)
	assert.Equal(t, doc.ToBytes(), decoded.ToBytes())
}

func TestDocumentReaderLazyLookupSkipsUntouchedFields(t *testing.T) {
	doc := buildSimpleDoc(t)
	dr := doc.Reader()

	vr, ok, err := dr.Read("b")
	require.NoError(t, err)
	require.True(t, ok)
	s, err := vr.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "two", s)

	// "a" precedes "b" in encoded order; it must have been cached as a
	// side effect of scanning up to "b", so this lookup is a cache hit
	// with no further scanning.
	before := dr.ctx.Stats().LazyScans
	vr, ok, err = dr.Read("a")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := vr.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), n)
	assert.Equal(t, before, dr.ctx.Stats().LazyScans, "already-scanned field should be a pure cache hit")
}

func TestDocumentReaderMissingField(t *testing.T) {
	doc := buildSimpleDoc(t)
	_, ok, err := doc.Reader().Read("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocumentReaderDuplicateNamesLastWinsOnGet(t *testing.T) {
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		if err := fw.WriteInt32("x", 1); err != nil {
			return err
		}
		return fw.WriteInt32("x", 2)
	})
	require.NoError(t, err)

	vr, ok, err := doc.Reader().Read("x")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := vr.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(2), n, "Read resolves duplicate names to the most recently inserted binding")

	elems, err := doc.Reader().Elements()
	require.NoError(t, err)
	require.Len(t, elems, 2, "Elements preserves both bindings for a full enumeration")
	assert.Equal(t, "x", elems[0].Name)
	assert.Equal(t, "x", elems[1].Name)
}

func TestDocumentNestedSharesZeroCopyView(t *testing.T) {
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		return fw.WriteDocument("child", func(cw *FieldWriter) error {
			return cw.WriteInt32("n", 7)
		})
	})
	require.NoError(t, err)

	vr, ok, err := doc.Reader().Read("child")
	require.NoError(t, err)
	require.True(t, ok)
	child, err := vr.ReadDocument()
	require.NoError(t, err)
	nvr, ok, err := child.Reader().Read("n")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := nvr.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(7), n)
}

func TestDocumentTooShortFails(t *testing.T) {
	_, err := NewDocument(nil, NewBytes([]byte{0x01, 0x02}))
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindLengthMismatch, berr.Kind)
}

func TestDocumentLengthMismatchFails(t *testing.T) {
	// Declares length 20 but the buffer is only 5 bytes.
	raw := []byte{20, 0, 0, 0, 0}
	_, err := NewDocument(nil, NewBytes(raw))
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindLengthMismatch, berr.Kind)
}

func TestDocumentTooLarge(t *testing.T) {
	ctx := NewContext(WithMaxDocumentLen(16))
	_, err := BuildDocument(ctx, func(fw *FieldWriter) error {
		return fw.WriteString("field", "this string alone is longer than sixteen bytes")
	})
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindDocumentTooLarge, berr.Kind)
}
