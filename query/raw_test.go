// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/go-bsonkit/bsonkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawNodeCopiesFieldsThrough(t *testing.T) {
	wrapped, err := bson.BuildDocument(nil, func(fw *bson.FieldWriter) error {
		return fw.WriteInt32("n", 5)
	})
	require.NoError(t, err)

	q := NewFilterQuery(nil)
	require.NoError(t, q.Accept(Raw(nil, wrapped)))
	doc, err := Build(nil, q)
	require.NoError(t, err)
	assert.Equal(t, `{"n": 5}`, doc.String())
}

func TestRawNodeDropsEmptyDocument(t *testing.T) {
	empty, err := bson.BuildDocument(nil, func(*bson.FieldWriter) error { return nil })
	require.NoError(t, err)

	q := NewFilterQuery(nil)
	require.NoError(t, q.Accept(Raw(nil, empty)))
	doc, err := Build(nil, q)
	require.NoError(t, err)
	assert.Equal(t, `{}`, doc.String())
}

// RawValue must write its payload directly into the value slot, not
// wrapped in a spurious envelope document.
func TestRawValueWritesBareValue(t *testing.T) {
	doc, err := bson.BuildDocument(nil, func(fw *bson.FieldWriter) error {
		return fw.Write("v", RawValue(nil, int32(42)).WriteValue)
	})
	require.NoError(t, err)
	assert.Equal(t, `{"v": 42}`, doc.String())
}

func TestRawValueInsideConcat(t *testing.T) {
	got := buildValueField(t, Concat(nil, Str(nil, "x"), RawValue(nil, "y")))
	assert.Equal(t, `{"$concat": ["x", "y"]}`, got)
}
