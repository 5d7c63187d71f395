// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name    string `bson:"name"`
	Age     int32  `bson:"age,omitempty"`
	Hidden  string `bson:"-"`
	private string
}

func TestWriteObjectSafeStructHonorsTagsAndOmitempty(t *testing.T) {
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		return fw.WriteObjectSafe("p", person{Name: "ada", Age: 0, Hidden: "nope"})
	})
	require.NoError(t, err)

	vr, ok, err := doc.Reader().Read("p")
	require.NoError(t, err)
	require.True(t, ok)
	sub, err := vr.ReadDocument()
	require.NoError(t, err)

	_, ok, err = sub.Reader().Read("age")
	require.NoError(t, err)
	assert.False(t, ok, "zero Age with omitempty should be dropped")

	_, ok, err = sub.Reader().Read("Hidden")
	require.NoError(t, err)
	assert.False(t, ok, "bson:\"-\" field should never be written")

	nameVr, ok, err := sub.Reader().Read("name")
	require.NoError(t, err)
	require.True(t, ok)
	name, err := nameVr.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "ada", name)
}

func TestWriteObjectSafeMapAndSlice(t *testing.T) {
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		if err := fw.WriteObjectSafe("m", map[string]interface{}{"k": int32(1)}); err != nil {
			return err
		}
		return fw.WriteObjectSafe("s", []interface{}{int32(1), "two"})
	})
	require.NoError(t, err)

	mv, _, err := doc.Reader().Read("m")
	require.NoError(t, err)
	mdoc, err := mv.ReadDocument()
	require.NoError(t, err)
	kv, ok, err := mdoc.Reader().Read("k")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := kv.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), n)

	sv, _, err := doc.Reader().Read("s")
	require.NoError(t, err)
	sarr, err := sv.ReadArray()
	require.NoError(t, err)
	length, err := sarr.Reader().Len()
	require.NoError(t, err)
	assert.Equal(t, 2, length)
}

func TestWriteObjectSafeUnsupportedType(t *testing.T) {
	_, err := BuildDocument(nil, func(fw *FieldWriter) error {
		return fw.WriteObjectSafe("c", make(chan int))
	})
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindUnsupportedType, berr.Kind)
}

func TestArrayFieldWriterAssignsSequentialKeys(t *testing.T) {
	doc, err := BuildDocument(nil, func(fw *FieldWriter) error {
		return fw.WriteArray("a", func(afw *ArrayFieldWriter) error {
			if err := afw.WriteInt32(1); err != nil {
				return err
			}
			return afw.WriteInt32(2)
		})
	})
	require.NoError(t, err)

	vr, _, err := doc.Reader().Read("a")
	require.NoError(t, err)
	arr, err := vr.ReadArray()
	require.NoError(t, err)
	elems, err := arr.Reader().Elements()
	require.NoError(t, err)
	require.Len(t, elems, 2)
}

func TestCompletableFieldWriterBuildTwiceFails(t *testing.T) {
	c := Background.OpenDocument()
	require.NoError(t, c.WriteInt32("a", 1))
	_, err := c.Build()
	require.NoError(t, err)

	_, err = c.Build()
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindFrozenMutation, berr.Kind)
}
