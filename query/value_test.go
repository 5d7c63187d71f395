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

func buildValueField(t *testing.T, v ValueNode) string {
	t.Helper()
	doc, err := bson.BuildDocument(nil, func(fw *bson.FieldWriter) error {
		return fw.Write("v", v.WriteValue)
	})
	require.NoError(t, err)
	sub, _, err := doc.Reader().Read("v")
	require.NoError(t, err)
	return sub.String()
}

func TestFieldRefRendersDollarPrefixedPath(t *testing.T) {
	got := buildValueField(t, FieldRef(nil, NewPath("a").Field("b")))
	assert.Equal(t, `"$a.b"`, got)
}

func TestTrimWithChars(t *testing.T) {
	got := buildValueField(t, Trim(nil, FieldRef(nil, NewPath("s")), Str(nil, " ")))
	assert.Equal(t, `{"$trim": {"input": "$s", "chars": " "}}`, got)
}

func TestTrimWithoutChars(t *testing.T) {
	got := buildValueField(t, LTrim(nil, FieldRef(nil, NewPath("s")), nil))
	assert.Equal(t, `{"$ltrim": {"input": "$s"}}`, got)
}

func TestToUpperSingleExpr(t *testing.T) {
	got := buildValueField(t, ToUpper(nil, Str(nil, "ada")))
	assert.Equal(t, `{"$toUpper": "ada"}`, got)
}

func TestSubstrCP(t *testing.T) {
	got := buildValueField(t, SubstrCP(nil, FieldRef(nil, NewPath("s")), Int(nil, 0), Int(nil, 3)))
	assert.Equal(t, `{"$substrCP": ["$s", 0, 3]}`, got)
}

func TestSplit(t *testing.T) {
	got := buildValueField(t, Split(nil, FieldRef(nil, NewPath("s")), Str(nil, ",")))
	assert.Equal(t, `{"$split": ["$s", ","]}`, got)
}

func TestReplaceOne(t *testing.T) {
	got := buildValueField(t, ReplaceOne(nil, FieldRef(nil, NewPath("s")), Str(nil, "a"), Str(nil, "b")))
	assert.Equal(t, `{"$replaceOne": {"input": "$s", "find": "a", "replacement": "b"}}`, got)
}

func TestConcatFlattensNestedConcatOnSimplify(t *testing.T) {
	inner := Concat(nil, Str(nil, "b"), Str(nil, "c"))
	outer := Concat(nil, Str(nil, "a"), inner, Str(nil, "d"))
	simplified := outer.Simplify()

	doc, err := bson.BuildDocument(nil, func(fw *bson.FieldWriter) error {
		return fw.Write("v", simplified.(ValueNode).WriteValue)
	})
	require.NoError(t, err)
	sub, _, err := doc.Reader().Read("v")
	require.NoError(t, err)
	assert.Equal(t, `{"$concat": ["a", "b", "c", "d"]}`, sub.String())
}
