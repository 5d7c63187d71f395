// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathStringJoinsSegmentsWithDot(t *testing.T) {
	p := NewPath("a").Field("b").Index(3).Positional()
	assert.Equal(t, "a.b.3.$", p.String())
}

func TestPathAllPositional(t *testing.T) {
	p := NewPath("a").AllPositional()
	assert.Equal(t, "a.$[]", p.String())
}

func TestPathEqual(t *testing.T) {
	a := NewPath("x").Field("y")
	b := PathOf(FieldSegment("x"), FieldSegment("y"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewPath("x")))
}

func TestPathJoinConcatenatesSegments(t *testing.T) {
	a := NewPath("x")
	b := NewPath("y").Index(0)
	assert.Equal(t, "x.y.0", a.Join(b).String())
}

func TestFieldSubPreservesPhantomTypes(t *testing.T) {
	type doc struct{}
	f := NewField[doc, string]("a").Sub("b")
	assert.Equal(t, "a.b", f.Path().String())

	sel := f.Selected()
	assert.Equal(t, "a.b.$", sel.Path().String())

	all := f.All()
	assert.Equal(t, "a.b.$[]", all.Path().String())
}
