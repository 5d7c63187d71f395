// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectIDFromHexRoundTrip(t *testing.T) {
	id, err := ObjectIDFromHex("0123456789abcdef01234567")
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef01234567", id.Hex())
}

func TestObjectIDFromHexWrongLength(t *testing.T) {
	_, err := ObjectIDFromHex("abc")
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, KindInvalidObjectID, berr.Kind)
}

func TestObjectIDMinMax(t *testing.T) {
	assert.Equal(t, ObjectID{}, ObjectIDMin)
	for _, b := range ObjectIDMax {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestDefaultObjectIDGeneratorProducesDistinctIDsWithSameRandomComponent(t *testing.T) {
	g := newDefaultGenerator()
	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a[4:9], b[4:9], "process-wide random component is stable across calls")
}

func TestContextGeneratorDefaultsToPackageGenerator(t *testing.T) {
	ctx := NewContext()
	id := ctx.Generator().Generate()
	assert.NotEqual(t, ObjectID{}, id)
}
