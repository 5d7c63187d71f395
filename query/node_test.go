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

// dropNode always simplifies to nil, exercising CompoundNode.Accept's
// drop-empty-child path.
type dropNode struct{ baseNode }

func (d *dropNode) Simplify() BsonNode              { return nil }
func (d *dropNode) Write(fw *bson.FieldWriter) error { return nil }

func TestCompoundNodeAcceptDropsNilSimplification(t *testing.T) {
	c := NewCompoundNode(nil)
	require.NoError(t, c.Accept(&dropNode{}))
	assert.Equal(t, 0, c.Len())
}

func TestCompoundNodeAcceptFreezesChild(t *testing.T) {
	c := NewCompoundNode(nil)
	child := NewFilterQuery(nil)
	require.NoError(t, c.Accept(child))
	require.Len(t, c.Children(), 1)
	assert.True(t, c.Children()[0].Frozen())
}

func TestCompoundNodeRejectsMutationAfterFreeze(t *testing.T) {
	c := NewCompoundNode(nil)
	c.Freeze()
	err := c.Accept(NewAnd(nil))
	require.Error(t, err)
	var berr *bson.Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, bson.KindFrozenMutation, berr.Kind)
}

func TestCompoundNodeRejectsSelfAsChild(t *testing.T) {
	q := NewFilterQuery(nil)
	err := q.Accept(q)
	require.Error(t, err)
	var berr *bson.Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, bson.KindCycleRejected, berr.Kind)
}

func TestBuildEmitsWrittenFields(t *testing.T) {
	q := NewFilterQuery(nil)
	require.NoError(t, q.Where(NewPath("a"), Eq(Int(nil, 1))))
	doc, err := Build(nil, q)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"$eq": 1}}`, doc.String())
}
