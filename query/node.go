// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements the typed filter/update/aggregation expression
// DSL that produces MongoDB-compatible BSON query documents. Every node
// shares the same lifecycle: built by the DSL, simplified on demand,
// frozen on acceptance into a parent, then emitted by Write into an
// enclosing bson.FieldWriter.
package query

import "github.com/go-bsonkit/bsonkit"

// BsonNode is the capability set every expression tree node implements.
type BsonNode interface {
	// Simplify returns a reduced equivalent of the node, or nil if the
	// node contributes nothing to the emitted document.
	Simplify() BsonNode
	// Write emits the node's key/value pairs into fw.
	Write(fw *bson.FieldWriter) error
	// Freeze marks the node as no longer accepting new children.
	Freeze()
	// Frozen reports whether Freeze has been called.
	Frozen() bool
}

type baseNode struct {
	ctx    *bson.Context
	frozen bool
}

func (b *baseNode) Freeze()       { b.frozen = true }
func (b *baseNode) Frozen() bool  { return b.frozen }
func (b *baseNode) context() *bson.Context {
	if b.ctx == nil {
		return bson.Background
	}
	return b.ctx
}

// CompoundNode owns an ordered list of children, guarded by a frozen flag.
type CompoundNode struct {
	baseNode
	children []BsonNode
	// self is the outer node identity (FilterQuery, LogicalNode, …) that
	// embeds this CompoundNode, used so Accept can reject a node being
	// handed itself as a child even though Accept is defined here, one
	// level below the embedding type. Defaults to the CompoundNode itself
	// when unset.
	self BsonNode
}

// NewCompoundNode returns an empty, unfrozen compound bound to ctx.
func NewCompoundNode(ctx *bson.Context) *CompoundNode {
	return &CompoundNode{baseNode: baseNode{ctx: ctx}}
}

// SetSelf records the outer node's identity for cycle detection. Embedding
// types must call this with themselves immediately after construction.
func (c *CompoundNode) SetSelf(self BsonNode) { c.self = self }

// Accept simplifies child; if the result is non-nil it is frozen and
// appended. Accepting into a frozen node or accepting a node as its own
// child fails.
func (c *CompoundNode) Accept(child BsonNode) error {
	if c.frozen {
		c.context().RecordFrozenMutation()
		c.context().Logger().Debug("rejected child: node is frozen")
		return bson.NewError(bson.KindFrozenMutation, "cannot add a child to a frozen node")
	}
	self := c.self
	if self == nil {
		self = c
	}
	if child == self {
		c.context().RecordCycleRejected()
		c.context().Logger().Debug("rejected child: node accepted as its own child")
		return bson.NewError(bson.KindCycleRejected, "a node cannot accept itself as a child")
	}
	simplified := child.Simplify()
	if simplified == nil {
		return nil
	}
	simplified.Freeze()
	c.children = append(c.children, simplified)
	return nil
}

// Simplify defaults to the identity; subclasses (LogicalNode, UpdateQuery)
// override it.
func (c *CompoundNode) Simplify() BsonNode {
	return c
}

// Write emits each child's Write in insertion order, sharing the enclosing
// document with no wrapping envelope.
func (c *CompoundNode) Write(fw *bson.FieldWriter) error {
	for _, child := range c.children {
		if err := child.Write(fw); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the compound's current child list.
func (c *CompoundNode) Children() []BsonNode { return c.children }

// Len returns the number of children.
func (c *CompoundNode) Len() int { return len(c.children) }

// Build assembles a bson.Document containing the emitted fields of node,
// simplifying node itself first. This is the one simplify call not already
// triggered by some parent's Accept — node is, by construction, the root of
// the tree, so nothing else will ever simplify it. A root that simplifies
// away to nil (an empty filter, an update with every operator emptied out)
// builds an empty document.
func Build(ctx *bson.Context, node BsonNode) (bson.Document, error) {
	return bson.BuildDocument(ctx, func(fw *bson.FieldWriter) error {
		simplified := node.Simplify()
		if simplified == nil {
			return nil
		}
		return simplified.Write(fw)
	})
}
