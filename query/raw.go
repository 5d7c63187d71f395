// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "github.com/go-bsonkit/bsonkit"

// RawNode is the escape hatch the DSL has no operator for: it copies every
// field of an already-decoded document straight through to the enclosing
// writer via bson's reflection hook, so a caller can splice in a
// hand-built or externally-sourced fragment.
type RawNode struct {
	baseNode
	doc bson.Document
}

// Raw wraps doc as a BsonNode — the escape hatch for query trees that need
// to splice in an already-built document the typed DSL has no operator
// for. An empty document simplifies to nothing.
func Raw(ctx *bson.Context, doc bson.Document) *RawNode {
	return &RawNode{baseNode: baseNode{ctx: ctx}, doc: doc}
}

// Simplify drops an empty document (length 5: the bare int32 length
// prefix plus the trailing terminator, no fields).
func (r *RawNode) Simplify() BsonNode {
	if r.doc.Len() <= 5 {
		return nil
	}
	return r
}

// Write copies every field of the wrapped document into fw.
func (r *RawNode) Write(fw *bson.FieldWriter) error {
	elems, err := r.doc.Reader().Elements()
	if err != nil {
		return err
	}
	for _, e := range elems {
		// Interface() decodes JavaScript and Symbol to plain Go strings;
		// write those back under their own type.
		if t := e.Value.Type; t == bson.TypeJavaScript || t == bson.TypeSymbol {
			s, err := e.Value.Interface()
			if err != nil {
				return err
			}
			write := fw.WriteJavaScript
			if t == bson.TypeSymbol {
				write = fw.WriteSymbol
			}
			if err := write(e.Name, s.(string)); err != nil {
				return err
			}
			continue
		}
		val, err := e.Value.Interface()
		if err != nil {
			return err
		}
		if err := fw.WriteObjectSafe(e.Name, val); err != nil {
			return err
		}
	}
	return nil
}

// RawValue adapts an arbitrary value bson's WriteObjectSafe dispatch
// understands (a Document, Array, scalar, map, slice, or struct) as a
// ValueNode, for embedding values the typed expression DSL has no
// operator for.
func RawValue(ctx *bson.Context, value interface{}) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error {
		return vw.Any(value)
	})
}
