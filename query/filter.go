// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "github.com/go-bsonkit/bsonkit"

// PredicateOp writes one key into the document nested under a field's
// predicate body — eq/ne/gt/…, not, or a bitwise test.
type PredicateOp interface {
	writeOp(fw *bson.FieldWriter) error
}

type predicateOpFunc func(fw *bson.FieldWriter) error

func (f predicateOpFunc) writeOp(fw *bson.FieldWriter) error { return f(fw) }

// Eq builds {"$eq": v}.
func Eq(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$eq", v.WriteValue) })
}

// Ne builds {"$ne": v}.
func Ne(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$ne", v.WriteValue) })
}

// Gt builds {"$gt": v}.
func Gt(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$gt", v.WriteValue) })
}

// Gte builds {"$gte": v}.
func Gte(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$gte", v.WriteValue) })
}

// Lt builds {"$lt": v}.
func Lt(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$lt", v.WriteValue) })
}

// Lte builds {"$lte": v}.
func Lte(v ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.Write("$lte", v.WriteValue) })
}

func writeValueArray(fw *bson.FieldWriter, name string, values []ValueNode) error {
	return fw.WriteArray(name, func(afw *bson.ArrayFieldWriter) error {
		for _, v := range values {
			if err := afw.Write(v.WriteValue); err != nil {
				return err
			}
		}
		return nil
	})
}

// In builds {"$in": [v1, v2, …]}.
func In(values ...ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return writeValueArray(fw, "$in", values) })
}

// Nin builds {"$nin": [v1, v2, …]}.
func Nin(values ...ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return writeValueArray(fw, "$nin", values) })
}

// Exists builds {"$exists": b}.
func Exists(b bool) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.WriteBoolean("$exists", b) })
}

// TypeIs builds {"$type": <wire code>}.
func TypeIs(t bson.Type) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.WriteInt32("$type", int32(t)) })
}

// RegexOptions are the boolean regex flags the DSL assembles into an
// alphabetically-ordered i,m,s,x options string.
type RegexOptions struct {
	CaseInsensitive bool
	Multiline       bool
	DotAll          bool
	Extended        bool
}

func (o RegexOptions) String() string {
	var out []byte
	if o.CaseInsensitive {
		out = append(out, 'i')
	}
	if o.Multiline {
		out = append(out, 'm')
	}
	if o.DotAll {
		out = append(out, 's')
	}
	if o.Extended {
		out = append(out, 'x')
	}
	return string(out)
}

// MatchRegex builds {"$regex": /pattern/opts}.
func MatchRegex(pattern string, opts RegexOptions) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error {
		return fw.WriteRegex("$regex", bson.Regex{Pattern: pattern, Options: opts.String()})
	})
}

// Not builds {"$not": { <ops> }}; an empty op list simplifies to nothing.
func Not(ops ...PredicateOp) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error {
		if len(ops) == 0 {
			return nil
		}
		return fw.Write("$not", func(vw *bson.ValueWriter) error {
			return vw.Document(func(bodyFw *bson.FieldWriter) error {
				for _, op := range ops {
					if err := op.writeOp(bodyFw); err != nil {
						return err
					}
				}
				return nil
			})
		})
	})
}

// All builds {"$all": [v1, v2, …]}.
func All(values ...ValueNode) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return writeValueArray(fw, "$all", values) })
}

func bitsMaskOp(name string, mask int64) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error { return fw.WriteInt64(name, mask) })
}

func bitsBytesOp(name string, data []byte) PredicateOp {
	return predicateOpFunc(func(fw *bson.FieldWriter) error {
		return fw.WriteBinary(name, bson.Binary{Subtype: bson.BinaryGeneric, Data: data})
	})
}

// BitsAllClearMask / BitsAllClearBytes build {"$bitsAllClear": mask-or-bytes}.
func BitsAllClearMask(mask int64) PredicateOp   { return bitsMaskOp("$bitsAllClear", mask) }
func BitsAllClearBytes(data []byte) PredicateOp { return bitsBytesOp("$bitsAllClear", data) }

// BitsAllSetMask / BitsAllSetBytes build {"$bitsAllSet": mask-or-bytes}.
func BitsAllSetMask(mask int64) PredicateOp   { return bitsMaskOp("$bitsAllSet", mask) }
func BitsAllSetBytes(data []byte) PredicateOp { return bitsBytesOp("$bitsAllSet", data) }

// BitsAnyClearMask / BitsAnyClearBytes build {"$bitsAnyClear": mask-or-bytes}.
func BitsAnyClearMask(mask int64) PredicateOp   { return bitsMaskOp("$bitsAnyClear", mask) }
func BitsAnyClearBytes(data []byte) PredicateOp { return bitsBytesOp("$bitsAnyClear", data) }

// BitsAnySetMask / BitsAnySetBytes build {"$bitsAnySet": mask-or-bytes}.
func BitsAnySetMask(mask int64) PredicateOp   { return bitsMaskOp("$bitsAnySet", mask) }
func BitsAnySetBytes(data []byte) PredicateOp { return bitsBytesOp("$bitsAnySet", data) }

// FieldPredicate is the leaf node emitted by FilterQuery.Where: it owns a
// path and the ops that populate that field's predicate body.
type FieldPredicate struct {
	baseNode
	path Path
	ops  []PredicateOp
}

func newFieldPredicate(ctx *bson.Context, path Path, ops []PredicateOp) *FieldPredicate {
	return &FieldPredicate{baseNode: baseNode{ctx: ctx}, path: path, ops: ops}
}

// Simplify drops a predicate with no ops. A bare Not() still counts as an
// op, so a predicate holding only Not() is kept and writes an empty body.
func (p *FieldPredicate) Simplify() BsonNode {
	if len(p.ops) == 0 {
		return nil
	}
	return p
}

// Write emits {"<path>": { <op1>, <op2>, … }}.
func (p *FieldPredicate) Write(fw *bson.FieldWriter) error {
	return fw.Write(p.path.String(), func(vw *bson.ValueWriter) error {
		return vw.Document(func(bodyFw *bson.FieldWriter) error {
			for _, op := range p.ops {
				if err := op.writeOp(bodyFw); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// LogicalNode implements $and/$or/$nor: a compound whose Simplify drops to
// nil when empty. $and and $or additionally flatten nested same-operator
// children and unwrap a remaining singleton to that child; $nor does
// neither — MongoDB has no flattening semantics for nested $nor, and
// {"$nor": [A]} means NOT A, which a bare A would not express.
type LogicalNode struct {
	CompoundNode
	opName  string
	flatten bool
}

func newLogical(ctx *bson.Context, opName string, flatten bool) *LogicalNode {
	l := &LogicalNode{CompoundNode: *NewCompoundNode(ctx), opName: opName, flatten: flatten}
	l.SetSelf(l)
	return l
}

// NewAnd returns an empty, unfrozen $and node.
func NewAnd(ctx *bson.Context) *LogicalNode { return newLogical(ctx, "$and", true) }

// NewOr returns an empty, unfrozen $or node.
func NewOr(ctx *bson.Context) *LogicalNode { return newLogical(ctx, "$or", true) }

// NewNor returns an empty, unfrozen $nor node.
func NewNor(ctx *bson.Context) *LogicalNode { return newLogical(ctx, "$nor", false) }

// Simplify flattens nested same-operator LogicalNodes (when flatten is
// set), drops to nil when empty, and unwraps a single remaining child
// (except for $nor, see the type comment). Running it twice yields the
// same result.
func (l *LogicalNode) Simplify() BsonNode {
	flat := make([]BsonNode, 0, len(l.children))
	for _, c := range l.children {
		if nested, ok := c.(*LogicalNode); ok && l.flatten && nested.opName == l.opName {
			flat = append(flat, nested.children...)
		} else {
			flat = append(flat, c)
		}
	}
	l.children = flat
	switch len(l.children) {
	case 0:
		return nil
	case 1:
		// $nor{A} negates A; it is not equivalent to A, so (unlike
		// $and/$or) a single-child $nor must not unwrap.
		if l.opName == "$nor" {
			return l
		}
		return l.children[0]
	default:
		return l
	}
}

// Write emits {"$and"/"$or": [ {child1}, {child2}, … ]}.
func (l *LogicalNode) Write(fw *bson.FieldWriter) error {
	return fw.WriteArray(l.opName, func(afw *bson.ArrayFieldWriter) error {
		for _, c := range l.children {
			child := c
			if err := afw.WriteDocument(func(bodyFw *bson.FieldWriter) error { return child.Write(bodyFw) }); err != nil {
				return err
			}
		}
		return nil
	})
}

type elemMatchNode struct {
	baseNode
	path Path
	sub  BsonNode
}

func (e *elemMatchNode) Simplify() BsonNode {
	if e.sub == nil {
		return nil
	}
	return e
}

func (e *elemMatchNode) Write(fw *bson.FieldWriter) error {
	return fw.Write(e.path.String(), func(vw *bson.ValueWriter) error {
		return vw.Document(func(bodyFw *bson.FieldWriter) error {
			return bodyFw.Write("$elemMatch", func(vw2 *bson.ValueWriter) error {
				return vw2.Document(func(innerFw *bson.FieldWriter) error { return e.sub.Write(innerFw) })
			})
		})
	})
}

type exprNode struct {
	baseNode
	value ValueNode
}

func (e *exprNode) Simplify() BsonNode { return e }

func (e *exprNode) Write(fw *bson.FieldWriter) error {
	return fw.Write("$expr", e.value.WriteValue)
}

// FilterQuery is a compound that emits each accepted child's predicate or
// operator document directly into the enclosing document — no wrapping
// envelope.
type FilterQuery struct {
	CompoundNode
}

// NewFilterQuery returns an empty, unfrozen filter.
func NewFilterQuery(ctx *bson.Context) *FilterQuery {
	q := &FilterQuery{CompoundNode: *NewCompoundNode(ctx)}
	q.SetSelf(q)
	return q
}

// Where accepts a FieldPredicate built from path and ops.
func (q *FilterQuery) Where(path Path, ops ...PredicateOp) error {
	return q.Accept(newFieldPredicate(q.ctx, path, ops))
}

// And accepts an $and node built from children.
func (q *FilterQuery) And(children ...BsonNode) error {
	and := NewAnd(q.ctx)
	for _, c := range children {
		if err := and.Accept(c); err != nil {
			return err
		}
	}
	return q.Accept(and)
}

// Or accepts an $or node built from children.
func (q *FilterQuery) Or(children ...BsonNode) error {
	or := NewOr(q.ctx)
	for _, c := range children {
		if err := or.Accept(c); err != nil {
			return err
		}
	}
	return q.Accept(or)
}

// Nor accepts a $nor node built from children.
func (q *FilterQuery) Nor(children ...BsonNode) error {
	nor := NewNor(q.ctx)
	for _, c := range children {
		if err := nor.Accept(c); err != nil {
			return err
		}
	}
	return q.Accept(nor)
}

// ElemMatch accepts {"<path>": {"$elemMatch": {…}}} with sub as the nested
// filter or predicate body.
func (q *FilterQuery) ElemMatch(path Path, sub BsonNode) error {
	return q.Accept(&elemMatchNode{baseNode: baseNode{ctx: q.ctx}, path: path, sub: sub})
}

// Expr accepts {"$expr": <aggregation value>}.
func (q *FilterQuery) Expr(value ValueNode) error {
	return q.Accept(&exprNode{baseNode: baseNode{ctx: q.ctx}, value: value})
}
