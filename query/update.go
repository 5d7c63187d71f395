// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "github.com/go-bsonkit/bsonkit"

type opKind int

const (
	opSet opKind = iota
	opSetOnInsert
	opInc
	opMul
	opMin
	opMax
	opUnset
	opRename
	opAddToSet
	opCurrentDate
)

func (k opKind) name() string {
	switch k {
	case opSet:
		return "$set"
	case opSetOnInsert:
		return "$setOnInsert"
	case opInc:
		return "$inc"
	case opMul:
		return "$mul"
	case opMin:
		return "$min"
	case opMax:
		return "$max"
	case opUnset:
		return "$unset"
	case opRename:
		return "$rename"
	case opAddToSet:
		return "$addToSet"
	case opCurrentDate:
		return "$currentDate"
	default:
		return "$unknown"
	}
}

// ValuePair is a (path, value) entry for the operators that carry one —
// $set, $setOnInsert, $inc, $mul, $min, $max, $addToSet.
type ValuePair struct {
	Path  Path
	Value ValueNode
}

// RenamePair is a (from, to) entry for $rename.
type RenamePair struct {
	From Path
	To   Path
}

// CurrentDateKind selects $currentDate's per-field payload.
type CurrentDateKind int

const (
	// CurrentDateDatetime emits `true`, setting a BSON Datetime.
	CurrentDateDatetime CurrentDateKind = iota
	// CurrentDateTimestamp emits `{"$type": "timestamp"}`.
	CurrentDateTimestamp
)

// CurrentDatePair is a (path, kind) entry for $currentDate.
type CurrentDatePair struct {
	Path Path
	Kind CurrentDateKind
}

type opPair struct {
	path    Path
	value   ValueNode
	rename  Path
	curKind CurrentDateKind
}

// OperatorNode is the leaf node for a single update operator, carrying
// that operator's (path, payload) entries.
type OperatorNode struct {
	baseNode
	kind  opKind
	pairs []opPair
}

func newOperatorNode(ctx *bson.Context, kind opKind, pairs []opPair) *OperatorNode {
	return &OperatorNode{baseNode: baseNode{ctx: ctx}, kind: kind, pairs: pairs}
}

// Simplify drops an operator with no entries.
func (o *OperatorNode) Simplify() BsonNode {
	if len(o.pairs) == 0 {
		return nil
	}
	return o
}

// Write emits this operator's document under its canonical key.
func (o *OperatorNode) Write(fw *bson.FieldWriter) error {
	return fw.Write(o.kind.name(), func(vw *bson.ValueWriter) error {
		return vw.Document(func(bodyFw *bson.FieldWriter) error { return o.writeBody(bodyFw) })
	})
}

func (o *OperatorNode) writeBody(bodyFw *bson.FieldWriter) error {
	switch o.kind {
	case opUnset:
		for _, p := range o.pairs {
			if err := bodyFw.WriteBoolean(p.path.String(), true); err != nil {
				return err
			}
		}
	case opRename:
		for _, p := range o.pairs {
			if err := bodyFw.WriteString(p.path.String(), p.rename.String()); err != nil {
				return err
			}
		}
	case opCurrentDate:
		for _, p := range o.pairs {
			if p.curKind == CurrentDateTimestamp {
				if err := bodyFw.Write(p.path.String(), func(vw *bson.ValueWriter) error {
					return vw.Document(func(fw2 *bson.FieldWriter) error { return fw2.WriteString("$type", "timestamp") })
				}); err != nil {
					return err
				}
				continue
			}
			if err := bodyFw.WriteBoolean(p.path.String(), true); err != nil {
				return err
			}
		}
	case opAddToSet:
		for _, g := range groupByPath(o.pairs) {
			path, values := g.path, g.values
			if len(values) == 1 {
				if err := bodyFw.Write(path.String(), values[0].WriteValue); err != nil {
					return err
				}
				continue
			}
			if err := bodyFw.Write(path.String(), func(vw *bson.ValueWriter) error {
				return vw.Document(func(fw2 *bson.FieldWriter) error {
					return fw2.WriteArray("$each", func(afw *bson.ArrayFieldWriter) error {
						for _, v := range values {
							if err := afw.Write(v.WriteValue); err != nil {
								return err
							}
						}
						return nil
					})
				})
			}); err != nil {
				return err
			}
		}
	default:
		for _, p := range o.pairs {
			if err := bodyFw.Write(p.path.String(), p.value.WriteValue); err != nil {
				return err
			}
		}
	}
	return nil
}

type pathGroup struct {
	path   Path
	values []ValueNode
}

// groupByPath groups addToSet pairs by path, preserving first-seen order,
// so {"$addToSet": {"p": {"$each": […]}}} lists its values in call order.
func groupByPath(pairs []opPair) []pathGroup {
	var order []string
	byKey := map[string]*pathGroup{}
	for _, p := range pairs {
		key := p.path.String()
		g, ok := byKey[key]
		if !ok {
			g = &pathGroup{path: p.path}
			byKey[key] = g
			order = append(order, key)
		}
		g.values = append(g.values, p.value)
	}
	out := make([]pathGroup, len(order))
	for i, key := range order {
		out[i] = *byKey[key]
	}
	return out
}

// UpdateQuery is a compound whose children are OperatorNodes. Simplify
// coalesces same-operator children so the emitted document has at most
// one instance of each operator key.
type UpdateQuery struct {
	CompoundNode
}

// NewUpdateQuery returns an empty, unfrozen update.
func NewUpdateQuery(ctx *bson.Context) *UpdateQuery {
	u := &UpdateQuery{CompoundNode: *NewCompoundNode(ctx)}
	u.SetSelf(u)
	return u
}

// Simplify merges children of the same operator kind into one, preserving
// first-seen operator order. Running it again is a no-op: no two children
// share an operator kind afterward.
func (u *UpdateQuery) Simplify() BsonNode {
	var order []opKind
	byKind := map[opKind]*OperatorNode{}
	for _, c := range u.children {
		on, ok := c.(*OperatorNode)
		if !ok {
			continue
		}
		if existing, seen := byKind[on.kind]; seen {
			existing.pairs = append(existing.pairs, on.pairs...)
			continue
		}
		merged := &OperatorNode{baseNode: on.baseNode, kind: on.kind, pairs: append([]opPair(nil), on.pairs...)}
		byKind[on.kind] = merged
		order = append(order, on.kind)
	}
	children := make([]BsonNode, len(order))
	for i, k := range order {
		children[i] = byKind[k]
	}
	u.children = children
	return u
}

func (u *UpdateQuery) acceptOp(kind opKind, pairs []opPair) error {
	if len(pairs) == 0 {
		return nil
	}
	return u.Accept(newOperatorNode(u.ctx, kind, pairs))
}

func valuePairs(pairs []ValuePair) []opPair {
	out := make([]opPair, len(pairs))
	for i, p := range pairs {
		out[i] = opPair{path: p.Path, value: p.Value}
	}
	return out
}

// Set accepts a $set operator over pairs.
func (u *UpdateQuery) Set(pairs ...ValuePair) error {
	return u.acceptOp(opSet, valuePairs(pairs))
}

// Inc accepts an $inc operator over pairs.
func (u *UpdateQuery) Inc(pairs ...ValuePair) error {
	return u.acceptOp(opInc, valuePairs(pairs))
}

// Mul accepts a $mul operator over pairs.
func (u *UpdateQuery) Mul(pairs ...ValuePair) error {
	return u.acceptOp(opMul, valuePairs(pairs))
}

// Min accepts a $min operator over pairs.
func (u *UpdateQuery) Min(pairs ...ValuePair) error {
	return u.acceptOp(opMin, valuePairs(pairs))
}

// Max accepts a $max operator over pairs.
func (u *UpdateQuery) Max(pairs ...ValuePair) error {
	return u.acceptOp(opMax, valuePairs(pairs))
}

// Unset accepts a $unset operator over paths.
func (u *UpdateQuery) Unset(paths ...Path) error {
	pairs := make([]opPair, len(paths))
	for i, p := range paths {
		pairs[i] = opPair{path: p}
	}
	return u.acceptOp(opUnset, pairs)
}

// Rename accepts a $rename operator over pairs.
func (u *UpdateQuery) Rename(pairs ...RenamePair) error {
	out := make([]opPair, len(pairs))
	for i, p := range pairs {
		out[i] = opPair{path: p.From, rename: p.To}
	}
	return u.acceptOp(opRename, out)
}

// AddToSet accepts a $addToSet operator over pairs, coalescing multiple
// values for the same path into a $each list on write.
func (u *UpdateQuery) AddToSet(pairs ...ValuePair) error {
	return u.acceptOp(opAddToSet, valuePairs(pairs))
}

// CurrentDate accepts a $currentDate operator over pairs.
func (u *UpdateQuery) CurrentDate(pairs ...CurrentDatePair) error {
	out := make([]opPair, len(pairs))
	for i, p := range pairs {
		out[i] = opPair{path: p.Path, curKind: p.Kind}
	}
	return u.acceptOp(opCurrentDate, out)
}

// UpsertQuery extends UpdateQuery with $setOnInsert, valid only on an
// upsert-mode update.
type UpsertQuery struct {
	UpdateQuery
}

// NewUpsertQuery returns an empty, unfrozen upsert.
func NewUpsertQuery(ctx *bson.Context) *UpsertQuery {
	u := &UpsertQuery{UpdateQuery: *NewUpdateQuery(ctx)}
	u.SetSelf(u)
	return u
}

// SetOnInsert accepts a $setOnInsert operator over pairs.
func (u *UpsertQuery) SetOnInsert(pairs ...ValuePair) error {
	return u.acceptOp(opSetOnInsert, valuePairs(pairs))
}
