// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFilter(t *testing.T, block func(q *FilterQuery) error) string {
	t.Helper()
	q := NewFilterQuery(nil)
	require.NoError(t, block(q))
	doc, err := Build(nil, q)
	require.NoError(t, err)
	return doc.String()
}

func TestFieldPredicateEmitsOpsUnderPath(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("age"), Gt(Int(nil, 21)), Lte(Int(nil, 65)))
	})
	assert.Equal(t, `{"age": {"$gt": 21, "$lte": 65}}`, got)
}

// A bare Not() with no wrapped ops still counts as one op on the
// predicate (FieldPredicate.Simplify only checks the op count, not
// whether each op writes anything), so the field survives with an empty
// body rather than disappearing entirely.
func TestNotWithNoOpsWritesEmptyBody(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("a"), Not())
	})
	assert.Equal(t, `{"a": {}}`, got)
}

func TestNotWrapsOps(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("a"), Not(Eq(Int(nil, 1))))
	})
	assert.Equal(t, `{"a": {"$not": {"$eq": 1}}}`, got)
}

func TestInAndNin(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("a"), In(Int(nil, 1), Int(nil, 2)))
	})
	assert.Equal(t, `{"a": {"$in": [1, 2]}}`, got)
}

// S12 - regex options are always rendered in alphabetical i,m,s,x order
// regardless of which flags the caller set in what order.
func TestRegexOptionsAlphabeticalOrder(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("name"), MatchRegex("^a", RegexOptions{Extended: true, CaseInsensitive: true}))
	})
	assert.Equal(t, `{"name": {"$regex": {"$regularExpression": {"pattern": "^a", "options": "ix"}}}}`, got)
}

func TestBitsOps(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Where(NewPath("a"), BitsAllSetMask(6))
	})
	assert.Equal(t, `{"a": {"$bitsAllSet": 6}}`, got)
}

// S10 - two Where calls at FilterQuery's top level each survive
// independently (filter-level siblings aren't auto-combined into $and);
// wrapping them in And() explicitly produces the coalesced form.
func TestFilterQueryTopLevelSiblingsStayFlat(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		if err := q.Where(NewPath("a"), Eq(Int(nil, 1))); err != nil {
			return err
		}
		return q.Where(NewPath("b"), Eq(Int(nil, 2)))
	})
	assert.Equal(t, `{"a": {"$eq": 1}, "b": {"$eq": 2}}`, got)
}

func TestAndFlattensNestedAnd(t *testing.T) {
	fa := NewFilterQuery(nil)
	require.NoError(t, fa.Where(NewPath("a"), Eq(Int(nil, 1))))
	fb := NewFilterQuery(nil)
	require.NoError(t, fb.Where(NewPath("b"), Eq(Int(nil, 2))))
	fc := NewFilterQuery(nil)
	require.NoError(t, fc.Where(NewPath("c"), Eq(Int(nil, 3))))

	nested := NewAnd(nil)
	require.NoError(t, nested.Accept(fa))
	require.NoError(t, nested.Accept(fb))

	got := buildFilter(t, func(q *FilterQuery) error {
		return q.And(nested, fc)
	})
	// nested's own $and wrapper disappears: its two children are spliced
	// directly into the outer $and array alongside fc.
	assert.Equal(t, `{"$and": [{"a": {"$eq": 1}}, {"b": {"$eq": 2}}, {"c": {"$eq": 3}}]}`, got)
}

func TestAndWithSingleChildUnwraps(t *testing.T) {
	single := NewFilterQuery(nil)
	require.NoError(t, single.Where(NewPath("a"), Eq(Int(nil, 1))))

	got := buildFilter(t, func(q *FilterQuery) error {
		return q.And(single)
	})
	assert.Equal(t, `{"a": {"$eq": 1}}`, got)
}

func TestOrDoesNotUnwrapWhenMultipleChildren(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		a := NewFilterQuery(nil)
		require.NoError(t, a.Where(NewPath("x"), Eq(Int(nil, 1))))
		b := NewFilterQuery(nil)
		require.NoError(t, b.Where(NewPath("y"), Eq(Int(nil, 2))))
		return q.Or(a, b)
	})
	assert.Equal(t, `{"$or": [{"x": {"$eq": 1}}, {"y": {"$eq": 2}}]}`, got)
}

func TestNorDoesNotUnwrapSingleChild(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		single := NewFilterQuery(nil)
		require.NoError(t, single.Where(NewPath("a"), Eq(Int(nil, 1))))
		return q.Nor(single)
	})
	assert.Equal(t, `{"$nor": [{"a": {"$eq": 1}}]}`, got)
}

func TestNorDoesNotFlattenNestedNor(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		innerA := NewFilterQuery(nil)
		require.NoError(t, innerA.Where(NewPath("a"), Eq(Int(nil, 1))))
		innerB := NewFilterQuery(nil)
		require.NoError(t, innerB.Where(NewPath("b"), Eq(Int(nil, 2))))
		nested := NewNor(nil)
		require.NoError(t, nested.Accept(innerA))
		require.NoError(t, nested.Accept(innerB))
		return q.Nor(nested)
	})
	assert.Equal(t, `{"$nor": [{"$nor": [{"a": {"$eq": 1}}, {"b": {"$eq": 2}}]}]}`, got)
}

func TestElemMatch(t *testing.T) {
	sub := NewFilterQuery(nil)
	require.NoError(t, sub.Where(NewPath("x"), Gt(Int(nil, 1))))
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.ElemMatch(NewPath("items"), sub)
	})
	assert.Equal(t, `{"items": {"$elemMatch": {"x": {"$gt": 1}}}}`, got)
}

func TestExprAcceptsAggregationValue(t *testing.T) {
	got := buildFilter(t, func(q *FilterQuery) error {
		return q.Expr(ToUpper(nil, FieldRef(nil, NewPath("name"))))
	})
	assert.Equal(t, `{"$expr": {"$toUpper": "$name"}}`, got)
}
