// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUpdate(t *testing.T, block func(u *UpdateQuery) error) string {
	t.Helper()
	u := NewUpdateQuery(nil)
	require.NoError(t, block(u))
	doc, err := Build(nil, u)
	require.NoError(t, err)
	return doc.String()
}

// S11 - two different operator kinds accepted in sequence each keep
// their own top-level key, in first-seen order.
func TestS11UpdateOperatorsCoalesceByKind(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		if err := u.Set(ValuePair{Path: NewPath("a"), Value: Int(nil, 1)}); err != nil {
			return err
		}
		if err := u.Inc(ValuePair{Path: NewPath("b"), Value: Int(nil, 2)}); err != nil {
			return err
		}
		return u.Set(ValuePair{Path: NewPath("c"), Value: Int(nil, 3)})
	})
	assert.Equal(t, `{"$set": {"a": 1, "c": 3}, "$inc": {"b": 2}}`, got)
}

func TestUnsetWritesTrue(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error { return u.Unset(NewPath("a"), NewPath("b")) })
	assert.Equal(t, `{"$unset": {"a": true, "b": true}}`, got)
}

func TestRenameWritesTargetPath(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		return u.Rename(RenamePair{From: NewPath("a"), To: NewPath("b")})
	})
	assert.Equal(t, `{"$rename": {"a": "b"}}`, got)
}

func TestCurrentDateDatetimeWritesTrue(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		return u.CurrentDate(CurrentDatePair{Path: NewPath("a"), Kind: CurrentDateDatetime})
	})
	assert.Equal(t, `{"$currentDate": {"a": true}}`, got)
}

func TestCurrentDateTimestampWritesTypeDocument(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		return u.CurrentDate(CurrentDatePair{Path: NewPath("a"), Kind: CurrentDateTimestamp})
	})
	assert.Equal(t, `{"$currentDate": {"a": {"$type": "timestamp"}}}`, got)
}

func TestAddToSetSingleValueWritesBare(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		return u.AddToSet(ValuePair{Path: NewPath("tags"), Value: Str(nil, "x")})
	})
	assert.Equal(t, `{"$addToSet": {"tags": "x"}}`, got)
}

func TestAddToSetMultipleValuesGroupIntoEach(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error {
		return u.AddToSet(
			ValuePair{Path: NewPath("tags"), Value: Str(nil, "x")},
			ValuePair{Path: NewPath("tags"), Value: Str(nil, "y")},
		)
	})
	assert.Equal(t, `{"$addToSet": {"tags": {"$each": ["x", "y"]}}}`, got)
}

func TestUpdateQueryDropsEmptyOperator(t *testing.T) {
	got := buildUpdate(t, func(u *UpdateQuery) error { return u.Set() })
	assert.Equal(t, `{}`, got)
}

func TestUpsertQuerySetOnInsert(t *testing.T) {
	u := NewUpsertQuery(nil)
	require.NoError(t, u.SetOnInsert(ValuePair{Path: NewPath("createdAt"), Value: Int(nil, 7)}))
	doc, err := Build(nil, u)
	require.NoError(t, err)
	assert.Equal(t, `{"$setOnInsert": {"createdAt": 7}}`, doc.String())
}
