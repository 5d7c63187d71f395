// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, matching
// facebookarchive-dvara/protocol's suite wiring.
func Test(t *testing.T) { TestingT(t) }

// ScenarioSuite carries spec §8's DSL-level end-to-end scenarios, S10
// through S12 (S1-S9 are codec-level and live in bson's own suite).
type ScenarioSuite struct{}

var _ = Suite(&ScenarioSuite{})

// S10 - sibling filter predicates combine into a single $and only when
// the caller explicitly asks for it.
func (s *ScenarioSuite) TestS10ExplicitAndCombinesSiblings(c *C) {
	q := NewFilterQuery(nil)
	fa := NewFilterQuery(nil)
	c.Assert(fa.Where(NewPath("age"), Gt(Int(nil, 21))), IsNil)
	fb := NewFilterQuery(nil)
	c.Assert(fb.Where(NewPath("status"), Eq(Str(nil, "active"))), IsNil)
	c.Assert(q.And(fa, fb), IsNil)

	doc, err := Build(nil, q)
	c.Assert(err, IsNil)
	c.Assert(doc.String(), Equals, `{"$and": [{"age": {"$gt": 21}}, {"status": {"$eq": "active"}}]}`)
}

// S11 - an update combining $set and $inc keeps each operator under its
// own top-level key, in first-acceptance order.
func (s *ScenarioSuite) TestS11UpdateCombinesOperatorKinds(c *C) {
	u := NewUpdateQuery(nil)
	c.Assert(u.Set(ValuePair{Path: NewPath("name"), Value: Str(nil, "ada")}), IsNil)
	c.Assert(u.Inc(ValuePair{Path: NewPath("visits"), Value: Int(nil, 1)}), IsNil)

	doc, err := Build(nil, u)
	c.Assert(err, IsNil)
	c.Assert(doc.String(), Equals, `{"$set": {"name": "ada"}, "$inc": {"visits": 1}}`)
}

// S12 - regex predicate options always render in alphabetical order,
// independent of the order flags were supplied in.
func (s *ScenarioSuite) TestS12RegexOptionsSortedAlphabetically(c *C) {
	q := NewFilterQuery(nil)
	c.Assert(q.Where(NewPath("name"), MatchRegex("^a", RegexOptions{
		Multiline:       true,
		CaseInsensitive: true,
		Extended:        true,
	})), IsNil)

	doc, err := Build(nil, q)
	c.Assert(err, IsNil)
	c.Assert(doc.String(), Equals,
		`{"name": {"$regex": {"$regularExpression": {"pattern": "^a", "options": "imx"}}}}`)
}
