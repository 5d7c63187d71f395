// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bsonkittest holds small test helpers shared by bsonkit's own
// test suite and bsonkit/query's: hex-decoding assertions and
// Extended-JSON golden comparisons, so individual _test.go files don't
// each reimplement "decode this literal hex string".
package bsonkittest

import (
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// MustHex decodes a literal hex string (as used throughout spec §8's
// S1-S12 scenarios) into bytes, failing the test immediately on a
// malformed literal.
func MustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoErrorf(t, err, "malformed hex literal %q", s)
	return b
}

// RequireHex asserts that got's hex encoding equals want, rendering both
// sides as hex on failure so a byte-level diff is readable.
func RequireHex(t *testing.T, want string, got []byte) {
	t.Helper()
	require.Equal(t, want, hex.EncodeToString(got))
}

// Stringer is anything with a String() string method — Document, Array,
// and ValueReader all satisfy it.
type Stringer interface {
	String() string
}

// RequireExtJSON asserts that v's canonical textual rendering equals
// want.
func RequireExtJSON(t *testing.T, want string, v Stringer) {
	t.Helper()
	require.Equal(t, want, v.String())
}

// RequireDeepEqual asserts that got matches want, reporting a structural
// diff (rather than just "not equal") on failure — for comparing the
// nested map[string]interface{}/[]interface{} trees a ValueReader's
// Interface() method decodes BSON into.
func RequireDeepEqual(t *testing.T, want, got interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
