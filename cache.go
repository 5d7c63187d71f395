// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import "github.com/cespare/xxhash/v2"

// cacheEntry is one resolved (name, ValueReader) pair, in the order it was
// discovered during a lazy scan.
type cacheEntry struct {
	name string
	vr   ValueReader
}

// fieldCache is DocumentReader/ArrayReader's lazy, order-preserving field
// index. Lookups are keyed by a github.com/cespare/xxhash/v2 hash into a
// slice of entry indices, so a handful of fields never pay for a
// general-purpose hash map's overhead and a full scan still replays in
// original insertion order.
//
// Duplicate field names are both a decode reality and something BSON
// itself never forbids: get resolves to the most recently inserted entry
// ("last one wins"), while all resolves every entry including duplicates,
// in original order, for elements()/entries() style full enumeration.
type fieldCache struct {
	entries []cacheEntry
	index   map[uint64][]int
}

func newFieldCache() *fieldCache {
	return &fieldCache{index: make(map[uint64][]int)}
}

func (c *fieldCache) get(name string) (ValueReader, bool) {
	h := xxhash.Sum64String(name)
	idxs := c.index[h]
	for i := len(idxs) - 1; i >= 0; i-- {
		if e := c.entries[idxs[i]]; e.name == name {
			return e.vr, true
		}
	}
	return ValueReader{}, false
}

func (c *fieldCache) put(name string, vr ValueReader) {
	h := xxhash.Sum64String(name)
	idx := len(c.entries)
	c.entries = append(c.entries, cacheEntry{name: name, vr: vr})
	c.index[h] = append(c.index[h], idx)
}

func (c *fieldCache) all() []cacheEntry {
	return c.entries
}

func (c *fieldCache) len() int {
	return len(c.entries)
}
