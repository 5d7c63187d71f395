// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"crypto/rand"
	"sync/atomic"
)

// defaultGenerator implements ObjectIDGenerator with the layout MongoDB
// drivers have used since 4.0: a 4-byte big-endian seconds timestamp, a
// 5-byte random process identifier generated once per generator, and a
// 3-byte big-endian counter seeded randomly and incremented atomically.
//
// The identifier uses crypto/rand output rather than a hostname+PID
// derivation, since a pure codec library has no business doing a hostname
// lookup just to mint an identifier.
type defaultGenerator struct {
	randomID [5]byte
	counter  uint32
}

func newDefaultGenerator() *defaultGenerator {
	g := &defaultGenerator{}
	rand.Read(g.randomID[:])
	var seed [4]byte
	rand.Read(seed[:])
	g.counter = uint32(seed[0])<<16 | uint32(seed[1])<<8 | uint32(seed[2])
	return g
}

var defaultObjectIDGenerator = newDefaultGenerator()

func (g *defaultGenerator) Generate() ObjectID {
	var id ObjectID
	writeEpochSeconds(id[0:4])
	copy(id[4:9], g.randomID[:])
	c := atomic.AddUint32(&g.counter, 1) & 0x00FFFFFF
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id
}

func writeEpochSeconds(dst []byte) {
	s := nowUnix()
	dst[0] = byte(s >> 24)
	dst[1] = byte(s >> 16)
	dst[2] = byte(s >> 8)
	dst[3] = byte(s)
}
