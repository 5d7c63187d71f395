// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"github.com/facebookgo/metrics"
	"go.uber.org/zap"
)

// ObjectIDGenerator is the identifier-minting capability a Context holds
// and hands out through Generator. The codec itself never inserts an _id
// into a document. Its scheduling (monotonic counter, randomness source)
// is left to the implementation.
type ObjectIDGenerator interface {
	Generate() ObjectID
}

// counters groups the facebookgo/metrics.Counter instrumentation a Context
// exposes, grounded in facebookarchive-dvara's use of the same package for
// its proxy's in-process operation counters.
type counters struct {
	documentsBuilt     metrics.Counter
	lazyScans          metrics.Counter
	fieldCacheHits     metrics.Counter
	fieldCacheMisses   metrics.Counter
	frozenMutations    metrics.Counter
	cyclesRejected     metrics.Counter
}

func newCounters() *counters {
	return &counters{
		documentsBuilt:   metrics.NewCounter(),
		lazyScans:        metrics.NewCounter(),
		fieldCacheHits:   metrics.NewCounter(),
		fieldCacheMisses: metrics.NewCounter(),
		frozenMutations:  metrics.NewCounter(),
		cyclesRejected:   metrics.NewCounter(),
	}
}

// Stats is a point-in-time snapshot of a Context's counters.
type Stats struct {
	DocumentsBuilt   int64
	LazyScans        int64
	FieldCacheHits   int64
	FieldCacheMisses int64
	FrozenMutations  int64
	CyclesRejected   int64
}

// Context carries the capabilities the codec needs but does not itself
// own: a logger, an instrumentation sink, an ObjectIDGenerator, and the
// document size ceiling. It is threaded through every builder and reader
// so nested documents share the same capabilities as their parent.
type Context struct {
	logger    *zap.Logger
	metrics   *counters
	generator ObjectIDGenerator
	maxLen    int
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithLogger injects a structured logger. The default is zap.NewNop().
func WithLogger(l *zap.Logger) ContextOption {
	return func(c *Context) { c.logger = l }
}

// WithObjectIDGenerator overrides the default ObjectIDGenerator.
func WithObjectIDGenerator(g ObjectIDGenerator) ContextOption {
	return func(c *Context) { c.generator = g }
}

// WithMaxDocumentLen overrides MaxDocumentLen for documents built or read
// through this Context. Mostly useful for tests that want to exercise the
// DocumentTooLarge path without allocating 16 MiB.
func WithMaxDocumentLen(n int) ContextOption {
	return func(c *Context) { c.maxLen = n }
}

// NewContext builds a Context with the given options applied over
// sensible defaults: a no-op logger, a fresh counter set, and the default
// ObjectIDGenerator.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		logger:    zap.NewNop(),
		metrics:   newCounters(),
		generator: defaultObjectIDGenerator,
		maxLen:    MaxDocumentLen,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Background is the package-level default Context, used by every
// top-level convenience function that doesn't take one explicitly.
var Background = NewContext()

// Stats returns a snapshot of this Context's instrumentation counters.
func (c *Context) Stats() Stats {
	return Stats{
		DocumentsBuilt:   c.metrics.documentsBuilt.Count(),
		LazyScans:        c.metrics.lazyScans.Count(),
		FieldCacheHits:   c.metrics.fieldCacheHits.Count(),
		FieldCacheMisses: c.metrics.fieldCacheMisses.Count(),
		FrozenMutations:  c.metrics.frozenMutations.Count(),
		CyclesRejected:   c.metrics.cyclesRejected.Count(),
	}
}

// Generator returns the Context's ObjectIDGenerator.
func (c *Context) Generator() ObjectIDGenerator {
	return c.generator
}

// Logger returns the Context's structured logger, never nil.
func (c *Context) Logger() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// RecordFrozenMutation increments the frozen-mutation counter. Exposed for
// bson/query's expression tree, which enforces the same freeze discipline
// as the codec builders but lives in a separate package.
func (c *Context) RecordFrozenMutation() {
	c.metrics.frozenMutations.Inc(1)
}

// RecordCycleRejected increments the cycle-rejected counter; see
// RecordFrozenMutation.
func (c *Context) RecordCycleRejected() {
	c.metrics.cyclesRejected.Inc(1)
}

func (c *Context) maxDocumentLen() int {
	if c.maxLen > 0 {
		return c.maxLen
	}
	return MaxDocumentLen
}
