// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strconv"
	"strings"
)

type segmentKind int

const (
	segField segmentKind = iota
	segIndex
	segPositional
	segAllPositional
)

// Segment is one step of a Path: a named field, a numeric array index, or
// one of the two positional update markers.
type Segment struct {
	kind  segmentKind
	name  string
	index uint32
}

// FieldSegment builds a named segment.
func FieldSegment(name string) Segment { return Segment{kind: segField, name: name} }

// IndexSegment builds a numeric array-index segment.
func IndexSegment(i uint32) Segment { return Segment{kind: segIndex, index: i} }

// PositionalSegment is the "$" selected-element marker.
func PositionalSegment() Segment { return Segment{kind: segPositional} }

// AllPositionalSegment is the "$[]" all-elements marker.
func AllPositionalSegment() Segment { return Segment{kind: segAllPositional} }

func (s Segment) String() string {
	switch s.kind {
	case segField:
		return s.name
	case segIndex:
		return strconv.FormatUint(uint64(s.index), 10)
	case segPositional:
		return "$"
	case segAllPositional:
		return "$[]"
	default:
		return ""
	}
}

// Path is an ordered, immutable sequence of Segments. Equality is
// structural; rendering joins segments with ".".
type Path struct {
	segments []Segment
}

// NewPath starts a path at a single named field.
func NewPath(name string) Path {
	return Path{segments: []Segment{FieldSegment(name)}}
}

// PathOf builds a path directly from segments, for callers that already
// have a Segment slice (e.g. a deserialized path).
func PathOf(segments ...Segment) Path {
	return Path{segments: append([]Segment(nil), segments...)}
}

func (p Path) appended(s Segment) Path {
	out := make([]Segment, len(p.segments)+1)
	copy(out, p.segments)
	out[len(p.segments)] = s
	return Path{segments: out}
}

// Field extends the path with a named segment.
func (p Path) Field(name string) Path { return p.appended(FieldSegment(name)) }

// Index extends the path with a numeric array index.
func (p Path) Index(i uint32) Path { return p.appended(IndexSegment(i)) }

// Positional extends the path with the "$" selected-element marker.
func (p Path) Positional() Path { return p.appended(PositionalSegment()) }

// AllPositional extends the path with the "$[]" all-elements marker.
func (p Path) AllPositional() Path { return p.appended(AllPositionalSegment()) }

// Join concatenates two paths: a.Join(b) appends b's segments after a's.
func (p Path) Join(other Path) Path {
	out := make([]Segment, 0, len(p.segments)+len(other.segments))
	out = append(out, p.segments...)
	out = append(out, other.segments...)
	return Path{segments: out}
}

// Segments returns the path's segments.
func (p Path) Segments() []Segment { return p.segments }

// String renders the path as its segments joined with ".".
func (p Path) String() string {
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two paths have the same segment sequence.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Field is a Path paired with a phantom owner/value type pair, giving the
// DSL compile-time typed field references with no runtime cost beyond the
// path itself. T is the declared owning document type, V the field's
// value type.
type Field[T any, V any] struct {
	path Path
}

// NewField declares a typed field rooted at name.
func NewField[T any, V any](name string) Field[T, V] {
	return Field[T, V]{path: NewPath(name)}
}

// Path returns the field's underlying untyped Path.
func (f Field[T, V]) Path() Path { return f.path }

// Sub extends the field with a nested named segment, preserving its
// phantom types — useful for composing a dotted path one segment at a
// time while keeping V meaningful for the leaf.
func (f Field[T, V]) Sub(name string) Field[T, V] {
	return Field[T, V]{path: f.path.Field(name)}
}

// Selected returns the field with a "$" positional marker appended, for
// referring to the update operator's matched array element.
func (f Field[T, V]) Selected() Field[T, V] {
	return Field[T, V]{path: f.path.Positional()}
}

// All returns the field with a "$[]" marker appended, for updating every
// element of an array field.
func (f Field[T, V]) All() Field[T, V] {
	return Field[T, V]{path: f.path.AllPositional()}
}
