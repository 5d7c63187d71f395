// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"fmt"

	"github.com/facebookgo/stackerr"
)

// Kind classifies a bsonkit error. Callers that need to branch on failure
// mode should compare Kind rather than match error strings.
type Kind int

const (
	KindUnexpectedEOF Kind = iota + 1
	KindUnterminatedCString
	KindInvalidUTF8
	KindLengthMismatch
	KindUnknownType
	KindWrongType
	KindDocumentTooLarge
	KindUnsupportedType
	KindFrozenMutation
	KindCycleRejected
	KindInvalidObjectID
)

func (k Kind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindUnterminatedCString:
		return "UnterminatedCString"
	case KindInvalidUTF8:
		return "InvalidUtf8"
	case KindLengthMismatch:
		return "LengthMismatch"
	case KindUnknownType:
		return "UnknownType"
	case KindWrongType:
		return "WrongType"
	case KindDocumentTooLarge:
		return "DocumentTooLarge"
	case KindUnsupportedType:
		return "UnsupportedType"
	case KindFrozenMutation:
		return "FrozenMutation"
	case KindCycleRejected:
		return "CycleRejected"
	case KindInvalidObjectID:
		return "InvalidObjectId"
	default:
		return "Unknown"
	}
}

// Error is the sole error type returned across package boundaries. It
// wraps a Kind with a message and, via github.com/facebookgo/stackerr (the
// error-augmentation package used throughout facebookarchive-dvara's proxy
// for every error return), the call stack at the point of construction.
type Error struct {
	Kind    Kind
	Message string
	stack   error
}

func newError(kind Kind, message string) *Error {
	e := &Error{Kind: kind, Message: message}
	e.stack = stackerr.WrapSkip(fmt.Errorf("%s: %s", kind, message), 2)
	return e
}

func newErrorf(kind Kind, format string, args ...interface{}) *Error {
	return newError(kind, fmt.Sprintf(format, args...))
}

// NewError constructs a package Error of the given Kind for callers outside
// bson — principally bson/query, whose expression tree raises
// KindFrozenMutation and KindCycleRejected under the same freeze discipline
// the codec itself uses for documents.
func NewError(kind Kind, message string) *Error {
	return newError(kind, message)
}

func (e *Error) Error() string {
	if e.stack != nil {
		return e.stack.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the stack-augmented cause so errors.Is/errors.As can see
// through it.
func (e *Error) Unwrap() error {
	return e.stack
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, &bson.Error{Kind: bson.KindWrongType}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// errUnexpectedEOF reports that n bytes were requested but fewer remained.
func errUnexpectedEOF(requested, available int) *Error {
	return newErrorf(KindUnexpectedEOF, "requested %d bytes, %d available", requested, available)
}

func errWrongType(expected, actual Type) *Error {
	return newErrorf(KindWrongType, "expected %s, got %s", expected, actual)
}

func errDocumentTooLarge(size int) *Error {
	return newErrorf(KindDocumentTooLarge, "document of %d bytes exceeds the %d byte limit", size, MaxDocumentLen)
}
