// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"encoding/hex"
	"fmt"
)

// Type is the wire tag of a BSON value, exactly as it appears on the wire.
type Type byte

// Wire types, per the BSON specification (bsonspec.org).
const (
	TypeDouble              Type = 0x01
	TypeString              Type = 0x02
	TypeDocument            Type = 0x03
	TypeArray               Type = 0x04
	TypeBinaryData          Type = 0x05
	TypeUndefined           Type = 0x06 // deprecated
	TypeObjectID            Type = 0x07
	TypeBoolean             Type = 0x08
	TypeDatetime            Type = 0x09
	TypeNull                Type = 0x0A
	TypeRegExp              Type = 0x0B
	TypeDBPointer           Type = 0x0C // deprecated
	TypeJavaScript          Type = 0x0D
	TypeSymbol              Type = 0x0E // deprecated
	TypeJavaScriptWithScope Type = 0x0F // deprecated
	TypeInt32               Type = 0x10
	TypeTimestamp           Type = 0x11
	TypeInt64               Type = 0x12
	TypeDecimal128          Type = 0x13
	TypeMinKey              Type = 0xFF
	TypeMaxKey              Type = 0x7F
)

// String renders the Go-side name of the type, used in error messages and
// debug logging, never on the wire.
func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinaryData:
		return "binData"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectId"
	case TypeBoolean:
		return "bool"
	case TypeDatetime:
		return "date"
	case TypeNull:
		return "null"
	case TypeRegExp:
		return "regex"
	case TypeDBPointer:
		return "dbPointer"
	case TypeJavaScript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeJavaScriptWithScope:
		return "javascriptWithScope"
	case TypeInt32:
		return "int"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "long"
	case TypeDecimal128:
		return "decimal"
	case TypeMinKey:
		return "minKey"
	case TypeMaxKey:
		return "maxKey"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(t))
	}
}

// ObjectID is the classic 12-byte MongoDB identifier.
type ObjectID [12]byte

// ObjectIDMin and ObjectIDMax bound the representable range of ObjectID
// values: all-zero and all-0xFF respectively.
var (
	ObjectIDMin = ObjectID{}
	ObjectIDMax = ObjectID{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
)

// ObjectIDFromHex parses a 24-character lowercase hex string into an
// ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 24 {
		return id, newError(KindInvalidObjectID, fmt.Sprintf("object id hex must be 24 characters, got %d", len(s)))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, newError(KindInvalidObjectID, err.Error())
	}
	copy(id[:], b)
	return id, nil
}

// Hex renders the ObjectID as 24 lowercase hex characters.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return id.Hex()
}

// Timestamp is a BSON internal timestamp: a 32-bit seconds-since-epoch
// counter packed with a 32-bit ordinal, both big-picture little-endian on
// the wire but logically separate fields.
type Timestamp struct {
	Seconds uint32
	Counter uint32
}

// pack returns the wire-order 64-bit representation: seconds in the high
// 32 bits, counter in the low 32 bits, per §3.
func (t Timestamp) pack() uint64 {
	return uint64(t.Seconds)<<32 | uint64(t.Counter)
}

func timestampFromPacked(u uint64) Timestamp {
	return Timestamp{
		Seconds: uint32(u >> 32),
		Counter: uint32(u),
	}
}

// Decimal128 stores the 128 raw bits of an IEEE 754-2008 decimal128 value
// as two little-endian halves. This library treats Decimal128 as an opaque
// bit pattern: it can be read and written verbatim but is not arithmetic.
type Decimal128 struct {
	Low  uint64
	High uint64
}

// Regex is a BSON regular expression value: a pattern plus a set of
// single-letter option flags.
type Regex struct {
	Pattern string
	Options string
}

// DBPointer is the deprecated BSON DBPointer type: a collection namespace
// plus a referenced ObjectID.
type DBPointer struct {
	Namespace string
	ID        ObjectID
}

// CodeWithScope is the deprecated BSON "JavaScript code with scope" type.
type CodeWithScope struct {
	Code  string
	Scope Document
}

// Binary is a BSON binary value: a subtype tag plus the raw payload.
// Subtype 0x02 has a redundant inner length prefix on the wire (see
// FieldWriter.WriteBinary in builder.go); Binary's Data never includes that
// framing.
type Binary struct {
	Subtype byte
	Data    []byte
}

// Binary subtypes in common use.
const (
	BinaryGeneric     byte = 0x00
	BinaryFunction    byte = 0x01
	BinaryGenericOld  byte = 0x02
	BinaryUUIDOld     byte = 0x03
	BinaryUUID        byte = 0x04
	BinaryMD5         byte = 0x05
	BinaryEncrypted   byte = 0x06
	BinaryUserDefined byte = 0x80
)

// MinKey and MaxKey are the BSON sentinel comparison types; both are
// value-less singletons.
type MinKey struct{}
type MaxKey struct{}

// Undefined is the deprecated BSON "undefined" value.
type Undefined struct{}

// Null is the BSON null value.
type Null struct{}
