// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"math"
	"time"
)

// ValueReader is a zero-copy handle on one field's already-located value
// bytes (readValueBytes has already sliced out exactly the right span).
// Each Read<Type> accessor re-parses its bytes on every call rather than
// caching a decoded form — fields that are never read never pay to decode.
type ValueReader struct {
	ctx   *Context
	Type  Type
	bytes Bytes
}

func (v ValueReader) wrongType(expected Type) error {
	return errWrongType(expected, v.Type)
}

func (v ValueReader) ReadDouble() (float64, error) {
	if v.Type != TypeDouble {
		return 0, v.wrongType(TypeDouble)
	}
	u, err := v.bytes.Reader().ReadU64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (v ValueReader) ReadString() (string, error) {
	if v.Type != TypeString {
		return "", v.wrongType(TypeString)
	}
	return v.bytes.Reader().ReadString()
}

func (v ValueReader) ReadDocument() (Document, error) {
	if v.Type != TypeDocument {
		return Document{}, v.wrongType(TypeDocument)
	}
	return NewDocument(v.ctx, v.bytes)
}

func (v ValueReader) ReadArray() (Array, error) {
	if v.Type != TypeArray {
		return Array{}, v.wrongType(TypeArray)
	}
	return NewArray(v.ctx, v.bytes)
}

func (v ValueReader) ReadBinary() (Binary, error) {
	if v.Type != TypeBinaryData {
		return Binary{}, v.wrongType(TypeBinaryData)
	}
	r := v.bytes.Reader()
	n, err := r.ReadI32LE()
	if err != nil {
		return Binary{}, err
	}
	subtype, err := r.ReadU8()
	if err != nil {
		return Binary{}, err
	}
	if subtype == BinaryGenericOld {
		inner, err := r.ReadI32LE()
		if err != nil {
			return Binary{}, err
		}
		if inner != n-4 {
			return Binary{}, newErrorf(KindLengthMismatch, "old-style binary inner length %d does not match outer length %d", inner, n-4)
		}
		data, err := r.ReadBytes(int(inner))
		if err != nil {
			return Binary{}, err
		}
		return Binary{Subtype: subtype, Data: data}, nil
	}
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return Binary{}, err
	}
	return Binary{Subtype: subtype, Data: data}, nil
}

func (v ValueReader) ReadUndefined() (Undefined, error) {
	if v.Type != TypeUndefined {
		return Undefined{}, v.wrongType(TypeUndefined)
	}
	return Undefined{}, nil
}

func (v ValueReader) ReadObjectID() (ObjectID, error) {
	if v.Type != TypeObjectID {
		return ObjectID{}, v.wrongType(TypeObjectID)
	}
	var id ObjectID
	copy(id[:], v.bytes.Raw())
	return id, nil
}

func (v ValueReader) ReadBoolean() (bool, error) {
	if v.Type != TypeBoolean {
		return false, v.wrongType(TypeBoolean)
	}
	b, err := v.bytes.Reader().ReadU8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (v ValueReader) ReadDatetimeMillis() (int64, error) {
	if v.Type != TypeDatetime {
		return 0, v.wrongType(TypeDatetime)
	}
	return v.bytes.Reader().ReadI64LE()
}

func (v ValueReader) ReadTime() (time.Time, error) {
	ms, err := v.ReadDatetimeMillis()
	if err != nil {
		return time.Time{}, err
	}
	return MillisToTime(ms), nil
}

func (v ValueReader) ReadNull() (Null, error) {
	if v.Type != TypeNull {
		return Null{}, v.wrongType(TypeNull)
	}
	return Null{}, nil
}

func (v ValueReader) ReadRegex() (Regex, error) {
	if v.Type != TypeRegExp {
		return Regex{}, v.wrongType(TypeRegExp)
	}
	r := v.bytes.Reader()
	pattern, err := r.ReadCString()
	if err != nil {
		return Regex{}, err
	}
	options, err := r.ReadCString()
	if err != nil {
		return Regex{}, err
	}
	return Regex{Pattern: pattern, Options: options}, nil
}

func (v ValueReader) ReadDBPointer() (DBPointer, error) {
	if v.Type != TypeDBPointer {
		return DBPointer{}, v.wrongType(TypeDBPointer)
	}
	r := v.bytes.Reader()
	ns, err := r.ReadString()
	if err != nil {
		return DBPointer{}, err
	}
	idBytes, err := r.ReadBytes(12)
	if err != nil {
		return DBPointer{}, err
	}
	var id ObjectID
	copy(id[:], idBytes)
	return DBPointer{Namespace: ns, ID: id}, nil
}

func (v ValueReader) ReadJavaScript() (string, error) {
	if v.Type != TypeJavaScript {
		return "", v.wrongType(TypeJavaScript)
	}
	return v.bytes.Reader().ReadString()
}

func (v ValueReader) ReadSymbol() (string, error) {
	if v.Type != TypeSymbol {
		return "", v.wrongType(TypeSymbol)
	}
	return v.bytes.Reader().ReadString()
}

func (v ValueReader) ReadJavaScriptWithScope() (CodeWithScope, error) {
	if v.Type != TypeJavaScriptWithScope {
		return CodeWithScope{}, v.wrongType(TypeJavaScriptWithScope)
	}
	r := v.bytes.Reader()
	if _, err := r.ReadI32LE(); err != nil {
		return CodeWithScope{}, err
	}
	code, err := r.ReadString()
	if err != nil {
		return CodeWithScope{}, err
	}
	scopeBytes, err := r.ReadBytesView(r.Remaining())
	if err != nil {
		return CodeWithScope{}, err
	}
	scope, err := NewDocument(v.ctx, scopeBytes)
	if err != nil {
		return CodeWithScope{}, err
	}
	return CodeWithScope{Code: code, Scope: scope}, nil
}

func (v ValueReader) ReadInt32() (int32, error) {
	if v.Type != TypeInt32 {
		return 0, v.wrongType(TypeInt32)
	}
	return v.bytes.Reader().ReadI32LE()
}

func (v ValueReader) ReadTimestamp() (Timestamp, error) {
	if v.Type != TypeTimestamp {
		return Timestamp{}, v.wrongType(TypeTimestamp)
	}
	u, err := v.bytes.Reader().ReadU64LE()
	if err != nil {
		return Timestamp{}, err
	}
	return timestampFromPacked(u), nil
}

func (v ValueReader) ReadInt64() (int64, error) {
	if v.Type != TypeInt64 {
		return 0, v.wrongType(TypeInt64)
	}
	return v.bytes.Reader().ReadI64LE()
}

func (v ValueReader) ReadDecimal128() (Decimal128, error) {
	if v.Type != TypeDecimal128 {
		return Decimal128{}, v.wrongType(TypeDecimal128)
	}
	r := v.bytes.Reader()
	low, err := r.ReadU64LE()
	if err != nil {
		return Decimal128{}, err
	}
	high, err := r.ReadU64LE()
	if err != nil {
		return Decimal128{}, err
	}
	return Decimal128{Low: low, High: high}, nil
}

func (v ValueReader) ReadMinKey() (MinKey, error) {
	if v.Type != TypeMinKey {
		return MinKey{}, v.wrongType(TypeMinKey)
	}
	return MinKey{}, nil
}

func (v ValueReader) ReadMaxKey() (MaxKey, error) {
	if v.Type != TypeMaxKey {
		return MaxKey{}, v.wrongType(TypeMaxKey)
	}
	return MaxKey{}, nil
}

// Interface decodes the value into the nearest native Go representation —
// the dynamic-typing escape hatch for callers that don't know a field's
// type ahead of time (mirrors what a generic driver's bson.M decode would
// hand back).
func (v ValueReader) Interface() (interface{}, error) {
	switch v.Type {
	case TypeDouble:
		return v.ReadDouble()
	case TypeString:
		return v.ReadString()
	case TypeDocument:
		return v.ReadDocument()
	case TypeArray:
		return v.ReadArray()
	case TypeBinaryData:
		return v.ReadBinary()
	case TypeUndefined:
		return Undefined{}, nil
	case TypeObjectID:
		return v.ReadObjectID()
	case TypeBoolean:
		return v.ReadBoolean()
	case TypeDatetime:
		return v.ReadTime()
	case TypeNull:
		return Null{}, nil
	case TypeRegExp:
		return v.ReadRegex()
	case TypeDBPointer:
		return v.ReadDBPointer()
	case TypeJavaScript:
		return v.ReadJavaScript()
	case TypeSymbol:
		return v.ReadSymbol()
	case TypeJavaScriptWithScope:
		return v.ReadJavaScriptWithScope()
	case TypeInt32:
		return v.ReadInt32()
	case TypeTimestamp:
		return v.ReadTimestamp()
	case TypeInt64:
		return v.ReadInt64()
	case TypeDecimal128:
		return v.ReadDecimal128()
	case TypeMinKey:
		return MinKey{}, nil
	case TypeMaxKey:
		return MaxKey{}, nil
	default:
		return nil, newErrorf(KindUnknownType, "unknown bson type code 0x%02X", byte(v.Type))
	}
}

// String renders the value using the same Extended-JSON-like textual form
// as Document.String.
func (v ValueReader) String() string {
	return renderValueReader(v)
}
