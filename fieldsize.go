// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

// readValueBytes consumes exactly the bytes belonging to one field's value
// (not its type byte or name) and returns a zero-copy view of them. It is
// the one place that must agree, type-by-type, with how builder.go lays
// values out.
func readValueBytes(r *RawBsonReader, t Type) (Bytes, error) {
	switch t {
	case TypeDouble, TypeInt64, TypeDatetime, TypeTimestamp:
		return r.ReadBytesView(8)
	case TypeInt32:
		return r.ReadBytesView(4)
	case TypeDecimal128:
		return r.ReadBytesView(16)
	case TypeObjectID:
		return r.ReadBytesView(12)
	case TypeBoolean:
		return r.ReadBytesView(1)
	case TypeNull, TypeUndefined, TypeMinKey, TypeMaxKey:
		return r.ReadBytesView(0)
	case TypeString, TypeJavaScript, TypeSymbol:
		n, err := r.PeekI32LE()
		if err != nil {
			return Bytes{}, err
		}
		return r.ReadBytesView(int(n) + 4)
	case TypeDocument, TypeArray:
		n, err := r.PeekI32LE()
		if err != nil {
			return Bytes{}, err
		}
		return r.ReadBytesView(int(n))
	case TypeBinaryData:
		n, err := r.PeekI32LE()
		if err != nil {
			return Bytes{}, err
		}
		return r.ReadBytesView(int(n) + 5)
	case TypeRegExp:
		start := r.Pos()
		if err := r.SkipCString(); err != nil {
			return Bytes{}, err
		}
		if err := r.SkipCString(); err != nil {
			return Bytes{}, err
		}
		return r.bytes.SubRange(start, r.Pos()), nil
	case TypeDBPointer:
		n, err := r.PeekI32LE()
		if err != nil {
			return Bytes{}, err
		}
		return r.ReadBytesView(int(n) + 4 + 12)
	case TypeJavaScriptWithScope:
		n, err := r.PeekI32LE()
		if err != nil {
			return Bytes{}, err
		}
		return r.ReadBytesView(int(n))
	default:
		return Bytes{}, newErrorf(KindUnknownType, "unknown bson type code 0x%02X", byte(t))
	}
}
