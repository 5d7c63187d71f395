// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// FieldWriter is the DSL surface that drives a RawBsonWriter: every
// write_<type>(name, value) call emits [type byte][cstring name][payload].
type FieldWriter struct {
	ctx *Context
	w   *RawBsonWriter
}

func (f *FieldWriter) writeTypeAndName(t Type, name string) {
	f.w.WriteU8(byte(t))
	f.w.WriteCString(name)
}

func (f *FieldWriter) WriteDouble(name string, v float64) error {
	f.writeTypeAndName(TypeDouble, name)
	f.w.WriteF64LE(v)
	return nil
}

func (f *FieldWriter) WriteString(name, v string) error {
	f.writeTypeAndName(TypeString, name)
	f.w.WriteString(v)
	return nil
}

// WriteDocument assembles a child document in its own buffer (the length
// prefix must precede the content, so it cannot be written in place) and
// embeds the finished bytes.
func (f *FieldWriter) WriteDocument(name string, block func(*FieldWriter) error) error {
	child, err := BuildDocument(f.ctx, block)
	if err != nil {
		return err
	}
	return f.WriteDocumentValue(name, child)
}

// WriteDocumentValue embeds an already-built Document verbatim.
func (f *FieldWriter) WriteDocumentValue(name string, d Document) error {
	f.writeTypeAndName(TypeDocument, name)
	f.w.WriteRawBytes(d.raw.Raw())
	return nil
}

// WriteArray assembles a child array (a document whose keys are "0", "1",
// …) and embeds it.
func (f *FieldWriter) WriteArray(name string, block func(*ArrayFieldWriter) error) error {
	child, err := BuildArray(f.ctx, block)
	if err != nil {
		return err
	}
	return f.WriteArrayValue(name, child)
}

// WriteArrayValue embeds an already-built Array verbatim.
func (f *FieldWriter) WriteArrayValue(name string, a Array) error {
	f.writeTypeAndName(TypeArray, name)
	f.w.WriteRawBytes(a.raw.Raw())
	return nil
}

func (f *FieldWriter) WriteBinary(name string, b Binary) error {
	f.writeTypeAndName(TypeBinaryData, name)
	if b.Subtype == BinaryGenericOld {
		f.w.WriteI32LE(int32(len(b.Data) + 4))
		f.w.WriteU8(b.Subtype)
		f.w.WriteI32LE(int32(len(b.Data)))
		f.w.WriteRawBytes(b.Data)
		return nil
	}
	f.w.WriteI32LE(int32(len(b.Data)))
	f.w.WriteU8(b.Subtype)
	f.w.WriteRawBytes(b.Data)
	return nil
}

func (f *FieldWriter) WriteUndefined(name string) error {
	f.writeTypeAndName(TypeUndefined, name)
	return nil
}

func (f *FieldWriter) WriteObjectID(name string, id ObjectID) error {
	f.writeTypeAndName(TypeObjectID, name)
	f.w.WriteRawBytes(id[:])
	return nil
}

func (f *FieldWriter) WriteBoolean(name string, v bool) error {
	f.writeTypeAndName(TypeBoolean, name)
	if v {
		f.w.WriteU8(0x01)
	} else {
		f.w.WriteU8(0x00)
	}
	return nil
}

// WriteDatetime writes millis, the number of milliseconds since the Unix
// epoch.
func (f *FieldWriter) WriteDatetime(name string, millis int64) error {
	f.writeTypeAndName(TypeDatetime, name)
	f.w.WriteI64LE(millis)
	return nil
}

func (f *FieldWriter) WriteTime(name string, t time.Time) error {
	return f.WriteDatetime(name, TimeToMillis(t))
}

func (f *FieldWriter) WriteNull(name string) error {
	f.writeTypeAndName(TypeNull, name)
	return nil
}

// WriteRegex writes a regular expression value. Options are sorted
// alphabetically before being written, matching the canonical BSON
// regex options ordering.
func (f *FieldWriter) WriteRegex(name string, r Regex) error {
	f.writeTypeAndName(TypeRegExp, name)
	f.w.WriteCString(r.Pattern)
	f.w.WriteCString(sortOptions(r.Options))
	return nil
}

func sortOptions(opts string) string {
	b := []byte(opts)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

func (f *FieldWriter) WriteDBPointer(name string, p DBPointer) error {
	f.writeTypeAndName(TypeDBPointer, name)
	f.w.WriteString(p.Namespace)
	f.w.WriteRawBytes(p.ID[:])
	return nil
}

func (f *FieldWriter) WriteJavaScript(name string, code string) error {
	f.writeTypeAndName(TypeJavaScript, name)
	f.w.WriteString(code)
	return nil
}

func (f *FieldWriter) WriteSymbol(name string, v string) error {
	f.writeTypeAndName(TypeSymbol, name)
	f.w.WriteString(v)
	return nil
}

// WriteJavaScriptWithScope writes the self-describing code_w_s payload: an
// int32 total length, the code string, then the scope document.
func (f *FieldWriter) WriteJavaScriptWithScope(name string, c CodeWithScope) error {
	f.writeTypeAndName(TypeJavaScriptWithScope, name)
	mark := f.w.Len()
	f.w.WriteI32LE(0)
	f.w.WriteString(c.Code)
	f.w.WriteRawBytes(c.Scope.raw.Raw())
	total := f.w.Len() - mark
	f.w.PutAt(mark, int32(total))
	return nil
}

func (f *FieldWriter) WriteInt32(name string, v int32) error {
	f.writeTypeAndName(TypeInt32, name)
	f.w.WriteI32LE(v)
	return nil
}

func (f *FieldWriter) WriteTimestamp(name string, v Timestamp) error {
	f.writeTypeAndName(TypeTimestamp, name)
	f.w.WriteU64LE(v.pack())
	return nil
}

func (f *FieldWriter) WriteInt64(name string, v int64) error {
	f.writeTypeAndName(TypeInt64, name)
	f.w.WriteI64LE(v)
	return nil
}

func (f *FieldWriter) WriteDecimal128(name string, v Decimal128) error {
	f.writeTypeAndName(TypeDecimal128, name)
	f.w.WriteI64LE(int64(v.Low))
	f.w.WriteI64LE(int64(v.High))
	return nil
}

func (f *FieldWriter) WriteMinKey(name string) error {
	f.writeTypeAndName(TypeMinKey, name)
	return nil
}

func (f *FieldWriter) WriteMaxKey(name string) error {
	f.writeTypeAndName(TypeMaxKey, name)
	return nil
}

// ValueWriter routes a single named value write through the callback form
// `write(name, block)`: the name is already fixed by the enclosing
// FieldWriter.Write call, and each method here dispatches to the matching
// write_<type>.
type ValueWriter struct {
	f    *FieldWriter
	name string
}

func (v *ValueWriter) Double(x float64) error               { return v.f.WriteDouble(v.name, x) }
func (v *ValueWriter) String(x string) error                { return v.f.WriteString(v.name, x) }
func (v *ValueWriter) Document(block func(*FieldWriter) error) error {
	return v.f.WriteDocument(v.name, block)
}
func (v *ValueWriter) Array(block func(*ArrayFieldWriter) error) error {
	return v.f.WriteArray(v.name, block)
}
func (v *ValueWriter) Binary(x Binary) error          { return v.f.WriteBinary(v.name, x) }
func (v *ValueWriter) Undefined() error                { return v.f.WriteUndefined(v.name) }
func (v *ValueWriter) ObjectID(x ObjectID) error       { return v.f.WriteObjectID(v.name, x) }
func (v *ValueWriter) Boolean(x bool) error            { return v.f.WriteBoolean(v.name, x) }
func (v *ValueWriter) Datetime(x int64) error          { return v.f.WriteDatetime(v.name, x) }
func (v *ValueWriter) Null() error                     { return v.f.WriteNull(v.name) }
func (v *ValueWriter) Regex(x Regex) error              { return v.f.WriteRegex(v.name, x) }
func (v *ValueWriter) DBPointer(x DBPointer) error     { return v.f.WriteDBPointer(v.name, x) }
func (v *ValueWriter) JavaScript(x string) error       { return v.f.WriteJavaScript(v.name, x) }
func (v *ValueWriter) Symbol(x string) error           { return v.f.WriteSymbol(v.name, x) }
func (v *ValueWriter) Int32(x int32) error             { return v.f.WriteInt32(v.name, x) }
func (v *ValueWriter) Timestamp(x Timestamp) error     { return v.f.WriteTimestamp(v.name, x) }
func (v *ValueWriter) Int64(x int64) error             { return v.f.WriteInt64(v.name, x) }
func (v *ValueWriter) Decimal128(x Decimal128) error   { return v.f.WriteDecimal128(v.name, x) }
func (v *ValueWriter) MinKey() error                   { return v.f.WriteMinKey(v.name) }
func (v *ValueWriter) MaxKey() error                   { return v.f.WriteMaxKey(v.name) }

// Any routes value through the same reflection-based dispatch as
// FieldWriter.WriteObjectSafe, writing it directly into this value slot
// rather than under a named field.
func (v *ValueWriter) Any(value interface{}) error { return v.f.WriteObjectSafe(v.name, value) }

// Write routes a single value write through a ValueWriter callback.
func (f *FieldWriter) Write(name string, fn func(*ValueWriter) error) error {
	return fn(&ValueWriter{f: f, name: name})
}

// ArrayFieldWriter wraps a FieldWriter and assigns decimal string keys
// 0, 1, 2, … at insertion time, matching how BSON encodes arrays as
// documents with numeric-string keys.
type ArrayFieldWriter struct {
	f    *FieldWriter
	size int
}

func (a *ArrayFieldWriter) nextKey() string {
	k := itoa(a.size)
	a.size++
	return k
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Len returns the number of elements written so far.
func (a *ArrayFieldWriter) Len() int { return a.size }

func (a *ArrayFieldWriter) WriteDouble(v float64) error     { return a.f.WriteDouble(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteString(v string) error      { return a.f.WriteString(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteDocument(block func(*FieldWriter) error) error {
	return a.f.WriteDocument(a.nextKey(), block)
}
func (a *ArrayFieldWriter) WriteDocumentValue(d Document) error {
	return a.f.WriteDocumentValue(a.nextKey(), d)
}
func (a *ArrayFieldWriter) WriteArray(block func(*ArrayFieldWriter) error) error {
	return a.f.WriteArray(a.nextKey(), block)
}
func (a *ArrayFieldWriter) WriteArrayValue(v Array) error { return a.f.WriteArrayValue(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteBinary(v Binary) error    { return a.f.WriteBinary(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteUndefined() error         { return a.f.WriteUndefined(a.nextKey()) }
func (a *ArrayFieldWriter) WriteObjectID(v ObjectID) error { return a.f.WriteObjectID(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteBoolean(v bool) error     { return a.f.WriteBoolean(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteDatetime(v int64) error   { return a.f.WriteDatetime(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteNull() error              { return a.f.WriteNull(a.nextKey()) }
func (a *ArrayFieldWriter) WriteRegex(v Regex) error      { return a.f.WriteRegex(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteDBPointer(v DBPointer) error {
	return a.f.WriteDBPointer(a.nextKey(), v)
}
func (a *ArrayFieldWriter) WriteJavaScript(v string) error { return a.f.WriteJavaScript(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteSymbol(v string) error     { return a.f.WriteSymbol(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteInt32(v int32) error       { return a.f.WriteInt32(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteTimestamp(v Timestamp) error {
	return a.f.WriteTimestamp(a.nextKey(), v)
}
func (a *ArrayFieldWriter) WriteInt64(v int64) error { return a.f.WriteInt64(a.nextKey(), v) }
func (a *ArrayFieldWriter) WriteDecimal128(v Decimal128) error {
	return a.f.WriteDecimal128(a.nextKey(), v)
}
func (a *ArrayFieldWriter) WriteMinKey() error { return a.f.WriteMinKey(a.nextKey()) }
func (a *ArrayFieldWriter) WriteMaxKey() error { return a.f.WriteMaxKey(a.nextKey()) }
func (a *ArrayFieldWriter) WriteObjectSafe(value interface{}) error {
	return a.f.WriteObjectSafe(a.nextKey(), value)
}
func (a *ArrayFieldWriter) Write(fn func(*ValueWriter) error) error {
	return a.f.Write(a.nextKey(), fn)
}

// CompletableFieldWriter is the incremental "open_document" variant: a
// FieldWriter that can be written to across multiple calls, finished on
// demand with Build.
type CompletableFieldWriter struct {
	*FieldWriter
	built bool
}

// OpenDocument starts an incrementally-built document. The returned writer
// must be finished with Build exactly once.
func (c *Context) OpenDocument() *CompletableFieldWriter {
	w := NewRawBsonWriter()
	w.WriteI32LE(0)
	return &CompletableFieldWriter{FieldWriter: &FieldWriter{ctx: c, w: w}}
}

// Build closes the document: writes the trailing nul, backpatches the
// length prefix, and returns the finished Document. It is an error to
// write to the writer again afterward.
func (c *CompletableFieldWriter) Build() (Document, error) {
	if c.built {
		return Document{}, newError(KindFrozenMutation, "document already built")
	}
	c.built = true
	return finishDocument(c.ctx, c.w)
}

func finishDocument(ctx *Context, w *RawBsonWriter) (Document, error) {
	if ctx == nil {
		ctx = Background
	}
	w.WriteU8(0x00)
	size := w.Len()
	if size > ctx.maxDocumentLen() || size > math.MaxInt32 {
		w.Release()
		return Document{}, errDocumentTooLarge(size)
	}
	w.PutAt(0, int32(size))
	raw := append([]byte(nil), w.Bytes()...)
	w.Release()
	ctx.metrics.documentsBuilt.Inc(1)
	return Document{raw: NewBytes(raw), ctx: ctx, cache: &lazyDocumentReader{}}, nil
}

// BuildDocument runs block against a fresh FieldWriter and returns the
// finished Document.
func BuildDocument(ctx *Context, block func(*FieldWriter) error) (Document, error) {
	w := NewRawBsonWriter()
	w.WriteI32LE(0)
	fw := &FieldWriter{ctx: ctx, w: w}
	if err := block(fw); err != nil {
		w.Release()
		return Document{}, err
	}
	return finishDocument(ctx, w)
}

// BuildArray runs block against a fresh ArrayFieldWriter and returns the
// finished Array. An array is implemented as a document whose keys are
// auto-assigned decimal indices.
func BuildArray(ctx *Context, block func(*ArrayFieldWriter) error) (Array, error) {
	w := NewRawBsonWriter()
	w.WriteI32LE(0)
	fw := &FieldWriter{ctx: ctx, w: w}
	af := &ArrayFieldWriter{f: fw}
	if err := block(af); err != nil {
		w.Release()
		return Array{}, err
	}
	doc, err := finishDocument(ctx, w)
	if err != nil {
		return Array{}, err
	}
	return Array{raw: doc.raw, ctx: doc.ctx, cache: &lazyArrayReader{}}, nil
}

// ObjectWriter is the reflection-based object-to-BSON hook: callers may
// bind any reflection/serialization facility behind it. WriteObjectSafe
// below is bsonkit's own binding, using struct/tag reflection.
// FieldWriter.WriteObjectSafe always uses this default binding; no Context
// option replaces it.
type ObjectWriter interface {
	WriteObjectSafe(f *FieldWriter, name string, value interface{}) error
}

type defaultObjectWriter struct{}

// WriteObjectSafe dispatches value's runtime type to the matching
// write_<type>, including coercions for common Go primitives. Structs are
// walked field-by-field honoring `bson:"name,omitempty"` tags. Values of a
// type this function cannot route fail with KindUnsupportedType.
func (f *FieldWriter) WriteObjectSafe(name string, value interface{}) error {
	return defaultObjectWriter{}.WriteObjectSafe(f, name, value)
}

func (defaultObjectWriter) WriteObjectSafe(f *FieldWriter, name string, value interface{}) error {
	if value == nil {
		return f.WriteNull(name)
	}
	switch v := value.(type) {
	case Document:
		return f.WriteDocumentValue(name, v)
	case Array:
		return f.WriteArrayValue(name, v)
	case Binary:
		return f.WriteBinary(name, v)
	case Undefined:
		return f.WriteUndefined(name)
	case ObjectID:
		return f.WriteObjectID(name, v)
	case Null:
		return f.WriteNull(name)
	case Regex:
		return f.WriteRegex(name, v)
	case DBPointer:
		return f.WriteDBPointer(name, v)
	case CodeWithScope:
		return f.WriteJavaScriptWithScope(name, v)
	case Timestamp:
		return f.WriteTimestamp(name, v)
	case Decimal128:
		return f.WriteDecimal128(name, v)
	case MinKey:
		return f.WriteMinKey(name)
	case MaxKey:
		return f.WriteMaxKey(name)
	case bool:
		return f.WriteBoolean(name, v)
	case int8:
		return f.WriteInt32(name, int32(v))
	case int16:
		return f.WriteInt32(name, int32(v))
	case int32:
		return f.WriteInt32(name, v)
	case int:
		return f.WriteInt64(name, int64(v))
	case int64:
		return f.WriteInt64(name, v)
	case float64:
		return f.WriteDouble(name, v)
	case string:
		return f.WriteString(name, v)
	case time.Time:
		return f.WriteTime(name, v)
	case []byte:
		return f.WriteBinary(name, Binary{Subtype: BinaryGeneric, Data: v})
	case map[string]interface{}:
		return f.WriteDocument(name, func(child *FieldWriter) error {
			for k, mv := range v {
				if err := child.WriteObjectSafe(k, mv); err != nil {
					return err
				}
			}
			return nil
		})
	case []interface{}:
		return f.WriteArray(name, func(child *ArrayFieldWriter) error {
			for _, ev := range v {
				if err := child.WriteObjectSafe(ev); err != nil {
					return err
				}
			}
			return nil
		})
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return f.WriteNull(name)
		}
		return f.WriteObjectSafe(name, rv.Elem().Interface())
	case reflect.Bool:
		return f.WriteBoolean(name, rv.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return f.WriteInt32(name, int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return f.WriteInt64(name, rv.Int())
	case reflect.Float32, reflect.Float64:
		return f.WriteDouble(name, rv.Float())
	case reflect.String:
		return f.WriteString(name, rv.String())
	case reflect.Slice, reflect.Array:
		return f.WriteArray(name, func(child *ArrayFieldWriter) error {
			for i := 0; i < rv.Len(); i++ {
				if err := child.WriteObjectSafe(rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		})
	case reflect.Map:
		return f.WriteDocument(name, func(child *FieldWriter) error {
			iter := rv.MapRange()
			for iter.Next() {
				if err := child.WriteObjectSafe(fmt.Sprint(iter.Key().Interface()), iter.Value().Interface()); err != nil {
					return err
				}
			}
			return nil
		})
	case reflect.Struct:
		return f.WriteDocument(name, func(child *FieldWriter) error {
			return writeStructFields(child, rv)
		})
	}
	return newErrorf(KindUnsupportedType, "cannot write value of type %T", value)
}

// writeStructFields walks rv's exported fields honoring the
// `bson:"name,omitempty"` struct tag convention.
func writeStructFields(f *FieldWriter, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name := sf.Name
		omitempty := false
		if tag := sf.Tag.Get("bson"); tag != "" {
			parts := splitComma(tag)
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitempty = true
				}
			}
		}
		fv := rv.Field(i)
		if omitempty && isEmptyValue(fv) {
			continue
		}
		if err := f.WriteObjectSafe(name, fv.Interface()); err != nil {
			return err
		}
	}
	return nil
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// isEmptyValue mirrors encoding/json's definition of "empty" for the
// purposes of the omitempty tag.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
