/*
Package bson implements a BSON codec: a zero-copy, lazily-parsing reader
over raw BSON bytes, a builder DSL for emitting BSON, and a canonical
Extended-JSON-like textual rendering.

 BSON Specification

 Basic Types:
 The following basic types are used as terminals in the rest of the grammar.
 Each type must be serialized in little-endian format.

 byte    1 byte  (8-bits)
 int32   4 bytes (32-bit signed integer)
 int64   8 bytes (64-bit signed integer)
 double  8 bytes (64-bit IEEE 754 floating point)

 Non-terminals:
 The following specifies the rest of the BSON grammar. Note that quoted strings
 represent terminals, and should be interpreted with C semantics (e.g. "\x01"
 represents the byte 0000 0001). Also note that we use the * operator as
 shorthand for repetition (e.g. ("\x01"*2) is "\x01\x01"). When used as a unary
 operator, * means that the repetition can occur 0 or more times.

 document ::= int32 e_list "\x00"            BSON Document
 e_list   ::= element e_list                 Sequence of elements
            | ""
 element  ::= "\x01" e_name double           Floating point
            | "\x02" e_name string           UTF-8 string
            | "\x03" e_name document         Embedded document
            | "\x04" e_name document         Array
            | "\x05" e_name binary           Binary data
            | "\x06" e_name                  Undefined — Deprecated
            | "\x07" e_name (byte*12)        ObjectId
            | "\x08" e_name "\x00"           Boolean "false"
            | "\x08" e_name "\x01"           Boolean "true"
            | "\x09" e_name int64            UTC datetime
            | "\x0A" e_name                  Null value
            | "\x0B" e_name cstring cstring  Regular expression
            | "\x0C" e_name string (byte*12) DBPointer — Deprecated
            | "\x0D" e_name string           JavaScript code
            | "\x0E" e_name string           Symbol
            | "\x0F" e_name code_w_s         JavaScript code w/ scope
            | "\x10" e_name int32            32-bit Integer
            | "\x11" e_name int64            Timestamp
            | "\x12" e_name int64            64-bit integer
            | "\xFF" e_name                  Min key
            | "\x7F" e_name                  Max key
 e_name	 ::= cstring                        Key name
 string	 ::= int32 (byte*) "\x00"           String
 cstring	 ::= (byte*) "\x00"                 CString
 binary	 ::= int32 subtype (byte*)          Binary
 subtype	 ::= "\x00"                         Binary / Generic
            | "\x01"                         Function
            | "\x02"                         Binary (Old)
            | "\x03"                         UUID
            | "\x05"                         MD5
            | "\x80"                         User defined
 code_w_s ::= int32 string document          Code w/ scope

 Examples:
 {"hello": "world"}
 "\x16\x00\x00\x00\x02hello\x00\x06\x00\x00\x00world\x00\x00"

 {"BSON": ["awesome", 5.05, 1986]}
 "1\x00\x00\x00\x04BSON\x00&\x00\x00\x00\x020\x00\x08\x00\x00\x00awesome\x00
 \x011\x00333333\x14@\x102\x00\xc2\x07\x00\x00\x00\x00"

Reading:
 Document and Array own a complete, validated byte slice and hand out a
 DocumentReader/ArrayReader on first access. The reader parses fields
 on demand into an order-preserving cache shared by every copy of the
 Document, so repeated Read calls after the first never re-scan, and
 concurrent first accesses race safely onto a single scan via
 sync.Once. A full Elements() walk forces the remaining scan and
 returns every field, duplicates included, in encoded order.

Writing:
 FieldWriter/ValueWriter/ArrayFieldWriter form a callback-driven builder
 DSL: building a document means writing a sequence of typed fields into
 a FieldWriter, each of whose write_<type> methods appends directly to
 an underlying RawBsonWriter with a backpatched length prefix.
 CompletableFieldWriter exposes an incremental, "open now, finish
 later" variant of the same writer for cases that assemble a document
 across multiple steps. WriteObjectSafe reflects over a Go value
 (struct, map, slice, or primitive) and dispatches it through the same
 typed writer methods, honoring `bson:"name,omitempty"` struct tags.

Context:
 A *Context threads a structured logger, in-process counters, an
 ObjectIDGenerator, and a maximum document size through both this
 package and bson/query. bson.Background is a Context with no-op
 logging, its own in-process counters, and the default ID generator and
 size ceiling, suitable when a caller has no reason to configure any of
 those.

Textual form:
 String() renders a Document, Array, or ValueReader in a canonical
 Extended-JSON-like textual form: scalars render as their natural JSON
 literal where one exists unambiguously (strings, booleans, null,
 finite doubles with a few exceptions) and otherwise as a tagged
 sub-document ($oid, $numberLong, $date, $binary, $regularExpression,
 $code, $minKey/$maxKey, and so on), matching the shape MongoDB tooling
 uses for the same types.

Errors:
 Failures are returned as *Error, which carries a Kind a caller can
 switch on (KindUnexpectedEOF, KindWrongType, KindDocumentTooLarge, …)
 plus a stack-augmented message from github.com/facebookgo/stackerr.

Coercion:
 WriteObjectSafe supports a fixed set of Go-value-to-BSON coercions;
 types not listed are unsupported and return KindUnsupportedType.
	nil       -> Null
	bool      -> Bool
	int       -> Int64
	int8      -> Int32
	int16     -> Int32
	int32     -> Int32
	int64     -> Int64
	float64   -> Float
	string    -> String
	time.Time -> UTCDateTime
	[]byte    -> Binary
	struct    -> Document (field-by-field, honoring bson tags)
	map       -> Document
	slice     -> Array

 A float32 (matched by reflection, like other named kinds) is widened and
 written as a Double, so decoding it yields a float64, not the original
 float32.
*/
package bson
