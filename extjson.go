// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// renderValueReader implements bsonkit's canonical Extended-JSON-like
// textual form. It is intentionally lenient about read errors — malformed
// bytes are only possible if a caller hand-built a ValueReader over
// corrupt input, and a String() method has no error return to give them.
func renderValueReader(v ValueReader) string {
	switch v.Type {
	case TypeDouble:
		d, err := v.ReadDouble()
		if err != nil {
			return renderErr(err)
		}
		return formatDouble(d)
	case TypeString:
		s, err := v.ReadString()
		if err != nil {
			return renderErr(err)
		}
		return jsonQuoted(s)
	case TypeDocument:
		d, err := v.ReadDocument()
		if err != nil {
			return renderErr(err)
		}
		return renderDocumentReader(d.Reader())
	case TypeArray:
		a, err := v.ReadArray()
		if err != nil {
			return renderErr(err)
		}
		return renderArrayReader(a.Reader())
	case TypeBinaryData:
		b, err := v.ReadBinary()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$binary": {"base64": "%s", "subType": "%02x"}}`,
			base64.StdEncoding.EncodeToString(b.Data), b.Subtype)
	case TypeUndefined:
		return `{"$undefined": true}`
	case TypeObjectID:
		id, err := v.ReadObjectID()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$oid": "%s"}`, id.Hex())
	case TypeBoolean:
		b, err := v.ReadBoolean()
		if err != nil {
			return renderErr(err)
		}
		if b {
			return "true"
		}
		return "false"
	case TypeDatetime:
		ms, err := v.ReadDatetimeMillis()
		if err != nil {
			return renderErr(err)
		}
		return formatDatetime(ms)
	case TypeNull:
		return "null"
	case TypeRegExp:
		re, err := v.ReadRegex()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$regularExpression": {"pattern": "%s", "options": "%s"}}`,
			jsonEscape(re.Pattern), re.Options)
	case TypeDBPointer:
		p, err := v.ReadDBPointer()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$dbPointer": {"$ref": "%s", "$id": {"$oid": "%s"}}}`,
			jsonEscape(p.Namespace), p.ID.Hex())
	case TypeJavaScript:
		s, err := v.ReadJavaScript()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$code": "%s"}`, jsonEscape(s))
	case TypeSymbol:
		s, err := v.ReadSymbol()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$symbol": "%s"}`, jsonEscape(s))
	case TypeJavaScriptWithScope:
		c, err := v.ReadJavaScriptWithScope()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$code": "%s", "$scope": %s}`, jsonEscape(c.Code), renderDocumentReader(c.Scope.Reader()))
	case TypeInt32:
		n, err := v.ReadInt32()
		if err != nil {
			return renderErr(err)
		}
		return strconv.FormatInt(int64(n), 10)
	case TypeTimestamp:
		ts, err := v.ReadTimestamp()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$timestamp": {"t": %d, "i": %d}}`, ts.Seconds, ts.Counter)
	case TypeInt64:
		n, err := v.ReadInt64()
		if err != nil {
			return renderErr(err)
		}
		return strconv.FormatInt(n, 10)
	case TypeDecimal128:
		d, err := v.ReadDecimal128()
		if err != nil {
			return renderErr(err)
		}
		return fmt.Sprintf(`{"$numberDecimalBits": {"low": %d, "high": %d}}`, d.Low, d.High)
	case TypeMinKey:
		return `{"$minKey": 1}`
	case TypeMaxKey:
		return `{"$maxKey": 1}`
	default:
		return fmt.Sprintf("<unknown type 0x%02X>", byte(v.Type))
	}
}

func renderErr(err error) string {
	return fmt.Sprintf("<error: %s>", err)
}

// renderDocumentReader renders {"k1": v1, "k2": v2, …}; duplicate keys from
// a full enumeration are rendered in their original, possibly repeating,
// order.
func renderDocumentReader(dr *DocumentReader) string {
	elems, err := dr.Elements()
	if err != nil {
		return renderErr(err)
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = jsonQuoted(e.Name) + ": " + renderValueReader(e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// renderArrayReader renders [v1, v2, …].
func renderArrayReader(ar *ArrayReader) string {
	elems, err := ar.Elements()
	if err != nil {
		return renderErr(err)
	}
	parts := make([]string, len(elems))
	for i, v := range elems {
		parts[i] = renderValueReader(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const (
	minExtJSONDateMillis = 0
	maxExtJSONDateMillis = 253402300799999
)

// formatDatetime renders a BSON Datetime as ISO-8601 UTC, per spec S6.
// Milliseconds are included only when non-zero: a whole-second value
// renders as "...T00:00:00Z", not "...T00:00:00.000Z".
func formatDatetime(ms int64) string {
	if ms >= minExtJSONDateMillis && ms <= maxExtJSONDateMillis {
		t := MillisToTime(ms).UTC()
		layout := "2006-01-02T15:04:05Z"
		if ms%1000 != 0 {
			layout = "2006-01-02T15:04:05.000Z"
		}
		return fmt.Sprintf(`{"$date": "%s"}`, t.Format(layout))
	}
	return fmt.Sprintf(`{"$date": {"$numberLong": "%d"}}`, ms)
}

// formatDouble renders a double with a mandatory fractional dot below the
// 1e6 magnitude threshold, mantissa-E-exponent above it, and the three
// non-finite values wrapped as $numberDouble.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return numberDouble("NaN")
	case math.IsInf(f, 1):
		return numberDouble("Infinity")
	case math.IsInf(f, -1):
		return numberDouble("-Infinity")
	}
	if math.Abs(f) > 1e6 {
		return normalizeExponent(strconv.FormatFloat(f, 'E', -1, 64))
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func numberDouble(s string) string {
	return fmt.Sprintf(`{"$numberDouble": "%s"}`, s)
}

// normalizeExponent turns Go's "1.5E+08" rendering into "1.5E8", and
// "1E-07" into "1.0E-7" — a mandatory-dot mantissa with no zero-padded or
// explicitly-positive exponent.
func normalizeExponent(s string) string {
	idx := strings.IndexByte(s, 'E')
	mantissa, exp := s[:idx], s[idx+1:]
	neg := false
	switch {
	case strings.HasPrefix(exp, "+"):
		exp = exp[1:]
	case strings.HasPrefix(exp, "-"):
		neg = true
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	return mantissa + "E" + exp
}

// jsonEscape escapes s for embedding inside a double-quoted JSON string,
// without adding the surrounding quotes.
func jsonEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func jsonQuoted(s string) string {
	return `"` + jsonEscape(s) + `"`
}
