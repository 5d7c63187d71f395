// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "github.com/go-bsonkit/bsonkit"

// ValueNode is a BsonNode that additionally knows how to write itself into
// a single value slot — a field's value, an array element, or an operand
// of another value expression — rather than a (name, value) pair.
type ValueNode interface {
	BsonNode
	// WriteValue writes this expression's value via vw.
	WriteValue(vw *bson.ValueWriter) error
}

// leafValue adapts a plain write function into a ValueNode that never has
// children to simplify or freeze — the common shape for literals and
// field references.
type leafValue struct {
	baseNode
	write func(vw *bson.ValueWriter) error
}

func newLeafValue(ctx *bson.Context, write func(vw *bson.ValueWriter) error) *leafValue {
	return &leafValue{baseNode: baseNode{ctx: ctx}, write: write}
}

func (l *leafValue) Simplify() BsonNode { return l }

func (l *leafValue) Write(fw *bson.FieldWriter) error {
	// A bare leaf value only appears written as a field's value through
	// WriteValue; Write exists to satisfy BsonNode but is never reached
	// directly since leaves are always wrapped by a PredicateOp, operator
	// pair, or another ValueNode before they reach a FieldWriter.
	return fw.Write("$value", l.write)
}

func (l *leafValue) WriteValue(vw *bson.ValueWriter) error { return l.write(vw) }

// Str builds a string literal value.
func Str(ctx *bson.Context, s string) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.String(s) })
}

// Int builds an Int64 literal value.
func Int(ctx *bson.Context, n int64) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.Int64(n) })
}

// Double builds a Double literal value.
func Double(ctx *bson.Context, f float64) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.Double(f) })
}

// Bool builds a Boolean literal value.
func Bool(ctx *bson.Context, b bool) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.Boolean(b) })
}

// Null builds a Null literal value.
func Null(ctx *bson.Context) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.Null() })
}

// FieldRef builds an aggregation field reference: the string "$" + the
// path's dotted rendering, e.g. path `a.b` becomes the value "$a.b".
func FieldRef(ctx *bson.Context, path Path) ValueNode {
	return newLeafValue(ctx, func(vw *bson.ValueWriter) error { return vw.String("$" + path.String()) })
}

// operatorNode is the common shape for the string-operator family: it
// writes {"$<op>": <body>} where body is produced by the supplied
// function, wrapped into either a document or array value.
type operatorNode struct {
	baseNode
	name string
	body func(vw *bson.ValueWriter) error
}

func newOperatorValue(ctx *bson.Context, name string, body func(vw *bson.ValueWriter) error) *operatorNode {
	return &operatorNode{baseNode: baseNode{ctx: ctx}, name: name, body: body}
}

func (o *operatorNode) Simplify() BsonNode { return o }

func (o *operatorNode) Write(fw *bson.FieldWriter) error {
	return fw.Write(o.name, o.body)
}

func (o *operatorNode) WriteValue(vw *bson.ValueWriter) error {
	return vw.Document(func(fw *bson.FieldWriter) error {
		return fw.Write(o.name, o.body)
	})
}

func writeInputChars(input, chars ValueNode) func(vw *bson.ValueWriter) error {
	return func(vw *bson.ValueWriter) error {
		return vw.Document(func(fw *bson.FieldWriter) error {
			if err := fw.Write("input", input.WriteValue); err != nil {
				return err
			}
			if chars == nil {
				return nil
			}
			return fw.Write("chars", chars.WriteValue)
		})
	}
}

// Trim, LTrim, RTrim build {"$trim"/"$ltrim"/"$rtrim": {"input": …, "chars": …}}.
// chars may be nil to omit the field and trim whitespace.
func Trim(ctx *bson.Context, input, chars ValueNode) ValueNode {
	return newOperatorValue(ctx, "$trim", writeInputChars(input, chars))
}

func LTrim(ctx *bson.Context, input, chars ValueNode) ValueNode {
	return newOperatorValue(ctx, "$ltrim", writeInputChars(input, chars))
}

func RTrim(ctx *bson.Context, input, chars ValueNode) ValueNode {
	return newOperatorValue(ctx, "$rtrim", writeInputChars(input, chars))
}

// singleExprNode writes {"$op": <expr>} — a bare single-value operand, not
// wrapped in a document or array.
type singleExprNode struct {
	baseNode
	name string
	expr ValueNode
}

func newSingleExprValue(ctx *bson.Context, name string, expr ValueNode) *singleExprNode {
	return &singleExprNode{baseNode: baseNode{ctx: ctx}, name: name, expr: expr}
}

func (s *singleExprNode) Simplify() BsonNode { return s }

func (s *singleExprNode) Write(fw *bson.FieldWriter) error {
	return fw.Write(s.name, s.expr.WriteValue)
}

func (s *singleExprNode) WriteValue(vw *bson.ValueWriter) error {
	return vw.Document(func(fw *bson.FieldWriter) error {
		return fw.Write(s.name, s.expr.WriteValue)
	})
}

// ToLower builds {"$toLower": <expr>}.
func ToLower(ctx *bson.Context, expr ValueNode) ValueNode {
	return newSingleExprValue(ctx, "$toLower", expr)
}

// ToUpper builds {"$toUpper": <expr>}.
func ToUpper(ctx *bson.Context, expr ValueNode) ValueNode {
	return newSingleExprValue(ctx, "$toUpper", expr)
}

// StrLenCP builds {"$strLenCP": <expr>}.
func StrLenCP(ctx *bson.Context, expr ValueNode) ValueNode {
	return newSingleExprValue(ctx, "$strLenCP", expr)
}

// StrLenBytes builds {"$strLenBytes": <expr>}.
func StrLenBytes(ctx *bson.Context, expr ValueNode) ValueNode {
	return newSingleExprValue(ctx, "$strLenBytes", expr)
}

// arrayExprNode writes {"$op": [v1, v2, …]}.
type arrayExprNode struct {
	baseNode
	name  string
	items []ValueNode
}

func newArrayExprValue(ctx *bson.Context, name string, items ...ValueNode) *arrayExprNode {
	return &arrayExprNode{baseNode: baseNode{ctx: ctx}, name: name, items: items}
}

func (a *arrayExprNode) Simplify() BsonNode { return a }

func (a *arrayExprNode) Write(fw *bson.FieldWriter) error {
	return fw.WriteArray(a.name, func(afw *bson.ArrayFieldWriter) error {
		for _, item := range a.items {
			if err := afw.Write(item.WriteValue); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *arrayExprNode) WriteValue(vw *bson.ValueWriter) error {
	return vw.Document(func(fw *bson.FieldWriter) error {
		return fw.WriteArray(a.name, func(afw *bson.ArrayFieldWriter) error {
			for _, item := range a.items {
				if err := afw.Write(item.WriteValue); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// SubstrCP builds {"$substrCP": [str, start, length]}.
func SubstrCP(ctx *bson.Context, str, start, length ValueNode) ValueNode {
	return newArrayExprValue(ctx, "$substrCP", str, start, length)
}

// SubstrBytes builds {"$substrBytes": [str, start, length]}.
func SubstrBytes(ctx *bson.Context, str, start, length ValueNode) ValueNode {
	return newArrayExprValue(ctx, "$substrBytes", str, start, length)
}

// Split builds {"$split": [str, delimiter]}.
func Split(ctx *bson.Context, str, delimiter ValueNode) ValueNode {
	return newArrayExprValue(ctx, "$split", str, delimiter)
}

// replaceNode builds {"$replaceOne"/"$replaceAll": {"input":…, "find":…, "replacement":…}}.
type replaceNode struct {
	baseNode
	name                       string
	input, find, replacement ValueNode
}

func newReplaceValue(ctx *bson.Context, name string, input, find, replacement ValueNode) *replaceNode {
	return &replaceNode{baseNode: baseNode{ctx: ctx}, name: name, input: input, find: find, replacement: replacement}
}

func (r *replaceNode) Simplify() BsonNode { return r }

func (r *replaceNode) Write(fw *bson.FieldWriter) error {
	return fw.Write(r.name, func(vw *bson.ValueWriter) error {
		return vw.Document(func(bodyFw *bson.FieldWriter) error {
			if err := bodyFw.Write("input", r.input.WriteValue); err != nil {
				return err
			}
			if err := bodyFw.Write("find", r.find.WriteValue); err != nil {
				return err
			}
			return bodyFw.Write("replacement", r.replacement.WriteValue)
		})
	})
}

func (r *replaceNode) WriteValue(vw *bson.ValueWriter) error {
	return vw.Document(func(fw *bson.FieldWriter) error {
		return fw.Write(r.name, func(vw2 *bson.ValueWriter) error {
			return vw2.Document(func(bodyFw *bson.FieldWriter) error {
				if err := bodyFw.Write("input", r.input.WriteValue); err != nil {
					return err
				}
				if err := bodyFw.Write("find", r.find.WriteValue); err != nil {
					return err
				}
				return bodyFw.Write("replacement", r.replacement.WriteValue)
			})
		})
	})
}

// ReplaceOne builds {"$replaceOne": {"input":…, "find":…, "replacement":…}}.
func ReplaceOne(ctx *bson.Context, input, find, replacement ValueNode) ValueNode {
	return newReplaceValue(ctx, "$replaceOne", input, find, replacement)
}

// ReplaceAll builds {"$replaceAll": {"input":…, "find":…, "replacement":…}}.
func ReplaceAll(ctx *bson.Context, input, find, replacement ValueNode) ValueNode {
	return newReplaceValue(ctx, "$replaceAll", input, find, replacement)
}

// concatNode builds {"$concat": [v1, v2, …]} and flattens nested $concat
// operands on Simplify.
type concatNode struct {
	baseNode
	operands []ValueNode
}

// Concat builds a $concat expression from operands, in order.
func Concat(ctx *bson.Context, operands ...ValueNode) ValueNode {
	return &concatNode{baseNode: baseNode{ctx: ctx}, operands: operands}
}

func (c *concatNode) Simplify() BsonNode {
	flat := make([]ValueNode, 0, len(c.operands))
	for _, op := range c.operands {
		if nested, ok := op.(*concatNode); ok {
			flat = append(flat, nested.operands...)
		} else {
			flat = append(flat, op)
		}
	}
	c.operands = flat
	return c
}

func (c *concatNode) Write(fw *bson.FieldWriter) error {
	return fw.WriteArray("$concat", func(afw *bson.ArrayFieldWriter) error {
		for _, op := range c.operands {
			if err := afw.Write(op.WriteValue); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *concatNode) WriteValue(vw *bson.ValueWriter) error {
	return vw.Document(func(fw *bson.FieldWriter) error {
		return fw.WriteArray("$concat", func(afw *bson.ArrayFieldWriter) error {
			for _, op := range c.operands {
				if err := afw.Write(op.WriteValue); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
