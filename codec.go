// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "github.com/mohae/deepcopy"

// Kind identifies the shape of a schema node.
type Kind int

const (
	Null Kind = iota
	Boolean
	Int
	Long
	Float
	Double
	Bytes
	String
	Record
	Enum
	Array
	Map
	Union
	Fixed
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bytes:
		return "bytes"
	case String:
		return "string"
	case Record:
		return "record"
	case Enum:
		return "enum"
	case Array:
		return "array"
	case Map:
		return "map"
	case Union:
		return "union"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Field describes a single record field: its name, schema, aliases,
// sort order, and an optional default value captured verbatim from
// the schema JSON.
type Field struct {
	Name       string
	Doc        string
	Codec      *Codec
	Aliases    []string
	Order      string
	hasDefault bool
	defaultVal interface{}
}

// HasDefault reports whether the field declared a "default" value in
// its schema.
func (f *Field) HasDefault() bool {
	return f.hasDefault
}

// Default returns a deep copy of the field's default value, so callers
// can't mutate the copy cached on the parsed schema graph by mutating
// what they get back.
func (f *Field) Default() interface{} {
	if !f.hasDefault {
		return nil
	}
	return deepcopy.Copy(f.defaultVal)
}

// binaryEncodeFunc appends the binary encoding of datum (validated
// against the owning Codec's Kind) to buf, returning the extended
// slice. opts carries the caller's EncodeOptions down through every
// nested call (record field, array item, union branch, ...).
type binaryEncodeFunc func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error)

// binaryDecodeFunc consumes a binary encoding of the owning Codec's
// Kind from the front of buf, returning the decoded native value and
// the unconsumed remainder. opts carries the caller's DecodeOptions
// down through every nested call.
type binaryDecodeFunc func(buf []byte, opts decodeOptions) (interface{}, []byte, error)

// Codec is a parsed schema node together with the closures that move
// native Go values to and from its binary encoding. The same *Codec
// graph produced by Parse is reused by every Encode/Decode call: it
// is built once and never mutated afterward, so it is safe to share
// across goroutines.
type Codec struct {
	kind Kind

	typeName       *name
	aliases        []string
	doc            string
	schemaOriginal string

	// Record
	fields []*Field

	// Enum
	symbols []string

	// Array, Map
	itemCodec *Codec

	// Union
	branches []*Codec

	// Fixed
	size int

	logical *logicalType

	binaryFromNative binaryEncodeFunc
	nativeFromBinary binaryDecodeFunc
}

// Kind reports the schema node's shape.
func (c *Codec) Kind() Kind { return c.kind }

// Name returns the fullname of a named type (record, enum, fixed), or
// the empty string for unnamed types.
func (c *Codec) Name() string {
	if c.typeName == nil {
		return ""
	}
	return c.typeName.fullName()
}

// Aliases returns the named type's declared aliases, if any.
func (c *Codec) Aliases() []string { return c.aliases }

// Doc returns the schema node's "doc" string, if any.
func (c *Codec) Doc() string { return c.doc }

// Fields returns a record's fields in declaration order. Nil for
// non-record kinds.
func (c *Codec) Fields() []*Field { return c.fields }

// Symbols returns an enum's symbols in declaration order. Nil for
// non-enum kinds.
func (c *Codec) Symbols() []string { return c.symbols }

// ItemCodec returns an array's item schema or a map's value schema.
// Nil for other kinds.
func (c *Codec) ItemCodec() *Codec { return c.itemCodec }

// Branches returns a union's branch schemas in declaration order. Nil
// for non-union kinds.
func (c *Codec) Branches() []*Codec { return c.branches }

// Size returns a fixed type's declared byte size.
func (c *Codec) Size() int { return c.size }

// String returns the schema text exactly as passed to Parse for the
// top-level Codec Parse returns, and the Kind name for any other node.
// It is meant for debugging/logging; no canonical form is produced.
func (c *Codec) String() string {
	if c.schemaOriginal != "" {
		return c.schemaOriginal
	}
	return c.kind.String()
}

// BinaryFromNative appends the Avro binary encoding of datum to buf,
// returning the extended byte slice. datum must be shaped as spec.md
// §4.2 describes for the Codec's Kind (e.g. a map[string]interface{}
// for a Record, a TaggedUnion or bare value for a Union).
func (c *Codec) BinaryFromNative(buf []byte, datum interface{}, opts ...EncodeOption) ([]byte, error) {
	return c.binaryFromNative(buf, datum, newEncodeOptions(opts))
}

// NativeFromBinary consumes a single Avro-encoded value of the
// Codec's schema from the front of buf, returning the decoded native
// value and the unconsumed remainder of buf.
func (c *Codec) NativeFromBinary(buf []byte, opts ...DecodeOption) (interface{}, []byte, error) {
	return c.nativeFromBinary(buf, newDecodeOptions(opts))
}

// Encode is a convenience wrapper over BinaryFromNative for callers
// that don't need to reuse a backing buffer across calls.
func (c *Codec) Encode(datum interface{}, opts ...EncodeOption) ([]byte, error) {
	return c.binaryFromNative(nil, datum, newEncodeOptions(opts))
}

// Decode is a convenience wrapper over NativeFromBinary that also
// enforces the trailing-bytes policy selected via decodeOptions.
func (c *Codec) Decode(buf []byte, opts ...DecodeOption) (interface{}, error) {
	options := newDecodeOptions(opts)
	datum, remainder, err := c.nativeFromBinary(buf, options)
	if err != nil {
		return nil, err
	}
	if options.errorOnTrailingBytes && len(remainder) > 0 {
		return nil, &CodecError{
			Kind:    TrailingBytes,
			Bytes:   remainder,
			Message: "trailing bytes after decoding value",
		}
	}
	return datum, nil
}
