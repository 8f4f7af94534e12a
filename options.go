// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

// parseOptions controls schema-parsing strictness.
type parseOptions struct {
	strict bool
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// Strict rejects unrecognized schema object keys and duplicate aliases
// as hard errors instead of silently accepting them. Names that do not
// match [A-Za-z_][A-Za-z0-9_]* are rejected whether or not Strict is
// set.
func Strict() ParseOption {
	return func(o *parseOptions) { o.strict = true }
}

func newParseOptions(opts []ParseOption) parseOptions {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DecimalMode selects how the decimal logical type is represented on
// decode. Encoding accepts the same inputs in either mode.
type DecimalMode int

const (
	// DecimalApproximate decodes decimal values to a float64 computed
	// from the unscaled value and the schema's declared scale.
	DecimalApproximate DecimalMode = iota
	// DecimalExact decodes decimal values to *apd.Decimal carrying the
	// schema's declared scale.
	DecimalExact
)

// UUIDFormat selects how a 16-byte-fixed-backed uuid logical type is
// represented on decode. It has no effect on a string-backed uuid,
// whose native representation is always the canonical string.
type UUIDFormat int

const (
	// UUIDBytes represents a fixed-backed uuid as its raw 16-byte form.
	// This is the default, per spec.
	UUIDBytes UUIDFormat = iota
	// UUIDString represents a fixed-backed uuid as its canonical
	// 36-character hyphenated string form.
	UUIDString
)

// encodeOptions controls binary-encode behavior.
type encodeOptions struct {
	blockByteSize bool
	taggedUnions  bool
	decimalMode   DecimalMode
	uuidFormat    UUIDFormat
}

// EncodeOption configures BinaryFromNative/Encode.
type EncodeOption func(*encodeOptions)

// WithBlockByteSize causes array/map block encoding to emit a negated
// item count followed by the block's byte size, allowing a decoder to
// skip the block without interpreting its contents.
func WithBlockByteSize() EncodeOption {
	return func(o *encodeOptions) { o.blockByteSize = true }
}

// WithTaggedUnionsEncode requires union values to be supplied as
// TaggedUnion, rejecting shape-inference on encode.
func WithTaggedUnionsEncode() EncodeOption {
	return func(o *encodeOptions) { o.taggedUnions = true }
}

// WithExactDecimalsEncode records DecimalExact in the encode options.
// The decimal encoder does not read it: in either mode it accepts
// *apd.Decimal, apd.Decimal, float64 and int64 values, and rejects a
// value that cannot be rescaled exactly to the schema's scale.
func WithExactDecimalsEncode() EncodeOption {
	return func(o *encodeOptions) { o.decimalMode = DecimalExact }
}

// WithUUIDFormatEncode records format in the encode options. The uuid
// encoder does not read it: it accepts either a canonical uuid string
// or raw 16 bytes whichever format is set.
func WithUUIDFormatEncode(format UUIDFormat) EncodeOption {
	return func(o *encodeOptions) { o.uuidFormat = format }
}

func newEncodeOptions(opts []EncodeOption) encodeOptions {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// decodeOptions controls binary-decode behavior.
type decodeOptions struct {
	taggedUnions         bool
	decimalMode          DecimalMode
	uuidFormat           UUIDFormat
	errorOnTrailingBytes bool
}

// DecodeOption configures NativeFromBinary/Decode.
type DecodeOption func(*decodeOptions)

// WithTaggedUnions causes decoded union values to be returned as
// TaggedUnion{Name, Value} instead of the bare branch value.
func WithTaggedUnions() DecodeOption {
	return func(o *decodeOptions) { o.taggedUnions = true }
}

// WithExactDecimals selects DecimalExact for decoding.
func WithExactDecimals() DecodeOption {
	return func(o *decodeOptions) { o.decimalMode = DecimalExact }
}

// WithUUIDFormat selects the uuid representation for decoding.
func WithUUIDFormat(format UUIDFormat) DecodeOption {
	return func(o *decodeOptions) { o.uuidFormat = format }
}

// WithTrailingBytesError makes Decode report unconsumed bytes after a
// successful decode as a *CodecError{Kind: TrailingBytes} instead of
// silently discarding them.
func WithTrailingBytesError() DecodeOption {
	return func(o *decodeOptions) { o.errorOnTrailingBytes = true }
}

func newDecodeOptions(opts []DecodeOption) decodeOptions {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
