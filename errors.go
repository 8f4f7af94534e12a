// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "fmt"

// SchemaErrorKind identifies the category of a schema parsing failure.
type SchemaErrorKind int

const (
	InvalidName SchemaErrorKind = iota
	DuplicateName
	UnknownReference
	InvalidUnion
	InvalidDefault
	InvalidLogicalType
	MissingRequiredField
	UnrecognizedKey
)

func (k SchemaErrorKind) String() string {
	switch k {
	case InvalidName:
		return "invalid_name"
	case DuplicateName:
		return "duplicate_name"
	case UnknownReference:
		return "unknown_reference"
	case InvalidUnion:
		return "invalid_union"
	case InvalidDefault:
		return "invalid_default"
	case InvalidLogicalType:
		return "invalid_logical_type"
	case MissingRequiredField:
		return "missing_required_field"
	case UnrecognizedKey:
		return "unrecognized_key"
	default:
		return "schema_error"
	}
}

// SchemaError reports a parse-time failure, carrying enough context (the
// JSON path of the offending node and, where relevant, the offending
// value) to be formatted into a human-readable message.
type SchemaError struct {
	Kind    SchemaErrorKind
	Path    string
	Value   interface{}
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// CodecErrorKind identifies the category of an encode/decode failure.
type CodecErrorKind int

const (
	EncodingTypeMismatch CodecErrorKind = iota
	UnionBranchNotFound
	EnumSymbolNotFound
	FixedSizeMismatch
	InvalidString
	InvalidBinaryUUID
	DecimalOutOfRange
	UnexpectedEOF
	TrailingBytes
)

func (k CodecErrorKind) String() string {
	switch k {
	case EncodingTypeMismatch:
		return "encoding_type_mismatch"
	case UnionBranchNotFound:
		return "union_branch_not_found"
	case EnumSymbolNotFound:
		return "enum_symbol_not_found"
	case FixedSizeMismatch:
		return "fixed_size_mismatch"
	case InvalidString:
		return "invalid_string"
	case InvalidBinaryUUID:
		return "invalid_binary_uuid"
	case DecimalOutOfRange:
		return "decimal_out_of_range"
	case UnexpectedEOF:
		return "unexpected_eof"
	case TrailingBytes:
		return "trailing_bytes"
	default:
		return "codec_error"
	}
}

// CodecError reports an encode/decode failure, carrying the schema path
// and, where relevant, the offending raw bytes or native value.
type CodecError struct {
	Kind    CodecErrorKind
	Path    string
	Value   interface{}
	Bytes   []byte
	Message string
}

func (e *CodecError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newEncodeMismatch(kind string, datum interface{}) error {
	return &CodecError{
		Kind:    EncodingTypeMismatch,
		Value:   datum,
		Message: fmt.Sprintf("cannot encode binary %s: received: %T", kind, datum),
	}
}

func unexpectedEOF(kind string, buf []byte) *CodecError {
	return &CodecError{
		Kind:    UnexpectedEOF,
		Bytes:   buf,
		Message: fmt.Sprintf("cannot decode binary %s: short buffer", kind),
	}
}

// joinPath prepends segment to an already-resolved path, the way a
// record field, array item, map value, or union branch prepends its
// own name to whatever path a nested error already carries. A segment
// that reads like an index or collection marker ("[]", "{}") attaches
// without a separating dot.
func joinPath(segment, rest string) string {
	if segment == "" {
		return rest
	}
	if rest == "" {
		return segment
	}
	if rest[0] == '[' || rest[0] == '{' {
		return segment + rest
	}
	return segment + "." + rest
}

// withPath annotates a *SchemaError or *CodecError returned by a nested
// build or encode/decode call with segment, the name of the field,
// item, value, or branch that nested call was reached through. Errors
// are built once per failure and never shared, so mutating Path in
// place as the error unwinds through each enclosing frame is safe; the
// result is a full schema path assembled bottom-up without having to
// thread a path parameter through every call.
func withPath(err error, segment string) error {
	switch e := err.(type) {
	case *SchemaError:
		e.Path = joinPath(segment, e.Path)
	case *CodecError:
		e.Path = joinPath(segment, e.Path)
	}
	return err
}
