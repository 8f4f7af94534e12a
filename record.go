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

// buildRecord builds a record Codec over fields, in declaration order.
// The fields slice's Codec pointers must already be fully built
// (possibly via forward reference through a *Context) by the time this
// record's closures run.
func buildRecord(typeName *name, aliases []string, doc string, fields []*Field) *Codec {
	c := &Codec{kind: Record, typeName: typeName}
	populateRecord(c, aliases, doc, fields)
	return c
}

// populateRecord fills in a record Codec's fields and binary closures
// in place. Parsing registers a record's *Codec under its fullname
// before its fields are built, so that a field may refer back to the
// record itself (or to a sibling record that refers back to this one);
// populateRecord is what turns that stub into a finished codec once
// its fields are ready, preserving the pointer identity every forward
// reference already captured.
func populateRecord(c *Codec, aliases []string, doc string, fields []*Field) {
	c.aliases = aliases
	c.doc = doc
	c.fields = fields
	c.binaryFromNative = recordBinaryFromNative(fields)
	c.nativeFromBinary = recordNativeFromBinary(fields)
}

func recordBinaryFromNative(fields []*Field) binaryEncodeFunc {
	return func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		rec, err := asRecordMap(datum)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			value, ok := rec[f.Name]
			if !ok {
				if f.hasDefault {
					value = f.Default()
				} else {
					return nil, &CodecError{
						Kind:    EncodingTypeMismatch,
						Path:    f.Name,
						Message: fmt.Sprintf("cannot encode binary record: field %q missing a value and no default", f.Name),
					}
				}
			}
			buf, err = f.Codec.binaryFromNative(buf, value, opts)
			if err != nil {
				return nil, withPath(err, f.Name)
			}
		}
		return buf, nil
	}
}

func recordNativeFromBinary(fields []*Field) binaryDecodeFunc {
	return func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		rec := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			var value interface{}
			var err error
			value, buf, err = f.Codec.nativeFromBinary(buf, opts)
			if err != nil {
				return nil, nil, withPath(err, f.Name)
			}
			rec[f.Name] = value
		}
		return rec, buf, nil
	}
}

// asRecordMap coerces datum to the map[string]interface{} shape record
// encoding expects.
func asRecordMap(datum interface{}) (map[string]interface{}, error) {
	switch rec := datum.(type) {
	case map[string]interface{}:
		return rec, nil
	default:
		return nil, newEncodeMismatch("record", datum)
	}
}

// validateDefaultShape checks that a default value decoded from
// schema JSON is at least superficially compatible with fieldCodec's
// Kind, catching obviously wrong defaults (e.g. a string default for
// an int field) at parse time rather than at first encode.
func validateDefaultShape(fieldCodec *Codec, defaultVal interface{}) error {
	if defaultVal == nil {
		if fieldCodec.kind == Null {
			return nil
		}
		if fieldCodec.kind == Union && len(fieldCodec.branches) > 0 && fieldCodec.branches[0].kind == Null {
			return nil
		}
		return &SchemaError{Kind: InvalidDefault, Message: "default value null is incompatible with field type"}
	}
	switch fieldCodec.kind {
	case Record, Map:
		if _, ok := defaultVal.(map[string]interface{}); !ok {
			return &SchemaError{Kind: InvalidDefault, Message: "default value must be a JSON object"}
		}
	case Array:
		if _, ok := defaultVal.([]interface{}); !ok {
			return &SchemaError{Kind: InvalidDefault, Message: "default value must be a JSON array"}
		}
	case String, Bytes, Enum:
		if _, ok := defaultVal.(string); !ok {
			return &SchemaError{Kind: InvalidDefault, Message: "default value must be a JSON string"}
		}
	case Boolean:
		if _, ok := defaultVal.(bool); !ok {
			return &SchemaError{Kind: InvalidDefault, Message: "default value must be a JSON boolean"}
		}
	case Int, Long, Float, Double:
		if _, ok := defaultVal.(float64); !ok {
			return &SchemaError{Kind: InvalidDefault, Message: "default value must be a JSON number"}
		}
	case Union:
		if len(fieldCodec.branches) == 0 {
			return nil
		}
		return validateDefaultShape(fieldCodec.branches[0], defaultVal)
	}
	return nil
}
