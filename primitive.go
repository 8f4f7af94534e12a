// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import (
	"math"
	"reflect"
	"unicode/utf8"
)

// int64FromDatum coerces datum to an int64, accepting any Go integer
// kind (and a pointer to one, mirroring the teacher's own
// pointer-passthrough behavior for union-wrapped values) without
// losing precision.
func int64FromDatum(datum interface{}) (int64, bool) {
	datum = derefIfPointer(datum)
	switch v := datum.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		if float32(int64(v)) != v {
			return 0, false
		}
		return int64(v), true
	case float64:
		if float64(int64(v)) != v {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// float64FromDatum coerces datum to a float64, accepting any Go
// numeric kind.
func float64FromDatum(datum interface{}) (float64, bool) {
	datum = derefIfPointer(datum)
	switch v := datum.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// derefIfPointer dereferences a single level of pointer indirection,
// the way a caller might pass &someInt for a nullable union branch.
func derefIfPointer(datum interface{}) interface{} {
	rv := reflect.ValueOf(datum)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return datum
}

func newNullCodec() *Codec {
	return &Codec{
		kind: Null,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			if datum != nil {
				return nil, newEncodeMismatch("null", datum)
			}
			return buf, nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			return nil, buf, nil
		},
	}
}

func newBooleanCodec() *Codec {
	return &Codec{
		kind: Boolean,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			b, ok := datum.(bool)
			if !ok {
				return nil, newEncodeMismatch("boolean", datum)
			}
			if b {
				return append(buf, 1), nil
			}
			return append(buf, 0), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			if len(buf) < 1 {
				return nil, nil, unexpectedEOF("boolean", buf)
			}
			return buf[0] != 0, buf[1:], nil
		},
	}
}

func newIntCodec() *Codec {
	return &Codec{
		kind: Int,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			v, ok := int64FromDatum(datum)
			if !ok || v < math.MinInt32 || v > math.MaxInt32 {
				return nil, newEncodeMismatch("int", datum)
			}
			return longBinaryFromNativeValue(buf, v), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			v, remainder, err := longNativeFromBinaryValue(buf)
			if err != nil {
				return nil, nil, err
			}
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, nil, &CodecError{Kind: EncodingTypeMismatch, Message: "cannot decode binary int: value out of range"}
			}
			return int32(v), remainder, nil
		},
	}
}

func newLongCodec() *Codec {
	return &Codec{
		kind: Long,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			v, ok := int64FromDatum(datum)
			if !ok {
				return nil, newEncodeMismatch("long", datum)
			}
			return longBinaryFromNativeValue(buf, v), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			return longNativeFromBinaryValue(buf)
		},
	}
}

func newFloatCodec() *Codec {
	return &Codec{
		kind: Float,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			v, ok := float64FromDatum(datum)
			if !ok {
				return nil, newEncodeMismatch("float", datum)
			}
			bits := math.Float32bits(float32(v))
			return append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			if len(buf) < 4 {
				return nil, nil, unexpectedEOF("float", buf)
			}
			bits := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
			return math.Float32frombits(bits), buf[4:], nil
		},
	}
}

func newDoubleCodec() *Codec {
	return &Codec{
		kind: Double,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			v, ok := float64FromDatum(datum)
			if !ok {
				return nil, newEncodeMismatch("double", datum)
			}
			bits := math.Float64bits(v)
			return append(buf,
				byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
				byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56),
			), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			if len(buf) < 8 {
				return nil, nil, unexpectedEOF("double", buf)
			}
			bits := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
				uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
			return math.Float64frombits(bits), buf[8:], nil
		},
	}
}

func newBytesCodec() *Codec {
	return &Codec{
		kind: Bytes,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			b, ok := datum.([]byte)
			if !ok {
				return nil, newEncodeMismatch("bytes", datum)
			}
			buf = longBinaryFromNativeValue(buf, int64(len(b)))
			return append(buf, b...), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			size, remainder, err := longNativeFromBinaryValue(buf)
			if err != nil {
				return nil, nil, err
			}
			if size < 0 || int64(len(remainder)) < size {
				return nil, nil, unexpectedEOF("bytes", remainder)
			}
			return append([]byte{}, remainder[:size]...), remainder[size:], nil
		},
	}
}

func newStringCodec() *Codec {
	return &Codec{
		kind: String,
		binaryFromNative: func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
			s, ok := datum.(string)
			if !ok {
				return nil, newEncodeMismatch("string", datum)
			}
			buf = longBinaryFromNativeValue(buf, int64(len(s)))
			return append(buf, s...), nil
		},
		nativeFromBinary: func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
			size, remainder, err := longNativeFromBinaryValue(buf)
			if err != nil {
				return nil, nil, err
			}
			if size < 0 || int64(len(remainder)) < size {
				return nil, nil, unexpectedEOF("string", remainder)
			}
			raw := remainder[:size]
			if !utf8.Valid(raw) {
				return nil, nil, &CodecError{
					Kind:    InvalidString,
					Bytes:   append([]byte(nil), raw...),
					Message: "cannot decode binary string: not valid UTF-8",
				}
			}
			return string(raw), remainder[size:], nil
		},
	}
}

func newPrimitiveCodec(kind Kind) (*Codec, bool) {
	switch kind {
	case Null:
		return newNullCodec(), true
	case Boolean:
		return newBooleanCodec(), true
	case Int:
		return newIntCodec(), true
	case Long:
		return newLongCodec(), true
	case Float:
		return newFloatCodec(), true
	case Double:
		return newDoubleCodec(), true
	case Bytes:
		return newBytesCodec(), true
	case String:
		return newStringCodec(), true
	default:
		return nil, false
	}
}
