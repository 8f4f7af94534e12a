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
	"encoding/hex"
	"fmt"
)

// attachUUIDCodec wires the uuid logical type's binary closures onto
// c. A string-backed uuid's native representation is always the
// canonical 36-character hyphenated string. A fixed-backed uuid's
// native representation is chosen by opts.uuidFormat, defaulting to
// raw 16 bytes, per spec.
func attachUUIDCodec(c, underlying *Codec) {
	if underlying.kind == Fixed {
		c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
			b, err := uuidToBytes(datum)
			if err != nil {
				return nil, err
			}
			if len(b) != underlying.size {
				return nil, &CodecError{Kind: InvalidBinaryUUID, Message: fmt.Sprintf("uuid fixed size must be %d, schema declares %d", len(b), underlying.size)}
			}
			return underlying.binaryFromNative(buf, b, opts)
		}
		c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
			v, remainder, err := underlying.nativeFromBinary(buf, opts)
			if err != nil {
				return nil, nil, err
			}
			raw := v.([]byte)
			if opts.uuidFormat == UUIDBytes {
				return raw, remainder, nil
			}
			s, err := uuidBytesToString(raw)
			if err != nil {
				return nil, nil, err
			}
			return s, remainder, nil
		}
		return
	}

	c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		s, err := uuidDatumToString(datum)
		if err != nil {
			return nil, err
		}
		return underlying.binaryFromNative(buf, s, opts)
	}
	c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		v, remainder, err := underlying.nativeFromBinary(buf, opts)
		if err != nil {
			return nil, nil, err
		}
		s := v.(string)
		if !isCanonicalUUID(s) {
			return nil, nil, &CodecError{Kind: InvalidBinaryUUID, Value: s, Message: "not a canonical uuid string"}
		}
		return s, remainder, nil
	}
}

// uuidDatumToString coerces a uuid datum (canonical string or raw
// 16-byte slice) into its canonical string wire form.
func uuidDatumToString(datum interface{}) (string, error) {
	switch v := datum.(type) {
	case string:
		if !isCanonicalUUID(v) {
			return "", &CodecError{Kind: InvalidBinaryUUID, Value: v, Message: "not a canonical uuid string"}
		}
		return v, nil
	case []byte:
		return uuidBytesToString(v)
	default:
		return "", newEncodeMismatch("uuid", datum)
	}
}

// isCanonicalUUID reports whether s has the canonical
// 8-4-4-4-12 hyphenated uuid shape.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHexDigit(byte(c)) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// uuidToBytes coerces datum (a canonical uuid string or a raw 16-byte
// slice) into its 16-byte form.
func uuidToBytes(datum interface{}) ([]byte, error) {
	switch v := datum.(type) {
	case string:
		return uuidStringToBytes(v)
	case []byte:
		if len(v) != 16 {
			return nil, &CodecError{Kind: InvalidBinaryUUID, Message: "uuid byte slice must be 16 bytes"}
		}
		return v, nil
	default:
		return nil, newEncodeMismatch("uuid", datum)
	}
}

// uuidStringToBytes parses a canonical uuid string into its 16-byte
// form.
func uuidStringToBytes(s string) ([]byte, error) {
	if !isCanonicalUUID(s) {
		return nil, &CodecError{Kind: InvalidBinaryUUID, Value: s, Message: "not a canonical uuid string"}
	}
	hexDigits := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36]
	b, err := hex.DecodeString(hexDigits)
	if err != nil {
		return nil, &CodecError{Kind: InvalidBinaryUUID, Value: s, Message: "malformed uuid hex digits"}
	}
	return b, nil
}

// uuidBytesToString renders a 16-byte uuid into its canonical
// hyphenated string form.
func uuidBytesToString(b []byte) (string, error) {
	if len(b) != 16 {
		return "", &CodecError{Kind: InvalidBinaryUUID, Message: "uuid requires exactly 16 bytes"}
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16]), nil
}
