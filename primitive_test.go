// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "testing"

func TestNull(t *testing.T) {
	testBinaryCodecPass(t, `"null"`, nil, nil)
	testBinaryEncodeFailBadDatumType(t, `"null"`, 3)
}

func TestBoolean(t *testing.T) {
	testBinaryCodecPass(t, `"boolean"`, true, []byte{1})
	testBinaryCodecPass(t, `"boolean"`, false, []byte{0})
	testBinaryDecodeFailShortBuffer(t, `"boolean"`, nil)
	testBinaryEncodeFailBadDatumType(t, `"boolean"`, 3)
}

func TestInt(t *testing.T) {
	testBinaryCodecPass(t, `"int"`, int32(-10), []byte{0x13})
	testBinaryCodecPass(t, `"int"`, int32(0), []byte{0})
	testBinaryEncodePass(t, `"int"`, 3, []byte{0x06})
	testBinaryEncodeFail(t, `"int"`, int64(1<<32), "received: ")
}

func TestLong(t *testing.T) {
	testBinaryCodecPass(t, `"long"`, int64(-10), []byte{0x13})
	testBinaryEncodeFailBadDatumType(t, `"long"`, "not a number")
}

func TestFloat(t *testing.T) {
	testBinaryCodecPass(t, `"float"`, float32(3.5), []byte{0x00, 0x00, 0x60, 0x40})
}

func TestDouble(t *testing.T) {
	testBinaryCodecPass(t, `"double"`, 3.5, []byte{0, 0, 0, 0, 0, 0, 0x0c, 0x40})
}

func TestBytes(t *testing.T) {
	testBinaryCodecPass(t, `"bytes"`, []byte("foo"), []byte("\x06foo"))
	testBinaryCodecPass(t, `"bytes"`, []byte(""), []byte("\x00"))
	testBinaryDecodeFailShortBuffer(t, `"bytes"`, []byte("\x06fo"))
}

func TestString(t *testing.T) {
	testBinaryCodecPass(t, `"string"`, "foo", []byte("\x06foo"))
	testBinaryCodecPass(t, `"string"`, "", []byte("\x00"))
}

func TestStringDecodeInvalidUTF8(t *testing.T) {
	// length 2, followed by 0xff 0xfe, bytes that never occur in UTF-8.
	testBinaryDecodeFail(t, `"string"`, []byte{0x04, 0xff, 0xfe}, "not valid UTF-8")
}

func TestIntDecodeOutOfRange(t *testing.T) {
	// long-encoded value 1<<32 does not fit an int32.
	longCodec, err := NewCodec(`"long"`)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := longCodec.BinaryFromNative(nil, int64(1)<<32)
	if err != nil {
		t.Fatal(err)
	}
	intCodec, err := NewCodec(`"int"`)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = intCodec.NativeFromBinary(buf)
	ensureError(t, err, "value out of range")
}
