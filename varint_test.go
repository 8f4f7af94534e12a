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
	"bytes"
	"testing"
)

func TestZigzag(t *testing.T) {
	cases := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{-10, 19},
	}
	for _, c := range cases {
		if got := zigzagEncode(c.signed); got != c.unsigned {
			t.Errorf("zigzagEncode(%d): GOT: %d; WANT: %d", c.signed, got, c.unsigned)
		}
		if got := zigzagDecode(c.unsigned); got != c.signed {
			t.Errorf("zigzagDecode(%d): GOT: %d; WANT: %d", c.unsigned, got, c.signed)
		}
	}
}

func TestLongBinaryFromNativeValue(t *testing.T) {
	// -10 zig-zags to 19, which varint-encodes as a single byte 0x13.
	got := longBinaryFromNativeValue(nil, -10)
	want := []byte{0x13}
	if !bytes.Equal(got, want) {
		t.Errorf("GOT: %#v; WANT: %#v", got, want)
	}
}

func TestLongNativeFromBinaryValueRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 64, -64, 1 << 20, -(1 << 20)} {
		buf := longBinaryFromNativeValue(nil, v)
		got, remainder, err := longNativeFromBinaryValue(buf)
		if err != nil {
			t.Fatal(err)
		}
		if len(remainder) != 0 {
			t.Errorf("expected no remainder, got %#v", remainder)
		}
		if got != v {
			t.Errorf("GOT: %d; WANT: %d", got, v)
		}
	}
}

func TestReadVarintShortBuffer(t *testing.T) {
	_, _, err := readVarint([]byte{0x80})
	ensureError(t, err, "short buffer")
}

func TestReadVarintOverflow(t *testing.T) {
	overflow := bytes.Repeat([]byte{0xff}, 10)
	_, _, err := readVarint(overflow)
	ensureError(t, err, "overflows 64 bits")
}
