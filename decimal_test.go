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
	"math/big"
	"testing"

	"github.com/cockroachdb/apd"
)

func TestDecimalBytesRoundTripApproximate(t *testing.T) {
	schema := `{"type":"bytes","logicalType":"decimal","precision":4,"scale":2}`
	c := testSchemaValid(t, schema)
	dec := apd.NewWithBigInt(big.NewInt(12345), -2) // 123.45
	buf, err := c.BinaryFromNative(nil, dec)
	if err != nil {
		t.Fatal(err)
	}
	value, remainder, err := c.NativeFromBinary(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(remainder) != 0 {
		t.Errorf("expected no remainder, got %#v", remainder)
	}
	f, ok := value.(float64)
	if !ok {
		t.Fatalf("GOT: %T; WANT: float64", value)
	}
	if f < 123.44 || f > 123.46 {
		t.Errorf("GOT: %v; WANT: ~123.45", f)
	}
}

func TestDecimalExactModeRoundTrip(t *testing.T) {
	schema := `{"type":"bytes","logicalType":"decimal","precision":4,"scale":2}`
	c := testSchemaValid(t, schema)
	dec := apd.NewWithBigInt(big.NewInt(12345), -2)
	buf, err := c.BinaryFromNative(nil, dec, WithExactDecimalsEncode())
	if err != nil {
		t.Fatal(err)
	}
	value, _, err := c.NativeFromBinary(buf, WithExactDecimals())
	if err != nil {
		t.Fatal(err)
	}
	got, ok := value.(*apd.Decimal)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *apd.Decimal", value)
	}
	if got.String() != "123.45" {
		t.Errorf("GOT: %s; WANT: 123.45", got.String())
	}
}

func TestDecimalFixedUnderlying(t *testing.T) {
	schema := `{"type":"fixed","name":"dec","size":8,"logicalType":"decimal","precision":10,"scale":2}`
	c := testSchemaValid(t, schema)
	dec := apd.NewWithBigInt(big.NewInt(100), -2) // 1.00
	buf, err := c.BinaryFromNative(nil, dec, WithExactDecimalsEncode())
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 8 {
		t.Fatalf("GOT: %d bytes; WANT: 8", len(buf))
	}
	value, _, err := c.NativeFromBinary(buf, WithExactDecimals())
	if err != nil {
		t.Fatal(err)
	}
	got := value.(*apd.Decimal)
	if got.String() != "1.00" {
		t.Errorf("GOT: %s; WANT: 1.00", got.String())
	}
}

func TestDecimalNegativeValue(t *testing.T) {
	schema := `{"type":"bytes","logicalType":"decimal","precision":4,"scale":2}`
	c := testSchemaValid(t, schema)
	dec := apd.NewWithBigInt(big.NewInt(12345), -2)
	dec.Negative = true // -123.45
	buf, err := c.BinaryFromNative(nil, dec, WithExactDecimalsEncode())
	if err != nil {
		t.Fatal(err)
	}
	value, _, err := c.NativeFromBinary(buf, WithExactDecimals())
	if err != nil {
		t.Fatal(err)
	}
	got := value.(*apd.Decimal)
	if got.String() != "-123.45" {
		t.Errorf("GOT: %s; WANT: -123.45", got.String())
	}
}

func TestDecimalRescaleInexactFails(t *testing.T) {
	schema := `{"type":"bytes","logicalType":"decimal","precision":4,"scale":2}`
	c := testSchemaValid(t, schema)
	// 1.005 cannot be represented exactly at scale 2.
	dec := apd.NewWithBigInt(big.NewInt(1005), -3)
	_, err := c.BinaryFromNative(nil, dec)
	ensureError(t, err, "cannot be rescaled exactly")
}

func TestBigIntTwosComplementMinimalWidth(t *testing.T) {
	cases := []struct {
		v    int64
		want int
	}{
		{0, 1},
		{127, 1},
		{-128, 1},
		{128, 2},
		{-129, 2},
		{-256, 2},
	}
	for _, c := range cases {
		b := bigIntToTwosComplement(big.NewInt(c.v))
		if len(b) != c.want {
			t.Errorf("v=%d: GOT: %d bytes (%x); WANT: %d bytes", c.v, len(b), b, c.want)
		}
	}
}

func TestBigIntTwosComplementRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -128, 128, -129, 1 << 20, -(1 << 20)} {
		b := bigIntToTwosComplement(big.NewInt(v))
		got := twosComplementToBigInt(b)
		if got.Int64() != v {
			t.Errorf("v=%d: GOT: %s; bytes: %x", v, got.String(), b)
		}
	}
}
