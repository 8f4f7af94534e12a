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

const sampleUUID = "b717a1cb-2e0e-42c5-9888-7a6b5d3f5a2e"

func TestUUIDStringUnderlying(t *testing.T) {
	schema := `{"type":"string","logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	buf, err := c.BinaryFromNative(nil, sampleUUID)
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
	if value != sampleUUID {
		t.Errorf("GOT: %v; WANT: %v", value, sampleUUID)
	}
}

func TestUUIDFixedUnderlying(t *testing.T) {
	// Default decode format for a fixed-backed uuid is raw bytes.
	schema := `{"type":"fixed","name":"UUID","size":16,"logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	buf, err := c.BinaryFromNative(nil, sampleUUID)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 16 {
		t.Fatalf("GOT: %d bytes; WANT: 16", len(buf))
	}
	value, _, err := c.NativeFromBinary(buf)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := value.([]byte)
	if !ok || len(got) != 16 {
		t.Fatalf("GOT: %#v; WANT: 16 raw bytes", value)
	}

	stringValue, _, err := c.NativeFromBinary(buf, WithUUIDFormat(UUIDString))
	if err != nil {
		t.Fatal(err)
	}
	if stringValue != sampleUUID {
		t.Errorf("GOT: %v; WANT: %v", stringValue, sampleUUID)
	}
}

func TestUUIDFixedAcceptsRawBytesDatum(t *testing.T) {
	schema := `{"type":"fixed","name":"UUID","size":16,"logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	raw := []byte{0xb7, 0x17, 0xa1, 0xcb, 0x2e, 0x0e, 0x42, 0xc5, 0x98, 0x88, 0x7a, 0x6b, 0x5d, 0x3f, 0x5a, 0x2e}
	buf, err := c.BinaryFromNative(nil, raw)
	if err != nil {
		t.Fatal(err)
	}
	value, _, err := c.NativeFromBinary(buf, WithUUIDFormat(UUIDString))
	if err != nil {
		t.Fatal(err)
	}
	if value != sampleUUID {
		t.Errorf("GOT: %v; WANT: %v", value, sampleUUID)
	}
}

func TestUUIDDecodeStringBackedIgnoresFormatOption(t *testing.T) {
	// uuid_format only selects the representation for a fixed-backed
	// uuid; a string-backed uuid always decodes to the canonical string.
	schema := `{"type":"string","logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	buf, err := c.BinaryFromNative(nil, sampleUUID)
	if err != nil {
		t.Fatal(err)
	}
	value, _, err := c.NativeFromBinary(buf, WithUUIDFormat(UUIDBytes))
	if err != nil {
		t.Fatal(err)
	}
	if value != sampleUUID {
		t.Errorf("GOT: %v; WANT: %v", value, sampleUUID)
	}
}

func TestUUIDEncodeWithUUIDBytesFormat(t *testing.T) {
	schema := `{"type":"fixed","name":"UUID","size":16,"logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	raw := []byte{0xb7, 0x17, 0xa1, 0xcb, 0x2e, 0x0e, 0x42, 0xc5, 0x98, 0x88, 0x7a, 0x6b, 0x5d, 0x3f, 0x5a, 0x2e}
	buf, err := c.BinaryFromNative(nil, raw, WithUUIDFormatEncode(UUIDBytes))
	if err != nil {
		t.Fatal(err)
	}
	value, _, err := c.NativeFromBinary(buf, WithUUIDFormat(UUIDBytes))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := value.([]byte)
	if !ok {
		t.Fatalf("GOT: %T", value)
	}
	for i := range raw {
		if got[i] != raw[i] {
			t.Fatalf("GOT: %x; WANT: %x", got, raw)
		}
	}
}

func TestIsCanonicalUUID(t *testing.T) {
	if !isCanonicalUUID(sampleUUID) {
		t.Errorf("expected %q to be canonical", sampleUUID)
	}
	cases := []string{
		"",
		"not-a-uuid",
		"b717a1cb2e0e42c598887a6b5d3f5a2e",
		"zzzzzzzz-2e0e-42c5-9888-7a6b5d3f5a2e",
		"b717a1cb-2e0e-42c5-9888-7a6b5d3f5a2eX",
	}
	for _, s := range cases {
		if isCanonicalUUID(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestUUIDMalformedStringRejectedOnEncode(t *testing.T) {
	schema := `{"type":"string","logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	_, err := c.BinaryFromNative(nil, "not-a-uuid")
	ensureError(t, err, "not a canonical uuid string")
}

func TestUUIDMalformedStringRejectedOnDecode(t *testing.T) {
	schema := `{"type":"string","logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	stringCodec, err := NewCodec(`"string"`)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := stringCodec.BinaryFromNative(nil, "not-a-uuid")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = c.NativeFromBinary(buf)
	ensureError(t, err, "not a canonical uuid string")
}

func TestUUIDFixedWrongSizeRejected(t *testing.T) {
	schema := `{"type":"fixed","name":"UUID","size":8,"logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	_, err := c.BinaryFromNative(nil, sampleUUID)
	ensureError(t, err, "uuid fixed size must be")
}

// TestUUIDFixedCanonicalStringScenario mirrors spec.md's concrete
// fixed-uuid scenario: known wire bytes decoded with
// WithUUIDFormat(UUIDString) yield the exact canonical string.
func TestUUIDFixedCanonicalStringScenario(t *testing.T) {
	schema := `{"type":"fixed","size":16,"name":"fixed_uuid","logicalType":"uuid"}`
	c := testSchemaValid(t, schema)
	buf := []byte{
		0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4,
		0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00,
	}
	value, remainder, err := c.NativeFromBinary(buf, WithUUIDFormat(UUIDString))
	if err != nil {
		t.Fatal(err)
	}
	if len(remainder) != 0 {
		t.Errorf("expected no remainder, got %#v", remainder)
	}
	want := "550e8400-e29b-41d4-a716-446655440000"
	if value != want {
		t.Errorf("GOT: %v; WANT: %v", value, want)
	}
}
