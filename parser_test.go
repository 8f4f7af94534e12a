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

func TestParseInvalidJSON(t *testing.T) {
	_, _, err := Parse(`not json`)
	ensureError(t, err, "cannot parse schema JSON")
}

func TestParseReturnsContextAndCodec(t *testing.T) {
	schema := `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`
	ctx, codec, err := Parse(schema)
	if err != nil {
		t.Fatal(err)
	}
	if codec.Kind() != Record {
		t.Errorf("GOT: %s; WANT: record", codec.Kind())
	}
	if _, ok := ctx.Lookup("Widget"); !ok {
		t.Error("expected ctx to contain Widget")
	}
	names := ctx.Names()
	if len(names) != 1 || names[0] != "Widget" {
		t.Errorf("GOT: %#v; WANT: [Widget]", names)
	}
}

func TestNewCodecDiscardsContext(t *testing.T) {
	codec, err := NewCodec(`"string"`)
	if err != nil {
		t.Fatal(err)
	}
	if codec.Kind() != String {
		t.Errorf("GOT: %s; WANT: string", codec.Kind())
	}
}

func TestParseForwardSiblingReference(t *testing.T) {
	schema := `{
		"type": "record",
		"name": "Outer",
		"fields": [
			{"name": "inner", "type": "Inner"},
			{"name": "other", "type": {
				"type": "record",
				"name": "Inner",
				"fields": [{"name": "value", "type": "int"}]
			}}
		]
	}`
	_, codec, err := Parse(schema)
	if err != nil {
		t.Fatal(err)
	}
	if codec.Kind() != Record {
		t.Errorf("GOT: %s; WANT: record", codec.Kind())
	}
}

func TestStrictRejectsUnrecognizedKey(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[{"name":"a","type":"int"}],"bogus":true}`
	_, err := NewCodec(schema, Strict())
	ensureError(t, err, `unrecognized key "bogus"`)
}

func TestLenientAllowsUnrecognizedKey(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[{"name":"a","type":"int"}],"bogus":true}`
	if _, err := NewCodec(schema); err != nil {
		t.Fatal(err)
	}
}

func TestParseMissingTypeKey(t *testing.T) {
	testSchemaInvalid(t, `{"name":"R"}`, `requires a "type" key`)
}

func TestParseUnknownTypeReference(t *testing.T) {
	testSchemaInvalid(t, `"NoSuchType"`, "unknown type reference")
}

func TestDecodeAllowsTrailingBytesByDefault(t *testing.T) {
	codec, err := NewCodec(`"int"`)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := codec.Encode(int32(1))
	if err != nil {
		t.Fatal(err)
	}
	buf = append(buf, 0xff, 0xff)
	if _, err := codec.Decode(buf); err != nil {
		t.Fatalf("expected trailing bytes to be allowed by default, got %v", err)
	}
}

func TestDecodeRejectsTrailingBytesWhenConfigured(t *testing.T) {
	codec, err := NewCodec(`"int"`)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := codec.Encode(int32(1))
	if err != nil {
		t.Fatal(err)
	}
	buf = append(buf, 0xff, 0xff)
	_, err = codec.Decode(buf, WithTrailingBytesError())
	ensureError(t, err, "trailing bytes")
}
