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

func TestJoinPath(t *testing.T) {
	cases := []struct{ segment, rest, want string }{
		{"", "a.b", "a.b"},
		{"a", "", "a"},
		{"a", "b", "a.b"},
		{"a", "[]", "a[]"},
		{"a", "{}", "a{}"},
	}
	for _, c := range cases {
		if got := joinPath(c.segment, c.rest); got != c.want {
			t.Errorf("joinPath(%q, %q): GOT: %q; WANT: %q", c.segment, c.rest, got, c.want)
		}
	}
}

func codecErrorPath(t *testing.T, err error) string {
	t.Helper()
	ce, ok := err.(*CodecError)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *CodecError", err)
	}
	return ce.Path
}

func TestErrorPathRecordField(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[{"name":"a","type":"int"}]}`
	c := testSchemaValid(t, schema)
	_, err := c.BinaryFromNative(nil, map[string]interface{}{"a": "not an int"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := codecErrorPath(t, err), "a"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func TestErrorPathNestedRecordField(t *testing.T) {
	schema := `{"type":"record","name":"Outer","fields":[
		{"name":"inner","type":{"type":"record","name":"Inner","fields":[{"name":"a","type":"int"}]}}
	]}`
	c := testSchemaValid(t, schema)
	datum := map[string]interface{}{"inner": map[string]interface{}{"a": "nope"}}
	_, err := c.BinaryFromNative(nil, datum)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := codecErrorPath(t, err), "inner.a"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func TestErrorPathArrayItem(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[{"name":"items","type":{"type":"array","items":"int"}}]}`
	c := testSchemaValid(t, schema)
	datum := map[string]interface{}{"items": []interface{}{int32(1), "not an int"}}
	_, err := c.BinaryFromNative(nil, datum)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := codecErrorPath(t, err), "items[]"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func TestErrorPathMapValue(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[{"name":"m","type":{"type":"map","values":"int"}}]}`
	c := testSchemaValid(t, schema)
	datum := map[string]interface{}{"m": map[string]interface{}{"k": "not an int"}}
	_, err := c.BinaryFromNative(nil, datum)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := codecErrorPath(t, err), "m{}"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func TestErrorPathUnionBranch(t *testing.T) {
	schema := `{"type":"record","name":"R","fields":[
		{"name":"u","type":["null",{"type":"record","name":"Sub","fields":[{"name":"a","type":"int"}]}]}
	]}`
	c := testSchemaValid(t, schema)
	datum := map[string]interface{}{"u": map[string]interface{}{"a": "not an int"}}
	_, err := c.BinaryFromNative(nil, datum)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := codecErrorPath(t, err), "u.Sub.a"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func schemaErrorPath(t *testing.T, err error) string {
	t.Helper()
	se, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *SchemaError", err)
	}
	return se.Path
}

func TestErrorPathSchemaFieldType(t *testing.T) {
	_, err := NewCodec(`{"type":"record","name":"R","fields":[{"name":"a","type":"bogus"}]}`)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := schemaErrorPath(t, err), "a"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}

func TestErrorPathSchemaArrayItems(t *testing.T) {
	_, err := NewCodec(`{"type":"record","name":"R","fields":[{"name":"xs","type":{"type":"array","items":"bogus"}}]}`)
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := schemaErrorPath(t, err), "xs.items"; got != want {
		t.Errorf("GOT: %q; WANT: %q", got, want)
	}
}
