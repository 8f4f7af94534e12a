// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "encoding/json"

// Parse compiles a JSON schema document into a *Codec, returning the
// *Context it was parsed into so callers can resolve named sub-types
// by fullname afterward. Schema parsing happens in two passes:
// hoistNamedTypes registers every record/enum/fixed definition in the
// document before buildCodec resolves any reference, so a field may
// refer to a type defined anywhere else in the same document,
// including forward and mutually-recursive references.
func Parse(schema string, opts ...ParseOption) (*Context, *Codec, error) {
	options := newParseOptions(opts)

	var parsed interface{}
	if err := json.Unmarshal([]byte(schema), &parsed); err != nil {
		return nil, nil, &SchemaError{Kind: InvalidName, Message: "cannot parse schema JSON: " + err.Error()}
	}

	ctx := newContext()
	if err := hoistNamedTypes(ctx, nullNamespace, parsed, options); err != nil {
		return nil, nil, err
	}
	codec, err := buildCodec(ctx, nullNamespace, parsed, options)
	if err != nil {
		return nil, nil, err
	}
	codec.schemaOriginal = schema
	return ctx, codec, nil
}

// NewCodec compiles a JSON schema document into a *Codec, discarding
// the *Context. Most callers that only need to encode/decode values
// of a single top-level schema use this instead of Parse.
func NewCodec(schema string, opts ...ParseOption) (*Codec, error) {
	_, codec, err := Parse(schema, opts...)
	return codec, err
}
