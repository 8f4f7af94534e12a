// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package goavro implements the Apache Avro binary data serialization
// format: a schema-driven codec that converts native Go values into
// compact byte sequences and back, given an out-of-band schema known to
// both sides.
//
// Three pieces make up the package: a schema parser and type context
// (Parse, Context), a binary encoder (Codec.BinaryFromNative / Codec.Encode)
// and a binary decoder (Codec.NativeFromBinary / Codec.Decode). All three
// share the same *Codec graph, the zig-zag variable-length integer codec,
// block framing for arrays and maps, union branch selection, and the
// date/time/decimal/uuid logical-type conversions.
//
// The Object Container File framing (sync markers, block compression),
// the JSON-encoding variant of Avro, and schema resolution between
// distinct writer/reader schemas are out of scope: callers are expected
// to already hold a byte buffer (or a value to encode) and a schema
// parsed by this package.
package goavro
