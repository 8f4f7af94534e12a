// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "fmt"

// buildFixed builds a fixed Codec of the declared byte size.
func buildFixed(typeName *name, aliases []string, doc string, size int) *Codec {
	c := &Codec{kind: Fixed, typeName: typeName, aliases: aliases, doc: doc, size: size}
	c.binaryFromNative = func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
		b, ok := datum.([]byte)
		if !ok {
			return nil, newEncodeMismatch("fixed", datum)
		}
		if len(b) != size {
			return nil, &CodecError{
				Kind:    FixedSizeMismatch,
				Value:   len(b),
				Message: fmt.Sprintf("cannot encode binary fixed: expected %d bytes, received %d", size, len(b)),
			}
		}
		return append(buf, b...), nil
	}
	c.nativeFromBinary = func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
		if len(buf) < size {
			return nil, nil, unexpectedEOF("fixed", buf)
		}
		return append([]byte(nil), buf[:size]...), buf[size:], nil
	}
	return c
}
