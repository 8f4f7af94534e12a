// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

// buildEnum builds an enum Codec: symbols are encoded as their
// zero-based index into symbols, exactly like an int.
func buildEnum(typeName *name, aliases []string, doc string, symbols []string) *Codec {
	c := &Codec{kind: Enum, typeName: typeName, aliases: aliases, doc: doc, symbols: symbols}
	index := make(map[string]int, len(symbols))
	for i, s := range symbols {
		index[s] = i
	}
	c.binaryFromNative = func(buf []byte, datum interface{}, _ encodeOptions) ([]byte, error) {
		s, ok := datum.(string)
		if !ok {
			return nil, newEncodeMismatch("enum", datum)
		}
		i, ok := index[s]
		if !ok {
			return nil, &CodecError{
				Kind:    EnumSymbolNotFound,
				Value:   s,
				Message: "symbol not found in enum",
			}
		}
		return longBinaryFromNativeValue(buf, int64(i)), nil
	}
	c.nativeFromBinary = func(buf []byte, _ decodeOptions) (interface{}, []byte, error) {
		i, remainder, err := longNativeFromBinaryValue(buf)
		if err != nil {
			return nil, nil, err
		}
		if i < 0 || int(i) >= len(symbols) {
			return nil, nil, &CodecError{
				Kind:    EnumSymbolNotFound,
				Value:   i,
				Message: "symbol index out of range",
			}
		}
		return symbols[i], remainder, nil
	}
	return c
}
