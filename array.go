// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "reflect"

// buildArray builds an array Codec whose items follow itemCodec.
func buildArray(itemCodec *Codec) *Codec {
	c := &Codec{kind: Array, itemCodec: itemCodec}
	c.binaryFromNative = arrayBinaryFromNative(itemCodec)
	c.nativeFromBinary = arrayNativeFromBinary(itemCodec)
	return c
}

func arrayBinaryFromNative(itemCodec *Codec) binaryEncodeFunc {
	return func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		items, err := asSlice(datum)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return longBinaryFromNativeValue(buf, 0), nil
		}
		var block []byte
		for _, item := range items {
			block, err = itemCodec.binaryFromNative(block, item, opts)
			if err != nil {
				return nil, withPath(err, "[]")
			}
		}
		buf = appendBlockHeader(buf, len(items), block, opts.blockByteSize)
		return longBinaryFromNativeValue(buf, 0), nil
	}
}

func arrayNativeFromBinary(itemCodec *Codec) binaryDecodeFunc {
	return func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		items := []interface{}{}
		for {
			count, blockByteSize, hasByteSize, remainder, err := readBlockCount(buf)
			if err != nil {
				return nil, nil, err
			}
			buf = remainder
			if count == 0 {
				break
			}
			_ = blockByteSize
			_ = hasByteSize
			for i := int64(0); i < count; i++ {
				var item interface{}
				item, buf, err = itemCodec.nativeFromBinary(buf, opts)
				if err != nil {
					return nil, nil, withPath(err, "[]")
				}
				items = append(items, item)
			}
		}
		return items, buf, nil
	}
}

// asSlice coerces datum to a []interface{}, accepting any Go slice
// kind via reflection so callers can pass e.g. []string directly.
func asSlice(datum interface{}) ([]interface{}, error) {
	if datum == nil {
		return nil, nil
	}
	if items, ok := datum.([]interface{}); ok {
		return items, nil
	}
	rv := reflect.ValueOf(datum)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newEncodeMismatch("array", datum)
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}
