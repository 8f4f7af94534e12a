// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

// buildMap builds a map Codec whose values follow valueCodec; keys are
// always Avro strings.
func buildMap(valueCodec *Codec) *Codec {
	c := &Codec{kind: Map, itemCodec: valueCodec}
	c.binaryFromNative = mapBinaryFromNative(valueCodec)
	c.nativeFromBinary = mapNativeFromBinary(valueCodec)
	return c
}

func mapBinaryFromNative(valueCodec *Codec) binaryEncodeFunc {
	return func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		m, err := asStringMap(datum)
		if err != nil {
			return nil, err
		}
		if len(m) == 0 {
			return longBinaryFromNativeValue(buf, 0), nil
		}
		var block []byte
		for k, v := range m {
			block, err = stringCodecSingleton.binaryFromNative(block, k, opts)
			if err != nil {
				return nil, withPath(err, "{}")
			}
			block, err = valueCodec.binaryFromNative(block, v, opts)
			if err != nil {
				return nil, withPath(err, "{}")
			}
		}
		buf = appendBlockHeader(buf, len(m), block, opts.blockByteSize)
		return longBinaryFromNativeValue(buf, 0), nil
	}
}

// mapNativeFromBinary decodes a map, applying last-value-wins when the
// same key reappears across separate blocks (an Open Question spec.md
// leaves to the implementation).
func mapNativeFromBinary(valueCodec *Codec) binaryDecodeFunc {
	return func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		m := make(map[string]interface{})
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
				var key interface{}
				key, buf, err = stringCodecSingleton.nativeFromBinary(buf, opts)
				if err != nil {
					return nil, nil, withPath(err, "{}")
				}
				var value interface{}
				value, buf, err = valueCodec.nativeFromBinary(buf, opts)
				if err != nil {
					return nil, nil, withPath(err, "{}")
				}
				m[key.(string)] = value
			}
		}
		return m, buf, nil
	}
}

var stringCodecSingleton = newStringCodec()

func asStringMap(datum interface{}) (map[string]interface{}, error) {
	if datum == nil {
		return nil, nil
	}
	switch m := datum.(type) {
	case map[string]interface{}:
		return m, nil
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	default:
		return nil, newEncodeMismatch("map", datum)
	}
}
