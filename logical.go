// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import "time"

// logicalKind identifies which logical type annotation attaches to a
// schema node.
type logicalKind int

const (
	logicalNone logicalKind = iota
	logicalDate
	logicalTimeMillis
	logicalTimeMicros
	logicalTimestampMillis
	logicalTimestampMicros
	logicalTimestampNanos
	logicalDecimal
	logicalUUID
)

// logicalType holds a logical type's kind plus decimal's precision
// and scale, when relevant.
type logicalType struct {
	kind      logicalKind
	precision int
	scale     int
}

// parseLogicalType inspects a schema object's "logicalType" key (and,
// for decimal, "precision"/"scale") against the underlying Codec's
// Kind, returning (nil, nil) when there is no "logicalType" key. In
// lenient mode an unrecognized logicalType value, or one that is
// incompatible with the underlying type or fails its own validation,
// is treated the same as "none declared" (drop to the underlying
// primitive), per spec.md §4.1 step 4; in strict mode it is an error.
// A non-string logicalType is an error in both modes.
func parseLogicalType(obj map[string]interface{}, underlying Kind, strict bool) (*logicalType, error) {
	raw, ok := obj["logicalType"]
	if !ok {
		return nil, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, &SchemaError{Kind: InvalidLogicalType, Message: "logicalType must be a string"}
	}

	switch name {
	case "date":
		if underlying != Int {
			return invalidLogical(strict, name, "date requires underlying type int")
		}
		return &logicalType{kind: logicalDate}, nil
	case "time-millis":
		if underlying != Int {
			return invalidLogical(strict, name, "time-millis requires underlying type int")
		}
		return &logicalType{kind: logicalTimeMillis}, nil
	case "time-micros":
		if underlying != Long {
			return invalidLogical(strict, name, "time-micros requires underlying type long")
		}
		return &logicalType{kind: logicalTimeMicros}, nil
	case "timestamp-millis":
		if underlying != Long {
			return invalidLogical(strict, name, "timestamp-millis requires underlying type long")
		}
		return &logicalType{kind: logicalTimestampMillis}, nil
	case "timestamp-micros":
		if underlying != Long {
			return invalidLogical(strict, name, "timestamp-micros requires underlying type long")
		}
		return &logicalType{kind: logicalTimestampMicros}, nil
	case "timestamp-nanos":
		if underlying != Long {
			return invalidLogical(strict, name, "timestamp-nanos requires underlying type long")
		}
		return &logicalType{kind: logicalTimestampNanos}, nil
	case "uuid":
		if underlying != String && underlying != Fixed {
			return invalidLogical(strict, name, "uuid requires underlying type string or fixed")
		}
		return &logicalType{kind: logicalUUID}, nil
	case "decimal":
		if underlying != Bytes && underlying != Fixed {
			return invalidLogical(strict, name, "decimal requires underlying type bytes or fixed")
		}
		precision, err := asPositiveInt(obj["precision"])
		if err != nil {
			return invalidLogical(strict, name, "decimal requires a positive integer precision")
		}
		scale := 0
		if rawScale, ok := obj["scale"]; ok {
			scale, err = asNonNegativeInt(rawScale)
			if err != nil {
				return invalidLogical(strict, name, "decimal scale must be a non-negative integer")
			}
		}
		if scale > precision {
			return invalidLogical(strict, name, "decimal scale may not exceed precision")
		}
		return &logicalType{kind: logicalDecimal, precision: precision, scale: scale}, nil
	default:
		return invalidLogical(strict, name, "unrecognized logicalType")
	}
}

func invalidLogical(strict bool, name, message string) (*logicalType, error) {
	if strict {
		return nil, &SchemaError{Kind: InvalidLogicalType, Value: name, Message: message}
	}
	return nil, nil
}

func asPositiveInt(v interface{}) (int, error) {
	n, err := asNonNegativeInt(v)
	if err != nil || n == 0 {
		return 0, &SchemaError{Kind: InvalidLogicalType, Message: "expected a positive integer"}
	}
	return n, nil
}

func asNonNegativeInt(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok || f < 0 || float64(int(f)) != f {
		return 0, &SchemaError{Kind: InvalidLogicalType, Message: "expected a non-negative integer"}
	}
	return int(f), nil
}

// wrapLogicalCodec wraps underlying's binary closures with conversions
// between the logical type's native Go representation (time.Time,
// time.Duration, *apd.Decimal, string/[]byte) and underlying's native
// representation (int32/int64/[]byte), per spec.md §4.2/§4.3.
func wrapLogicalCodec(underlying *Codec, lt *logicalType) *Codec {
	c := &Codec{
		kind:     underlying.kind,
		typeName: underlying.typeName,
		aliases:  underlying.aliases,
		doc:      underlying.doc,
		size:     underlying.size,
		logical:  lt,
	}

	switch lt.kind {
	case logicalDate:
		c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
			days, err := dateToDays(datum)
			if err != nil {
				return nil, err
			}
			return underlying.binaryFromNative(buf, days, opts)
		}
		c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
			v, remainder, err := underlying.nativeFromBinary(buf, opts)
			if err != nil {
				return nil, nil, err
			}
			return daysToDate(v.(int32)), remainder, nil
		}
	case logicalTimeMillis:
		c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
			millis, err := durationToUnits(datum, time.Millisecond)
			if err != nil {
				return nil, err
			}
			return underlying.binaryFromNative(buf, int32(millis), opts)
		}
		c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
			v, remainder, err := underlying.nativeFromBinary(buf, opts)
			if err != nil {
				return nil, nil, err
			}
			return time.Duration(v.(int32)) * time.Millisecond, remainder, nil
		}
	case logicalTimeMicros:
		c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
			micros, err := durationToUnits(datum, time.Microsecond)
			if err != nil {
				return nil, err
			}
			return underlying.binaryFromNative(buf, micros, opts)
		}
		c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
			v, remainder, err := underlying.nativeFromBinary(buf, opts)
			if err != nil {
				return nil, nil, err
			}
			return time.Duration(v.(int64)) * time.Microsecond, remainder, nil
		}
	case logicalTimestampMillis:
		c.binaryFromNative = timestampBinaryFromNative(underlying, time.Millisecond)
		c.nativeFromBinary = timestampNativeFromBinary(underlying, time.Millisecond)
	case logicalTimestampMicros:
		c.binaryFromNative = timestampBinaryFromNative(underlying, time.Microsecond)
		c.nativeFromBinary = timestampNativeFromBinary(underlying, time.Microsecond)
	case logicalTimestampNanos:
		c.binaryFromNative = timestampBinaryFromNative(underlying, time.Nanosecond)
		c.nativeFromBinary = timestampNativeFromBinary(underlying, time.Nanosecond)
	case logicalUUID:
		attachUUIDCodec(c, underlying)
	case logicalDecimal:
		attachDecimalCodec(c, underlying, lt)
	}
	return c
}

func dateToDays(datum interface{}) (int32, error) {
	t, ok := datum.(time.Time)
	if !ok {
		return 0, newEncodeMismatch("date", datum)
	}
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	days := int32(t.UTC().Sub(epoch).Hours() / 24)
	return days, nil
}

func daysToDate(days int32) time.Time {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, int(days))
}

func durationToUnits(datum interface{}, unit time.Duration) (int64, error) {
	d, ok := datum.(time.Duration)
	if !ok {
		return 0, newEncodeMismatch("time", datum)
	}
	return int64(d / unit), nil
}

func timestampBinaryFromNative(underlying *Codec, unit time.Duration) binaryEncodeFunc {
	return func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		t, ok := datum.(time.Time)
		if !ok {
			return nil, newEncodeMismatch("timestamp", datum)
		}
		epoch := time.Unix(0, 0).UTC()
		offset := t.UTC().Sub(epoch)
		return underlying.binaryFromNative(buf, int64(offset/unit), opts)
	}
}

func timestampNativeFromBinary(underlying *Codec, unit time.Duration) binaryDecodeFunc {
	return func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		v, remainder, err := underlying.nativeFromBinary(buf, opts)
		if err != nil {
			return nil, nil, err
		}
		epoch := time.Unix(0, 0).UTC()
		return epoch.Add(time.Duration(v.(int64)) * unit), remainder, nil
	}
}

// matchesLogicalNativeType reports whether datum is already in the
// logical type's native Go representation (time.Time/time.Duration),
// used by union shape-inference to prefer an exact logical match over
// coercing a bare number.
func matchesLogicalNativeType(kind logicalKind, datum interface{}) bool {
	switch kind {
	case logicalDate, logicalTimestampMillis, logicalTimestampMicros, logicalTimestampNanos:
		_, ok := datum.(time.Time)
		return ok
	case logicalTimeMillis, logicalTimeMicros:
		_, ok := datum.(time.Duration)
		return ok
	case logicalUUID:
		_, isString := datum.(string)
		_, isBytes := datum.([]byte)
		return isString || isBytes
	case logicalDecimal:
		return matchesDecimalNativeType(datum)
	default:
		return false
	}
}
