// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

import (
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd"
)

// attachDecimalCodec wires the decimal logical type's binary closures
// onto c, encoding/decoding the schema's fixed-scale unscaled value as
// a two's-complement big-endian integer inside underlying's bytes or
// fixed representation.
func attachDecimalCodec(c, underlying *Codec, lt *logicalType) {
	c.binaryFromNative = func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		unscaled, err := decimalToUnscaled(datum, lt)
		if err != nil {
			return nil, err
		}
		raw := bigIntToTwosComplement(unscaled)
		if underlying.kind == Fixed {
			if len(raw) > underlying.size {
				return nil, &CodecError{Kind: DecimalOutOfRange, Message: "decimal unscaled value does not fit in declared fixed size"}
			}
			raw = signExtendTo(raw, underlying.size)
		}
		return underlying.binaryFromNative(buf, raw, opts)
	}
	c.nativeFromBinary = func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		v, remainder, err := underlying.nativeFromBinary(buf, opts)
		if err != nil {
			return nil, nil, err
		}
		raw := v.([]byte)
		unscaled := twosComplementToBigInt(raw)
		return unscaledToDecimal(unscaled, lt, opts.decimalMode), remainder, nil
	}
}

// decimalToUnscaled rescales datum to lt.scale and returns its
// unscaled integer value, accepting *apd.Decimal, float64, or a plain
// int64 (interpreted as already-scaled). Rescaling is done with plain
// big.Int arithmetic on Coeff/Exponent, the same way the teacher's own
// decimalToRat/ratToDecimal helpers move between apd.Decimal and
// big.Rat, rather than through apd's higher-level Context API.
func decimalToUnscaled(datum interface{}, lt *logicalType) (*big.Int, error) {
	switch v := datum.(type) {
	case *apd.Decimal:
		return rescaleDecimal(v, lt)
	case apd.Decimal:
		return rescaleDecimal(&v, lt)
	case float64:
		d, err := apd.NewFromString(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return nil, newEncodeMismatch("decimal", datum)
		}
		return rescaleDecimal(d, lt)
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, newEncodeMismatch("decimal", datum)
	}
}

// rescaleDecimal converts dec (value = Coeff * 10^Exponent) into the
// unscaled integer such that value = unscaled * 10^-lt.scale, failing
// when the conversion would lose digits.
func rescaleDecimal(dec *apd.Decimal, lt *logicalType) (*big.Int, error) {
	coeff := new(big.Int).Set(&dec.Coeff)
	if dec.Negative {
		coeff.Neg(coeff)
	}
	targetExponent := -int32(lt.scale)
	switch {
	case dec.Exponent == targetExponent:
		return coeff, nil
	case dec.Exponent > targetExponent:
		pow := pow10(int(dec.Exponent - targetExponent))
		return coeff.Mul(coeff, pow), nil
	default:
		pow := pow10(int(targetExponent - dec.Exponent))
		quo, rem := new(big.Int), new(big.Int)
		quo.QuoRem(coeff, pow, rem)
		if rem.Sign() != 0 {
			return nil, &CodecError{
				Kind:    DecimalOutOfRange,
				Value:   dec.String(),
				Message: "decimal value cannot be rescaled exactly to schema scale",
			}
		}
		return quo, nil
	}
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func unscaledToDecimal(unscaled *big.Int, lt *logicalType, mode DecimalMode) interface{} {
	d := apd.NewWithBigInt(new(big.Int).Abs(unscaled), -int32(lt.scale))
	d.Negative = unscaled.Sign() < 0
	if mode == DecimalExact {
		return d
	}
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0.0
	}
	if d.Negative && f > 0 {
		f = -f
	}
	return f
}

func matchesDecimalNativeType(datum interface{}) bool {
	_, ok := datum.(*apd.Decimal)
	return ok
}

// bigIntToTwosComplement returns the minimal big-endian two's
// complement byte representation of v.
func bigIntToTwosComplement(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// Negative: two's complement of |v| at the minimal byte width that
	// keeps the sign bit set. Grow the width one byte at a time starting
	// from |v|'s own byte length until the top bit lands on 1; this
	// handles exact powers of two (e.g. -128) correctly, unlike a closed
	// form based on BitLen alone.
	abs := new(big.Int).Abs(v)
	nBytes := len(abs.Bytes())
	if nBytes == 0 {
		nBytes = 1
	}
	for {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
		twos := new(big.Int).Add(mod, v)
		b := twos.Bytes()
		for len(b) < nBytes {
			b = append([]byte{0}, b...)
		}
		if b[0]&0x80 != 0 {
			return b
		}
		nBytes++
	}
}

// twosComplementToBigInt reverses bigIntToTwosComplement.
func twosComplementToBigInt(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}

// signExtendTo pads raw (already two's-complement) up to n bytes,
// preserving its sign.
func signExtendTo(raw []byte, n int) []byte {
	if len(raw) >= n {
		return raw
	}
	pad := byte(0)
	if raw[0]&0x80 != 0 {
		pad = 0xff
	}
	out := make([]byte, n)
	for i := 0; i < n-len(raw); i++ {
		out[i] = pad
	}
	copy(out[n-len(raw):], raw)
	return out
}
