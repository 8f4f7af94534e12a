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
	"fmt"
	"reflect"
)

// TaggedUnion carries an explicit union branch selection, overriding
// shape-inference. Name must match the fullname (or, for an unnamed
// branch, the primitive/array/map type name) of one of the union's
// declared branches.
type TaggedUnion struct {
	Name  string
	Value interface{}
}

// codecInfo indexes a union's branches both by position and by the
// name a caller would use to tag a value for that branch.
type codecInfo struct {
	branches       []*Codec
	codecFromIndex map[int]*Codec
	codecFromName  map[string]*Codec
	indexFromName  map[string]int
}

func makeCodecInfo(branches []*Codec) (*codecInfo, error) {
	ci := &codecInfo{
		branches:       branches,
		codecFromIndex: make(map[int]*Codec, len(branches)),
		codecFromName:  make(map[string]*Codec, len(branches)),
		indexFromName:  make(map[string]int, len(branches)),
	}
	for i, b := range branches {
		branchName := branchTagName(b)
		if _, ok := ci.codecFromName[branchName]; ok {
			return nil, &SchemaError{
				Kind:    InvalidUnion,
				Value:   branchName,
				Message: fmt.Sprintf("union item %d ought to have unique type name: %s", i, branchName),
			}
		}
		ci.codecFromIndex[i] = b
		ci.codecFromName[branchName] = b
		ci.indexFromName[branchName] = i
	}
	return ci, nil
}

// branchTagName returns the name a TaggedUnion would use to select
// this branch: the fullname for named types, the kind name otherwise.
func branchTagName(c *Codec) string {
	if c.typeName != nil {
		return c.typeName.fullName()
	}
	if c.kind == Array {
		return "array"
	}
	if c.kind == Map {
		return "map"
	}
	return c.kind.String()
}

// validateUnionBranches enforces Avro's union-nesting rule (no union
// directly inside a union) and that no two branches share the same
// resolvable tag name. Unlike the teacher's restriction to exactly
// two branches with "null" required first, any branch count and
// ordering is permitted here.
func validateUnionBranches(branches []*Codec) error {
	if len(branches) == 0 {
		return &SchemaError{Kind: InvalidUnion, Message: "union must have at least one branch"}
	}
	for i, b := range branches {
		if b.kind == Union {
			return &SchemaError{
				Kind:    InvalidUnion,
				Message: fmt.Sprintf("union item %d: union may not immediately contain another union", i),
			}
		}
	}
	_, err := makeCodecInfo(branches)
	return err
}

// buildCodecForUnion builds a union Codec over branches, which must
// already have passed validateUnionBranches.
func buildCodecForUnion(branches []*Codec) (*Codec, error) {
	ci, err := makeCodecInfo(branches)
	if err != nil {
		return nil, err
	}
	c := &Codec{kind: Union, branches: branches}
	c.binaryFromNative = unionBinaryFromNative(ci)
	c.nativeFromBinary = unionNativeFromBinary(ci)
	return c, nil
}

func unionBinaryFromNative(ci *codecInfo) binaryEncodeFunc {
	return func(buf []byte, datum interface{}, opts encodeOptions) ([]byte, error) {
		var index int
		var branch *Codec
		var value interface{}

		if tagged, ok := datum.(TaggedUnion); ok {
			i, ok := ci.indexFromName[tagged.Name]
			if !ok {
				return nil, &CodecError{
					Kind:    UnionBranchNotFound,
					Value:   tagged.Name,
					Message: fmt.Sprintf("cannot encode binary union: no branch named %q", tagged.Name),
				}
			}
			index, branch, value = i, ci.codecFromIndex[i], tagged.Value
		} else if opts.taggedUnions {
			return nil, &CodecError{
				Kind:    UnionBranchNotFound,
				Value:   datum,
				Message: "cannot encode binary union: tagged unions required, received untagged value",
			}
		} else if datum == nil {
			i, ok := ci.indexFromName["null"]
			if !ok {
				return nil, newEncodeMismatch("union", datum)
			}
			index, branch, value = i, ci.codecFromIndex[i], nil
		} else {
			i, b, ok := selectUnionBranch(ci, datum)
			if !ok {
				return nil, &CodecError{
					Kind:    UnionBranchNotFound,
					Value:   datum,
					Message: fmt.Sprintf("cannot encode binary union: no branch matches %T", datum),
				}
			}
			index, branch, value = i, b, datum
		}

		buf = longBinaryFromNativeValue(buf, int64(index))
		buf, err := branch.binaryFromNative(buf, value, opts)
		if err != nil {
			return nil, withPath(err, branchTagName(branch))
		}
		return buf, nil
	}
}

func unionNativeFromBinary(ci *codecInfo) binaryDecodeFunc {
	return func(buf []byte, opts decodeOptions) (interface{}, []byte, error) {
		index, remainder, err := longNativeFromBinaryValue(buf)
		if err != nil {
			return nil, nil, err
		}
		branch, ok := ci.codecFromIndex[int(index)]
		if !ok {
			return nil, nil, &CodecError{
				Kind:    UnionBranchNotFound,
				Value:   index,
				Message: "cannot decode binary union: branch index out of range",
			}
		}
		value, remainder, err := branch.nativeFromBinary(remainder, opts)
		if err != nil {
			return nil, nil, withPath(err, branchTagName(branch))
		}
		if opts.taggedUnions && branch.kind != Null {
			return TaggedUnion{Name: branchTagName(branch), Value: value}, remainder, nil
		}
		return value, remainder, nil
	}
}

// selectUnionBranch implements shape-inference branch selection: the
// first declared branch whose Go shape matches datum wins. Schemas
// that want a narrower numeric branch preferred over a wider one
// declare that branch first; this function respects declaration order
// rather than second-guessing it.
func selectUnionBranch(ci *codecInfo, datum interface{}) (int, *Codec, bool) {
	for i := 0; i < len(ci.branches); i++ {
		b := ci.codecFromIndex[i]
		if matchBranch(b, datum) {
			return i, b, true
		}
	}
	return 0, nil, false
}

// matchBranch reports whether datum's Go shape is compatible with
// branch's Kind.
func matchBranch(branch *Codec, datum interface{}) bool {
	switch branch.kind {
	case Null:
		return datum == nil
	case Boolean:
		_, ok := datum.(bool)
		return ok
	case Int, Long, Float, Double:
		if branch.logical != nil {
			return matchLogicalBranch(branch, datum)
		}
		if branch.kind == Int || branch.kind == Long {
			v, ok := int64FromDatum(datum)
			if branch.kind == Int {
				return ok && v >= -1<<31 && v <= 1<<31-1
			}
			return ok
		}
		_, ok := float64FromDatum(datum)
		return ok
	case Bytes:
		_, ok := datum.([]byte)
		return ok
	case Fixed:
		b, ok := datum.([]byte)
		return ok && len(b) == branch.size
	case String:
		_, ok := datum.(string)
		return ok
	case Enum:
		s, ok := datum.(string)
		if !ok {
			return false
		}
		for _, sym := range branch.symbols {
			if sym == s {
				return true
			}
		}
		return false
	case Array:
		rv := reflect.ValueOf(datum)
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case Map:
		switch datum.(type) {
		case map[string]interface{}, map[string]string:
			return true
		}
		return false
	case Record:
		rec, ok := datum.(map[string]interface{})
		if !ok {
			return false
		}
		for _, f := range branch.fields {
			if _, present := rec[f.Name]; !present && !f.hasDefault {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func matchLogicalBranch(branch *Codec, datum interface{}) bool {
	if matchesLogicalNativeType(branch.logical.kind, datum) {
		return true
	}
	_, ok := float64FromDatum(datum)
	return ok
}
