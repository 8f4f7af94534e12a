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

	"golang.org/x/exp/slices"
)

var primitiveKinds = map[string]Kind{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"bytes":   Bytes,
	"string":  String,
}

var recordKeys = []string{"type", "name", "namespace", "aliases", "doc", "fields"}
var enumKeys = []string{"type", "name", "namespace", "aliases", "doc", "symbols"}
var fixedKeys = []string{"type", "name", "namespace", "aliases", "size", "logicalType", "precision", "scale"}
var arrayKeys = []string{"type", "items"}
var mapKeys = []string{"type", "values"}
var leafKeys = []string{"type", "logicalType", "precision", "scale"}
var fieldKeys = []string{"name", "type", "doc", "default", "aliases", "order"}

// hoistNamedTypes performs the first of two passes over a parsed
// schema document: it walks the entire tree and registers every named
// type (record, enum, fixed) in ctx before any field is built, so that
// a record field may reference a sibling type defined later in the
// same document, or itself, or another record that in turn refers
// back to it.
func hoistNamedTypes(ctx *Context, enclosingNamespace string, schema interface{}, opts parseOptions) error {
	switch v := schema.(type) {
	case []interface{}:
		for i, branch := range v {
			if err := hoistNamedTypes(ctx, enclosingNamespace, branch, opts); err != nil {
				return withPath(err, fmt.Sprintf("[%d]", i))
			}
		}
		return nil
	case map[string]interface{}:
		typeVal, ok := v["type"]
		if !ok {
			return &SchemaError{Kind: MissingRequiredField, Message: `schema object requires a "type" key`}
		}
		typeName, isString := typeVal.(string)
		if !isString {
			return hoistNamedTypes(ctx, enclosingNamespace, typeVal, opts)
		}
		switch typeName {
		case "record":
			return hoistRecord(ctx, enclosingNamespace, v, opts)
		case "enum":
			return hoistEnum(ctx, enclosingNamespace, v, opts)
		case "fixed":
			return hoistFixed(ctx, enclosingNamespace, v, opts)
		case "array":
			items, ok := v["items"]
			if !ok {
				return &SchemaError{Kind: MissingRequiredField, Message: `array schema requires "items"`}
			}
			if err := hoistNamedTypes(ctx, enclosingNamespace, items, opts); err != nil {
				return withPath(err, "items")
			}
			return nil
		case "map":
			values, ok := v["values"]
			if !ok {
				return &SchemaError{Kind: MissingRequiredField, Message: `map schema requires "values"`}
			}
			if err := hoistNamedTypes(ctx, enclosingNamespace, values, opts); err != nil {
				return withPath(err, "values")
			}
			return nil
		default:
			return nil
		}
	default:
		return nil
	}
}

func hoistRecord(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) error {
	n, newNamespace, err := resolveName(obj, enclosingNamespace)
	if err != nil {
		return err
	}
	aliases, err := parseAliases(obj, opts.strict)
	if err != nil {
		return err
	}
	stub := &Codec{kind: Record, typeName: n, aliases: aliases, doc: docString(obj)}
	if err := ctx.register(n.fullName(), stub); err != nil {
		return err
	}
	if err := ctx.registerAliases(n.fullName(), aliases); err != nil {
		return err
	}
	fieldsRaw, ok := obj["fields"].([]interface{})
	if !ok {
		return &SchemaError{Kind: MissingRequiredField, Value: n.fullName(), Message: `record schema requires "fields" array`}
	}
	for _, fr := range fieldsRaw {
		fieldObj, ok := fr.(map[string]interface{})
		if !ok {
			return &SchemaError{Kind: InvalidName, Message: "record field must be a JSON object"}
		}
		fieldName, _ := fieldObj["name"].(string)
		if err := hoistNamedTypes(ctx, newNamespace, fieldObj["type"], opts); err != nil {
			return withPath(err, fieldName)
		}
	}
	return nil
}

func hoistEnum(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) error {
	n, _, err := resolveName(obj, enclosingNamespace)
	if err != nil {
		return err
	}
	symbolsRaw, ok := obj["symbols"].([]interface{})
	if !ok {
		return &SchemaError{Kind: MissingRequiredField, Value: n.fullName(), Message: `enum schema requires "symbols" array`}
	}
	symbols := make([]string, len(symbolsRaw))
	seen := make(map[string]bool, len(symbolsRaw))
	for i, s := range symbolsRaw {
		sym, ok := s.(string)
		if !ok {
			return &SchemaError{Kind: InvalidName, Message: "enum symbol must be a string"}
		}
		if err := validateNamePart(sym); err != nil {
			return err
		}
		if seen[sym] {
			return &SchemaError{Kind: DuplicateName, Value: sym, Message: "duplicate enum symbol"}
		}
		seen[sym] = true
		symbols[i] = sym
	}
	aliases, err := parseAliases(obj, opts.strict)
	if err != nil {
		return err
	}
	codec := buildEnum(n, aliases, docString(obj), symbols)
	if err := ctx.register(n.fullName(), codec); err != nil {
		return err
	}
	return ctx.registerAliases(n.fullName(), aliases)
}

func hoistFixed(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) error {
	n, _, err := resolveName(obj, enclosingNamespace)
	if err != nil {
		return err
	}
	size, err := asSchemaInt(obj["size"], "size")
	if err != nil {
		return err
	}
	aliases, err := parseAliases(obj, opts.strict)
	if err != nil {
		return err
	}
	var codec *Codec = buildFixed(n, aliases, docString(obj), size)
	lt, err := parseLogicalType(obj, Fixed, opts.strict)
	if err != nil {
		return err
	}
	if lt != nil {
		codec = wrapLogicalCodec(codec, lt)
	}
	if err := ctx.register(n.fullName(), codec); err != nil {
		return err
	}
	return ctx.registerAliases(n.fullName(), aliases)
}

// buildCodec is the second pass: it builds the full *Codec graph,
// resolving every named-type reference against ctx (already populated
// by hoistNamedTypes) instead of recursing into a definition it has
// not seen yet.
func buildCodec(ctx *Context, enclosingNamespace string, schema interface{}, opts parseOptions) (*Codec, error) {
	switch v := schema.(type) {
	case string:
		return buildCodecForString(ctx, enclosingNamespace, v)
	case []interface{}:
		branches := make([]*Codec, len(v))
		for i, raw := range v {
			b, err := buildCodec(ctx, enclosingNamespace, raw, opts)
			if err != nil {
				return nil, withPath(err, fmt.Sprintf("[%d]", i))
			}
			branches[i] = b
		}
		if err := validateUnionBranches(branches); err != nil {
			return nil, err
		}
		return buildCodecForUnion(branches)
	case map[string]interface{}:
		return buildCodecForObject(ctx, enclosingNamespace, v, opts)
	default:
		return nil, &SchemaError{Kind: InvalidName, Value: schema, Message: "schema node must be a string, array, or object"}
	}
}

func buildCodecForString(ctx *Context, enclosingNamespace, s string) (*Codec, error) {
	if kind, ok := primitiveKinds[s]; ok {
		codec, _ := newPrimitiveCodec(kind)
		return codec, nil
	}
	if codec, ok := ctx.lookup(s, enclosingNamespace); ok {
		return codec, nil
	}
	return nil, &SchemaError{Kind: UnknownReference, Value: s, Message: "unknown type reference"}
}

func buildCodecForObject(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) (*Codec, error) {
	typeVal, ok := obj["type"]
	if !ok {
		return nil, &SchemaError{Kind: MissingRequiredField, Message: `schema object requires a "type" key`}
	}
	typeName, isString := typeVal.(string)

	var underlying *Codec
	var err error

	if !isString {
		underlying, err = buildCodec(ctx, enclosingNamespace, typeVal, opts)
		if err != nil {
			return nil, err
		}
		return attachObjectLogicalType(underlying, obj, opts)
	}

	switch typeName {
	case "null", "boolean", "int", "long", "float", "double", "bytes", "string":
		if err := checkUnknownKeys(obj, leafKeys, opts.strict); err != nil {
			return nil, err
		}
		underlying, _ = newPrimitiveCodec(primitiveKinds[typeName])
	case "record":
		if err := checkUnknownKeys(obj, recordKeys, opts.strict); err != nil {
			return nil, err
		}
		underlying, err = buildRecordObj(ctx, enclosingNamespace, obj, opts)
	case "enum":
		if err := checkUnknownKeys(obj, enumKeys, opts.strict); err != nil {
			return nil, err
		}
		n, _, rerr := resolveName(obj, enclosingNamespace)
		if rerr != nil {
			return nil, rerr
		}
		codec, found := ctx.Lookup(n.fullName())
		if !found {
			return nil, &SchemaError{Kind: UnknownReference, Value: n.fullName(), Message: "enum was not hoisted"}
		}
		underlying = codec
	case "fixed":
		if err := checkUnknownKeys(obj, fixedKeys, opts.strict); err != nil {
			return nil, err
		}
		n, _, rerr := resolveName(obj, enclosingNamespace)
		if rerr != nil {
			return nil, rerr
		}
		codec, found := ctx.Lookup(n.fullName())
		if !found {
			return nil, &SchemaError{Kind: UnknownReference, Value: n.fullName(), Message: "fixed was not hoisted"}
		}
		return codec, nil
	case "array":
		if err := checkUnknownKeys(obj, arrayKeys, opts.strict); err != nil {
			return nil, err
		}
		underlying, err = buildArrayObj(ctx, enclosingNamespace, obj, opts)
	case "map":
		if err := checkUnknownKeys(obj, mapKeys, opts.strict); err != nil {
			return nil, err
		}
		underlying, err = buildMapObj(ctx, enclosingNamespace, obj, opts)
	default:
		if codec, found := ctx.lookup(typeName, enclosingNamespace); found {
			underlying = codec
		} else {
			return nil, &SchemaError{Kind: UnknownReference, Value: typeName, Message: "unknown type reference"}
		}
	}
	if err != nil {
		return nil, err
	}
	return attachObjectLogicalType(underlying, obj, opts)
}

func attachObjectLogicalType(underlying *Codec, obj map[string]interface{}, opts parseOptions) (*Codec, error) {
	lt, err := parseLogicalType(obj, underlying.kind, opts.strict)
	if err != nil {
		return nil, err
	}
	if lt == nil {
		return underlying, nil
	}
	return wrapLogicalCodec(underlying, lt), nil
}

func buildRecordObj(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) (*Codec, error) {
	n, newNamespace, err := resolveName(obj, enclosingNamespace)
	if err != nil {
		return nil, err
	}
	stub, found := ctx.Lookup(n.fullName())
	if !found {
		return nil, &SchemaError{Kind: UnknownReference, Value: n.fullName(), Message: "record was not hoisted"}
	}
	fieldsRaw, ok := obj["fields"].([]interface{})
	if !ok {
		return nil, &SchemaError{Kind: MissingRequiredField, Value: n.fullName(), Message: `record schema requires "fields" array`}
	}
	fields := make([]*Field, 0, len(fieldsRaw))
	seen := make(map[string]bool, len(fieldsRaw))

	// Primary field names must be known before alias disjointness can be
	// checked against fields that appear later in declaration order.
	fieldNames := make(map[string]bool, len(fieldsRaw))
	for _, fr := range fieldsRaw {
		if fieldObj, ok := fr.(map[string]interface{}); ok {
			if fieldName, ok := fieldObj["name"].(string); ok {
				fieldNames[fieldName] = true
			}
		}
	}
	aliasOwner := make(map[string]string, len(fieldsRaw))

	for _, fr := range fieldsRaw {
		fieldObj, ok := fr.(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Kind: InvalidName, Message: "record field must be a JSON object"}
		}
		// Captured before validation so every error below, including
		// ones raised while the name itself is still being checked,
		// can be attributed to this field in the schema path.
		rawFieldName, _ := fieldObj["name"].(string)
		if err := checkUnknownKeys(fieldObj, fieldKeys, opts.strict); err != nil {
			return nil, withPath(err, rawFieldName)
		}
		fieldName, ok := fieldObj["name"].(string)
		if !ok {
			return nil, &SchemaError{Kind: InvalidName, Message: "record field requires a name"}
		}
		if err := validateNamePart(fieldName); err != nil {
			return nil, withPath(err, fieldName)
		}
		if seen[fieldName] {
			return nil, &SchemaError{Kind: DuplicateName, Value: fieldName, Path: fieldName, Message: "duplicate field name"}
		}
		seen[fieldName] = true
		aliases, err := parseAliases(fieldObj, opts.strict)
		if err != nil {
			return nil, withPath(err, fieldName)
		}
		for _, a := range aliases {
			if fieldNames[a] {
				return nil, &SchemaError{
					Kind:    DuplicateName,
					Value:   a,
					Path:    fieldName,
					Message: fmt.Sprintf("field %q alias %q collides with another field's primary name", fieldName, a),
				}
			}
			if owner, taken := aliasOwner[a]; taken {
				return nil, &SchemaError{
					Kind:    DuplicateName,
					Value:   a,
					Path:    fieldName,
					Message: fmt.Sprintf("field %q alias %q already used by field %q", fieldName, a, owner),
				}
			}
			aliasOwner[a] = fieldName
		}
		order, err := parseFieldOrder(fieldObj, opts.strict)
		if err != nil {
			return nil, withPath(err, fieldName)
		}
		fieldCodec, err := buildCodec(ctx, newNamespace, fieldObj["type"], opts)
		if err != nil {
			return nil, withPath(err, fieldName)
		}
		f := &Field{Name: fieldName, Doc: docString(fieldObj), Codec: fieldCodec, Aliases: aliases, Order: order}
		if dv, has := fieldObj["default"]; has {
			if err := validateDefaultShape(fieldCodec, dv); err != nil {
				return nil, withPath(err, fieldName)
			}
			f.hasDefault = true
			f.defaultVal = dv
		}
		fields = append(fields, f)
	}
	populateRecord(stub, stub.aliases, stub.doc, fields)
	return stub, nil
}

func buildArrayObj(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) (*Codec, error) {
	items, ok := obj["items"]
	if !ok {
		return nil, &SchemaError{Kind: MissingRequiredField, Message: `array schema requires "items"`}
	}
	itemCodec, err := buildCodec(ctx, enclosingNamespace, items, opts)
	if err != nil {
		return nil, withPath(err, "items")
	}
	return buildArray(itemCodec), nil
}

func buildMapObj(ctx *Context, enclosingNamespace string, obj map[string]interface{}, opts parseOptions) (*Codec, error) {
	values, ok := obj["values"]
	if !ok {
		return nil, &SchemaError{Kind: MissingRequiredField, Message: `map schema requires "values"`}
	}
	valueCodec, err := buildCodec(ctx, enclosingNamespace, values, opts)
	if err != nil {
		return nil, withPath(err, "values")
	}
	return buildMap(valueCodec), nil
}

// resolveName extracts a schema object's name/namespace, returning the
// resolved *name plus the namespace that should enclose its children.
func resolveName(obj map[string]interface{}, enclosingNamespace string) (*name, string, error) {
	nameVal, _ := obj["name"].(string)
	namespaceVal, _ := obj["namespace"].(string)
	n, err := newName(nameVal, namespaceVal, enclosingNamespace)
	if err != nil {
		return nil, "", err
	}
	return n, n.namespace, nil
}

// parseAliases reads a schema object's "aliases" array, if present,
// rejecting duplicates in strict mode.
func parseAliases(obj map[string]interface{}, strict bool) ([]string, error) {
	raw, ok := obj["aliases"]
	if !ok {
		return nil, nil
	}
	rawSlice, ok := raw.([]interface{})
	if !ok {
		return nil, &SchemaError{Kind: InvalidName, Message: `"aliases" must be an array of strings`}
	}
	aliases := make([]string, 0, len(rawSlice))
	for _, a := range rawSlice {
		s, ok := a.(string)
		if !ok {
			return nil, &SchemaError{Kind: InvalidName, Message: `"aliases" must be an array of strings`}
		}
		if strict && slices.Contains(aliases, s) {
			return nil, &SchemaError{Kind: DuplicateName, Value: s, Message: "duplicate alias"}
		}
		aliases = append(aliases, s)
	}
	return aliases, nil
}

// parseFieldOrder reads a record field's "order" key, defaulting to
// "ascending" when absent. A value other than the three the Avro spec
// recognizes is rejected in strict mode and treated as "ascending" in
// lenient mode.
func parseFieldOrder(obj map[string]interface{}, strict bool) (string, error) {
	raw, ok := obj["order"]
	if !ok {
		return "ascending", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &SchemaError{Kind: InvalidName, Message: `field "order" must be a string`}
	}
	switch s {
	case "ascending", "descending", "ignore":
		return s, nil
	default:
		if strict {
			return "", &SchemaError{Kind: InvalidName, Value: s, Message: `field "order" must be one of "ascending", "descending", "ignore"`}
		}
		return "ascending", nil
	}
}

func docString(obj map[string]interface{}) string {
	if d, ok := obj["doc"].(string); ok {
		return d
	}
	return ""
}

func checkUnknownKeys(obj map[string]interface{}, allowed []string, strict bool) error {
	if !strict {
		return nil
	}
	for k := range obj {
		if !slices.Contains(allowed, k) {
			return &SchemaError{
				Kind:    UnrecognizedKey,
				Value:   k,
				Message: fmt.Sprintf("unrecognized key %q", k),
			}
		}
	}
	return nil
}

func asSchemaInt(v interface{}, field string) (int, error) {
	f, ok := v.(float64)
	if !ok || f < 0 || float64(int(f)) != f {
		return 0, &SchemaError{Kind: InvalidName, Value: field, Message: fmt.Sprintf("%q must be a non-negative integer", field)}
	}
	return int(f), nil
}
