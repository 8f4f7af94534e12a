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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Context tracks every named type (record, enum, fixed) encountered
// while parsing a single schema document, keyed by fullname. It backs
// named-type self- and forward-reference resolution: a reference
// string is looked up here rather than through a back-pointer on the
// referencing *Codec.
type Context struct {
	byFullName map[string]*Codec
	// namesUsed tracks every fullname AND every alias registered so far,
	// since aliases occupy the same namespace as fullnames and must not
	// collide with either.
	namesUsed map[string]bool
}

func newContext() *Context {
	return &Context{byFullName: make(map[string]*Codec), namesUsed: make(map[string]bool)}
}

// register records c under fullName, failing if fullName is already
// taken by a different schema definition or by another type's alias.
func (c *Context) register(fullName string, codec *Codec) error {
	if existing, ok := c.byFullName[fullName]; ok && existing != codec {
		return &SchemaError{
			Kind:    DuplicateName,
			Value:   fullName,
			Message: "name already defined in this schema",
		}
	}
	if c.namesUsed[fullName] && c.byFullName[fullName] != codec {
		return &SchemaError{
			Kind:    DuplicateName,
			Value:   fullName,
			Message: "name collides with another type's alias",
		}
	}
	c.byFullName[fullName] = codec
	c.namesUsed[fullName] = true
	return nil
}

// registerAliases records fullName's aliases in the same namespace as
// every fullname and alias seen so far, failing on any collision. It
// must run after fullName itself has been registered.
func (c *Context) registerAliases(fullName string, aliases []string) error {
	for _, alias := range aliases {
		if alias == fullName {
			continue
		}
		if c.namesUsed[alias] {
			return &SchemaError{
				Kind:    DuplicateName,
				Value:   alias,
				Message: fmt.Sprintf("alias %q of %q collides with another name or alias", alias, fullName),
			}
		}
		c.namesUsed[alias] = true
	}
	return nil
}

// lookup resolves a reference string against enclosingNamespace
// exactly as Avro name resolution requires: a dotted reference is
// tried as-is first, then (if unqualified) qualified by the enclosing
// namespace.
func (c *Context) lookup(reference, enclosingNamespace string) (*Codec, bool) {
	if codec, ok := c.byFullName[reference]; ok {
		return codec, true
	}
	if !isDotted(reference) && enclosingNamespace != nullNamespace {
		if codec, ok := c.byFullName[enclosingNamespace+"."+reference]; ok {
			return codec, true
		}
	}
	return nil, false
}

// Lookup exposes named-type resolution for callers that hold a
// *Context after parsing (e.g. to introspect a schema for a named
// sub-type without re-parsing).
func (c *Context) Lookup(fullName string) (*Codec, bool) {
	codec, ok := c.byFullName[fullName]
	return codec, ok
}

// Names returns every registered fullname in sorted order.
func (c *Context) Names() []string {
	names := maps.Keys(c.byFullName)
	slices.Sort(names)
	return names
}

func isDotted(s string) bool {
	return slices.Contains([]byte(s), '.')
}
