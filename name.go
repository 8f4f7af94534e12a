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
	"regexp"
	"strings"
)

var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const nullNamespace = ""

// name holds a schema's short name and namespace, and knows how to
// compute its fullname the way Avro defines it: namespace + "." + name,
// or just name when namespace is empty.
type name struct {
	short     string
	namespace string
}

func (n *name) fullName() string {
	if n.namespace == nullNamespace {
		return n.short
	}
	return n.namespace + "." + n.short
}

func (n *name) String() string {
	return n.fullName()
}

// newName builds a name from a schema's "name" value and enclosing
// namespace, resolving a dotted name into short name + namespace per
// the Avro name resolution rule: a name containing a dot supplies its
// own namespace and overrides the enclosing one.
func newName(nameValue, namespaceValue, enclosingNamespace string) (*name, error) {
	if nameValue == "" {
		return nil, &SchemaError{Kind: InvalidName, Message: "name is required and may not be blank"}
	}
	short, namespace := splitFullName(nameValue)
	if namespace != nullNamespace {
		// nameValue itself was dotted; it wins over both namespaceValue
		// and enclosingNamespace, per the Avro spec's name resolution.
	} else if namespaceValue != "" {
		namespace = namespaceValue
	} else {
		namespace = enclosingNamespace
	}
	if err := validateNamePart(short); err != nil {
		return nil, err
	}
	for _, part := range strings.Split(namespace, ".") {
		if part == "" {
			continue
		}
		if err := validateNamePart(part); err != nil {
			return nil, err
		}
	}
	return &name{short: short, namespace: namespace}, nil
}

// splitFullName splits a possibly-dotted name into its short name and
// namespace. "com.example.Foo" -> ("Foo", "com.example"). "Foo" ->
// ("Foo", "").
func splitFullName(full string) (short, namespace string) {
	idx := strings.LastIndex(full, ".")
	if idx < 0 {
		return full, nullNamespace
	}
	return full[idx+1:], full[:idx]
}

func lastComponent(full string) string {
	short, _ := splitFullName(full)
	return short
}

func validateNamePart(part string) error {
	if !nameRE.MatchString(part) {
		return &SchemaError{
			Kind:    InvalidName,
			Value:   part,
			Message: "name segments must match [A-Za-z_][A-Za-z0-9_]*",
		}
	}
	return nil
}
