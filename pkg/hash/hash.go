// Package hash computes the cbuf struct fingerprint: a canonical textual
// encoding of a struct's shape, reduced to a 64-bit djb2-style rolling
// hash (spec §4.6). A struct's hash depends recursively on the hashes of
// any structs it embeds, so computation is a graph walk with cycle
// detection, not a pure per-field fold.
package hash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verdant-robotics/cbuf/internal/resolve"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

const (
	visitInProgress = 1
	visitDone       = 2
)

// ComputeAll fills in HashValue for every struct entity in entities,
// in place. Enums are left at HashValue == 0 (spec §4.3 step 3).
func ComputeAll(entities []*schema.Entity) error {
	byName := make(map[string]*schema.Entity, len(entities))
	for _, e := range entities {
		byName[e.QualifiedName] = e
	}

	state := make(map[string]int, len(entities))
	for _, e := range entities {
		if e.IsEnum {
			continue
		}
		if err := computeOne(e, byName, state); err != nil {
			return err
		}
	}
	return nil
}

func computeOne(e *schema.Entity, byName map[string]*schema.Entity, state map[string]int) error {
	switch state[e.QualifiedName] {
	case visitDone:
		return nil
	case visitInProgress:
		return &CyclicSchemaError{QualifiedName: e.QualifiedName}
	}
	state[e.QualifiedName] = visitInProgress

	text, err := canonicalText(e, byName, state)
	if err != nil {
		return err
	}
	e.HashValue = djb2(text)

	state[e.QualifiedName] = visitDone
	return nil
}

// canonicalText renders the exact text described in spec §4.6, recursing
// into nested complex fields to obtain their hashes first.
func canonicalText(e *schema.Entity, byName map[string]*schema.Entity, state map[string]int) (string, error) {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(e.Name)
	b.WriteString(" \n")

	for _, f := range e.Definitions {
		if f.IsArray {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(f.ArrayLength))
			b.WriteString("]")
		}

		element, err := elementSpelling(f, byName, state)
		if err != nil {
			return "", err
		}

		b.WriteString(element)
		b.WriteString(" ")
		b.WriteString(f.Name)
		b.WriteString("; \n")
	}

	return b.String(), nil
}

func elementSpelling(f *schema.Field, byName map[string]*schema.Entity, state map[string]int) (string, error) {
	if !f.IsComplex {
		return schema.CSpelling(f.Type, f.UpperBound), nil
	}

	nested, ok := byName[f.Type]
	if !ok {
		return "", fmt.Errorf("hash: unresolved nested type %q", f.Type)
	}
	if err := computeOne(nested, byName, state); err != nil {
		return "", err
	}
	return strconv.FormatUint(nested.HashValue, 10), nil
}

// djb2 is the rolling hash from spec §4.6: hash = ((hash<<5)+hash+c) mod
// 2^64, i.e. hash = hash*33 + c, over uint64 (which wraps exactly like the
// spec's explicit mod 2^64).
func djb2(text string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(text); i++ {
		h = h*33 + uint64(text[i])
	}
	return h
}

// ComputeHashValue resolves typeName against nameToSchema using the
// namespace stack (spec §4.4) and returns its hash, computing it on demand
// if not already cached on the entity (spec §6.1).
func ComputeHashValue(nameToSchema map[string]*schema.Entity, namespaces []string, typeName string) (uint64, error) {
	defined := make(map[string]bool, len(nameToSchema))
	for k := range nameToSchema {
		defined[k] = true
	}

	qn, err := resolve.Lookup(defined, namespaces, typeName)
	if err != nil {
		return 0, &HashNotFoundError{TypeName: typeName}
	}

	entity, ok := nameToSchema[qn]
	if !ok || entity.IsEnum {
		return 0, &HashNotFoundError{TypeName: typeName}
	}
	if entity.HashValue != 0 {
		return entity.HashValue, nil
	}

	state := make(map[string]int, len(nameToSchema))
	if err := computeOne(entity, nameToSchema, state); err != nil {
		return 0, err
	}
	return entity.HashValue, nil
}
