// Package cbuf wires the pipeline together: preprocess source text, parse
// it into a grammar tree, run semantic analysis, compute struct hashes,
// build the name/hash lookup tables, and hand the result to the codec.
// pkg/schema stays a dependency-free data package so none of these stages
// needs to import back out through it.
package cbuf

import (
	"github.com/verdant-robotics/cbuf/internal/analyzer"
	"github.com/verdant-robotics/cbuf/internal/grammar"
	"github.com/verdant-robotics/cbuf/pkg/codec"
	"github.com/verdant-robotics/cbuf/pkg/hash"
	"github.com/verdant-robotics/cbuf/pkg/index"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// Schema is a fully compiled cbuf source: its struct and enum entities
// (hashed) plus the name/hash lookup tables the codec needs.
type Schema struct {
	Entities []*schema.Entity
	Maps     *index.Maps
}

// Preprocess strips comments and splices #import directives (spec §4.1).
// imports maps an import path, as written in source, to its text.
func Preprocess(text string, imports map[string]string) (string, error) {
	return grammar.Preprocess(text, imports)
}

// Parse runs the full front end — preprocess, grammar, semantic analysis,
// hashing, indexing — over cbuf source text and returns a compiled Schema
// (spec §4.1–§4.6, §6.1).
func Parse(text string, imports map[string]string) (*Schema, error) {
	pre, err := Preprocess(text, imports)
	if err != nil {
		return nil, err
	}

	file, err := grammar.Parse(pre)
	if err != nil {
		return nil, err
	}

	entities, err := analyzer.Analyze(file)
	if err != nil {
		return nil, err
	}

	if err := hash.ComputeAll(entities); err != nil {
		return nil, err
	}

	maps, err := index.CreateSchemaMaps(entities)
	if err != nil {
		return nil, err
	}

	return &Schema{Entities: entities, Maps: maps}, nil
}

// ComputeHashValue resolves typeName against the compiled schema's
// namespace stack and returns its 64-bit struct hash (spec §6.1).
func (s *Schema) ComputeHashValue(namespaces []string, typeName string) (uint64, error) {
	return hash.ComputeHashValue(s.Maps.NameToSchema, namespaces, typeName)
}

// SerializedMessageSize returns the framed byte size msg would occupy on
// the wire without encoding it (spec §4.9, §6.1).
func (s *Schema) SerializedMessageSize(msg *schema.Message) (int, error) {
	return codec.SerializedMessageSize(s.Maps, msg)
}

// SerializeMessage encodes msg into a framed byte slice (spec §4.7,
// §4.8, §6.1).
func (s *Schema) SerializeMessage(msg *schema.Message) ([]byte, error) {
	return codec.SerializeMessage(s.Maps, msg)
}

// DeserializeMessage decodes one framed message starting at offset in buf
// (spec §4.10, §6.1).
func (s *Schema) DeserializeMessage(buf []byte, offset int) (*schema.Message, error) {
	return codec.DeserializeMessage(s.Maps, buf, offset)
}
