// Package index builds the two lookup tables the codec needs: a struct's
// fully qualified name resolves it for field-type lookups, and its 64-bit
// hash resolves it when decoding a framed message off the wire (spec §3
// "Schema index", §6.1 createSchemaMaps).
package index

import "github.com/verdant-robotics/cbuf/pkg/schema"

// Maps is the pair of read-only lookup tables built once per parse result
// and shared by every codec call thereafter (spec §5: concurrent readers
// are safe once built).
type Maps struct {
	NameToSchema map[string]*schema.Entity
	HashToSchema map[uint64]*schema.Entity
}

// CreateSchemaMaps indexes a compiled schema list by qualified name and,
// for struct entities only, by hash. The same *schema.Entity is referenced
// from both maps.
func CreateSchemaMaps(schemaList []*schema.Entity) (*Maps, error) {
	m := &Maps{
		NameToSchema: make(map[string]*schema.Entity, len(schemaList)),
		HashToSchema: make(map[uint64]*schema.Entity, len(schemaList)),
	}

	for _, e := range schemaList {
		m.NameToSchema[e.QualifiedName] = e

		if e.IsEnum {
			continue
		}
		if existing, ok := m.HashToSchema[e.HashValue]; ok && existing != e {
			return nil, &DuplicateHashError{
				HashValue:     e.HashValue,
				QualifiedName: e.QualifiedName,
				ExistingName:  existing.QualifiedName,
			}
		}
		m.HashToSchema[e.HashValue] = e
	}

	return m, nil
}
