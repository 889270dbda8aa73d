package hash

import "fmt"

// CyclicSchemaError is returned when computing a struct's hash would
// require recursing into itself through a chain of nested struct fields
// (spec §9 Design Notes: cyclic struct graphs are never permitted).
type CyclicSchemaError struct {
	QualifiedName string
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("cyclic schema: %s embeds itself (directly or indirectly)", e.QualifiedName)
}

// HashNotFoundError is returned by ComputeHashValue when the named type
// cannot be resolved against the supplied schema map.
type HashNotFoundError struct {
	TypeName string
}

func (e *HashNotFoundError) Error() string {
	return fmt.Sprintf("hash not found for type %q", e.TypeName)
}
