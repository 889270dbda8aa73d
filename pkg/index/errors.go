package index

import "fmt"

// DuplicateHashError is returned when two distinct struct entities in the
// same schema list collide on their 64-bit hash.
type DuplicateHashError struct {
	HashValue     uint64
	QualifiedName string
	ExistingName  string
}

func (e *DuplicateHashError) Error() string {
	return fmt.Sprintf("hash collision: %s and %s both hash to %d", e.ExistingName, e.QualifiedName, e.HashValue)
}
