// Package resolve implements the single namespace-walk algorithm used by
// both the semantic analyzer and the public hash lookup (spec §4.4
// and the "Open Question" in §9: one unified resolution path, not the
// three slightly different ones the original source carried).
package resolve

import (
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a type name cannot be resolved against
// the supplied namespace stack.
type ErrUnknownType struct {
	Name string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name)
}

// Lookup finds a fully qualified name for typeName against defined (a set
// of fully qualified names already registered). If typeName already
// contains "::" it is looked up directly; otherwise the namespace stack is
// walked from the most specific to the least specific prefix, per spec
// §4.4.
func Lookup(defined map[string]bool, namespaces []string, typeName string) (string, error) {
	if strings.Contains(typeName, "::") {
		if defined[typeName] {
			return typeName, nil
		}
		return "", &ErrUnknownType{Name: typeName}
	}

	for i := len(namespaces); i >= 0; i-- {
		parts := append(append([]string{}, namespaces[:i]...), typeName)
		candidate := strings.Join(parts, "::")
		if defined[candidate] {
			return candidate, nil
		}
	}
	return "", &ErrUnknownType{Name: typeName}
}
