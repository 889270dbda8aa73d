package analyzer

import "fmt"

// NestedNamespaceError is raised when a namespace block is declared inside
// another namespace block (spec §4.2: nested namespaces are rejected).
type NestedNamespaceError struct {
	Name string
	Line int
}

func (e *NestedNamespaceError) Error() string {
	return fmt.Sprintf("%d: nested namespace %q is not allowed", e.Line, e.Name)
}

// DuplicateEntityError is raised when two entities share a fully qualified
// name (spec §4.3 step 1).
type DuplicateEntityError struct {
	QualifiedName string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate entity: %s", e.QualifiedName)
}

// UnknownEnumValueError is raised when a default value names an identifier
// that does not resolve to a member of the target enum (spec §4.3 step 4).
type UnknownEnumValueError struct {
	EnumName string
	Member   string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown enum value %q for enum %s", e.Member, e.EnumName)
}

// ComplexDefaultForbiddenError is raised when a field naming a struct type
// carries a default value (spec §3 field invariants, §4.3 step 4).
type ComplexDefaultForbiddenError struct {
	Field string
	Type  string
}

func (e *ComplexDefaultForbiddenError) Error() string {
	return fmt.Sprintf("field %s of complex type %s cannot have a default value", e.Field, e.Type)
}

// InvalidDefaultValueError is raised when a default value's literal kind
// doesn't match the declared field type (spec §4.3 step 4).
type InvalidDefaultValueError struct {
	Field string
	Type  string
	Msg   string
}

func (e *InvalidDefaultValueError) Error() string {
	return fmt.Sprintf("invalid default value for field %s (%s): %s", e.Field, e.Type, e.Msg)
}

// NoStructsError is raised when semantic analysis yields zero struct
// entities (spec §4.3 step 5: enum-only inputs are rejected).
type NoStructsError struct{}

func (e *NoStructsError) Error() string {
	return "schema defines no structs"
}
