// Package schema holds the in-memory model cbuf source text compiles down
// to: field descriptors, struct/enum entities, and the framed message
// envelope the codec fills in and reads back (spec §3).
package schema

// Primitive type tags, the closed set used throughout parsing, hashing,
// and the wire codec (spec §3).
const (
	Bool    = "bool"
	Int8    = "int8"
	Uint8   = "uint8"
	Int16   = "int16"
	Uint16  = "uint16"
	Int32   = "int32"
	Uint32  = "uint32"
	Int64   = "int64"
	Uint64  = "uint64"
	Float32 = "float32"
	Float64 = "float64"
	String  = "string"
)

// ShortStringUpperBound is the fixed width of the short_string sugar
// (spec §4.5): string with upperBound=16.
const ShortStringUpperBound = 16

// Field is a single struct field or enum member descriptor (spec §3).
//
// Invariants enforced by the analyzer, not by this type itself:
//   - Type is a primitive tag or a fully qualified complex type name.
//   - IsComplex is true iff Type names a struct (enum refs are rewritten
//     to Uint32 before a Field is ever constructed).
//   - IsArray permits exactly one of ArrayLength>0, ArrayUpperBound>0, or
//     neither (unbounded).
//   - UpperBound applies only to String fields.
//   - DefaultValue is never set when IsComplex.
//   - IsConstant marks an enum member; Value carries its integer value.
type Field struct {
	Name            string
	Type            string
	IsComplex       bool
	IsArray         bool
	ArrayLength     int
	ArrayUpperBound int
	UpperBound      int
	DefaultValue    any
	HasDefault      bool
	IsConstant      bool
	Value           int64
}

// Entity is a struct or enum definition (spec §3). Enums carry
// HashValue == 0; IsNakedStruct is always false for enums.
type Entity struct {
	Name          string
	QualifiedName string
	Namespaces    []string
	Definitions   []*Field
	HashValue     uint64
	IsEnum        bool
	IsEnumClass   bool
	IsNakedStruct bool
}

// Message is a decoded (or to-be-encoded) binary cbuf message (spec §3).
// On the encode path only TypeName, Timestamp, and Payload are required;
// Size, Variant, and HashValue are filled in by the codec.
type Message struct {
	TypeName  string
	Size      uint32
	Variant   uint8
	HashValue uint64
	Timestamp float64
	Payload   map[string]any
}
