package schema

import "fmt"

// spellingTable maps every accepted source spelling (spec §4.5) to its
// canonical primitive tag and, for the one spelling that carries sugar
// (short_string), the fixed width it implies.
var spellingTable = map[string]struct {
	tag        string
	upperBound int
}{
	"bool": {Bool, 0},

	"s8": {Int8, 0}, "int8": {Int8, 0}, "int8_t": {Int8, 0},
	"u8": {Uint8, 0}, "uint8": {Uint8, 0}, "uint8_t": {Uint8, 0},

	"s16": {Int16, 0}, "int16": {Int16, 0}, "int16_t": {Int16, 0},
	"u16": {Uint16, 0}, "uint16": {Uint16, 0}, "uint16_t": {Uint16, 0},

	"s32": {Int32, 0}, "int32": {Int32, 0}, "int32_t": {Int32, 0}, "int": {Int32, 0},
	"u32": {Uint32, 0}, "uint32": {Uint32, 0}, "uint32_t": {Uint32, 0},

	"s64": {Int64, 0}, "int64": {Int64, 0}, "int64_t": {Int64, 0},
	"u64": {Uint64, 0}, "uint64": {Uint64, 0}, "uint64_t": {Uint64, 0},

	"f32": {Float32, 0}, "float32": {Float32, 0}, "float": {Float32, 0},
	"f64": {Float64, 0}, "float64": {Float64, 0}, "double": {Float64, 0},

	"string":       {String, 0},
	"short_string": {String, ShortStringUpperBound},
}

// CanonicalPrimitive resolves a source spelling to its canonical tag and
// upper bound (nonzero only for short_string). ok is false for spellings
// that aren't primitives at all (complex type references).
func CanonicalPrimitive(spelling string) (tag string, upperBound int, ok bool) {
	e, found := spellingTable[spelling]
	if !found {
		return "", 0, false
	}
	return e.tag, e.upperBound, true
}

// CSpelling returns the canonical-text C spelling used by the hasher
// (spec §4.6) for a primitive tag. upperBound is the field's UpperBound;
// nonzero only for a bounded (short_)string field, which hashes as
// VString<upperBound-1> rather than std::string.
func CSpelling(tag string, upperBound int) string {
	switch tag {
	case Bool:
		return "bool"
	case Int8:
		return "int8_t"
	case Uint8:
		return "uint8_t"
	case Int16:
		return "int16_t"
	case Uint16:
		return "uint16_t"
	case Int32:
		return "int32_t"
	case Uint32:
		return "uint32_t"
	case Int64:
		return "int64_t"
	case Uint64:
		return "uint64_t"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case String:
		if upperBound > 0 {
			return fmt.Sprintf("VString<%d>", upperBound-1)
		}
		return "std::string"
	default:
		return tag
	}
}
