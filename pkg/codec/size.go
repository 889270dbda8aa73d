package codec

import (
	"github.com/verdant-robotics/cbuf/pkg/index"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// SerializedMessageSize returns the total framed size (preamble included)
// a message would occupy on the wire, without encoding it (spec §4.9).
func SerializedMessageSize(maps *index.Maps, msg *schema.Message) (int, error) {
	def, err := lookupStruct(maps, msg.TypeName)
	if err != nil {
		return 0, err
	}
	if def.IsNakedStruct {
		return 0, &NakedMessageError{TypeName: msg.TypeName}
	}
	n, err := nakedSize(def, msg.Payload, maps)
	if err != nil {
		return 0, err
	}
	return HeaderSize + n, nil
}

func lookupStruct(maps *index.Maps, typeName string) (*schema.Entity, error) {
	def, ok := maps.NameToSchema[typeName]
	if !ok || def.IsEnum {
		return nil, &UnknownMessageTypeError{TypeName: typeName}
	}
	return def, nil
}

// nakedSize is the byte width of a struct's field payload alone, with no
// preamble (spec §4.9: this is what a naked struct occupies on the wire,
// and what a non-naked struct's preamble wraps).
func nakedSize(def *schema.Entity, payload map[string]any, maps *index.Maps) (int, error) {
	total := 0
	for _, f := range def.Definitions {
		v := resolveValue(f, payload)
		var (
			n   int
			err error
		)
		if f.IsArray {
			n, err = arraySize(f, v, maps)
		} else {
			n, err = scalarSize(f, v, maps)
		}
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func scalarSize(f *schema.Field, v any, maps *index.Maps) (int, error) {
	if f.IsComplex {
		nested, ok := maps.NameToSchema[f.Type]
		if !ok {
			return 0, &UnknownMessageTypeError{TypeName: f.Type}
		}
		payload, _ := v.(map[string]any)
		n, err := nakedSize(nested, payload, maps)
		if err != nil {
			return 0, err
		}
		if nested.IsNakedStruct {
			return n, nil
		}
		return HeaderSize + n, nil
	}

	if f.Type == schema.String {
		if f.UpperBound > 0 {
			return f.UpperBound, nil
		}
		s, err := coerceString(valueOrZero(v, ""))
		if err != nil {
			return 0, err
		}
		return 4 + len(s), nil
	}

	w := primitiveWidth(f.Type)
	if w == 0 {
		return 0, &UnsupportedTypeError{Type: f.Type}
	}
	return w, nil
}

// arraySize handles all three array kinds uniformly: fixed, bounded-compact
// (whose on-wire shape is the same as unbounded, spec §4.2), and unbounded.
// Per-element sizing is delegated back to scalarSize, so bool's one byte
// per element and unbounded string's per-element length prefix both fall
// out without special-casing.
func arraySize(f *schema.Field, v any, maps *index.Maps) (int, error) {
	elemField := &schema.Field{Name: f.Name, Type: f.Type, IsComplex: f.IsComplex, UpperBound: f.UpperBound}

	elems, err := toSlice(v)
	if err != nil {
		return 0, err
	}

	fixed := f.ArrayLength > 0
	count := f.ArrayLength
	if !fixed {
		count = len(elems)
	}

	total := 0
	if !fixed {
		total += 4
	}
	for i := 0; i < count; i++ {
		var ev any
		if i < len(elems) {
			ev = elems[i]
		}
		n, err := scalarSize(elemField, ev, maps)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
