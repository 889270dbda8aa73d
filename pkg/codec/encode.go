package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/verdant-robotics/cbuf/pkg/index"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// SerializeMessage encodes msg into a freshly allocated byte slice, framed
// with a preamble carrying the struct's schema hash and msg.Timestamp
// (spec §4.7, §4.8).
func SerializeMessage(maps *index.Maps, msg *schema.Message) ([]byte, error) {
	def, err := lookupStruct(maps, msg.TypeName)
	if err != nil {
		return nil, err
	}
	if def.IsNakedStruct {
		return nil, &NakedMessageError{TypeName: msg.TypeName}
	}

	size, err := SerializedMessageSize(maps, msg)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], encodeSizeAndVariant(uint32(size)))
	binary.LittleEndian.PutUint64(buf[8:16], def.HashValue)
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(msg.Timestamp))

	n, err := encodeNaked(buf[HeaderSize:], def, msg.Payload, maps)
	if err != nil {
		return nil, err
	}
	if HeaderSize+n != size {
		return nil, fmt.Errorf("codec: encoded %d bytes, expected %d", HeaderSize+n, size)
	}
	return buf, nil
}

func encodeNaked(buf []byte, def *schema.Entity, payload map[string]any, maps *index.Maps) (int, error) {
	off := 0
	for _, f := range def.Definitions {
		v := resolveValue(f, payload)
		var (
			n   int
			err error
		)
		if f.IsArray {
			n, err = encodeArray(buf[off:], f, v, maps)
		} else {
			n, err = encodeScalar(buf[off:], f, v, maps)
		}
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func encodeScalar(buf []byte, f *schema.Field, v any, maps *index.Maps) (int, error) {
	if f.IsComplex {
		return encodeNestedStruct(buf, f.Type, v, maps)
	}

	switch f.Type {
	case schema.Bool:
		b, err := coerceBool(valueOrZero(v, false))
		if err != nil {
			return 0, err
		}
		if len(buf) < 1 {
			return 0, &BufferTooSmallError{Need: 1, Have: len(buf)}
		}
		if b {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
		return 1, nil

	case schema.Int8:
		i, err := coerceInt(valueOrZero(v, int64(0)))
		if err != nil {
			return 0, err
		}
		buf[0] = byte(int8(i))
		return 1, nil
	case schema.Uint8:
		u, err := coerceUint(valueOrZero(v, uint64(0)))
		if err != nil {
			return 0, err
		}
		buf[0] = byte(u)
		return 1, nil

	case schema.Int16:
		i, err := coerceInt(valueOrZero(v, int64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(i)))
		return 2, nil
	case schema.Uint16:
		u, err := coerceUint(valueOrZero(v, uint64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint16(buf[0:2], uint16(u))
		return 2, nil

	case schema.Int32:
		i, err := coerceInt(valueOrZero(v, int64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(i)))
		return 4, nil
	case schema.Uint32:
		u, err := coerceUint(valueOrZero(v, uint64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(u))
		return 4, nil

	case schema.Int64:
		i, err := coerceInt(valueOrZero(v, int64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[0:8], uint64(i))
		return 8, nil
	case schema.Uint64:
		u, err := coerceUint(valueOrZero(v, uint64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[0:8], u)
		return 8, nil

	case schema.Float32:
		fv, err := coerceFloat(valueOrZero(v, float64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(fv)))
		return 4, nil
	case schema.Float64:
		fv, err := coerceFloat(valueOrZero(v, float64(0)))
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(fv))
		return 8, nil

	case schema.String:
		s, err := coerceString(valueOrZero(v, ""))
		if err != nil {
			return 0, err
		}
		if f.UpperBound > 0 {
			writeFixedString(buf[:f.UpperBound], s, f.UpperBound)
			return f.UpperBound, nil
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(len(s)))
		copy(buf[4:4+len(s)], s)
		return 4 + len(s), nil

	default:
		return 0, &UnsupportedTypeError{Type: f.Type}
	}
}

// encodeNestedStruct writes a complex field's value: a full preamble
// (timestamped 0.0) wraps a non-naked nested struct, while a naked one
// writes only its field bytes (spec §4.7).
func encodeNestedStruct(buf []byte, typeName string, v any, maps *index.Maps) (int, error) {
	nested, ok := maps.NameToSchema[typeName]
	if !ok {
		return 0, &UnknownMessageTypeError{TypeName: typeName}
	}
	payload, _ := v.(map[string]any)

	if nested.IsNakedStruct {
		return encodeNaked(buf, nested, payload, maps)
	}

	nakedSz, err := nakedSize(nested, payload, maps)
	if err != nil {
		return 0, err
	}
	total := HeaderSize + nakedSz
	if len(buf) < total {
		return 0, &BufferTooSmallError{Need: total, Have: len(buf)}
	}

	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], encodeSizeAndVariant(uint32(total)))
	binary.LittleEndian.PutUint64(buf[8:16], nested.HashValue)
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(0))

	n, err := encodeNaked(buf[HeaderSize:], nested, payload, maps)
	if err != nil {
		return 0, err
	}
	return HeaderSize + n, nil
}

func writeFixedString(dst []byte, s string, n int) {
	b := []byte(s)
	if len(b) > n {
		b = b[:n]
	}
	copy(dst, b)
	for i := len(b); i < n; i++ {
		dst[i] = 0
	}
}

func encodeArray(buf []byte, f *schema.Field, v any, maps *index.Maps) (int, error) {
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

	off := 0
	if !fixed {
		if len(buf) < 4 {
			return 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(count))
		off = 4
	}

	for i := 0; i < count; i++ {
		var ev any
		if i < len(elems) {
			ev = elems[i]
		}
		n, err := encodeScalar(buf[off:], elemField, ev, maps)
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}
