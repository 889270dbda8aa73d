package codec

import (
	"encoding/binary"
	"math"

	"github.com/verdant-robotics/cbuf/pkg/index"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// DeserializeMessage reads one framed message starting at offset in buf
// (spec §4.7, §4.10). The hash resolution falls back to the ambient
// cbufmsg::metadata definition when the caller's index doesn't carry it.
func DeserializeMessage(maps *index.Maps, buf []byte, offset int) (*schema.Message, error) {
	if offset < 0 || offset+HeaderSize > len(buf) {
		return nil, &BufferTooSmallError{Need: offset + HeaderSize, Have: len(buf)}
	}
	b := buf[offset:]

	magic := binary.LittleEndian.Uint32(b[0:4])
	if magic != Magic {
		return nil, &BadMagicError{Got: magic}
	}
	word := binary.LittleEndian.Uint32(b[4:8])
	size, variant := decodeSizeAndVariant(word)
	hashValue := binary.LittleEndian.Uint64(b[8:16])
	timestamp := math.Float64frombits(binary.LittleEndian.Uint64(b[16:24]))

	if int(size) > len(b) {
		return nil, &SizeExceedsBufferError{Size: size, Available: len(b)}
	}

	def, ok := maps.HashToSchema[hashValue]
	if !ok {
		if hashValue == MetadataHash {
			def = MetadataEntity
		} else {
			return nil, &HashNotFoundError{HashValue: hashValue}
		}
	}

	payload := make(map[string]any, len(def.Definitions))
	consumed, err := decodeNaked(b[HeaderSize:size], def, maps, payload)
	if err != nil {
		return nil, err
	}
	if uint32(HeaderSize+consumed) != size {
		return nil, &SizeMismatchError{Expected: size, Got: uint32(HeaderSize + consumed)}
	}

	return &schema.Message{
		TypeName:  def.QualifiedName,
		Size:      size,
		Variant:   variant,
		HashValue: hashValue,
		Timestamp: timestamp,
		Payload:   payload,
	}, nil
}

func decodeNaked(buf []byte, def *schema.Entity, maps *index.Maps, out map[string]any) (int, error) {
	off := 0
	for _, f := range def.Definitions {
		var (
			v   any
			n   int
			err error
		)
		if f.IsArray {
			v, n, err = decodeArray(buf[off:], f, maps)
		} else {
			v, n, err = decodeScalar(buf[off:], f, maps)
		}
		if err != nil {
			return 0, err
		}
		out[f.Name] = v
		off += n
	}
	return off, nil
}

func decodeScalar(buf []byte, f *schema.Field, maps *index.Maps) (any, int, error) {
	if f.IsComplex {
		return decodeNestedStruct(buf, f.Type, maps)
	}

	switch f.Type {
	case schema.Bool:
		if len(buf) < 1 {
			return nil, 0, &BufferTooSmallError{Need: 1, Have: len(buf)}
		}
		return buf[0] != 0, 1, nil
	case schema.Int8:
		if len(buf) < 1 {
			return nil, 0, &BufferTooSmallError{Need: 1, Have: len(buf)}
		}
		return int8(buf[0]), 1, nil
	case schema.Uint8:
		if len(buf) < 1 {
			return nil, 0, &BufferTooSmallError{Need: 1, Have: len(buf)}
		}
		return buf[0], 1, nil
	case schema.Int16:
		if len(buf) < 2 {
			return nil, 0, &BufferTooSmallError{Need: 2, Have: len(buf)}
		}
		return int16(binary.LittleEndian.Uint16(buf[0:2])), 2, nil
	case schema.Uint16:
		if len(buf) < 2 {
			return nil, 0, &BufferTooSmallError{Need: 2, Have: len(buf)}
		}
		return binary.LittleEndian.Uint16(buf[0:2]), 2, nil
	case schema.Int32:
		if len(buf) < 4 {
			return nil, 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		return int32(binary.LittleEndian.Uint32(buf[0:4])), 4, nil
	case schema.Uint32:
		if len(buf) < 4 {
			return nil, 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		return binary.LittleEndian.Uint32(buf[0:4]), 4, nil
	case schema.Int64:
		if len(buf) < 8 {
			return nil, 0, &BufferTooSmallError{Need: 8, Have: len(buf)}
		}
		return int64(binary.LittleEndian.Uint64(buf[0:8])), 8, nil
	case schema.Uint64:
		if len(buf) < 8 {
			return nil, 0, &BufferTooSmallError{Need: 8, Have: len(buf)}
		}
		return binary.LittleEndian.Uint64(buf[0:8]), 8, nil
	case schema.Float32:
		if len(buf) < 4 {
			return nil, 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])), 4, nil
	case schema.Float64:
		if len(buf) < 8 {
			return nil, 0, &BufferTooSmallError{Need: 8, Have: len(buf)}
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[0:8])), 8, nil
	case schema.String:
		if f.UpperBound > 0 {
			if len(buf) < f.UpperBound {
				return nil, 0, &BufferTooSmallError{Need: f.UpperBound, Have: len(buf)}
			}
			return readFixedString(buf[:f.UpperBound]), f.UpperBound, nil
		}
		if len(buf) < 4 {
			return nil, 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		n := int(binary.LittleEndian.Uint32(buf[0:4]))
		if len(buf) < 4+n {
			return nil, 0, &BufferTooSmallError{Need: 4 + n, Have: len(buf)}
		}
		return string(buf[4 : 4+n]), 4 + n, nil
	default:
		return nil, 0, &UnsupportedTypeError{Type: f.Type}
	}
}

// readFixedString returns the text up to the first NUL byte, or the whole
// buffer if the field's content exactly fills it with no terminator (spec
// §4.8 boundary: a too-long string is truncated, not null-terminated).
func readFixedString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}

func decodeNestedStruct(buf []byte, typeName string, maps *index.Maps) (any, int, error) {
	nested, ok := maps.NameToSchema[typeName]
	if !ok {
		return nil, 0, &UnknownMessageTypeError{TypeName: typeName}
	}

	if nested.IsNakedStruct {
		sub := make(map[string]any, len(nested.Definitions))
		n, err := decodeNaked(buf, nested, maps, sub)
		if err != nil {
			return nil, 0, err
		}
		return sub, n, nil
	}

	if len(buf) < HeaderSize {
		return nil, 0, &BufferTooSmallError{Need: HeaderSize, Have: len(buf)}
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return nil, 0, &BadMagicError{Got: magic}
	}
	word := binary.LittleEndian.Uint32(buf[4:8])
	size, _ := decodeSizeAndVariant(word)
	if int(size) > len(buf) {
		return nil, 0, &SizeExceedsBufferError{Size: size, Available: len(buf)}
	}

	sub := make(map[string]any, len(nested.Definitions))
	n, err := decodeNaked(buf[HeaderSize:size], nested, maps, sub)
	if err != nil {
		return nil, 0, err
	}
	if uint32(HeaderSize+n) != size {
		return nil, 0, &SizeMismatchError{Expected: size, Got: uint32(HeaderSize + n)}
	}
	return sub, HeaderSize + n, nil
}

func decodeArray(buf []byte, f *schema.Field, maps *index.Maps) (any, int, error) {
	elemField := &schema.Field{Name: f.Name, Type: f.Type, IsComplex: f.IsComplex, UpperBound: f.UpperBound}

	off := 0
	fixed := f.ArrayLength > 0
	count := f.ArrayLength
	if !fixed {
		if len(buf) < 4 {
			return nil, 0, &BufferTooSmallError{Need: 4, Have: len(buf)}
		}
		count = int(binary.LittleEndian.Uint32(buf[0:4]))
		off = 4
	}

	if !f.IsComplex {
		switch f.Type {
		case schema.Bool:
			out := make([]bool, count)
			for i := 0; i < count; i++ {
				v, n, err := decodeScalar(buf[off:], elemField, maps)
				if err != nil {
					return nil, 0, err
				}
				out[i] = v.(bool)
				off += n
			}
			return out, off, nil
		case schema.String:
			out := make([]string, count)
			for i := 0; i < count; i++ {
				v, n, err := decodeScalar(buf[off:], elemField, maps)
				if err != nil {
					return nil, 0, err
				}
				out[i] = v.(string)
				off += n
			}
			return out, off, nil
		case schema.Int8:
			return decodeInt8Array(buf, off, count)
		case schema.Uint8:
			return decodeUint8Array(buf, off, count)
		case schema.Int16:
			return decodeInt16Array(buf, off, count)
		case schema.Uint16:
			return decodeUint16Array(buf, off, count)
		case schema.Int32:
			return decodeInt32Array(buf, off, count)
		case schema.Uint32:
			return decodeUint32Array(buf, off, count)
		case schema.Int64:
			return decodeInt64Array(buf, off, count)
		case schema.Uint64:
			return decodeUint64Array(buf, off, count)
		case schema.Float32:
			return decodeFloat32Array(buf, off, count)
		case schema.Float64:
			return decodeFloat64Array(buf, off, count)
		}
	}

	out := make([]map[string]any, count)
	for i := 0; i < count; i++ {
		v, n, err := decodeScalar(buf[off:], elemField, maps)
		if err != nil {
			return nil, 0, err
		}
		out[i] = v.(map[string]any)
		off += n
	}
	return out, off, nil
}
