package codec

import (
	"encoding/binary"
	"math"
)

// The decodeXxxArray helpers below materialize numeric primitive arrays as
// plain Go typed slices. The wire layout is a flat, contiguous run of
// fixed-width little-endian values, starting at whatever offset the field
// lands on (spec §4.8's "typed-array" fast path),
// but this decoder always copies into a fresh slice rather than aliasing
// the source buffer: see DESIGN.md for why the zero-copy variant was
// dropped.

func decodeInt8Array(buf []byte, off, count int) ([]int8, int, error) {
	need := off + count
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]int8, count)
	for i := 0; i < count; i++ {
		out[i] = int8(buf[off+i])
	}
	return out, off + count, nil
}

func decodeUint8Array(buf []byte, off, count int) ([]uint8, int, error) {
	need := off + count
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]uint8, count)
	copy(out, buf[off:need])
	return out, off + count, nil
}

func decodeInt16Array(buf []byte, off, count int) ([]int16, int, error) {
	need := off + count*2
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]int16, count)
	for i := 0; i < count; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[off+i*2:]))
	}
	return out, need, nil
}

func decodeUint16Array(buf []byte, off, count int) ([]uint16, int, error) {
	need := off + count*2
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = binary.LittleEndian.Uint16(buf[off+i*2:])
	}
	return out, need, nil
}

func decodeInt32Array(buf []byte, off, count int) ([]int32, int, error) {
	need := off + count*4
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]int32, count)
	for i := 0; i < count; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(buf[off+i*4:]))
	}
	return out, need, nil
}

func decodeUint32Array(buf []byte, off, count int) ([]uint32, int, error) {
	need := off + count*4
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		out[i] = binary.LittleEndian.Uint32(buf[off+i*4:])
	}
	return out, need, nil
}

func decodeInt64Array(buf []byte, off, count int) ([]int64, int, error) {
	need := off + count*8
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]int64, count)
	for i := 0; i < count; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(buf[off+i*8:]))
	}
	return out, need, nil
}

func decodeUint64Array(buf []byte, off, count int) ([]uint64, int, error) {
	need := off + count*8
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		out[i] = binary.LittleEndian.Uint64(buf[off+i*8:])
	}
	return out, need, nil
}

func decodeFloat32Array(buf []byte, off, count int) ([]float32, int, error) {
	need := off + count*4
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+i*4:]))
	}
	return out, need, nil
}

func decodeFloat64Array(buf []byte, off, count int) ([]float64, int, error) {
	need := off + count*8
	if len(buf) < need {
		return nil, 0, &BufferTooSmallError{Need: need, Have: len(buf)}
	}
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[off+i*8:]))
	}
	return out, need, nil
}
