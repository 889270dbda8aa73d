package codec

import "fmt"

// UnknownMessageTypeError is returned when a type name does not resolve to
// a (non-enum) struct entity in the schema index.
type UnknownMessageTypeError struct {
	TypeName string
}

func (e *UnknownMessageTypeError) Error() string {
	return fmt.Sprintf("codec: unknown message type %q", e.TypeName)
}

// NakedMessageError is returned when a naked struct is used where a framed
// top-level message is required (spec §4.7: naked structs carry no
// preamble and cannot stand alone on the wire).
type NakedMessageError struct {
	TypeName string
}

func (e *NakedMessageError) Error() string {
	return fmt.Sprintf("codec: %q is a naked struct and cannot be a top-level message", e.TypeName)
}

// BufferTooSmallError is returned whenever a decode step runs past the end
// of the supplied buffer.
type BufferTooSmallError struct {
	Need int
	Have int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("codec: buffer too small, need %d bytes, have %d", e.Need, e.Have)
}

// BadMagicError is returned when a preamble's magic word doesn't match.
type BadMagicError struct {
	Got uint32
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("codec: bad magic 0x%08X", e.Got)
}

// SizeExceedsBufferError is returned when a preamble declares a frame size
// larger than the bytes actually available.
type SizeExceedsBufferError struct {
	Size      uint32
	Available int
}

func (e *SizeExceedsBufferError) Error() string {
	return fmt.Sprintf("codec: declared size %d exceeds available %d bytes", e.Size, e.Available)
}

// SizeMismatchError is returned when the bytes actually consumed decoding a
// frame's body don't match the size its preamble declared.
type SizeMismatchError struct {
	Expected uint32
	Got      uint32
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("codec: preamble declared size %d but decoded %d bytes", e.Expected, e.Got)
}

// HashNotFoundError is returned when a preamble's hash does not match any
// known struct, and isn't the ambient cbufmsg::metadata hash either.
type HashNotFoundError struct {
	HashValue uint64
}

func (e *HashNotFoundError) Error() string {
	return fmt.Sprintf("codec: no schema registered for hash %d", e.HashValue)
}

// UnsupportedTypeError is returned when a field carries a type tag the
// codec has no encode/decode rule for.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("codec: unsupported field type %q", e.Type)
}
