package codec

// Magic is the 4-byte frame marker 'TNDV', stored little-endian so it reads
// as bytes 54 4E 44 56 at offset 0 (spec §4.7).
const Magic uint32 = 0x56444E54

// HeaderSize is the fixed width of a framed preamble: magic, sizeAndVariant,
// hash, timestamp (spec §4.7).
const HeaderSize = 24

const variantFlag = 0x08000000 // bit 27
const variantSizeMask = 0x07FFFFFF
const plainSizeMask = 0x7FFFFFFF

// decodeSizeAndVariant splits a preamble's second word into a frame size
// and a variant nibble (spec §4.7, testable property #5). If bit 27 is
// clear the whole word below bit 31 is the size and variant is 0.
func decodeSizeAndVariant(word uint32) (size uint32, variant uint8) {
	if word&variantFlag != 0 {
		return word & variantSizeMask, uint8((word >> 27) & 0x0F)
	}
	return word & plainSizeMask, 0
}

// encodeSizeAndVariant packs a frame size for the encoder, which always
// writes variant 0 (spec §4.7: the serializer never sets the variant bit).
func encodeSizeAndVariant(size uint32) uint32 {
	return size & plainSizeMask
}
