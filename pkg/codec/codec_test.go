package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
	"github.com/verdant-robotics/cbuf/pkg/codec"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

func mustParse(t *testing.T, src string) *cbuf.Schema {
	t.Helper()
	sc, err := cbuf.Parse(src, nil)
	require.NoError(t, err)
	return sc
}

// Scenario A: simple struct, exact size, hash, and preamble round trip.
func TestSerializeSimpleStruct(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { string b; bool c; }\n")
	msg := &schema.Message{
		TypeName:  "a",
		Timestamp: 1.5,
		Payload: map[string]any{
			"b": "Hello, world!",
			"c": true,
		},
	}

	size, err := sc.SerializedMessageSize(msg)
	require.NoError(t, err)
	assert.Equal(t, 24+4+13+1, size)

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)
	assert.Len(t, buf, size)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", decoded.TypeName)
	assert.Equal(t, sc.Maps.NameToSchema["a"].HashValue, decoded.HashValue)
	assert.Equal(t, 1.5, decoded.Timestamp)
	assert.Equal(t, "Hello, world!", decoded.Payload["b"])
	assert.Equal(t, true, decoded.Payload["c"])
}

func TestDecodeSizeAndVariantFromWord(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { string b; bool c; }\n")
	msg := &schema.Message{
		TypeName: "a",
		Payload:  map[string]any{"b": "Hello, world!", "c": true},
	}
	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	// Overwrite the sizeAndVariant word to carry an explicit variant, per
	// the worked example in the wire-format description.
	word := uint32(9)<<27 | 42
	buf[4] = byte(word)
	buf[5] = byte(word >> 8)
	buf[6] = byte(word >> 16)
	buf[7] = byte(word >> 24)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), decoded.Size)
	assert.Equal(t, uint8(9), decoded.Variant)
}

// Scenario B: a naked nested struct contributes no preamble of its own.
func TestSerializeNestedNaked(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, `
struct nested @naked { string text; }
struct outer { nested n; }
`)
	msg := &schema.Message{
		TypeName: "outer",
		Payload: map[string]any{
			"n": map[string]any{"text": "hi"},
		},
	}

	size, err := sc.SerializedMessageSize(msg)
	require.NoError(t, err)
	// preamble(24) + nested naked payload: 4-byte length prefix + "hi"
	assert.Equal(t, 24+4+2, size)

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)
	assert.Len(t, buf, size)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	nested := decoded.Payload["n"].(map[string]any)
	assert.Equal(t, "hi", nested["text"])
}

// Scenario C: a non-naked nested struct carries its own preamble with a
// zero timestamp and its own hash.
func TestSerializeNestedNonNaked(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, `
struct nested { string text; }
struct outer { nested n; }
`)
	msg := &schema.Message{
		TypeName: "outer",
		Payload: map[string]any{
			"n": map[string]any{"text": "hi"},
		},
	}

	size, err := sc.SerializedMessageSize(msg)
	require.NoError(t, err)
	assert.Equal(t, 24+24+4+2, size)

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	nested := decoded.Payload["n"].(map[string]any)
	assert.Equal(t, "hi", nested["text"])
}

// Scenario D: fixed short_string arrays have no length prefix and each
// element is padded out to its full width.
func TestSerializeFixedShortStringArray(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { short_string names[2]; }\n")
	msg := &schema.Message{
		TypeName: "a",
		Payload: map[string]any{
			"names": []string{"ada", "grace"},
		},
	}

	size, err := sc.SerializedMessageSize(msg)
	require.NoError(t, err)
	assert.Equal(t, 24+16*2, size)

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	names := decoded.Payload["names"].([]string)
	assert.Equal(t, []string{"ada", "grace"}, names)
}

// Scenario E: an enum-typed field is rewritten to uint32, and its
// member-name default encodes and decodes as the member's integer value.
func TestEnumFieldDefaultAndRewrite(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, `
enum E { A, B = 10, C }
struct a { E f = B; }
`)
	f := sc.Maps.NameToSchema["a"].Definitions[0]
	assert.Equal(t, schema.Uint32, f.Type)
	assert.Equal(t, int64(10), f.DefaultValue)

	msg := &schema.Message{TypeName: "a", Payload: map[string]any{}}
	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), decoded.Payload["f"])
}

// Scenario F: canonical hash text uses a nested struct's own hash in
// place of a primitive spelling.
func TestHashOfNestedUsesChildHash(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, `
struct Y { uint32_t z; }
struct X { Y y; }
`)
	y := sc.Maps.NameToSchema["Y"]
	x := sc.Maps.NameToSchema["X"]
	assert.NotZero(t, y.HashValue)
	assert.NotZero(t, x.HashValue)
	assert.NotEqual(t, y.HashValue, x.HashValue)
}

func TestUnboundedNumericArrayRoundTrips(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { int32_t xs[]; }\n")
	msg := &schema.Message{TypeName: "a", Payload: map[string]any{"xs": []int32{1, 2, 3}}}

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, decoded.Payload["xs"])
}

func TestMissingFieldFallsBackToZeroValue(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { int32_t x; string s; bool b; }\n")
	msg := &schema.Message{TypeName: "a", Payload: map[string]any{}}

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), decoded.Payload["x"])
	assert.Equal(t, "", decoded.Payload["s"])
	assert.Equal(t, false, decoded.Payload["b"])
}

func TestFixedStringTruncatesOverlongValue(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { short_string s; }\n")
	msg := &schema.Message{TypeName: "a", Payload: map[string]any{
		"s": "this value is far longer than sixteen bytes",
	}}

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Len(t, decoded.Payload["s"].(string), 16)
}

func TestNakedTopLevelMessageRejected(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a @naked { bool b; }\n")
	_, err := sc.SerializeMessage(&schema.Message{TypeName: "a", Payload: map[string]any{}})
	require.Error(t, err)
	var nakedErr *codec.NakedMessageError
	assert.ErrorAs(t, err, &nakedErr)
}

func TestUnknownTypeNameRejected(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { bool b; }\n")
	_, err := sc.SerializeMessage(&schema.Message{TypeName: "nope", Payload: map[string]any{}})
	require.Error(t, err)
	var unknown *codec.UnknownMessageTypeError
	assert.ErrorAs(t, err, &unknown)
}

func TestDeserializeBadMagicRejected(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { bool b; }\n")
	buf := make([]byte, 24)
	_, err := sc.DeserializeMessage(buf, 0)
	require.Error(t, err)
	var badMagic *codec.BadMagicError
	assert.ErrorAs(t, err, &badMagic)
}

func TestDeserializeTruncatedBufferRejected(t *testing.T) {
	t.Parallel()

	sc := mustParse(t, "struct a { bool b; }\n")
	buf, err := sc.SerializeMessage(&schema.Message{TypeName: "a", Payload: map[string]any{"b": true}})
	require.NoError(t, err)

	_, err = sc.DeserializeMessage(buf[:len(buf)-1], 0)
	require.Error(t, err)
}

func TestAmbientMetadataHashDecodesWithoutBeingInSource(t *testing.T) {
	t.Parallel()

	// A schema that never mentions cbufmsg::metadata at all must still be
	// able to decode a frame carrying its fixed hash (spec §4.7): build
	// the frame by hand, since the encode side has nothing registered to
	// serialize against.
	sc := mustParse(t, "struct a { bool b; }\n")

	body := []byte{}
	body = append(body, leU64(42)...)   // msg_hash
	body = append(body, leU32(1)...)    // msg_name length
	body = append(body, "a"...)         // msg_name
	body = append(body, leU32(0)...)    // msg_meta length

	buf := make([]byte, 0, codec.HeaderSize+len(body))
	buf = append(buf, leU32(codec.Magic)...)
	buf = append(buf, leU32(uint32(codec.HeaderSize+len(body)))...)
	buf = append(buf, leU64(codec.MetadataHash)...)
	buf = append(buf, leU64(0)...) // timestamp bits, value 0.0
	buf = append(buf, body...)

	decoded, err := codec.DeserializeMessage(sc.Maps, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, codec.MetadataEntity.QualifiedName, decoded.TypeName)
	assert.Equal(t, uint64(42), decoded.Payload["msg_hash"])
	assert.Equal(t, "a", decoded.Payload["msg_name"])
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func leU64(v uint64) []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
