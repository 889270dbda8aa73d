package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdant-robotics/cbuf/pkg/schema"
)

func TestCanonicalPrimitiveAcceptsAllSpellings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tag        string
		upperBound int
	}{
		"u8":           {schema.Uint8, 0},
		"uint8_t":      {schema.Uint8, 0},
		"int":          {schema.Int32, 0},
		"double":       {schema.Float64, 0},
		"short_string": {schema.String, schema.ShortStringUpperBound},
		"string":       {schema.String, 0},
	}

	for spelling, want := range tcs {
		t.Run(spelling, func(t *testing.T) {
			t.Parallel()
			tag, upperBound, ok := schema.CanonicalPrimitive(spelling)
			assert.True(t, ok)
			assert.Equal(t, want.tag, tag)
			assert.Equal(t, want.upperBound, upperBound)
		})
	}
}

func TestCanonicalPrimitiveRejectsUnknownSpelling(t *testing.T) {
	t.Parallel()

	_, _, ok := schema.CanonicalPrimitive("Widget")
	assert.False(t, ok)
}

func TestCSpellingDistinguishesShortStringFromPlainString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "VString<15>", schema.CSpelling(schema.String, schema.ShortStringUpperBound))
	assert.Equal(t, "std::string", schema.CSpelling(schema.String, 0))
}

func TestCSpellingMatchesCTypeNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uint8_t", schema.CSpelling(schema.Uint8, 0))
	assert.Equal(t, "int64_t", schema.CSpelling(schema.Int64, 0))
	assert.Equal(t, "float", schema.CSpelling(schema.Float32, 0))
	assert.Equal(t, "double", schema.CSpelling(schema.Float64, 0))
}
