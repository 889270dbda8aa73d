package cbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

func TestParseHashSerializeDeserializeRoundTrip(t *testing.T) {
	t.Parallel()

	src := `
namespace telemetry {
  enum class Status { Ok, Degraded, Failed }

  struct Reading {
    int32_t sensor_id;
    float64 value;
    Status status = Ok;
    short_string label;
  }
}
`
	sc, err := cbuf.Parse(src, nil)
	require.NoError(t, err)

	h, err := sc.ComputeHashValue([]string{"telemetry"}, "Reading")
	require.NoError(t, err)
	assert.NotZero(t, h)

	msg := &schema.Message{
		TypeName:  "telemetry::Reading",
		Timestamp: 42.0,
		Payload: map[string]any{
			"sensor_id": int32(7),
			"value":     3.25,
			"label":     "temp-1",
		},
	}

	buf, err := sc.SerializeMessage(msg)
	require.NoError(t, err)

	decoded, err := sc.DeserializeMessage(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, h, decoded.HashValue)
	assert.Equal(t, 42.0, decoded.Timestamp)
	assert.Equal(t, int32(7), decoded.Payload["sensor_id"])
	assert.Equal(t, 3.25, decoded.Payload["value"])
	assert.Equal(t, uint32(0), decoded.Payload["status"]) // Ok == 0, default applied
	assert.Equal(t, "temp-1", decoded.Payload["label"])
}

func TestParsePropagatesImports(t *testing.T) {
	t.Parallel()

	imports := map[string]string{
		"common": "struct Header { uint64_t id; }\n",
	}
	src := "#import \"common\"\nstruct a { Header h; }\n"

	sc, err := cbuf.Parse(src, imports)
	require.NoError(t, err)
	assert.Contains(t, sc.Maps.NameToSchema, "Header")
	assert.Contains(t, sc.Maps.NameToSchema, "a")
}

func TestHashDependsOnStructNameNotJustShape(t *testing.T) {
	t.Parallel()

	src := "struct a { bool b; }\nstruct c { bool b; }\n"
	sc, err := cbuf.Parse(src, nil)
	require.NoError(t, err)
	assert.NotEqual(t, sc.Maps.NameToSchema["a"].HashValue, sc.Maps.NameToSchema["c"].HashValue)
}
