package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-robotics/cbuf/internal/analyzer"
	"github.com/verdant-robotics/cbuf/internal/grammar"
	"github.com/verdant-robotics/cbuf/pkg/hash"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

func analyzeSource(t *testing.T, src string) []*schema.Entity {
	t.Helper()
	file, err := grammar.Parse(src)
	require.NoError(t, err)
	entities, err := analyzer.Analyze(file)
	require.NoError(t, err)
	return entities
}

func TestComputeAllMatchesKnownVector(t *testing.T) {
	t.Parallel()

	entities := analyzeSource(t, "struct a { bool b; }\n")
	require.NoError(t, hash.ComputeAll(entities))
	assert.Equal(t, uint64(3808120302725858088), entities[0].HashValue)
}

func TestComputeAllIsStableAcrossRuns(t *testing.T) {
	t.Parallel()

	a := analyzeSource(t, "struct a { bool b; int32_t c; }\n")
	b := analyzeSource(t, "struct a { bool b; int32_t c; }\n")
	require.NoError(t, hash.ComputeAll(a))
	require.NoError(t, hash.ComputeAll(b))
	assert.Equal(t, a[0].HashValue, b[0].HashValue)
}

func TestComputeAllDiffersOnFieldNameChange(t *testing.T) {
	t.Parallel()

	a := analyzeSource(t, "struct a { bool b; }\n")
	b := analyzeSource(t, "struct a { bool z; }\n")
	require.NoError(t, hash.ComputeAll(a))
	require.NoError(t, hash.ComputeAll(b))
	assert.NotEqual(t, a[0].HashValue, b[0].HashValue)
}

func TestComputeAllNestedStructDependsOnChildHash(t *testing.T) {
	t.Parallel()

	outer := analyzeSource(t, `
struct Point { int32_t x; int32_t y; }
struct Line { Point a; Point b; }
`)
	require.NoError(t, hash.ComputeAll(outer))

	changed := analyzeSource(t, `
struct Point { int32_t x; int32_t y; int32_t z; }
struct Line { Point a; Point b; }
`)
	require.NoError(t, hash.ComputeAll(changed))

	var lineA, lineB *schema.Entity
	for _, e := range outer {
		if e.Name == "Line" {
			lineA = e
		}
	}
	for _, e := range changed {
		if e.Name == "Line" {
			lineB = e
		}
	}
	require.NotNil(t, lineA)
	require.NotNil(t, lineB)
	assert.NotEqual(t, lineA.HashValue, lineB.HashValue)
}

func TestComputeAllCyclicSchemaRejected(t *testing.T) {
	t.Parallel()

	// The analyzer itself allows forward references; a genuine field cycle
	// (a struct embedding itself) is caught at hashing time because hashing
	// that field would require the struct's own not-yet-computed hash.
	file, err := grammar.Parse(`
namespace x {
  struct a { a self; }
}
`)
	require.NoError(t, err)
	entities, err := analyzer.Analyze(file)
	require.NoError(t, err)

	err = hash.ComputeAll(entities)
	require.Error(t, err)
	var cyclic *hash.CyclicSchemaError
	assert.ErrorAs(t, err, &cyclic)
}

func TestComputeHashValueResolvesByNamespace(t *testing.T) {
	t.Parallel()

	entities := analyzeSource(t, `
namespace outer {
  struct a { bool b; }
}
`)
	require.NoError(t, hash.ComputeAll(entities))

	byName := map[string]*schema.Entity{}
	for _, e := range entities {
		byName[e.QualifiedName] = e
	}

	h, err := hash.ComputeHashValue(byName, []string{"outer"}, "a")
	require.NoError(t, err)
	assert.Equal(t, entities[0].HashValue, h)
}

func TestComputeHashValueUnknownTypeErrors(t *testing.T) {
	t.Parallel()

	byName := map[string]*schema.Entity{}
	_, err := hash.ComputeHashValue(byName, nil, "nope")
	require.Error(t, err)
	var notFound *hash.HashNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
