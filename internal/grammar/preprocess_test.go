package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-robotics/cbuf/internal/grammar"
)

func TestPreprocessStripsComments(t *testing.T) {
	t.Parallel()

	src := "// leading comment\nstruct a { /* inline */ bool b; // trailing\n}\n"
	out, err := grammar.Preprocess(src, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "//")
	assert.NotContains(t, out, "/*")
	assert.Contains(t, out, "struct a")
	assert.Contains(t, out, "bool b;")
}

func TestPreprocessBlockCommentSpansLines(t *testing.T) {
	t.Parallel()

	src := "struct a {\n/* this\nspans\nlines */\nbool b;\n}\n"
	out, err := grammar.Preprocess(src, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "spans")
}

func TestPreprocessSplicesImport(t *testing.T) {
	t.Parallel()

	src := "#import \"common\"\nstruct a { bool b; }\n"
	imports := map[string]string{"common": "const int32 kFoo = 1;\n"}

	out, err := grammar.Preprocess(src, imports)
	require.NoError(t, err)
	assert.Contains(t, out, "kFoo")
	assert.Contains(t, out, "struct a")
}

func TestPreprocessUnknownImportErrors(t *testing.T) {
	t.Parallel()

	_, err := grammar.Preprocess("#import \"missing\"\n", nil)
	require.Error(t, err)
	var notFound *grammar.ImportNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestPreprocessImportIsIdempotentUnderRepeatedImports(t *testing.T) {
	t.Parallel()

	src := "#import \"common\"\n#import \"common\"\nstruct a { bool b; }\n"
	imports := map[string]string{"common": "const int32 kFoo = 1;\n"}

	out, err := grammar.Preprocess(src, imports)
	require.NoError(t, err)
	assert.Equal(t, 1, countOccurrences(out, "kFoo"))
}

func TestPreprocessImportCycleDoesNotInfiniteLoop(t *testing.T) {
	t.Parallel()

	imports := map[string]string{
		"a": "#import \"b\"\n",
		"b": "#import \"a\"\n",
	}

	_, err := grammar.Preprocess("#import \"a\"\n", imports)
	require.NoError(t, err)
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
