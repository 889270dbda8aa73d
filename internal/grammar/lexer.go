package grammar

import (
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// typeSpellings enumerates every accepted spelling of a cbuf primitive type
// (see spec §4.5). short_string is included here too: it is the one
// spelling that also carries sugar (upperBound=16), resolved in the
// semantic analyzer rather than the lexer.
var typeSpellings = []string{
	"bool",
	"s8", "int8", "int8_t",
	"u8", "uint8", "uint8_t",
	"s16", "int16", "int16_t",
	"u16", "uint16", "uint16_t",
	"s32", "int32", "int32_t", "int",
	"u32", "uint32", "uint32_t",
	"s64", "int64", "int64_t",
	"u64", "uint64", "uint64_t",
	"f32", "float32", "float",
	"f64", "float64", "double",
	"short_string", "string",
}

// typeWordPattern builds a regexp alternation ordered longest-spelling-first
// so that, e.g., "uint8_t" isn't cut short by an earlier "uint8" match: Go's
// regexp alternation picks the first matching branch, not the longest one.
func typeWordPattern() string {
	sorted := append([]string(nil), typeSpellings...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return `\b(` + strings.Join(sorted, "|") + `)\b`
}

var cbufLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "TypeWord", Pattern: typeWordPattern()},
	{Name: "Namespace", Pattern: `\bnamespace\b`},
	{Name: "Const", Pattern: `\bconst\b`},
	{Name: "Enum", Pattern: `\benum\b`},
	{Name: "Class", Pattern: `\bclass\b`},
	{Name: "Struct", Pattern: `\bstruct\b`},
	{Name: "Naked", Pattern: `@naked\b`},
	{Name: "Compact", Pattern: `@compact\b`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Punct", Pattern: `[{}\[\]();,=+\-*/]`},
})
