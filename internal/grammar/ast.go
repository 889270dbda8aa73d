package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is the root grammar production: an unordered sequence of namespace
// blocks, constants, enums, and structs (spec §4.2).
type File struct {
	Pos      lexer.Position
	Elements []*Element `parser:"@@*"`
}

// Element is any top-level (or namespace-body) declaration. Namespace is
// legal here too so the grammar accepts (and the analyzer rejects) a
// nested namespace block -- see spec §4.2's NestedNamespace.
type Element struct {
	Pos       lexer.Position
	Namespace *NamespaceDef `parser:"  'namespace' @@"`
	Const     *ConstDef     `parser:"| 'const' @@"`
	Enum      *EnumDef      `parser:"| 'enum' @@"`
	Struct    *StructDef    `parser:"| 'struct' @@"`
}

// NamespaceDef is `namespace IDENT { ... }`.
type NamespaceDef struct {
	Pos  lexer.Position
	Name string     `parser:"@Ident '{'"`
	Body []*Element `parser:"@@* '}'"`
}

// ConstDef is `const TYPE IDENT = RHS;`.
type ConstDef struct {
	Pos   lexer.Position
	Type  string `parser:"@TypeWord"`
	Name  string `parser:"@Ident '='"`
	Value *RHS   `parser:"@@ ';'"`
}

// EnumDef is `enum [class] IDENT { IDENT[ = NUMBER], ... [,] }`.
type EnumDef struct {
	Pos     lexer.Position
	IsClass bool          `parser:"( @Class )?"`
	Name    string        `parser:"@Ident '{'"`
	Members []*EnumMember `parser:"( @@ ( ',' @@ )* ','? )? '}'"`
}

// EnumMember is a single `IDENT[ = NUMBER]` inside an enum body.
type EnumMember struct {
	Pos   lexer.Position
	Name  string   `parser:"@Ident"`
	Value *float64 `parser:"( '=' @Number )?"`
}

// StructDef is `struct IDENT [@naked] { field; ... }`.
type StructDef struct {
	Pos    lexer.Position
	Name   string      `parser:"@Ident"`
	Naked  bool        `parser:"( @Naked )?"`
	Fields []*FieldDef `parser:"'{' @@* '}'"`
}

// FieldDef is `TYPE IDENT [ARRAY] [= RHS];`.
type FieldDef struct {
	Pos     lexer.Position
	Type    *FieldType `parser:"@@"`
	Name    string     `parser:"@Ident"`
	Array   *ArrayDef  `parser:"( @@ )?"`
	Default *RHS       `parser:"( '=' @@ )? ';'"`
}

// FieldType is either a primitive spelling or a (possibly qualified)
// complex type reference.
type FieldType struct {
	Pos       lexer.Position
	Primitive string         `parser:"(  @TypeWord"`
	Complex   *QualifiedName `parser:" | @@ )"`
}

// QualifiedName is `IDENT ( :: IDENT )*`.
type QualifiedName struct {
	Pos   lexer.Position
	Parts []string `parser:"@Ident ( DoubleColon @Ident )*"`
}

// String renders the qualified name using cbuf's "::" separator.
func (q *QualifiedName) String() string {
	return strings.Join(q.Parts, "::")
}

// ArrayDef is `[]`, `[N]`, or `[N] @compact`.
type ArrayDef struct {
	Pos     lexer.Position
	Length  *ArithExpr `parser:"'[' ( @@ )? ']'"`
	Compact bool       `parser:"( @Compact )?"`
}

// RHS is a field/const value: a signed number, a string literal, a brace
// array/struct literal, or a bare identifier (an enum member reference, or
// the literal words true/false). Typing and further validation happens in
// the semantic analyzer, not in the grammar.
type RHS struct {
	Pos      lexer.Position
	Negative bool      `parser:"( @'-' )?"`
	Number   *float64  `parser:"( @Number"`
	String   *string   `parser:"| @String"`
	Array    *ArrayLit `parser:"| @@"`
	Ident    *string   `parser:"| @Ident )"`
}

// ArrayLit is a brace-delimited literal sequence: `{ a, b, c }`.
type ArrayLit struct {
	Pos      lexer.Position
	Elements []*RHS `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

// ArithExpr is a constant-folded arithmetic expression over + and - with
// higher-precedence * and / (ArithTerm), used for array length `[N]`.
type ArithExpr struct {
	Pos  lexer.Position
	Head *ArithTerm   `parser:"@@"`
	Rest []*ArithAddOp `parser:"@@*"`
}

type ArithAddOp struct {
	Op   string     `parser:"@('+' | '-')"`
	Term *ArithTerm `parser:"@@"`
}

type ArithTerm struct {
	Head *ArithFactor `parser:"@@"`
	Rest []*ArithMulOp `parser:"@@*"`
}

type ArithMulOp struct {
	Op     string       `parser:"@('*' | '/')"`
	Factor *ArithFactor `parser:"@@"`
}

// ArithFactor is a numeric literal or a parenthesized sub-expression.
type ArithFactor struct {
	Pos    lexer.Position
	Number *float64   `parser:"(  @Number"`
	Paren  *ArithExpr `parser:" | '(' @@ ')' )"`
}
