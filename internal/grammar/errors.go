package grammar

import "fmt"

// SyntaxError reports a position-tagged failure from the underlying lexer or parser.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Line, e.Col, e.Msg)
}

// AmbiguousParseError is returned when a source text admits more than one
// parse tree. The grammar is written to be unambiguous, so this indicates a
// grammar defect rather than a malformed input.
type AmbiguousParseError struct {
	Msg string
}

func (e *AmbiguousParseError) Error() string {
	return "ambiguous parse: " + e.Msg
}

// EmptyParseError is returned when a source text parses to zero top-level
// elements (e.g. after preprocessing strips every declaration away).
type EmptyParseError struct{}

func (e *EmptyParseError) Error() string {
	return "empty parse: source contains no namespaces, constants, enums, or structs"
}

// ImportNotFoundError is returned by Preprocess when a #import path has no
// entry in the caller-supplied import mapping.
type ImportNotFoundError struct {
	Path string
}

func (e *ImportNotFoundError) Error() string {
	return fmt.Sprintf("import not found: %q", e.Path)
}
