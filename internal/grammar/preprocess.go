package grammar

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	importLineRe   = regexp.MustCompile(`^\s*#import\s+"([^"]+)"\s*$`)
)

// Preprocess strips comments and splices #import directives, returning
// self-contained source text with no remaining comments or import lines.
//
// imports maps an import path to the raw text it refers to. Imports are
// resolved recursively; the second and later occurrence of the same path
// is replaced with empty text so that diamond imports and cycles don't
// duplicate or loop.
func Preprocess(text string, imports map[string]string) (string, error) {
	return preprocess(text, imports, make(map[string]bool))
}

func preprocess(text string, imports map[string]string, seen map[string]bool) (string, error) {
	stripped := stripComments(text)

	lines := strings.Split(stripped, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		m := importLineRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}

		path := m[1]
		if seen[path] {
			continue
		}
		seen[path] = true

		content, ok := imports[path]
		if !ok {
			return "", &ImportNotFoundError{Path: path}
		}

		expanded, err := preprocess(content, imports, seen)
		if err != nil {
			return "", err
		}
		out = append(out, expanded)
	}

	return strings.Join(out, "\n"), nil
}

func stripComments(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	text = lineCommentRe.ReplaceAllString(text, "")
	return text
}
