// Package envfile parses loosely formatted environment files into an
// ordered token stream that preserves the original text line for line.
// Values are carried but never interpreted; the package exists to locate
// key names reliably, not to understand shell syntax.
package envfile

import "strings"

type LineType int

const (
	LineBlank LineType = iota
	LineComment
	LineAssignment
)

type Token struct {
	Type  LineType
	Raw   string
	Key   string
	Value string
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// findTopLevelEquals returns the index of the first '=' that sits outside
// single and double quotes, or -1. Quote tracking is deliberately simple:
// a quote char toggles its own state only while the other quote is closed,
// escapes are not understood, and state never crosses lines.
func findTopLevelEquals(line string) int {
	var inSingle, inDouble bool
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '=':
			if !inSingle && !inDouble {
				return i
			}
		}
	}
	return -1
}

func stripExport(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	rest, ok := strings.CutPrefix(trimmed, "export")
	if !ok || rest == "" {
		return line
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return line
	}
	return strings.TrimLeft(rest, " \t")
}

// ParseAssignment reports whether line declares a key. The key is the
// trimmed text before the first top-level '=', after an optional leading
// "export"; the value is the untrimmed remainder and is returned only so
// callers can reason about it. It is never re-emitted by this package.
func ParseAssignment(line string) (key, value string, ok bool) {
	s := stripExport(line)
	idx := findTopLevelEquals(s)
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(s[:idx])
	if key == "" {
		return "", "", false
	}
	return key, s[idx+1:], true
}

// Classify types a single line with the same blank, comment, assignment
// precedence the tokenizer applies, so line-by-line callers read the
// text exactly as a full Tokenize pass would. A commented-out
// assignment is a comment, not an assignment.
func Classify(line string) Token {
	if isBlank(line) {
		return Token{Type: LineBlank, Raw: line}
	}
	if isComment(line) {
		return Token{Type: LineComment, Raw: line}
	}
	if key, value, ok := ParseAssignment(line); ok {
		return Token{Type: LineAssignment, Raw: line, Key: key, Value: value}
	}
	// Unparseable lines are kept verbatim as comments rather than dropped.
	return Token{Type: LineComment, Raw: line}
}
