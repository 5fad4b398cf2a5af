package envfile

import "strings"

// SplitLines splits text on \n after normalizing \r\n line endings. A
// single empty element produced by a trailing newline is dropped, so
// "A=1\n" yields one line, not two.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// Tokenize classifies every line of text independently. Joining the
// resulting tokens' Raw fields with \n reproduces the input, modulo
// line-ending and trailing-newline normalization.
func Tokenize(text string) []Token {
	lines := SplitLines(text)
	tokens := make([]Token, 0, len(lines))
	for _, line := range lines {
		tokens = append(tokens, Classify(line))
	}
	return tokens
}

// LeadingBlock returns the raw lines from the start of the stream up to,
// but not including, the first assignment. A stream with no assignments is
// all leading block.
func LeadingBlock(tokens []Token) []string {
	var lines []string
	for _, tok := range tokens {
		if tok.Type == LineAssignment {
			return lines
		}
		lines = append(lines, tok.Raw)
	}
	return lines
}

// KeySet collects the keys of every assignment token.
func KeySet(tokens []Token) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokens {
		if tok.Type == LineAssignment {
			set[tok.Key] = true
		}
	}
	return set
}
