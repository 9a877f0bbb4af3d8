package morse

import (
	"strings"
	"unicode"
)

// Symbol is one element of a Morse pattern as it is played back.
type Symbol int

const (
	Dot Symbol = iota
	Dash
	Word
)

// String returns the pattern character for the symbol.
func (s Symbol) String() string {
	switch s {
	case Dot:
		return "."
	case Dash:
		return "-"
	case Word:
		return WordSeparator
	default:
		return "?"
	}
}

// Encode converts text to a space-separated Morse pattern. Lookup is
// case-insensitive and characters outside the table are dropped, so text made
// only of unsupported characters encodes to "".
func Encode(text string) string {
	codes := make([]string, 0, len(text))
	for _, r := range text {
		if code, ok := toMorse[unicode.ToUpper(r)]; ok {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, " ")
}

// Decode converts a whitespace-separated Morse pattern back to text. Tokens
// that match no table entry are dropped; a "/" token decodes to a space.
func Decode(pattern string) string {
	var sb strings.Builder
	for _, token := range strings.Fields(pattern) {
		if r, ok := fromMorse[token]; ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Symbols classifies the runes of a pattern, skipping letter gaps and
// anything that is not a dot, dash or word separator.
func Symbols(pattern string) []Symbol {
	var out []Symbol
	for _, r := range pattern {
		switch r {
		case '.':
			out = append(out, Dot)
		case '-':
			out = append(out, Dash)
		case '/':
			out = append(out, Word)
		}
	}
	return out
}
