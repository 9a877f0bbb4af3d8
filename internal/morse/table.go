// Package morse holds the Morse symbol table and the text codec built on it.
//
// The table covers A–Z, 0–9 and the space character, which maps to the word
// separator "/". Both directions are derived from a single canonical map at
// package initialisation and never mutated afterwards, so every function here
// is safe for concurrent use without locking.
package morse

import (
	"slices"

	"github.com/samber/lo"
)

// WordSeparator is the pattern the space character encodes to.
const WordSeparator = "/"

var toMorse = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	' ': WordSeparator,
}

var fromMorse = lo.Invert(toMorse)

// Lookup returns the pattern for an uppercase letter, digit or space.
func Lookup(r rune) (string, bool) {
	p, ok := toMorse[r]
	return p, ok
}

// Reverse returns the character a single pattern token stands for.
func Reverse(token string) (rune, bool) {
	r, ok := fromMorse[token]
	return r, ok
}

// Alphabet returns the supported characters in ascending order.
func Alphabet() []rune {
	keys := lo.Keys(toMorse)
	slices.Sort(keys)
	return keys
}
