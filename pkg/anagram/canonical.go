package anagram

import (
	"slices"
	"strings"
	"unicode"
)

// Key identifies a permutation class: the code points of a word sorted
// ascending and concatenated.
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// Normalize trims surrounding whitespace and lowercases each code point with
// the simple Unicode case mapping. The result may be empty.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.Map(unicode.ToLower, trimmed)
}

// Canonicalize maps a normalized word to its permutation-class key.
// It never fails: digits, punctuation and combining marks are ordinary
// members of the multiset.
func Canonicalize(word string) Key {
	runes := []rune(word)
	slices.Sort(runes)
	return Key(string(runes))
}

// KeyOf normalizes raw and returns its key. ok is false when raw is blank.
func KeyOf(raw string) (key Key, word string, ok bool) {
	word = Normalize(raw)
	if word == "" {
		return "", "", false
	}
	return Canonicalize(word), word, true
}
