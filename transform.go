package editarea

import (
	"strings"
	"unicode"
)

// applyCapitalization normalizes content according to the configured policy.
// It runs over the whole content after every accepted edit, which keeps the
// transform independent of where the edit happened.
func applyCapitalization(s string, p CapitalizationPolicy) string {
	switch p {
	case CapitalizeCharacters:
		return strings.ToUpper(s)
	case CapitalizeWords:
		return capitalizeWords(s)
	case CapitalizeSentences:
		return capitalizeSentences(s)
	default:
		return s
	}
}

// capitalizeWords uppercases the first letter of the text and every letter
// that directly follows whitespace.
func capitalizeWords(s string) string {
	runes := []rune(s)
	atBoundary := true
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if atBoundary {
				runes[i] = unicode.ToUpper(r)
			}
			atBoundary = false
			continue
		}
		atBoundary = unicode.IsSpace(r)
	}
	return string(runes)
}

// capitalizeSentences uppercases the first letter of the text and the first
// letter after sentence-ending punctuation or a line break.
func capitalizeSentences(s string) string {
	runes := []rune(s)
	pending := true
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			if pending {
				runes[i] = unicode.ToUpper(r)
			}
			pending = false
		case r == '.' || r == '!' || r == '?' || r == '\n':
			pending = true
		case unicode.IsSpace(r):
			// A space keeps the pending state from the terminator before it.
		default:
			pending = false
		}
	}
	return string(runes)
}
