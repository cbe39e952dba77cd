package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Alphabet is the set of letters kept by Normalize. Hyphen and space are kept as separators.
const Alphabet = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"

// Normalize lowercases text and drops every rune outside Alphabet, hyphen and space.
func Normalize(text string) string {
	return cleanText(text, false)
}

// NormalizeKeepDigits is Normalize that also keeps ASCII digits. Used for price slots.
func NormalizeKeepDigits(text string) string {
	return cleanText(text, true)
}

func cleanText(text string, keepDigits bool) string {
	if text == "" {
		return ""
	}

	text = cases.Lower(language.Russian).String(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isAlphabetLetter(r), r == '-', r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case keepDigits && r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

func isAlphabetLetter(r rune) bool {
	return strings.ContainsRune(Alphabet, r)
}

// IsMeaningful reports whether the normalized text has a token longer than two letters
// made of alphabet letters only.
func IsMeaningful(text string) bool {
	for _, token := range strings.Fields(Normalize(text)) {
		if len([]rune(token)) <= 2 {
			continue
		}
		if strings.IndexFunc(token, func(r rune) bool { return !isAlphabetLetter(r) }) == -1 {
			return true
		}
	}
	return false
}

func extractTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
