// Package piglatin bundles the chapter 8 strings drill: pig latin
// translation that survives capitalization and punctuation. Vowel-led
// words take -hay, consonant-led words move the whole leading cluster,
// and qu travels as one unit.
package piglatin

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type caseShape int

const (
	shapeLower caseShape = iota
	shapeTitle
	shapeUpper
)

// Word translates a single token. Leading and trailing punctuation stays
// in place, and the original capitalization shape carries over to the
// translated word. Tokens without letters come back unchanged.
func Word(w string) string {
	lead, core, trail := splitPunct(w)
	if core == "" {
		return w
	}

	shape := detectShape(core)
	translated := translate(strings.ToLower(core))
	return lead + applyShape(translated, shape) + trail
}

// Sentence translates every whitespace-separated token.
func Sentence(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = Word(w)
	}
	return strings.Join(words, " ")
}

// translate does the cluster move on an already lowercased word.
func translate(w string) string {
	cluster := clusterLen(w)
	switch cluster {
	case 0:
		return w + "-hay"
	case len(w):
		// No vowel to pivot on, nothing moves
		return w + "-ay"
	default:
		return w[cluster:] + "-" + w[:cluster] + "ay"
	}
}

// clusterLen returns the byte length of the leading consonant cluster.
// y counts as a vowel everywhere but the first position, and a q drags
// its u along.
func clusterLen(w string) int {
	i := 0
	for i < len(w) {
		r, size := utf8.DecodeRuneInString(w[i:])
		if isVowel(r, i == 0) {
			return i
		}
		if r == 'q' && strings.HasPrefix(w[i+size:], "u") {
			size++
		}
		i += size
	}
	return i
}

func isVowel(r rune, first bool) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		return !first
	}
	return false
}

// splitPunct peels non-letter runes off both ends, leaving anything
// between the first and last letter (apostrophes and such) in the core.
func splitPunct(w string) (lead, core, trail string) {
	start := strings.IndexFunc(w, unicode.IsLetter)
	if start < 0 {
		return w, "", ""
	}
	end := strings.LastIndexFunc(w, unicode.IsLetter)
	_, size := utf8.DecodeRuneInString(w[end:])
	end += size
	return w[:start], w[start:end], w[end:]
}

func detectShape(w string) caseShape {
	letters, uppers := 0, 0
	firstUpper := false
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
			if letters == 1 {
				firstUpper = true
			}
		}
	}
	switch {
	case firstUpper && uppers == 1:
		return shapeTitle
	case letters > 0 && uppers == letters:
		return shapeUpper
	default:
		return shapeLower
	}
}

func applyShape(w string, shape caseShape) string {
	switch shape {
	case shapeUpper:
		return cases.Upper(language.English).String(w)
	case shapeTitle:
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			return w
		}
		return cases.Title(language.English).String(string(r)) + w[size:]
	default:
		return w
	}
}
