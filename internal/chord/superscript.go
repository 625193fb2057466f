// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chord

import (
	"strings"
	"unicode"
)

// FixSuperscript folds a superscript line back into the chord line below it.
// pdftotext sometimes emits the "6" of A⁶/B on its own line:
//
//	" 6"
//	"A /B"
//
// which merges into "A6/B". Where both lines carry a character in the same
// column, both are kept, superscript first. Past the end of the chord line
// the superscript line is copied so later columns stay aligned.
func FixSuperscript(superscript, chords string) string {
	s := []rune(superscript)
	c := []rune(chords)

	n := max(len(s), len(c))
	var b strings.Builder
	for i := 0; i < n; i++ {
		var sc, cc rune
		hasS, hasC := i < len(s), i < len(c)
		if hasS {
			sc = s[i]
		}
		if hasC {
			cc = c[i]
		}

		switch {
		case !hasS:
			b.WriteRune(cc)
		case sc == ' ':
			if hasC {
				b.WriteRune(cc)
			} else {
				b.WriteRune(' ')
			}
		case hasC && cc == ' ':
			b.WriteRune(sc)
		default:
			b.WriteRune(sc)
			if hasC {
				b.WriteRune(cc)
			}
		}
	}
	return b.String()
}

const superscriptDigits = "⁰¹²³⁴⁵⁶⁷⁸⁹"

// IsSuperscriptLine reports whether line, once trimmed, is nothing but
// digits. Such a line is held back and merged into the next chord line.
func IsSuperscriptLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	for _, r := range t {
		if !unicode.IsDigit(r) && !strings.ContainsRune(superscriptDigits, r) {
			return false
		}
	}
	return true
}
