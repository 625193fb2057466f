// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chord

import "strings"

// Bar is the bar-line token.
const Bar = "|"

var closers = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
}

// Tokenize splits a chord line into chords, bar markers and bracketed
// directives such as "(To Chorus)". Inside a bracket every character,
// including spaces and bars, belongs to the current token. An unterminated
// bracket absorbs the rest of the line.
func Tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		closer rune
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, c := range line {
		if closer != 0 {
			if c == closer {
				closer = 0
			}
			cur.WriteRune(c)
			continue
		}
		if cl, ok := closers[c]; ok {
			cur.WriteRune(c)
			closer = cl
			continue
		}
		switch c {
		case '|':
			flush()
			tokens = append(tokens, Bar)
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()

	return tokens
}

// IsDirective reports whether token is a bracketed directive like
// "(To Pre-Chorus)".
func IsDirective(token string) bool {
	return strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")")
}

// chordLike reports whether a token counts toward a chord line: a bar, a
// token opening or closing a parenthesis, or a chord symbol.
func chordLike(token string) bool {
	switch {
	case token == Bar:
		return true
	case strings.HasPrefix(token, "("), strings.HasSuffix(token, ")"):
		return true
	default:
		return IsChord(token)
	}
}

// IsChordLine reports whether chord-like tokens strictly outnumber the rest.
// A tie is not a chord line.
func IsChordLine(tokens []string) bool {
	chords, other := 0, 0
	for _, t := range tokens {
		if chordLike(t) {
			chords++
		} else {
			other++
		}
	}
	return chords > other
}
