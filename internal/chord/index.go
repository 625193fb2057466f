// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chord

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrTokenNotFound is returned when a token cannot be located in the line it
// was tokenized from. It signals an internal inconsistency, not bad input.
var ErrTokenNotFound = errors.New("token not found in chord line")

// IndexError reports which token could not be located.
type IndexError struct {
	Token string
	Line  string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("could not find %q in %q", e.Token, e.Line)
}

func (e *IndexError) Unwrap() error { return ErrTokenNotFound }

// Indexed is a token with the column it starts at. Columns count runes, so
// they line up with the characters of a lyric line.
type Indexed struct {
	Column int
	Token  string
}

// Indices tokenizes line and recovers the column of every token by searching
// the part of the line after the previous match.
func Indices(line string) ([]Indexed, error) {
	tokens := Tokenize(line)
	out := make([]Indexed, 0, len(tokens))

	offset := 0 // byte offset of the unconsumed suffix
	column := 0 // rune column of offset
	for _, tok := range tokens {
		rest := line[offset:]
		at := strings.Index(rest, tok)
		if at < 0 {
			return nil, &IndexError{Token: tok, Line: line}
		}
		column += utf8.RuneCountInString(rest[:at])
		out = append(out, Indexed{Column: column, Token: tok})

		offset += at + len(tok)
		column += utf8.RuneCountInString(tok)
	}
	return out, nil
}
