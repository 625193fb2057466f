// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chordpro

import (
	"regexp"
	"strings"

	"github.com/pdiddy/leadsheet/internal/chord"
)

var bracketed = regexp.MustCompile(`\[([^\]\s]+)\]`)

// Chords returns the chord symbols used in ChordPro section text, in order
// of first appearance and without repeats. It reads bracketed chords and the
// bare chords of chords-only lines. The no-chord marker is not a chord.
func Chords(text string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tok string) {
		if seen[tok] || !chord.IsChord(tok) || chord.IsNoChord(tok) {
			return
		}
		seen[tok] = true
		out = append(out, tok)
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "[") {
			for _, m := range bracketed.FindAllStringSubmatch(line, -1) {
				add(m[1])
			}
			continue
		}
		if tokens := chord.Tokenize(line); chord.IsChordLine(tokens) {
			for _, tok := range tokens {
				add(tok)
			}
		}
	}
	return out
}
