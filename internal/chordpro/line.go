// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chordpro merges chord lines into lyric lines using ChordPro inline
// notation and renders whole songs as ChordPro documents.
package chordpro

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/leadsheet/internal/chord"
)

var longSpaces = regexp.MustCompile(` {4,}`)

// CollapseSpaces shortens every run of four or more spaces to four.
func CollapseSpaces(s string) string {
	return longSpaces.ReplaceAllString(s, "    ")
}

// Line merges a chord line and the lyric line under it into one ChordPro
// line, placing each chord as "[C]" right before the lyric character in its
// column. Directives such as "(To Chorus)" become "{comment:(To Chorus)}".
// With no lyric line the chord line is returned as is (chords-only lines
// are not bracketed); with no chord line the lyric line is returned.
func Line(chordLine, lyricLine string) (string, error) {
	if chordLine == "" {
		return lyricLine, nil
	}
	if lyricLine == "" {
		return chordLine, nil
	}

	chords, err := chord.Indices(chordLine)
	if err != nil {
		return "", err
	}
	m := merger{chords: chords, lyric: []rune(lyricLine)}
	return m.run(), nil
}

// merger walks two cursors: the next pending chord and the next lyric
// column. Both read as absent once past their end.
type merger struct {
	chords []chord.Indexed
	lyric  []rune

	ci int // next chord
	li int // next lyric column

	out      strings.Builder
	lastOut  rune // last rune written to out
	lastChar rune // last lyric character emitted or skipped
}

func (m *merger) char() (rune, bool) {
	if m.li < len(m.lyric) {
		return m.lyric[m.li], true
	}
	return 0, false
}

func (m *merger) column() int {
	if m.ci < len(m.chords) {
		return m.chords[m.ci].Column
	}
	return -1
}

func (m *merger) write(s string) {
	if s == "" {
		return
	}
	m.out.WriteString(s)
	m.lastOut, _ = utf8.DecodeLastRuneInString(s)
}

func (m *merger) run() string {
	for m.ci < len(m.chords) || m.li < len(m.lyric) {
		if m.li == m.column() {
			m.placeChord()
			continue
		}

		c, ok := m.char()
		if !ok {
			c = ' '
		}
		m.write(string(c))
		m.lastChar = c
		m.li++
	}

	return strings.TrimSpace(CollapseSpaces(m.out.String()))
}

func (m *merger) placeChord() {
	tok := m.chords[m.ci].Token
	c, ok := m.char()

	if chord.IsDirective(tok) {
		m.write("{comment:" + tok + "}")
	} else {
		switch {
		case m.lastOut == ']':
			// keep consecutive chords apart
			m.write(" ")
		case ok && c == ' ' && m.lastChar != ' ':
			// give the chord a space to attach to
			m.write(" ")
		}
		m.write("[" + tok + "]")
	}

	// The chord takes up the spaces it covered in the lyric line.
	width := utf8.RuneCountInString(tok)
	for skipped := 0; ok && c == ' ' && skipped < width; skipped++ {
		m.lastChar = c
		m.li++
		c, ok = m.char()
	}
	m.ci++
}
