// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet structures the text dump of a lead sheet into a song. It
// scans the lines once, reading title, key, author, tempo and time signature
// from the preamble, grouping chord and lyric lines into sections, and
// collecting everything from the CCLI licence line onward as legal text.
// Each section is then rendered to ChordPro.
//
// The scan is heuristic. A sheet with no recognizable sections comes back
// as types.DocumentFailed with whatever metadata was found.
package sheet

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/leadsheet/internal/chord"
	"github.com/pdiddy/leadsheet/internal/chordpro"
	"github.com/pdiddy/leadsheet/pkg/types"
)

// DefaultSection names the section opened by content that appears before
// any section header.
const DefaultSection = "VERSE 1"

var (
	keyPattern     = regexp.MustCompile(`(?i)\bkey\s*[-:]\s*([A-G][#b♯♭]?)`)
	timePattern    = regexp.MustCompile(`(?i)\btime\s*[-:]\s*(\d+/\d+)`)
	tempoPattern   = regexp.MustCompile(`(?i)\btempo\s*[-:]\s*(\d+)`)
	sectionPattern = regexp.MustCompile(`(?i)verse|chorus|bridge|pre-chorus|instrumental|interlude`)
	ccliPattern    = regexp.MustCompile(`(?i)CCLI ?Song ?# ?(\d+)`)
	directives     = regexp.MustCompile(`\([^)]*\)`)
)

// IsSectionHeader reports whether line names a song section anywhere
// outside a parenthesized directive, so "G  D  (To Chorus)" stays a chord
// line.
func IsSectionHeader(line string) bool {
	return sectionPattern.MatchString(directives.ReplaceAllString(line, ""))
}

// Parse splits text into lines and structures them. Zero-width spaces are
// removed and blank lines dropped first.
func Parse(text string) (*types.Song, error) {
	text = strings.ReplaceAll(text, "\u200b", "")
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines structures lines into a song. Blank lines are ignored. The only
// error is an internal inconsistency while merging a chord line, which fails
// the whole document.
func ParseLines(lines []string) (*types.Song, error) {
	s := newScanner()
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.scan(line)
	}
	s.commit()

	song := s.song
	for i := range song.Sections {
		text, err := chordpro.RenderPairs(song.Sections[i].Pairs)
		if err != nil {
			return nil, fmt.Errorf("rendering section %q: %w", song.Sections[i].Name, err)
		}
		song.Sections[i].Text = text
	}

	if song.Sections.Len() == 0 {
		song.Type = types.DocumentFailed
	}
	return song, nil
}

type state int

const (
	statePreamble state = iota
	stateSection
	stateLegal
)

// scanner carries everything the scan needs between lines. A section is
// open while section is non-empty; it stays open through the legal footer so
// the end of input still commits it.
type scanner struct {
	song  *types.Song
	state state

	section     string
	pairs       []types.LinePair
	chords      string // pending chord line
	superscript string // pending superscript line
	hasSuper    bool
	legal       []string
}

func newScanner() *scanner {
	return &scanner{
		song: &types.Song{Type: types.DocumentStructured},
	}
}

func (s *scanner) scan(line string) {
	if s.state == stateLegal {
		s.appendLegal(line)
		return
	}

	if m := ccliPattern.FindStringSubmatch(line); m != nil {
		s.song.CCLI = m[1]
		s.appendLegal(line)
		s.state = stateLegal
		return
	}

	switch {
	case IsSectionHeader(line):
		s.commit()
		s.section = strings.TrimSpace(line)
		s.pairs = nil
		s.state = stateSection
	case chord.IsChordLine(chord.Tokenize(line)):
		s.chordLine(line)
	case s.section != "":
		s.contentLine(line)
	default:
		s.preamble(line)
	}
}

func (s *scanner) chordLine(line string) {
	if s.section == "" {
		s.section = DefaultSection
		s.pairs = nil
		s.state = stateSection
	}
	line = strings.TrimRight(line, " \t\r")
	if s.hasSuper {
		line = chord.FixSuperscript(s.superscript, line)
		s.superscript, s.hasSuper = "", false
	}
	s.chords = line
}

func (s *scanner) contentLine(line string) {
	if chord.IsSuperscriptLine(line) {
		s.superscript, s.hasSuper = line, true
		return
	}
	s.pairs = append(s.pairs, types.LinePair{
		Chords: s.chords,
		Lyrics: strings.TrimRight(line, " \t\r"),
	})
	s.chords = ""
}

// commit flushes a pending chord line into the open section and stores the
// section on the song. Pending line state does not outlive the section.
func (s *scanner) commit() {
	if s.section == "" {
		return
	}
	if s.chords != "" {
		s.pairs = append(s.pairs, types.LinePair{Chords: s.chords})
	}
	s.song.Sections.Set(s.section, s.pairs)
	s.chords = ""
	s.superscript, s.hasSuper = "", false
}

func (s *scanner) appendLegal(line string) {
	s.legal = append(s.legal, line)
	s.song.Legal = strings.Join(s.legal, "\n")
}

func (s *scanner) preamble(line string) {
	if m := keyPattern.FindStringSubmatchIndex(line); m != nil {
		s.song.Key = line[m[2]:m[3]]
		s.song.Title = strings.TrimSpace(line[:m[0]])
		return
	}

	m := timePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return
	}
	s.song.Time = line[m[2]:m[3]]
	cut := m[0]
	if t := tempoPattern.FindStringSubmatchIndex(line); t != nil {
		s.song.Tempo = line[t[2]:t[3]]
		cut = min(cut, t[0])
	}
	s.song.Author = strings.TrimSpace(line[:cut])
}
