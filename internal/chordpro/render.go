// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chordpro

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/leadsheet/pkg/types"
)

// RenderPairs merges every chord/lyric pair of a section, one output line
// per pair.
func RenderPairs(pairs []types.LinePair) (string, error) {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		l, err := Line(p.Chords, p.Lyrics)
		if err != nil {
			return "", err
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n"), nil
}

// Render writes song as a ChordPro document: metadata directives, then each
// section under a comment label, then the legal footer as copyright lines.
// Only metadata present on the song is written.
func Render(w io.Writer, song *types.Song) error {
	var b strings.Builder

	directive := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "{%s: %s}\n", name, value)
		}
	}
	directive("title", song.Title)
	directive("artist", song.Author)
	directive("key", song.Key)
	directive("tempo", song.Tempo)
	directive("time", song.Time)
	if song.CCLI != "" {
		fmt.Fprintf(&b, "{meta: ccli %s}\n", song.CCLI)
	}

	for _, sec := range song.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "{comment: %s}\n", sec.Name)
		if sec.Text != "" {
			b.WriteString(sec.Text)
			b.WriteString("\n")
		}
	}

	if song.Legal != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(song.Legal, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				directive("copyright", line)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders song to a string. See Render.
func String(song *types.Song) string {
	var b strings.Builder
	_ = Render(&b, song)
	return b.String()
}
