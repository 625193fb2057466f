// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentType tags whether a lead sheet was structured into sections.
type DocumentType string

const (
	// DocumentStructured marks a song whose sections were recognized.
	DocumentStructured DocumentType = "pdf"
	// DocumentFailed marks a song where no section was recognized. Metadata
	// from the preamble may still be present; section content is not trusted.
	DocumentFailed DocumentType = "pdf-failed"
)

// LinePair is one chord line paired with the lyric line beneath it, as
// collected while scanning a section. An empty string means the line is
// absent: a chords-only line has no Lyrics, a lyric-only line has no Chords.
type LinePair struct {
	Chords string `json:"chords,omitempty" yaml:"chords,omitempty"`
	Lyrics string `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
}

// Section is a named block of a song such as "VERSE 1" or "CHORUS".
type Section struct {
	// Name is the trimmed header line that opened the section.
	Name string `json:"name" yaml:"name"`

	// Pairs holds the raw chord/lyric pairs until the song is rendered.
	Pairs []LinePair `json:"-" yaml:"-"`

	// Text is the rendered ChordPro body of the section.
	Text string `json:"text" yaml:"text"`
}

// Sections is an ordered mapping from section name to section. Names are
// unique and keep the position of their first occurrence.
type Sections []Section

// Set stores pairs under name. A name seen before keeps its slot and has its
// content replaced.
func (s *Sections) Set(name string, pairs []LinePair) {
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Pairs = pairs
			(*s)[i].Text = ""
			return
		}
	}
	*s = append(*s, Section{Name: name, Pairs: pairs})
}

// Get returns the rendered text of the named section.
func (s Sections) Get(name string) (string, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec.Text, true
		}
	}
	return "", false
}

// Names returns section names in document order.
func (s Sections) Names() []string {
	names := make([]string, len(s))
	for i, sec := range s {
		names[i] = sec.Name
	}
	return names
}

// Len returns the number of sections.
func (s Sections) Len() int { return len(s) }

// Song is the structured result of parsing one lead sheet. Optional
// metadata fields are empty when the sheet did not carry them.
type Song struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Tempo  string `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Time   string `json:"time,omitempty" yaml:"time,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// CCLI is the licence number found in the sheet's legal footer.
	CCLI string `json:"ccli,omitempty" yaml:"ccli,omitempty"`

	// Legal is the footer text from the licence line onward, one source
	// line per output line.
	Legal string `json:"legal" yaml:"legal"`

	Sections Sections     `json:"sections" yaml:"sections"`
	Type     DocumentType `json:"type" yaml:"type"`
}

// Structured reports whether the song has trustworthy section content.
func (s *Song) Structured() bool {
	return s.Type == DocumentStructured
}
