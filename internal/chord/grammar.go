// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chord recognizes chord symbols and chord lines in the text dump of
// a lead sheet. It tokenizes a line into chords, bar markers and bracketed
// directives, decides whether a line is a chord line, recovers the column of
// each token, and repairs superscript extensions that PDF extraction pushed
// onto their own line.
package chord

import "regexp"

// chordPattern decomposes a chord symbol left to right. Every part after the
// root is optional and the groups overlap on purpose (a "/9" may read as an
// addition or fail as a bass note); only a whole-token match counts.
var chordPattern = regexp.MustCompile(`^(?:` +
	`(?P<nochords>[Nn]\.?[Cc]\.?)|` + // tacet
	`(?P<note>[A-G][♯♭b#]?)` +
	`(?P<third>mM|min|MIN|Min|maj|MAJ|Maj|m|M)?` +
	`(?P<fifth>aug|AUG|dim|DIM|\+|ø|°)?` +
	`(?P<number>\(?(?:dom|DOM)?\d+\)?)?` + // 7, 9, (13); above 7 implies the 7th
	`(?P<subtraction>\(?no3r?d?\)?)?` +
	`(?P<altered>[♯♭b#\-\+]\d+)?` +
	`(?P<suspension>(?:sus|SUS)\d*)?` +
	`(?P<addition>(?:add|ADD|/)\d+)?` +
	`(?P<bass>/[A-G][♯♭b#]?)?` +
	`)$`)

// Parts holds the named components of a matched chord symbol. Absent
// components are empty.
type Parts struct {
	NoChord     bool
	Note        string
	Third       string
	Fifth       string
	Number      string
	Subtraction string
	Altered     string
	Suspension  string
	Addition    string
	Bass        string
}

// IsChord reports whether token is a chord symbol or the no-chord marker.
func IsChord(token string) bool {
	return chordPattern.MatchString(token)
}

// IsNoChord reports whether token is the "N.C." marker.
func IsNoChord(token string) bool {
	p, ok := Match(token)
	return ok && p.NoChord
}

// Match decomposes token into its chord parts. It returns false when the
// whole token does not match.
func Match(token string) (Parts, bool) {
	m := chordPattern.FindStringSubmatch(token)
	if m == nil {
		return Parts{}, false
	}

	var p Parts
	for i, name := range chordPattern.SubexpNames() {
		v := m[i]
		switch name {
		case "nochords":
			p.NoChord = v != ""
		case "note":
			p.Note = v
		case "third":
			p.Third = v
		case "fifth":
			p.Fifth = v
		case "number":
			p.Number = v
		case "subtraction":
			p.Subtraction = v
		case "altered":
			p.Altered = v
		case "suspension":
			p.Suspension = v
		case "addition":
			p.Addition = v
		case "bass":
			p.Bass = v
		}
	}
	return p, true
}
