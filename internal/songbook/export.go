// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leadsheet/internal/chordpro"
)

// ExportEntry is one song in a songbook export.
type ExportEntry struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Key       string          `json:"key,omitempty" yaml:"key,omitempty"`
	Tempo     string          `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Time      string          `json:"time,omitempty" yaml:"time,omitempty"`
	Author    string          `json:"author,omitempty" yaml:"author,omitempty"`
	CCLI      string          `json:"ccli,omitempty" yaml:"ccli,omitempty"`
	SourcePDF string          `json:"source_pdf,omitempty" yaml:"source_pdf,omitempty"`
	Chords    []string        `json:"chords" yaml:"chords"`
	Sections  []ExportSection `json:"sections" yaml:"sections"`
	ChordPro  string          `json:"chordpro" yaml:"chordpro"`
}

// ExportSection holds one named section of an exported song.
type ExportSection struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// ExportYAML writes every indexed song to <dir>/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.ExportPath("yaml"), data, 0o644)
}

// ExportJSON writes every indexed song to <dir>/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(s.ExportPath("json"), data, 0o644)
}

// ExportPath returns the export file path for the given extension.
func (s *Store) ExportPath(ext string) string {
	return filepath.Join(s.dir, indexDir, "export."+ext)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	ids, err := s.songIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Song(ctx, id)
		if err != nil {
			return nil, err
		}
		chords, err := s.Chords(ctx, id)
		if err != nil {
			return nil, err
		}

		song := &rec.Song
		e := ExportEntry{
			ID:        rec.ID,
			Title:     song.Title,
			Key:       song.Key,
			Tempo:     song.Tempo,
			Time:      song.Time,
			Author:    song.Author,
			CCLI:      song.CCLI,
			SourcePDF: rec.SourcePDF,
			Chords:    chords,
			Sections:  make([]ExportSection, len(song.Sections)),
			ChordPro:  chordpro.String(song),
		}
		for i, sec := range song.Sections {
			e.Sections[i] = ExportSection{Name: sec.Name, Text: sec.Text}
		}
		entries = append(entries, e)
	}

	return entries, nil
}
