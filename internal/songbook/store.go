// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songbook indexes converted songs in a SQLite database so they can
// be searched by lyric, title, key, author or chord, and exported.
package songbook

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leadsheet/internal/chordpro"
	"github.com/pdiddy/leadsheet/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "songbook.db"
)

// Store manages the songbook SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	songsDir   string
	maxResults int
}

// NewStore opens or creates the songbook database at
// <cfg.Dir>/index/songbook.db and creates the schema if it does not exist.
func NewStore(cfg types.SongbookConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		songsDir:   cfg.SongsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT,
			song_key TEXT,
			tempo TEXT,
			time_sig TEXT,
			author TEXT,
			ccli TEXT,
			legal TEXT,
			type TEXT,
			source_pdf TEXT,
			converted_at TEXT,
			chords TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			body TEXT NOT NULL,
			PRIMARY KEY (song_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_key ON songs(song_key)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			song_id TEXT PRIMARY KEY,
			content_hash TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a songbook indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of song records processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads song records (*.yaml) from the songs directory and loads them
// into the database. A record whose content hash is unchanged since the
// last run is skipped; a changed one replaces the stored song.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.songsDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading songs directory %s: %w", s.songsDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		songID := strings.TrimSuffix(entry.Name(), ".yaml")

		data, err := os.ReadFile(filepath.Join(s.songsDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", songID, err)
			summary.Failed++
			continue
		}
		sum := blake3.Sum256(data)
		hash := hex.EncodeToString(sum[:])

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT content_hash FROM ingest_status WHERE song_id = ?`, songID,
		).Scan(&stored)

		if err == nil && stored == hash {
			fmt.Fprintf(w, "skipped %s\n", songID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		var rec types.SongRecord
		if err := yaml.Unmarshal(data, &rec); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", songID, err)
			summary.Failed++
			continue
		}
		rec.ID = songID

		if err := s.ingestSong(ctx, &rec, hash); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", songID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d sections)\n", songID, rec.Song.Sections.Len())
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d sections)\n", songID, rec.Song.Sections.Len())
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestSong(ctx context.Context, rec *types.SongRecord, hash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Sections go with the song through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, rec.ID); err != nil {
		return fmt.Errorf("deleting old song: %w", err)
	}

	song := &rec.Song
	var vocab []string
	for _, sec := range song.Sections {
		vocab = append(vocab, chordpro.Chords(sec.Text)...)
	}
	chordsJSON, _ := json.Marshal(dedupe(vocab))

	convertedAt := ""
	if !rec.ConvertedAt.IsZero() {
		convertedAt = rec.ConvertedAt.UTC().Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO songs (id, title, song_key, tempo, time_sig, author, ccli, legal, type, source_pdf, converted_at, chords)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, song.Title, song.Key, song.Tempo, song.Time, song.Author,
		song.CCLI, song.Legal, string(song.Type), rec.SourcePDF, convertedAt,
		string(chordsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting song: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (song_id, position, name, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, sec := range song.Sections {
		if _, err := stmt.ExecContext(ctx, rec.ID, i, sec.Name, sec.Text); err != nil {
			return fmt.Errorf("inserting section %q: %w", sec.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (song_id, content_hash) VALUES (?, ?)
		 ON CONFLICT(song_id) DO UPDATE SET content_hash=excluded.content_hash`,
		rec.ID, hash,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
