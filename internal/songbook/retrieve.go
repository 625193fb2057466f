// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/leadsheet/pkg/types"
)

// QueryOptions holds parameters for songbook queries.
type QueryOptions struct {
	// Query matches a substring of section text, section name or title.
	Query string

	// Key filters by the song's key, exactly.
	Key string

	// Author filters by a substring of the author line.
	Author string

	// Chord keeps songs whose sections use this chord symbol.
	Chord string

	// SongID filters by song.
	SongID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Key == "" && q.Author == "" && q.Chord == "" && q.SongID == ""
}

// QueryResult is one matching section with its song's metadata.
type QueryResult struct {
	SongID  string `json:"song_id" yaml:"song_id"`
	Title   string `json:"title" yaml:"title"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Section string `json:"section" yaml:"section"`
	Body    string `json:"body" yaml:"body"`
}

// ErrSongNotFound is returned by Song for an unknown ID.
var ErrSongNotFound = errors.New("song not found")

// Retrieve returns matching sections ordered by title, song and position
// within the song.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT s.id, s.title, s.song_key, s.author, sec.name, sec.body
		FROM sections sec
		JOIN songs s ON s.id = sec.song_id
		WHERE 1=1`)

	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		qb.WriteString(` AND (sec.body LIKE ? OR sec.name LIKE ? OR s.title LIKE ?)`)
		args = append(args, like, like, like)
	}

	if opts.Key != "" {
		qb.WriteString(` AND s.song_key = ?`)
		args = append(args, opts.Key)
	}

	if opts.Author != "" {
		qb.WriteString(` AND s.author LIKE ?`)
		args = append(args, "%"+opts.Author+"%")
	}

	if opts.Chord != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(s.chords) WHERE value = ?)`)
		args = append(args, opts.Chord)
	}

	if opts.SongID != "" {
		qb.WriteString(` AND s.id = ?`)
		args = append(args, opts.SongID)
	}

	qb.WriteString(` ORDER BY s.title, s.id, sec.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying songbook: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr         QueryResult
			title, key sql.NullString
			author     sql.NullString
		)
		if err := rows.Scan(&qr.SongID, &title, &key, &author, &qr.Section, &qr.Body); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Title, qr.Key, qr.Author = title.String, key.String, author.String
		results = append(results, qr)
	}

	return results, rows.Err()
}

// Song rebuilds the stored record for id, sections in document order.
func (s *Store) Song(ctx context.Context, id string) (*types.SongRecord, error) {
	var (
		rec                     types.SongRecord
		title, key, tempo, sig  sql.NullString
		author, ccli, legal     sql.NullString
		docType, src, converted sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, song_key, tempo, time_sig, author, ccli, legal, type, source_pdf, converted_at
		FROM songs WHERE id = ?`, id,
	).Scan(&rec.ID, &title, &key, &tempo, &sig, &author, &ccli, &legal, &docType, &src, &converted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSongNotFound, id)
		}
		return nil, fmt.Errorf("looking up song: %w", err)
	}

	rec.SourcePDF = src.String
	if converted.String != "" {
		if t, err := time.Parse(time.RFC3339, converted.String); err == nil {
			rec.ConvertedAt = t
		}
	}
	rec.Song = types.Song{
		Title:  title.String,
		Key:    key.String,
		Tempo:  tempo.String,
		Time:   sig.String,
		Author: author.String,
		CCLI:   ccli.String,
		Legal:  legal.String,
		Type:   types.DocumentType(docType.String),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, body FROM sections WHERE song_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sec types.Section
		if err := rows.Scan(&sec.Name, &sec.Text); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		rec.Song.Sections = append(rec.Song.Sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Chords returns the chord vocabulary recorded for a song.
func (s *Store) Chords(ctx context.Context, id string) ([]string, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT chords FROM songs WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSongNotFound, id)
		}
		return nil, fmt.Errorf("looking up chords: %w", err)
	}
	var chords []string
	if raw.Valid {
		if err := json.Unmarshal([]byte(raw.String), &chords); err != nil {
			return nil, fmt.Errorf("decoding chords: %w", err)
		}
	}
	return chords, nil
}

func (s *Store) songIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM songs ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
