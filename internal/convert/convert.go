// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns lead sheet PDFs into ChordPro files. A Converter
// backend produces the plain-text dump; the sheet parser structures it; the
// result is written as a .cho document and a YAML song record.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leadsheet/internal/chordpro"
	"github.com/pdiddy/leadsheet/internal/sheet"
	"github.com/pdiddy/leadsheet/pkg/types"
)

const (
	// ChordProDir is the subdirectory under the output base for .cho files.
	ChordProDir = "chordpro"
	// SongsDir is the subdirectory under the output base for song records.
	SongsDir = "songs"
)

// Converter transforms a PDF file into the plain text of its layout.
// Different backends (pdftotext, a pdftotext container, in-process
// extraction) implement this interface.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns its text.
	Convert(pdfPath string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Partial   int
	Skipped   int
	Failed    int
}

// Total returns the total number of sheets processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Partial + r.Skipped + r.Failed
}

// HasFailures reports whether any sheets failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// ConvertSheet converts a single PDF, writing <outDir>/chordpro/<id>.cho and
// <outDir>/songs/<id>.yaml. If the ChordPro output already exists it skips
// conversion and returns ConversionNone. A sheet whose sections could not be
// recognized is still written and reported as ConversionPartial.
func ConvertSheet(c Converter, s types.Sheet, outDir string, w io.Writer) types.ConversionStatus {
	choPath := filepath.Join(outDir, ChordProDir, s.ID+".cho")
	recPath := filepath.Join(outDir, SongsDir, s.ID+".yaml")

	if _, err := os.Stat(choPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", s.ID)
		return ConversionNone
	}

	for _, dir := range []string{filepath.Dir(choPath), filepath.Dir(recPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", s.ID, err)
			return types.ConversionFailed
		}
	}

	text, err := c.Convert(s.PDFPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", s.ID, err)
		return types.ConversionFailed
	}

	song, err := sheet.Parse(text)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (parsing: %v)\n", s.ID, err)
		return types.ConversionFailed
	}

	if err := writeOutputs(s, song, choPath, recPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", s.ID, err)
		return types.ConversionFailed
	}

	if !song.Structured() {
		fmt.Fprintf(w, "partial: %s (no sections recognized)\n", s.ID)
		return types.ConversionPartial
	}
	fmt.Fprintf(w, "converted: %s (%d sections)\n", s.ID, song.Sections.Len())
	return types.ConversionDone
}

func writeOutputs(s types.Sheet, song *types.Song, choPath, recPath string) error {
	rec := types.SongRecord{
		ID:          s.ID,
		SourcePDF:   s.PDFPath,
		ConvertedAt: now(),
		Song:        *song,
	}
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshaling song record: %w", err)
	}
	if err := os.WriteFile(recPath, data, 0o644); err != nil {
		return fmt.Errorf("writing song record: %w", err)
	}

	if err := os.WriteFile(choPath, []byte(chordpro.String(song)), 0o644); err != nil {
		return fmt.Errorf("writing chordpro: %w", err)
	}
	return nil
}

// ConvertBatch processes a list of sheets through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, sheets []types.Sheet, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, s := range sheets {
		switch ConvertSheet(c, s, outDir, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionPartial:
			result.Partial++
		case ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d partial, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Partial, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Sheet records from PDF paths and delegates to
// ConvertBatch. Each sheet ID is the filename without its extension.
func ConvertPaths(c Converter, pdfPaths []string, outDir string, w io.Writer) BatchResult {
	sheets := make([]types.Sheet, len(pdfPaths))
	for i, p := range pdfPaths {
		sheets[i] = types.Sheet{
			ID:      SheetID(p),
			PDFPath: p,
		}
	}
	return ConvertBatch(c, sheets, outDir, w)
}

// SheetID derives a sheet ID from a PDF path.
func SheetID(pdfPath string) string {
	return strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
}

// ConversionNone is a local alias for "skip" status (output already exists).
const ConversionNone = types.ConversionNone

// normalize strips zero-width spaces that some PDFs carry and rejects empty
// output.
func normalize(text, pdfPath, backend string) (string, error) {
	text = strings.ReplaceAll(text, "\u200b", "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s produced empty output for %s", backend, pdfPath)
	}
	return text, nil
}
