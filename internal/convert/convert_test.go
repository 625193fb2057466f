// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leadsheet/pkg/types"
)

const leadSheet = `Amazing Grace        Key - G
John Newton   Time - 3/4

VERSE 1
G       C
Amazing grace
CCLI Song # 22025
`

// fakeConverter implements Converter for testing. It returns canned text
// or an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
}

func (f *fakeConverter) Convert(pdfPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// setupPDF creates a temporary PDF file and returns its path and the temp dir.
func setupPDF(t *testing.T) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	rawDir := filepath.Join(tmpDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		t.Fatal(err)
	}
	pdfPath = filepath.Join(rawDir, "amazing-grace.pdf")
	if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath, tmpDir
}

func TestConvertSheet(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  bool // create output .cho before running
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{output: leadSheet},
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "no sections recognized",
			converter:  &fakeConverter{output: "just a title\n"},
			wantStatus: types.ConversionPartial,
			wantLog:    "partial:",
		},
		{
			name:       "skip existing output",
			converter:  &fakeConverter{output: "should not be called"},
			preCreate:  true,
			wantStatus: ConversionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("pdftotext crashed")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, tmpDir := setupPDF(t)
			outDir := filepath.Join(tmpDir, "out")

			if tt.preCreate {
				dir := filepath.Join(outDir, ChordProDir)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, "amazing-grace.cho"), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			s := types.Sheet{ID: "amazing-grace", PDFPath: pdfPath}
			var log bytes.Buffer

			status := ConvertSheet(tt.converter, s, outDir, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertSheet_Outputs(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })

	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "out")
	s := types.Sheet{ID: "amazing-grace", PDFPath: pdfPath}

	var log bytes.Buffer
	if status := ConvertSheet(&fakeConverter{output: leadSheet}, s, outDir, &log); status != types.ConversionDone {
		t.Fatalf("expected ConversionDone, got %q (%s)", status, log.String())
	}

	cho, err := os.ReadFile(filepath.Join(outDir, ChordProDir, "amazing-grace.cho"))
	if err != nil {
		t.Fatalf("reading chordpro: %v", err)
	}
	for _, want := range []string{
		"{title: Amazing Grace}",
		"{key: G}",
		"{time: 3/4}",
		"{artist: John Newton}",
		"{comment: VERSE 1}\n[G]Amazing [C]grace\n",
		"{copyright: CCLI Song # 22025}",
	} {
		if !strings.Contains(string(cho), want) {
			t.Errorf("chordpro output missing %q:\n%s", want, cho)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, SongsDir, "amazing-grace.yaml"))
	if err != nil {
		t.Fatalf("reading song record: %v", err)
	}
	var rec types.SongRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		t.Fatalf("parsing song record: %v", err)
	}
	if rec.ID != "amazing-grace" || rec.SourcePDF != pdfPath {
		t.Errorf("record identity = %q, %q", rec.ID, rec.SourcePDF)
	}
	if !rec.ConvertedAt.Equal(fixed) {
		t.Errorf("converted_at = %v, want %v", rec.ConvertedAt, fixed)
	}
	if rec.Song.CCLI != "22025" || rec.Song.Type != types.DocumentStructured {
		t.Errorf("song = %+v", rec.Song)
	}
	if text, ok := rec.Song.Sections.Get("VERSE 1"); !ok || text != "[G]Amazing [C]grace" {
		t.Errorf("VERSE 1 = %q, %v", text, ok)
	}
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()
	rawDir := filepath.Join(tmpDir, "raw")
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// a converts, b is pre-existing, c fails, d has no sections.
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		if err := os.WriteFile(filepath.Join(rawDir, name), []byte("pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	choDir := filepath.Join(outDir, ChordProDir)
	if err := os.MkdirAll(choDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(choDir, "b.cho"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &selectiveConverter{
		outputs: map[string]string{
			filepath.Join(rawDir, "a.pdf"): leadSheet,
			filepath.Join(rawDir, "b.pdf"): leadSheet,
			filepath.Join(rawDir, "d.pdf"): "Untitled\n",
		},
		errors: map[string]error{
			filepath.Join(rawDir, "c.pdf"): errors.New("bad pdf"),
		},
	}

	sheets := []types.Sheet{
		{ID: "a", PDFPath: filepath.Join(rawDir, "a.pdf")},
		{ID: "b", PDFPath: filepath.Join(rawDir, "b.pdf")},
		{ID: "c", PDFPath: filepath.Join(rawDir, "c.pdf")},
		{ID: "d", PDFPath: filepath.Join(rawDir, "d.pdf")},
	}

	var log bytes.Buffer
	result := ConvertBatch(conv, sheets, outDir, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if result.Partial != 1 {
		t.Errorf("partial = %d, want 1", result.Partial)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 4 {
		t.Errorf("total = %d, want 4", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}
}

func TestConvertPaths(t *testing.T) {
	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "be-thou-my-vision.pdf")
	if err := os.WriteFile(pdfPath, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result := ConvertPaths(&fakeConverter{output: leadSheet}, []string{pdfPath}, tmpDir, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	choPath := filepath.Join(tmpDir, ChordProDir, "be-thou-my-vision.cho")
	if _, err := os.Stat(choPath); err != nil {
		t.Errorf("expected output file at %s", choPath)
	}
}

func TestSheetID(t *testing.T) {
	if got := SheetID("/sheets/raw/How Great Thou Art.pdf"); got != "How Great Thou Art" {
		t.Errorf("SheetID = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	got, err := normalize("VERSE\u200b 1\n", "x.pdf", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "VERSE 1\n" {
		t.Errorf("normalize = %q", got)
	}

	if _, err := normalize(" \n\u200b\n", "x.pdf", "test"); err == nil {
		t.Error("expected error for empty output")
	}
}

// selectiveConverter returns different results per file path.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveConverter) Convert(pdfPath string) (string, error) {
	if err, ok := s.errors[pdfPath]; ok {
		return "", err
	}
	if out, ok := s.outputs[pdfPath]; ok {
		return out, nil
	}
	return "", errors.New("unexpected path: " + pdfPath)
}
