// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the leadsheet pipeline:
// parsed songs, source sheets, conversion statuses, and stage configuration.
package types

import "time"

// ConversionStatus indicates the state of PDF-to-ChordPro conversion for a sheet.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionPartial ConversionStatus = "partial"
	ConversionFailed  ConversionStatus = "failed"
)

// Sheet identifies a source lead sheet PDF.
type Sheet struct {
	// ID is a slug derived from the PDF filename (e.g. "amazing-grace").
	ID string `json:"id" yaml:"id"`

	// PDFPath is the local filesystem path to the PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// ConversionStatus tracks whether the PDF has been converted.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}

// SongRecord is the on-disk form of a converted sheet: the parsed song plus
// where it came from.
type SongRecord struct {
	ID          string    `json:"id" yaml:"id"`
	SourcePDF   string    `json:"source_pdf" yaml:"source_pdf"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
	Song        Song      `json:"song" yaml:"song"`
}
