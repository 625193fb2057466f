package types

// ConversionBackend identifies the PDF-to-text tool.
type ConversionBackend string

const (
	// BackendPdftotext runs the local poppler pdftotext binary.
	BackendPdftotext ConversionBackend = "pdftotext"
	// BackendContainer runs pdftotext inside a container image.
	BackendContainer ConversionBackend = "container"
	// BackendNative extracts the PDF text layer in-process.
	BackendNative ConversionBackend = "native"
)

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: pdftotext, container, or native.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// OutDir is the base directory for output (contains chordpro/, songs/).
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Image is the container image used by the container backend.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Runtime names the preferred container runtime: docker or podman.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
}

// SongbookConfig holds settings for the songbook index.
type SongbookConfig struct {
	// Dir is the base directory for the songbook (contains index/).
	Dir string `json:"dir" yaml:"dir"`

	// SongsDir is the directory of converted song records to ingest.
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// OutputFormat selects how a parsed song is printed.
type OutputFormat string

const (
	OutputChordPro OutputFormat = "chordpro"
	OutputJSON     OutputFormat = "json"
	OutputYAML     OutputFormat = "yaml"
)

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Songbook   SongbookConfig   `json:"songbook" yaml:"songbook"`
}
