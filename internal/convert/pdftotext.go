// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// pdftotextArgs keeps the page layout so chords stay above their syllables,
// and writes UTF-8 text with unix line ends and no page breaks to stdout.
var pdftotextArgs = []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "-nopgbrk"}

// commander abstracts process execution for testing.
type commander interface {
	LookPath(file string) (string, error)
	Output(name string, args []string, stdout io.Writer) error
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osCommander) Output(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// PdftotextConverter runs the poppler pdftotext binary found on PATH.
type PdftotextConverter struct {
	cmd commander
}

// NewPdftotextConverter verifies that pdftotext is installed.
func NewPdftotextConverter() (*PdftotextConverter, error) {
	return newPdftotextConverter(osCommander{})
}

func newPdftotextConverter(cmd commander) (*PdftotextConverter, error) {
	if _, err := cmd.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH (install poppler-utils): %w", binPdftotext, err)
	}
	return &PdftotextConverter{cmd: cmd}, nil
}

// Convert runs pdftotext on pdfPath and returns its layout text.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	args := make([]string, 0, len(pdftotextArgs)+2)
	args = append(args, pdftotextArgs...)
	args = append(args, pdfPath, "-")

	var out bytes.Buffer
	if err := p.cmd.Output(binPdftotext, args, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", pdfPath, binPdftotext, err)
	}
	return normalize(out.String(), pdfPath, binPdftotext)
}
