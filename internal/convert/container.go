// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/leadsheet/internal/container"
)

// DefaultImage is the local poppler image used by the container backend.
// Its entrypoint is pdftotext.
const DefaultImage = "poppler:latest"

// ContainerConverter converts PDFs by piping them through pdftotext inside a
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter creates a converter that runs image with the given
// runtime. It verifies that the image exists locally before returning. An
// empty image selects DefaultImage.
func NewContainerConverter(rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert streams the PDF at pdfPath into the container on stdin and returns
// the layout text read from stdout.
func (c *ContainerConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	args := make([]string, 0, len(pdftotextArgs)+2)
	args = append(args, pdftotextArgs...)
	args = append(args, "-", "-")

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s in %s: %w", pdfPath, c.image, err)
	}
	return normalize(out.String(), pdfPath, c.image)
}
