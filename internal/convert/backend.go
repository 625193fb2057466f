// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/leadsheet/internal/container"
	"github.com/pdiddy/leadsheet/pkg/types"
)

// detectRuntime is replaced in tests.
var detectRuntime = container.DetectPreferred

// New returns the Converter for cfg.Backend. An empty backend selects
// pdftotext.
func New(cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		c, err := NewPdftotextConverter()
		if err != nil {
			return nil, err
		}
		return c, nil
	case types.BackendContainer:
		rt, err := detectRuntime(cfg.Runtime)
		if err != nil {
			return nil, err
		}
		c, err := NewContainerConverter(rt, cfg.Image)
		if err != nil {
			return nil, err
		}
		return c, nil
	case types.BackendNative:
		return NativeConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (want %s, %s, or %s)",
			cfg.Backend, types.BackendPdftotext, types.BackendContainer, types.BackendNative)
	}
}
