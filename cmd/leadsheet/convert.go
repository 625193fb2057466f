// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/leadsheet/internal/convert"
	"github.com/pdiddy/leadsheet/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs or directories...]",
	Short: "Convert PDF lead sheets to ChordPro",
	Long: `Convert extracts the text layer of each PDF lead sheet, structures it
into metadata and named sections, and writes <out-dir>/chordpro/<name>.cho
plus a YAML song record in <out-dir>/songs/. Directories are expanded to the
PDFs they contain. Sheets that already have ChordPro output are skipped.

Backends: pdftotext (local poppler binary), container (pdftotext inside a
docker or podman image), native (in-process text extraction).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", "pdftotext", "conversion backend: pdftotext, container, or native")
	convertCmd.Flags().String("out-dir", "out", "base directory for output (contains chordpro/, songs/)")
	convertCmd.Flags().String("image", convert.DefaultImage, "container image for the container backend")
	convertCmd.Flags().String("runtime", "", "preferred container runtime: docker or podman")

	bindFlag("conversion.backend", convertCmd.Flags().Lookup("backend"))
	bindFlag("conversion.out_dir", convertCmd.Flags().Lookup("out-dir"))
	bindFlag("conversion.image", convertCmd.Flags().Lookup("image"))
	bindFlag("conversion.runtime", convertCmd.Flags().Lookup("runtime"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	paths, err := collectPDFs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", strings.Join(args, ", "))
	}

	cfg := conversionConfig()
	c, err := convert.New(cfg)
	if err != nil {
		return err
	}

	result := convert.ConvertPaths(c, paths, cfg.OutDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d sheet(s) failed conversion", result.Failed)
	}
	return nil
}

func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Backend: types.ConversionBackend(viper.GetString("conversion.backend")),
		OutDir:  viper.GetString("conversion.out_dir"),
		Image:   viper.GetString("conversion.image"),
		Runtime: viper.GetString("conversion.runtime"),
	}
}

// collectPDFs expands directory arguments to the PDFs directly inside them
// and passes file arguments through. The result is sorted and de-duplicated.
func collectPDFs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				add(filepath.Join(arg, e.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
