// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leadsheet/internal/chordpro"
	"github.com/pdiddy/leadsheet/internal/sheet"
	"github.com/pdiddy/leadsheet/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a lead sheet text dump and print ChordPro",
	Long: `Parse reads the layout-preserving text of a lead sheet (for example the
output of pdftotext -layout) from a file, or from stdin when no file is
given, and prints the structured song. Use --format json or yaml to see the
extracted metadata and sections instead of ChordPro.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", string(types.OutputChordPro), "output format: chordpro, json, or yaml")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	song, err := sheet.Parse(string(data))
	if err != nil {
		return err
	}
	if !song.Structured() {
		fmt.Fprintln(os.Stderr, "warning: no sections recognized")
	}

	return printSong(cmd.OutOrStdout(), song, types.OutputFormat(format))
}

func printSong(w io.Writer, song *types.Song, format types.OutputFormat) error {
	switch format {
	case types.OutputChordPro, "":
		return chordpro.Render(w, song)
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(song)
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(song)
	default:
		return fmt.Errorf("unsupported format %q: use chordpro, json, or yaml", format)
	}
}
