// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/leadsheet/internal/chordpro"
	"github.com/pdiddy/leadsheet/internal/convert"
	"github.com/pdiddy/leadsheet/internal/songbook"
	"github.com/pdiddy/leadsheet/pkg/types"
)

var songbookCmd = &cobra.Command{
	Use:   "songbook",
	Short: "Manage the songbook index (store, retrieve, export)",
	Long: `Songbook manages a local SQLite index built from converted song records.
Use subcommands to index songs, search them, or export the whole book.`,
}

// --- store subcommand ---

var songbookStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Index converted song records",
	Long: `Store reads the YAML song records written by convert, loads them into
the songbook database, and refreshes index/export.yaml. Records whose
content has not changed since the last run are skipped.`,
	Args: cobra.NoArgs,
	RunE: runSongbookStore,
}

func runSongbookStore(cmd *cobra.Command, args []string) error {
	store, err := openSongbook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d song(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var songbookRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Search the songbook by lyric, title, key, author or chord",
	Long: `Retrieve searches section text, section names and titles for a
substring and applies the structured filters (key, author, chord, song).
Each result is one matching section.

Use --show with a song ID to print the whole song as ChordPro.`,
	RunE: runSongbookRetrieve,
}

func runSongbookRetrieve(cmd *cobra.Command, args []string) error {
	store, err := openSongbook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if showID, _ := cmd.Flags().GetString("show"); showID != "" {
		rec, err := store.Song(cmd.Context(), showID)
		if err != nil {
			return err
		}
		return chordpro.Render(os.Stdout, &rec.Song)
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --key, --author, --chord, or --song")
	}

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(os.Stdout, results, jsonOutput)
}

func formatRetrieveOutput(w io.Writer, results []songbook.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-4s  %-12s  %s\n", "Rank", "Song", "Key", "Section", "First line")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, r := range results {
		first, _, _ := strings.Cut(r.Body, "\n")
		fmt.Fprintf(w, "%-4d  %-30s  %-4s  %-12s  %s\n",
			i+1, truncate(r.Title, 30), r.Key, truncate(r.Section, 12), truncate(first, 40))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var songbookExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the songbook to YAML or JSON",
	Long: `Export writes every indexed song, with its sections, chord vocabulary
and rendered ChordPro, to index/export.yaml or index/export.json under the
songbook directory.`,
	Args: cobra.NoArgs,
	RunE: runSongbookExport,
}

func runSongbookExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openSongbook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	switch format {
	case "yaml", "":
		err = store.ExportYAML(ctx)
		format = "yaml"
	case "json":
		err = store.ExportJSON(ctx)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", store.ExportPath(format))
	return nil
}

// --- shared helpers ---

func songbookConfig(cmd *cobra.Command) types.SongbookConfig {
	songsDir, _ := cmd.Flags().GetString("songs-dir")
	if songsDir == "" {
		songsDir = filepath.Join(viper.GetString("conversion.out_dir"), convert.SongsDir)
	}
	return types.SongbookConfig{
		Dir:        viper.GetString("songbook.dir"),
		SongsDir:   songsDir,
		MaxResults: viper.GetInt("songbook.max_results"),
	}
}

func openSongbook(cmd *cobra.Command) (*songbook.Store, error) {
	return songbook.NewStore(songbookConfig(cmd))
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) songbook.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	key, _ := cmd.Flags().GetString("key")
	author, _ := cmd.Flags().GetString("author")
	chord, _ := cmd.Flags().GetString("chord")
	songID, _ := cmd.Flags().GetString("song")
	limit, _ := cmd.Flags().GetInt("limit")

	return songbook.QueryOptions{
		Query:      queryText,
		Key:        key,
		Author:     author,
		Chord:      chord,
		SongID:     songID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	songbookCmd.PersistentFlags().String("dir", "songbook", "base directory for the songbook (contains index/)")
	songbookCmd.PersistentFlags().String("songs-dir", "", "directory of song records (default: <out-dir>/songs)")
	songbookCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	bindFlag("songbook.dir", songbookCmd.PersistentFlags().Lookup("dir"))
	bindFlag("songbook.max_results", songbookCmd.PersistentFlags().Lookup("max-results"))

	// Retrieve flags.
	songbookRetrieveCmd.Flags().String("query", "", "substring to search for")
	songbookRetrieveCmd.Flags().String("key", "", "filter by key, e.g. G or Bb")
	songbookRetrieveCmd.Flags().String("author", "", "filter by author substring")
	songbookRetrieveCmd.Flags().String("chord", "", "filter by a chord used in the song, e.g. D7")
	songbookRetrieveCmd.Flags().String("song", "", "filter by song ID")
	songbookRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	songbookRetrieveCmd.Flags().String("show", "", "print the song with this ID as ChordPro")
	songbookRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	songbookExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	songbookCmd.AddCommand(songbookStoreCmd)
	songbookCmd.AddCommand(songbookRetrieveCmd)
	songbookCmd.AddCommand(songbookExportCmd)

	rootCmd.AddCommand(songbookCmd)
}
