// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the leadsheet CLI. It converts lead
// sheet PDFs to ChordPro, parses text dumps, and manages the songbook index.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the leadsheet CLI.
var rootCmd = &cobra.Command{
	Use:   "leadsheet",
	Short: "Convert PDF lead sheets into ChordPro",
	Long: `leadsheet turns chord-over-lyric lead sheets exported as PDF into
ChordPro documents. The convert command extracts text with pdftotext (local,
in a container, or in-process) and structures it into metadata and named
sections. The parse command does the same for a text dump, and the songbook
command indexes converted songs for search and export.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./leadsheet.yaml or ~/.config/leadsheet/config.yaml)")

	viper.SetDefault("conversion.backend", "pdftotext")
	viper.SetDefault("conversion.out_dir", "out")
	viper.SetDefault("songbook.dir", "songbook")
	viper.SetDefault("songbook.max_results", 20)
}

func initConfig() {
	// LEADSHEET_* variables may live in a .env file next to the config.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("leadsheet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "leadsheet"))
		}
	}

	viper.SetEnvPrefix("LEADSHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlag ties a flag to a config key so the config file and environment
// supply its default.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
