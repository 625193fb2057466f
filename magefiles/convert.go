//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI, converts every PDF in sheets/raw to ChordPro and
// refreshes the songbook index.
func Convert() error {
	mg.Deps(Init, Build)

	fmt.Println("[convert] sheets/raw -> out/chordpro, out/songs")
	if err := sh.RunV(binPath, "convert", "sheets/raw"); err != nil {
		return err
	}
	fmt.Println("[songbook] indexing out/songs")
	return sh.RunV(binPath, "songbook", "store")
}
