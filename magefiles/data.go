//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func binary() string {
	return filepath.Join(binDir, binName)
}

// Export regenerates the expert documents in data/ from the researcher
// database. The DSN comes from RESEARCH_DIRECTORY_EXPORT_DSN, the config
// file, or .secrets/export-dsn.
func Export() error {
	mg.Deps(Build, Init)
	return sh.RunV(binary(), "export", "--data-dir", dataDir)
}

// Inspect prints the researcher database schema the export reads.
func Inspect() error {
	mg.Deps(Build)
	return sh.RunV(binary(), "export", "--inspect")
}

// Serve runs the JSON API against data/ with file watching enabled.
func Serve() error {
	mg.Deps(Build, Init)
	args := []string{"serve", "--data-dir", dataDir}
	if addr := os.Getenv("ADDR"); addr != "" {
		args = append(args, "--addr", addr)
	}
	return sh.RunV(binary(), args...)
}
