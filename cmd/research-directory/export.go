// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-directory/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expert documents from the researcher database",
	Long: `Export reads researchers, their publications, expertise, keywords, and
similar-profile links from the researcher database and writes the experts
list, expert details, and similar-profile documents into the output
directory (the data directory by default).

The database DSN comes from --dsn, export.dsn in the config file, or the
export-dsn secret. --inspect prints the schema of the tables the export
reads instead of writing anything.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := export.Open(cfg.Export)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if inspect, _ := cmd.Flags().GetBool("inspect"); inspect {
		return store.Inspect(cmd.Context(), w)
	}

	summary, err := store.Export(cmd.Context(), cfg.Export.OutputDir, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d experts, %d with similar profiles\n", summary.Experts, summary.Similar)
	return nil
}

func init() {
	exportCmd.Flags().String("dsn", "", "researcher database DSN (sqlite file path)")
	exportCmd.Flags().String("out", "", "output directory (default: data directory)")
	exportCmd.Flags().Bool("inspect", false, "print the source table schema and exit")
	viper.BindPFlag("export.dsn", exportCmd.Flags().Lookup("dsn"))
	viper.BindPFlag("export.output_dir", exportCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(exportCmd)
}
