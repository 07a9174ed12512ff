// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/internal/query"
)

// addFormatFlag registers --format with the given choices; the first is
// the default.
func addFormatFlag(cmd *cobra.Command, choices ...string) {
	cmd.Flags().String("format", choices[0], "output format: "+strings.Join(choices, ", "))
	cmd.Annotations = map[string]string{"formats": strings.Join(choices, ",")}
}

func outputFormat(cmd *cobra.Command) (string, error) {
	f, _ := cmd.Flags().GetString("format")
	f = strings.ToLower(strings.TrimSpace(f))
	choices := strings.Split(cmd.Annotations["formats"], ",")
	if !slices.Contains(choices, f) {
		return "", fmt.Errorf("unsupported format %q: choose one of %s", f, strings.Join(choices, ", "))
	}
	return f, nil
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Int("offset", 0, "number of matching records to skip")
	cmd.Flags().Int("limit", 0, "number of records to show (default: page size)")
}

func windowFlags(cmd *cobra.Command) (query.Window, error) {
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")
	if offset < 0 {
		return query.Window{}, fmt.Errorf("--offset must not be negative")
	}
	if limit <= 0 {
		limit = cfg.Directory.PageSize
	}
	return query.Window{Offset: offset, Limit: limit}, nil
}

func addSortFlag(cmd *cobra.Command, keys []string, def string) {
	cmd.Flags().String("sort", def, "sort order: "+strings.Join(keys, ", "))
}

func sortFlag(cmd *cobra.Command, keys []string) (string, error) {
	key, _ := cmd.Flags().GetString("sort")
	if key != "" && !order.Known(keys, key) {
		return "", fmt.Errorf("unknown sort %q: choose one of %s", key, strings.Join(keys, ", "))
	}
	return key, nil
}
