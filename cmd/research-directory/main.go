// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-directory CLI. It
// queries a directory of exported expert and funding opportunity
// documents, serves them over HTTP, and regenerates the expert documents
// from the researcher database.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-directory/internal/config"
	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/internal/logging"
	"github.com/pdiddy/research-directory/internal/query"
	"github.com/pdiddy/research-directory/internal/secrets"
	"github.com/pdiddy/research-directory/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the validated configuration, filled in before any command runs.
	cfg    types.Config
	logger = zap.NewNop()
)

// rootCmd is the base command for the research-directory CLI.
var rootCmd = &cobra.Command{
	Use:   "research-directory",
	Short: "Browse university experts and funding opportunities",
	Long: `research-directory answers queries over a data directory of exported
expert and funding opportunity documents.

Browse experts and their publications, list open funding opportunities by
agency and award size, serve the same queries as a JSON API for the
browser front end, and export fresh expert documents from the researcher
database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		secrets.Apply(&cfg, s)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./research-directory.yaml or ~/.config/research-directory/research-directory.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of secret files")
	pf.String("data-dir", "", "directory holding the exported JSON documents")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("directory.data_dir", pf.Lookup("data-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	home, _ := os.UserHomeDir()
	config.Configure(viper.GetViper(), cfgFile, home)

	if err := config.Read(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			fmt.Fprintln(os.Stderr, "Using config file:", used)
		}
	}
}

// loadState reads the data directory. Document failures are logged and the
// documents that did load are still queried.
func loadState(ctx context.Context) *query.State {
	snap, err := ingest.NewLoader(cfg.Directory, logger).Load(ctx)
	if err != nil {
		logger.Warn("data directory loaded with errors", zap.Error(err))
	}
	return query.NewState(snap)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
