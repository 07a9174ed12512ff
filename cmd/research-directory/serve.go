// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/internal/query"
	"github.com/pdiddy/research-directory/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory as a JSON API",
	Long: `Serve loads the data directory and answers expert and opportunity queries
over HTTP for the browser front end. With --watch the directory is
reloaded when its documents change; POST /api/reload forces a reload.
A reload that fails keeps serving the previous data.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := ingest.NewLoader(cfg.Directory, logger)
	snap, err := loader.Load(ctx)
	if err != nil {
		logger.Warn("initial load incomplete", zap.Error(err))
	}

	srv := server.New(query.NewHolder(snap), loader, cfg.Server, loader.PageSize(), logger)
	logger.Debug("data directory loaded", zap.String("data_dir", loader.DataDir()))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().Bool("watch", true, "reload when data files change")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.watch", serveCmd.Flags().Lookup("watch"))

	rootCmd.AddCommand(serveCmd)
}
