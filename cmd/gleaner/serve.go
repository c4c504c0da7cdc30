package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cobalt-ridge/gleaner/internal/cache"
	"github.com/cobalt-ridge/gleaner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP API",
	Long: `Start the HTTP server exposing /api/extract, /api/upload, /api/export,
and /api/sample-text. The server caches extraction responses and shuts
down gracefully on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		eng := buildEngine()
		defer eng.Close()

		srv := server.New(addr, eng,
			server.WithCache(cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL, nil)),
			server.WithSamplePath(cfg.Server.SamplePath),
			server.WithMaxUploadBytes(cfg.Upload.MaxBytes),
		)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
