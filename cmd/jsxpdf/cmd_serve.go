package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an HTTP API that renders posted documents",
	Long: "Start an HTTP server with the following routes:\n\n" +
		"  POST /render    render the YAML document in the body, ?pages=N\n" +
		"  GET  /health    liveness and process stats\n" +
		"  GET  /metrics   Prometheus metrics\n\n" +
		"Component libraries are loaded once at start.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			a.settings.Serve.Addr, _ = cmd.Flags().GetString("addr")
			if err := a.settings.Validate(); err != nil {
				return err
			}
		}
		libs, err := a.libraries()
		if err != nil {
			return err
		}
		opts, err := a.previewOptions(cmd)
		if err != nil {
			return err
		}

		log := a.log.With().Str("component", "server").Logger()
		srv := &http.Server{
			Addr:              a.settings.Serve.Addr,
			Handler:           newServer(log, libs, opts, a.settings.Serve.MaxBodyBytes),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Int("libraries", len(libs)).Msg("listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
			log.Info().Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from settings, :8080)")
	addPreviewFlags(serveCmd)
}
