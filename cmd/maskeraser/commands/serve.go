package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"maskeraser/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser UI and HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		log := newLogger(cfg)

		var editor server.ImageEditor
		if cfg.APIKey != "" {
			client, err := newEditor(cfg)
			if err != nil {
				return err
			}
			editor = client
		} else {
			log.Warn("no API key configured; selection works but edits will fail")
		}

		srv, err := server.New(cfg, log, editor)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "addr", "a", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
