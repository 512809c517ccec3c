// Package commands implements the maskeraser CLI.
package commands

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"maskeraser/internal/config"
	"maskeraser/internal/gemini"
)

var (
	configPath string
	apiKey     string
)

var rootCmd = &cobra.Command{
	Use:   "maskeraser",
	Short: "Mask-based watermark eraser backed by a generative image model",
	Long: `maskeraser removes watermarks from images: draw (or pass) a rectangle
over the watermark, and the tool rasterizes it into a binary mask and asks a
generative image-editing model to reconstruct the area underneath.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "maskeraser.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "model API key (overrides config and $GEMINI_API_KEY)")
}

// Execute runs the root CLI command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and resolves the API key from flag, file
// or environment, in that order. The key is handed to the client
// constructor explicitly; nothing below the cmd layer reads the
// environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func newEditor(cfg *config.Config) (*gemini.Client, error) {
	return gemini.New(gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})
}
