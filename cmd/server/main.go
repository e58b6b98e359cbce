// Command server runs the image-lab service and its maintenance tasks.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/image-lab/internal/api"
	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/internal/infrastructure"
)

var rootCmd = &cobra.Command{
	Use:          "image-lab",
	Short:        "Image ingestion, cover resizing, and paginated retrieval service",
	Version:      api.Version,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and assembles infrastructure without starting it.
func bootstrap() (*config.Config, *infrastructure.Infrastructure, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, infra, nil
}
