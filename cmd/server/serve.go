package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/image-lab/internal/server"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the HTTP service until SIGINT or SIGTERM.

Schema migrations are applied first when database.auto_migrate is true or
--migrate is passed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, infra, err := bootstrap()
			if err != nil {
				return err
			}

			if migrate || cfg.Database.AutoMigrate {
				if err := infra.Migrate(); err != nil {
					return err
				}
			}

			srv, err := server.New(cfg, infra)
			if err != nil {
				return err
			}

			if err := srv.Start(); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
				return err
			}

			infra.Logger.Info("service stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
