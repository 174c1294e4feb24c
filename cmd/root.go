package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gizmito78/todobiwenger/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "todobiwenger",
	Short: "Transfer-market scraper for LaLiga competitions",
	Long:  "Scrapes the transfer-market listing for LaLiga EA Sports and LaLiga Hypermotion, normalizes whatever the page offers, and serves it over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
