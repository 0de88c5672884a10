package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath *string

var rootCmd = &cobra.Command{
	Use:   "menuscraper",
	Short: "menuscraper scrapes USC residential dining menus into per-date documents.",
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "Path to the scraper config file.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
