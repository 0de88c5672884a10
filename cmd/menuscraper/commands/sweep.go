package commands

import (
	"fmt"
	"uscmenu-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sweepCmd)
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Deletes stored menu documents outside the current date window.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		service, err := buildService(ctx, cfg, false, nil)
		if err != nil {
			serviceutil.Fatal("failed to initialize store", err)
		}

		deleted, err := service.Sweep(ctx)
		if err != nil {
			serviceutil.Fatal("sweep failed", err)
		}
		if len(deleted) == 0 {
			fmt.Println("nothing to sweep")
			return
		}
		for _, key := range deleted {
			fmt.Println("deleted", key)
		}
	},
}
