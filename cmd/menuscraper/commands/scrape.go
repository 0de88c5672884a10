package commands

import (
	"fmt"
	"os"
	"time"
	"uscmenu-backend/lib/serviceutil"
	"uscmenu-backend/lib/telemetry"
	"uscmenu-backend/lib/timezone"

	"github.com/spf13/cobra"
)

var (
	scrapeDays  *int
	scrapeStart *string
)

func init() {
	scrapeDays = scrapeCmd.Flags().Int("days", 0, "Number of future days to scrape beyond the start date. Overrides the config.")
	scrapeStart = scrapeCmd.Flags().String("start", "", "Start date (YYYY-MM-DD) instead of today. Useful for backfills.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--days <n>] [--start <YYYY-MM-DD>]",
	Short: "Scrapes all configured dining halls over the date window and writes the merged documents.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		t, err := telemetry.SetupFromEnv(ctx, "menuscraper")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		if err == nil {
			defer t.Shutdown(ctx)
			telemetry.InstrumentPerfStats(ctx)
		}

		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if *scrapeDays > 0 {
			cfg.WindowDays = *scrapeDays
		}

		var now func() time.Time
		if *scrapeStart != "" {
			start, err := time.ParseInLocation(time.DateOnly, *scrapeStart, timezone.Location)
			if err != nil {
				serviceutil.Fatal("failed to parse start date", err)
			}
			now = func() time.Time { return start }
		}

		service, err := buildService(ctx, cfg, true, now)
		if err != nil {
			serviceutil.Fatal("failed to initialize scraper", err)
		}

		report, err := service.Run(ctx)
		if err != nil {
			serviceutil.Fatal("scrape run failed", err)
		}
		fmt.Println(report.Render())
	},
}
