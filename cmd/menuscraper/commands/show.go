package commands

import (
	"fmt"
	"os"
	"strings"
	"time"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/serviceutil"
	"uscmenu-backend/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [YYYY-MM-DD]",
	Short: "Prints the stored menu document for a date (today by default).",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		date := timezone.Midnight(timezone.Now()).Format(time.DateOnly)
		if len(args) > 0 {
			parsed, err := time.ParseInLocation(time.DateOnly, args[0], timezone.Location)
			if err != nil {
				serviceutil.Fatal("failed to parse date", err)
			}
			date = parsed.Format(time.DateOnly)
		}

		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		st, err := buildStore(ctx, cfg)
		if err != nil {
			serviceutil.Fatal("failed to open store", err)
		}

		doc, ok, err := st.Get(ctx, date)
		if err != nil {
			serviceutil.Fatal("failed to read menu document", err)
		}
		if !ok {
			fmt.Printf("no menu stored for %s\n", date)
			return
		}

		for _, mealType := range menu.MealTypes {
			halls := doc.Meal(mealType)
			if len(halls) == 0 {
				continue
			}
			fmt.Printf("\n%s\n", mealType)
			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Hall", "Station", "Item", "Tags"})
			for _, hall := range halls {
				for _, section := range hall.Sections {
					for _, item := range section.Items {
						t.AppendRow(table.Row{
							hall.Name,
							section.Name,
							item.Name,
							strings.Join(item.Allergens, ", "),
						})
					}
				}
				t.AppendSeparator()
			}
			t.Render()
		}
	},
}
