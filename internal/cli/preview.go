package cli

import (
	"fmt"

	"github.com/pfrederiksen/voter-density/internal/choropleth"
	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/storage"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the persisted dataset as a table",
		Long: `Reads the dataset written by scrape and prints it. --week selects one week
("latest" for the most recent), --sort orders rows by county, total or
per-capita, and --limit caps the number of rows shown.`,
		Args: cobra.NoArgs,
		RunE: runPreview,
	}

	cmd.Flags().StringVar(&flagWeek, "week", "", "Week Ending date (MM/DD/YYYY) or 'latest'")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort by: county, total or per-capita")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum rows to show (0 = all)")
	cmd.Flags().StringVar(&flagPreviewFormat, "format", "table", "Output format: table, csv or json")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := parseFormat(flagPreviewFormat, FormatTable, FormatCSV, FormatJSON)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	dataset, err := store.LoadDataset(cfg.Output)
	if err != nil {
		return err
	}

	if flagWeek != "" {
		selected := flagWeek
		if selected == "latest" {
			weeks := choropleth.Weeks(dataset)
			if len(weeks) == 0 {
				return fmt.Errorf("dataset has no weeks")
			}
			selected = weeks[len(weeks)-1]
		}
		dataset = dataset.Filter(func(r record.Row) bool {
			return r[record.ColumnWeekEnding] == selected
		})
	}

	if flagSort != "" {
		if err := sortRows(dataset, SortOrder(flagSort)); err != nil {
			return err
		}
	}
	if flagLimit > 0 && dataset.Len() > flagLimit {
		dataset.Rows = dataset.Rows[:flagLimit]
	}

	return WriteDataset(cmd.OutOrStdout(), dataset, format)
}
