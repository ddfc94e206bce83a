package cli

import (
	"github.com/pfrederiksen/voter-density/internal/week"
	"github.com/spf13/cobra"
)

func newDatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Print the weekly reference dates that would be scraped",
		Args:  cobra.NoArgs,
		RunE:  runDates,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Year (default: current year)")
	cmd.Flags().StringVar(&flagDatesFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runDates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := parseFormat(flagDatesFormat, FormatText, FormatJSON)
	if err != nil {
		return err
	}

	year := cfg.ScrapeYear(now())
	return WriteDates(cmd.OutOrStdout(), year, week.Saturdays(year, now()), format)
}
