package cli

import (
	"fmt"

	"github.com/pfrederiksen/voter-density/internal/config"
	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/pfrederiksen/voter-density/internal/pipeline"
	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/reference"
	"github.com/pfrederiksen/voter-density/internal/scraper"
	"github.com/pfrederiksen/voter-density/internal/storage"
	"github.com/pfrederiksen/voter-density/internal/week"
	"github.com/spf13/cobra"
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape every week of a year and write the dataset",
		Long: `Fetches the registration statistics for Jan 1 and every following Saturday
before today, joins them with the FIPS and population tables and writes the
combined dataset. Any failure aborts the run without writing output.`,
		Args: cobra.NoArgs,
		RunE: runScrape,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Year to scrape (default: current year)")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Results page URL")
	cmd.Flags().StringVar(&flagTimeout, "timeout", "", "Per-request timeout, e.g. 30s (default: none)")
	cmd.Flags().StringVar(&flagFIPS, "fips", "", "County FIPS table (CSV)")
	cmd.Flags().StringVar(&flagPopulation, "population", "", "County population table (CSV)")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	assembler, err := newAssembler(cfg)
	if err != nil {
		return err
	}

	dataset, err := assembler.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scraping: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows for %d weeks to %s\n",
		dataset.Len(), len(assembler.Dates), assembler.Output)
	return nil
}

// newAssembler loads the lookups and wires the pipeline for cfg.
func newAssembler(cfg config.Config) (*pipeline.Assembler, error) {
	fips, err := reference.LoadFIPS(cfg.FIPSFile)
	if err != nil {
		return nil, fmt.Errorf("loading FIPS table: %w", err)
	}
	population, err := reference.LoadPopulation(cfg.PopulationFile)
	if err != nil {
		return nil, fmt.Errorf("loading population table: %w", err)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	dates := week.Saturdays(cfg.ScrapeYear(now()), now())
	logger.Info("starting scrape", logger.Fields{
		"year":        cfg.ScrapeYear(now()),
		"dates":       len(dates),
		"fips":        fips.Len(),
		"populations": population.Len(),
	})

	sc := scraper.New(scraper.Config{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   timeout,
	})

	return pipeline.New(dates, sc, record.NewNormalizer(fips, population), store, cfg.Output), nil
}
