package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/voter-density/internal/config"
	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig        string
	flagLogLevel      string
	flagDataDir       string
	flagOutput        string
	flagYear          int
	flagBaseURL       string
	flagTimeout       string
	flagFIPS          string
	flagPopulation    string
	flagBoundaries    string
	flagListen        string
	flagDatesFormat   string
	flagPreviewFormat string
	flagWeek          string
	flagSort          string
	flagLimit         int
)

// now is swapped in tests
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voter-density",
		Short: "Scrape weekly NC voter registrations and map them per county",
		Long: `A CLI tool that scrapes the NC State Board of Elections weekly voter
registration statistics, joins them with county FIPS codes and populations,
and writes one long-form CSV with a row per county per week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(level, os.Stderr))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultFile, "Path to JSON5 config file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory the dataset is written to")
	cmd.PersistentFlags().StringVar(&flagOutput, "output", "", "Dataset file name")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newDatesCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig reads the config file and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	overrides := []struct {
		name   string
		target *string
		value  string
	}{
		{"log-level", &cfg.LogLevel, flagLogLevel},
		{"data-dir", &cfg.DataDir, flagDataDir},
		{"output", &cfg.Output, flagOutput},
		{"base-url", &cfg.BaseURL, flagBaseURL},
		{"timeout", &cfg.Timeout, flagTimeout},
		{"fips", &cfg.FIPSFile, flagFIPS},
		{"population", &cfg.PopulationFile, flagPopulation},
		{"boundaries", &cfg.BoundariesFile, flagBoundaries},
		{"listen", &cfg.Listen, flagListen},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.target = o.value
		}
	}
	if flags.Changed("year") {
		cfg.Year = flagYear
	}

	return cfg, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
