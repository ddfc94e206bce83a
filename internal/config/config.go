// Package config reads voter-density settings from a JSON5 file, merged with an
// optional <name>.local.json5 override.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "voter-density.json5"

// Config holds every setting of a run.
type Config struct {
	// Year whose weekly reports are scraped. Zero means the current year.
	Year      int    `json:"year"`
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// Timeout is a Go duration string; empty disables the request timeout.
	Timeout string `json:"timeout"`

	FIPSFile       string `json:"fips_file"`
	PopulationFile string `json:"population_file"`
	BoundariesFile string `json:"boundaries_file"`

	DataDir string `json:"data_dir"`
	Output  string `json:"output"`

	LogLevel string `json:"log_level"`
	Listen   string `json:"listen"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		BaseURL:        "https://vt.ncsbe.gov/RegStat/Results/",
		FIPSFile:       "FIPS.csv",
		PopulationFile: "CountyPopulations.csv",
		BoundariesFile: "north_carolina.geojson",
		DataDir:        ".",
		Output:         "voter_registrations.csv",
		LogLevel:       "info",
		Listen:         ":8080",
	}
}

// Load returns Default overridden by name and then by its .local variant. Missing
// files are skipped.
func Load(name string) (Config, error) {
	cfg := Default()

	for _, path := range []string{name, localName(name)} {
		override, found, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if !found {
			continue
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("merging %s: %w", path, err)
		}
	}

	return cfg, nil
}

// RequestTimeout parses Timeout. An empty value yields zero.
func (c Config) RequestTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: negative", c.Timeout)
	}
	return d, nil
}

// ScrapeYear returns Year, or the year of now when unset.
func (c Config) ScrapeYear(now time.Time) int {
	if c.Year == 0 {
		return now.Year()
	}
	return c.Year
}

func readFile(path string) (Config, bool, error) {
	var out Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, false, nil
		}
		return out, false, fmt.Errorf("reading config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, false, nil
	}

	if err := json5.Unmarshal(data, &out); err != nil {
		return out, false, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return out, true, nil
}

// localName maps dir/name.ext to dir/name.local.ext.
func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}
