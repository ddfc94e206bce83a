package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	ResultsURL = "https://vt.ncsbe.gov/RegStat/Results/"
	UserAgent  = "voter-density/1.0 (github.com/pfrederiksen/voter-density)"
)

// Config holds the settings of a Scraper. Zero values select the defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds a single request. Zero disables the timeout.
	Timeout   time.Duration
	Extractor Extractor
}

// Scraper fetches results pages and extracts their payloads
type Scraper struct {
	client    *resty.Client
	url       string
	extractor Extractor
}

// New creates a new Scraper instance
func New(cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ResultsURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}
	if cfg.Extractor == nil {
		cfg.Extractor = NewAnchorExtractor()
	}

	client := resty.New().
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Scraper{
		client:    client,
		url:       cfg.BaseURL,
		extractor: cfg.Extractor,
	}
}

// Fetch requests the results page for one reference date (MM/DD/YYYY) and returns
// the embedded payload. Each call is a fresh request.
func (s *Scraper) Fetch(ctx context.Context, date string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("date", date).
		Get(s.url)
	if err != nil {
		return "", fmt.Errorf("fetching page for %s: %w", date, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetching page for %s: unexpected status code: %d", date, resp.StatusCode())
	}

	payload, err := s.extractor.Extract(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("extracting payload for %s: %w", date, err)
	}

	return payload, nil
}
