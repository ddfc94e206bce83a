// Package pipeline assembles the weekly registration dataset: for every reference
// date it fetches the results page, normalizes the payload and appends the rows,
// then writes the concatenated table once.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/pfrederiksen/voter-density/internal/record"
)

// Fetcher returns the raw payload for one reference date.
type Fetcher interface {
	Fetch(ctx context.Context, date string) (string, error)
}

// Normalizer turns a payload into enriched rows for its date.
type Normalizer interface {
	Normalize(payload, date string) (*record.Table, error)
}

// Saver persists the finished dataset.
type Saver interface {
	SaveDataset(name string, table *record.Table) error
}

// Assembler drives one acquisition run.
type Assembler struct {
	Dates      []string
	Fetcher    Fetcher
	Normalizer Normalizer
	Saver      Saver
	Output     string

	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates an Assembler. Output is the dataset name handed to saver.
func New(dates []string, fetcher Fetcher, normalizer Normalizer, saver Saver, output string) *Assembler {
	return &Assembler{
		Dates:      dates,
		Fetcher:    fetcher,
		Normalizer: normalizer,
		Saver:      saver,
		Output:     output,
		log:        logger.Named("pipeline"),
		metrics:    logger.DefaultMetrics(),
	}
}

// Build fetches and normalizes every date in order and concatenates the results.
// The first failure aborts the build.
func (a *Assembler) Build(ctx context.Context) (*record.Table, error) {
	tables := make([]*record.Table, 0, len(a.Dates))

	for i, date := range a.Dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		payload, err := a.Fetcher.Fetch(ctx, date)
		a.metrics.RecordTiming("pipeline.fetch", time.Since(start))
		if err != nil {
			a.log.Error("fetch failed", logger.Fields{"date": date}, err)
			return nil, fmt.Errorf("fetching %s: %w", date, err)
		}

		table, err := a.Normalizer.Normalize(payload, date)
		if err != nil {
			a.log.Error("normalize failed", logger.Fields{"date": date}, err)
			return nil, fmt.Errorf("normalizing %s: %w", date, err)
		}

		a.metrics.IncrCounter("pipeline.dates")
		a.metrics.AddCounter("pipeline.rows", int64(table.Len()))
		a.log.Info("week processed", logger.Fields{
			"date":  date,
			"rows":  table.Len(),
			"index": i + 1,
			"total": len(a.Dates),
		})

		tables = append(tables, table)
	}

	dataset := record.Concat(tables...)
	if len(dataset.Columns) == 0 {
		dataset.Columns = append(dataset.Columns, record.OutputPrefix...)
	}
	return dataset, nil
}

// Run builds the dataset and saves it. Nothing is saved when the build fails.
func (a *Assembler) Run(ctx context.Context) (*record.Table, error) {
	dataset, err := a.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.Saver.SaveDataset(a.Output, dataset); err != nil {
		return nil, fmt.Errorf("saving dataset: %w", err)
	}

	a.metrics.SetGauge("pipeline.dataset_rows", float64(dataset.Len()))
	a.log.Info("dataset written", logger.Fields{
		"output":  a.Output,
		"rows":    dataset.Len(),
		"dates":   len(a.Dates),
		"metrics": a.metrics.GetSnapshot(),
	})

	return dataset, nil
}
