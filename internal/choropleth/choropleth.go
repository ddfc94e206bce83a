package choropleth

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/reference"
	"github.com/pfrederiksen/voter-density/internal/week"
)

// DefaultKey is the feature property holding the county FIPS code.
const DefaultKey = "FIPS"

// ErrUnknownMetric is returned when the metric is not a dataset column.
var ErrUnknownMetric = errors.New("unknown metric")

// ErrUnknownWeek is returned when the dataset has no rows for the requested week.
var ErrUnknownWeek = errors.New("unknown week")

// Options selects what a map shows.
type Options struct {
	// Metric is the dataset column used for shading. Defaults to Total.
	Metric string
	// Week is a Week Ending value. Defaults to the latest week in the dataset.
	Week string
	// Percent scales values by 100, used for per-capita maps.
	Percent bool
	// Key is the feature property matched against FIPS. Defaults to DefaultKey.
	Key string
}

// Map is a shaded FeatureCollection with its legend range.
type Map struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	Metric   string    `json:"metric"`
	Week     string    `json:"week"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
}

// Build shades boundaries by opts.Metric for one week of dataset. Only features with
// a matching county row are included.
func Build(boundaries *FeatureCollection, dataset *record.Table, opts Options) (*Map, error) {
	if opts.Metric == "" {
		opts.Metric = record.ColumnTotal
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if !dataset.HasColumn(opts.Metric) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, opts.Metric)
	}

	if opts.Week == "" {
		weeks := Weeks(dataset)
		if len(weeks) == 0 {
			return nil, fmt.Errorf("%w: dataset is empty", ErrUnknownWeek)
		}
		opts.Week = weeks[len(weeks)-1]
	}

	rows := make(map[string]record.Row)
	for _, row := range dataset.Rows {
		if row[record.ColumnWeekEnding] == opts.Week {
			rows[reference.PadFIPS(row[record.ColumnFIPS])] = row
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWeek, opts.Week)
	}

	out := &Map{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(rows)),
		Metric:   opts.Metric,
		Week:     opts.Week,
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
	}

	values := make([]float64, 0, len(rows))
	for _, feature := range boundaries.Features {
		code, ok := feature.Properties[opts.Key]
		if !ok {
			continue
		}
		row, ok := rows[reference.PadFIPS(fmt.Sprint(code))]
		if !ok {
			continue
		}

		value, err := strconv.ParseFloat(row[opts.Metric], 64)
		if err != nil {
			return nil, fmt.Errorf("county %s: %s %q: %w", row[record.ColumnCounty], opts.Metric, row[opts.Metric], err)
		}
		if opts.Percent {
			value *= 100
		}

		props := make(map[string]interface{}, len(feature.Properties)+3)
		for k, v := range feature.Properties {
			props[k] = v
		}
		props["label"] = row[record.ColumnCounty]
		props["value"] = value

		out.Features = append(out.Features, Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   feature.Geometry,
		})
		values = append(values, value)
		out.Min = math.Min(out.Min, value)
		out.Max = math.Max(out.Max, value)
	}

	if len(values) == 0 {
		out.Min, out.Max = 0, 0
	}
	for i := range out.Features {
		out.Features[i].Properties["color"] = Viridis(values[i], out.Min, out.Max)
	}

	return out, nil
}

// Weeks returns the distinct Week Ending values of dataset in date order.
func Weeks(dataset *record.Table) []string {
	seen := make(map[string]bool)
	var weeks []string
	for _, row := range dataset.Rows {
		w := row[record.ColumnWeekEnding]
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		weeks = append(weeks, w)
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		a, errA := week.Parse(weeks[i])
		b, errB := week.Parse(weeks[j])
		if errA != nil || errB != nil {
			return weeks[i] < weeks[j]
		}
		return a.Before(b)
	})
	return weeks
}
