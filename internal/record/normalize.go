package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/pfrederiksen/voter-density/internal/reference"
)

// Column names of the payload and of the enriched output.
const (
	ColumnCountyName = "CountyName"
	ColumnAppVersion = "AppVersion"
	ColumnCounty     = reference.ColumnCounty
	ColumnFIPS       = reference.ColumnFIPS
	ColumnPopulation = reference.ColumnPopulation
	ColumnTotal      = "Total"
	ColumnPerCapita  = "TotalVotersPerCapita"
	ColumnWeekEnding = "Week Ending"
)

// OutputPrefix is the fixed leading column order of an enriched table.
var OutputPrefix = []string{
	ColumnCounty,
	ColumnFIPS,
	ColumnPopulation,
	ColumnTotal,
	ColumnPerCapita,
	ColumnWeekEnding,
}

var (
	// ErrMissingColumn is returned when the payload lacks CountyName or Total.
	ErrMissingColumn = errors.New("missing column")
	// ErrZeroPopulation is returned when a joined county has a population of zero.
	ErrZeroPopulation = errors.New("division by zero population")
)

// suggestThreshold is the Jaro-Winkler similarity above which a dropped county is
// logged with the reference name it most likely meant.
const suggestThreshold = 0.85

// Normalizer enriches registration payloads with FIPS codes and populations.
type Normalizer struct {
	fips       *reference.Lookup
	population *reference.Lookup
	log        *logger.Logger
	metrics    *logger.Metrics
}

// NewNormalizer creates a Normalizer over the two lookups.
func NewNormalizer(fips, population *reference.Lookup) *Normalizer {
	return &Normalizer{
		fips:       fips,
		population: population,
		log:        logger.Named("record"),
		metrics:    logger.DefaultMetrics(),
	}
}

// Normalize parses payload and returns the enriched rows for the week ending date.
// Counties absent from either lookup are dropped; every other failure is returned.
func (n *Normalizer) Normalize(payload, date string) (*Table, error) {
	table, err := ParsePayload(payload)
	if err != nil {
		return nil, err
	}

	if table.Len() == 0 {
		n.log.Warn("empty payload", logger.Fields{"date": date})
		return NewTable(OutputPrefix...), nil
	}
	for _, required := range []string{ColumnCountyName, ColumnTotal} {
		if !table.HasColumn(required) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	table.DropColumn(ColumnAppVersion)
	table.AddColumn(ColumnWeekEnding, date)

	for _, row := range table.Rows {
		row[ColumnCountyName] = Capitalize(row[ColumnCountyName])
	}

	table = n.join(table, n.fips, ColumnCountyName, ColumnCounty, date)
	table.DropColumn(ColumnCountyName)
	table = n.join(table, n.population, ColumnCounty, "", date)

	for _, row := range table.Rows {
		ratio, err := perCapita(row[ColumnTotal], row[ColumnPopulation])
		if err != nil {
			return nil, fmt.Errorf("county %s: %w", row[ColumnCounty], err)
		}
		row[ColumnPerCapita] = strconv.FormatFloat(ratio, 'f', -1, 64)
	}
	table.MoveToFront(OutputPrefix...)

	for _, row := range table.Rows {
		row[ColumnCounty] = strings.ToUpper(row[ColumnCounty])
	}

	return table, nil
}

// join keeps the rows whose key column matches a county in lookup and copies in the
// lookup's value and extra columns. When countyColumn is set the lookup's county name
// is written to it.
func (n *Normalizer) join(table *Table, lookup *reference.Lookup, key, countyColumn, date string) *Table {
	out := NewTable(table.Columns...)
	if countyColumn != "" {
		out.ensureColumn(countyColumn)
	}
	out.ensureColumn(lookup.Column)

	var extras []string
	for _, c := range lookup.ExtraColumns {
		if !out.HasColumn(c) {
			extras = append(extras, c)
			out.ensureColumn(c)
		}
	}

	for _, row := range table.Rows {
		entry, ok := lookup.Get(row[key])
		if !ok {
			n.dropped(lookup, row[key], date)
			continue
		}

		if countyColumn != "" {
			row[countyColumn] = entry.County
		}
		row[lookup.Column] = entry.Value
		for _, c := range extras {
			row[c] = entry.Extra[c]
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

func (n *Normalizer) dropped(lookup *reference.Lookup, county, date string) {
	n.metrics.IncrCounter("record.dropped_rows")

	fields := logger.Fields{
		"county": county,
		"date":   date,
		"lookup": lookup.Column,
	}
	if match, score := closest(county, lookup.Counties()); score >= suggestThreshold {
		fields["closest"] = match
		fields["similarity"] = score
	}
	n.log.Warn("county not in lookup, row dropped", fields)
}

// closest returns the candidate most similar to name.
func closest(name string, candidates []string) (string, float64) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(c), false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}

func perCapita(total, population string) (float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", ColumnTotal, total, err)
	}
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(population), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", ColumnPopulation, population, err)
	}
	if p == 0 {
		return 0, ErrZeroPopulation
	}
	return t / p, nil
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
