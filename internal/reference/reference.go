// Package reference loads the static county lookup tables joined onto the scraped
// registration rows: county name to FIPS code and county name to population.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	ColumnCounty     = "County"
	ColumnFIPS       = "FIPS"
	ColumnPopulation = "Population"
)

// ErrDuplicateCounty is returned when a lookup file lists the same county twice.
var ErrDuplicateCounty = errors.New("duplicate county")

// ErrMissingColumn is returned when a lookup file lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Entry is one lookup row: the joined value plus any extra columns of the file.
type Entry struct {
	County string
	Value  string
	Extra  map[string]string
}

// Lookup maps a county name to its entry. County keys are matched exactly.
type Lookup struct {
	// Column is the name of the value column (FIPS or Population).
	Column string
	// ExtraColumns lists the file's other columns in file order.
	ExtraColumns []string

	entries map[string]Entry
	order   []string
}

// Get returns the entry for county.
func (l *Lookup) Get(county string) (Entry, bool) {
	e, ok := l.entries[county]
	return e, ok
}

// Counties returns the county keys in file order.
func (l *Lookup) Counties() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of counties.
func (l *Lookup) Len() int {
	return len(l.order)
}

// LoadFIPS reads a FIPS table with at least County and FIPS columns. FIPS codes are
// zero-padded to three characters.
func LoadFIPS(path string) (*Lookup, error) {
	return loadFile(path, ColumnFIPS, PadFIPS)
}

// LoadPopulation reads a population table with at least County and Population columns.
func LoadPopulation(path string) (*Lookup, error) {
	return loadFile(path, ColumnPopulation, strings.TrimSpace)
}

// ReadFIPS is LoadFIPS over an already open reader.
func ReadFIPS(r io.Reader) (*Lookup, error) {
	return read(r, ColumnFIPS, PadFIPS)
}

// ReadPopulation is LoadPopulation over an already open reader.
func ReadPopulation(r io.Reader) (*Lookup, error) {
	return read(r, ColumnPopulation, strings.TrimSpace)
}

// PadFIPS left-pads a county FIPS code with zeros to three characters.
func PadFIPS(code string) string {
	code = strings.TrimSpace(code)
	if len(code) >= 3 {
		return code
	}
	return strings.Repeat("0", 3-len(code)) + code
}

func loadFile(path, column string, normalize func(string) string) (*Lookup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s table %s: %w", column, path, err)
	}
	defer file.Close()

	lookup, err := read(file, column, normalize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lookup, nil
}

func read(r io.Reader, column string, normalize func(string) string) (*Lookup, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s table is empty", column)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	// Excel exports lead with a byte order mark
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	countyIdx, valueIdx := -1, -1
	var extra []int
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		switch header[i] {
		case ColumnCounty:
			countyIdx = i
		case column:
			valueIdx = i
		default:
			extra = append(extra, i)
		}
	}
	if countyIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnCounty)
	}
	if valueIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	lookup := &Lookup{
		Column:  column,
		entries: make(map[string]Entry),
	}
	for _, i := range extra {
		lookup.ExtraColumns = append(lookup.ExtraColumns, header[i])
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		county := strings.TrimSpace(record[countyIdx])
		if county == "" {
			continue
		}
		if _, exists := lookup.entries[county]; exists {
			return nil, fmt.Errorf("%w: %s (line %d)", ErrDuplicateCounty, county, line)
		}

		entry := Entry{
			County: county,
			Value:  normalize(record[valueIdx]),
		}
		if len(extra) > 0 {
			entry.Extra = make(map[string]string, len(extra))
			for _, i := range extra {
				entry.Extra[header[i]] = record[i]
			}
		}

		lookup.entries[county] = entry
		lookup.order = append(lookup.order, county)
	}

	return lookup, nil
}

// FromMap builds a lookup without extra columns, mostly for tests and fixtures.
func FromMap(column string, values map[string]string) *Lookup {
	lookup := &Lookup{
		Column:  column,
		entries: make(map[string]Entry, len(values)),
	}
	counties := make([]string, 0, len(values))
	for county := range values {
		counties = append(counties, county)
	}
	sort.Strings(counties)

	for _, county := range counties {
		value := values[county]
		if column == ColumnFIPS {
			value = PadFIPS(value)
		}
		lookup.entries[county] = Entry{County: county, Value: value}
		lookup.order = append(lookup.order, county)
	}
	return lookup
}
