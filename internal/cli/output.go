package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatCSV   OutputFormat = "csv"
)

// parseFormat validates s against the formats a command supports.
func parseFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, f := range allowed {
		if f == format {
			return format, nil
		}
		names[i] = "'" + string(f) + "'"
	}
	return "", fmt.Errorf("invalid format: %s (must be %s)", s, strings.Join(names, ", "))
}

// DatesResult is the JSON shape of the dates command
type DatesResult struct {
	Year  int      `json:"year"`
	Dates []string `json:"dates"`
	Count int      `json:"count"`
}

// WriteDates writes a reference date series in the specified format
func WriteDates(w io.Writer, year int, dates []string, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, DatesResult{Year: year, Dates: dates, Count: len(dates)})
	case FormatText:
		for _, d := range dates {
			fmt.Fprintln(w, d)
		}
		fmt.Fprintf(w, "\nTotal: %d dates in %d\n", len(dates), year)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDataset writes a dataset in the specified format
func WriteDataset(w io.Writer, dataset *record.Table, format OutputFormat) error {
	switch format {
	case FormatTable:
		return writeTable(w, dataset)
	case FormatCSV:
		return storage.WriteCSV(w, dataset)
	case FormatJSON:
		rows := make([]map[string]string, 0, dataset.Len())
		for _, row := range dataset.Rows {
			rows = append(rows, row)
		}
		return writeJSON(w, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeTable renders the dataset with numeric columns right-aligned
func writeTable(w io.Writer, dataset *record.Table) error {
	if dataset.Len() == 0 {
		fmt.Fprintln(w, "No rows found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(dataset.Columns))
	var configs []table.ColumnConfig
	for i, c := range dataset.Columns {
		header[i] = c
		if c != record.ColumnCounty && c != record.ColumnFIPS && c != record.ColumnWeekEnding {
			configs = append(configs, table.ColumnConfig{Name: c, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, row := range dataset.Rows {
		values := dataset.Values(row)
		tr := make(table.Row, len(values))
		for i, v := range values {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d rows", dataset.Len())})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
