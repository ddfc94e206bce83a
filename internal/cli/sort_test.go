package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/voter-density/internal/record"
)

func sortFixture() *record.Table {
	table := record.NewTable(record.OutputPrefix...)
	table.Rows = []record.Row{
		{"County": "WAKE", "Total": "100", "TotalVotersPerCapita": "0.1", "Week Ending": "01/06/2024"},
		{"County": "ANSON", "Total": "300", "TotalVotersPerCapita": "0.3", "Week Ending": "01/06/2024"},
		{"County": "WAKE", "Total": "90", "TotalVotersPerCapita": "0.2", "Week Ending": "01/01/2024"},
		{"County": "DARE", "Total": "n/a", "TotalVotersPerCapita": "", "Week Ending": "01/01/2024"},
	}
	return table
}

func keys(table *record.Table) []string {
	var out []string
	for _, r := range table.Rows {
		out = append(out, r["County"]+"@"+r["Week Ending"])
	}
	return out
}

func TestSortRows(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByCounty, []string{"ANSON@01/06/2024", "DARE@01/01/2024", "WAKE@01/01/2024", "WAKE@01/06/2024"}},
		{SortByTotal, []string{"ANSON@01/06/2024", "WAKE@01/06/2024", "WAKE@01/01/2024", "DARE@01/01/2024"}},
		{SortByPerCapita, []string{"ANSON@01/06/2024", "WAKE@01/01/2024", "WAKE@01/06/2024", "DARE@01/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			table := sortFixture()
			if err := sortRows(table, tt.order); err != nil {
				t.Fatalf("sortRows() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, keys(table)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if err := sortRows(sortFixture(), "population"); err == nil {
		t.Error("sortRows() expected error for unknown order")
	}
}
