package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTable_Columns(t *testing.T) {
	table := NewTable("A", "B", "C")
	table.Rows = []Row{{"A": "1", "B": "2", "C": "3"}}

	table.AddColumn("D", "4")
	table.DropColumn("B")
	table.DropColumn("missing")

	if diff := cmp.Diff([]string{"A", "C", "D"}, table.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Row{"A": "1", "C": "3", "D": "4"}, table.Rows[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_MoveToFront(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		front   []string
		want    []string
	}{
		{
			name:    "front first then original order",
			columns: []string{"x", "Total", "y", "County", "z"},
			front:   []string{"County", "Total"},
			want:    []string{"County", "Total", "x", "y", "z"},
		},
		{
			name:    "missing front columns are added",
			columns: []string{"x"},
			front:   []string{"County", "FIPS"},
			want:    []string{"County", "FIPS", "x"},
		},
		{
			name:    "already ordered",
			columns: []string{"County", "FIPS", "x"},
			front:   []string{"County", "FIPS"},
			want:    []string{"County", "FIPS", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.columns...)
			table.MoveToFront(tt.front...)
			if diff := cmp.Diff(tt.want, table.Columns); diff != "" {
				t.Errorf("MoveToFront mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConcat(t *testing.T) {
	a := &Table{Columns: []string{"County", "Total"}, Rows: []Row{{"County": "WAKE", "Total": "1"}}}
	b := &Table{Columns: []string{"County", "Total", "Extra"}, Rows: []Row{
		{"County": "DURHAM", "Total": "2", "Extra": "x"},
		{"County": "ANSON", "Total": "3", "Extra": "y"},
	}}

	got := Concat(a, nil, b)

	if diff := cmp.Diff([]string{"County", "Total", "Extra"}, got.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}

	var counties []string
	for _, row := range got.Rows {
		counties = append(counties, row["County"])
	}
	if diff := cmp.Diff([]string{"WAKE", "DURHAM", "ANSON"}, counties); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
	if got.Values(got.Rows[0])[2] != "" {
		t.Error("missing cell should read as empty")
	}
}

func TestTable_Filter(t *testing.T) {
	table := &Table{Columns: []string{"Week Ending"}, Rows: []Row{
		{"Week Ending": "01/01/2024"},
		{"Week Ending": "01/06/2024"},
	}}

	got := table.Filter(func(r Row) bool { return r["Week Ending"] == "01/06/2024" })
	if got.Len() != 1 {
		t.Fatalf("Filter() kept %d rows, want 1", got.Len())
	}
}
