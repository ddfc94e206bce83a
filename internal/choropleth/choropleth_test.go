package choropleth

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/voter-density/internal/record"
)

const boundariesJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"FIPS": "183", "NAME": "Wake"}, "geometry": {"type": "Point", "coordinates": [0, 0]}},
		{"type": "Feature", "properties": {"FIPS": 63, "NAME": "Durham"}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
		{"type": "Feature", "properties": {"FIPS": "007", "NAME": "Anson"}, "geometry": {"type": "Point", "coordinates": [2, 2]}},
		{"type": "Feature", "properties": {"NAME": "No code"}, "geometry": null}
	]
}`

func testDataset() *record.Table {
	table := record.NewTable(record.OutputPrefix...)
	table.Rows = []record.Row{
		{"County": "WAKE", "FIPS": "183", "Total": "100", "TotalVotersPerCapita": "0.5", "Week Ending": "01/06/2024"},
		{"County": "DURHAM", "FIPS": "063", "Total": "50", "TotalVotersPerCapita": "0.25", "Week Ending": "01/06/2024"},
		{"County": "WAKE", "FIPS": "183", "Total": "90", "TotalVotersPerCapita": "0.45", "Week Ending": "01/01/2024"},
		{"County": "WAKE", "FIPS": "183", "Total": "80", "TotalVotersPerCapita": "0.4", "Week Ending": "12/30/2023"},
	}
	return table
}

func mustBoundaries(t *testing.T) *FeatureCollection {
	t.Helper()
	fc, err := ReadBoundaries(strings.NewReader(boundariesJSON))
	if err != nil {
		t.Fatalf("ReadBoundaries() error: %v", err)
	}
	return fc
}

func TestBuild_LatestWeekByDefault(t *testing.T) {
	m, err := Build(mustBoundaries(t), testDataset(), Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if m.Week != "01/06/2024" {
		t.Errorf("Week = %q, want 01/06/2024", m.Week)
	}
	if m.Metric != "Total" {
		t.Errorf("Metric = %q, want Total", m.Metric)
	}
	if m.Min != 50 || m.Max != 100 {
		t.Errorf("range = [%v, %v], want [50, 100]", m.Min, m.Max)
	}

	var labels []string
	for _, f := range m.Features {
		labels = append(labels, f.Properties["label"].(string))
	}
	if diff := cmp.Diff([]string{"WAKE", "DURHAM"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	if got := m.Features[0].Properties["color"]; got != "#fde725" {
		t.Errorf("max color = %v, want #fde725", got)
	}
	if got := m.Features[1].Properties["color"]; got != "#440154" {
		t.Errorf("min color = %v, want #440154", got)
	}
	if got := m.Features[0].Properties["NAME"]; got != "Wake" {
		t.Errorf("original properties should be kept, NAME = %v", got)
	}
}

func TestBuild_PercentPerCapita(t *testing.T) {
	m, err := Build(mustBoundaries(t), testDataset(), Options{
		Metric:  "TotalVotersPerCapita",
		Week:    "01/01/2024",
		Percent: true,
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(m.Features) != 1 {
		t.Fatalf("features = %d, want 1", len(m.Features))
	}
	if v := m.Features[0].Properties["value"].(float64); v != 45 {
		t.Errorf("value = %v, want 45", v)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"unknown metric", Options{Metric: "Nope"}, ErrUnknownMetric},
		{"unknown week", Options{Week: "02/03/2024"}, ErrUnknownWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(mustBoundaries(t), testDataset(), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Build(mustBoundaries(t), record.NewTable(record.OutputPrefix...), Options{}); !errors.Is(err, ErrUnknownWeek) {
		t.Errorf("Build() on empty dataset error = %v, want ErrUnknownWeek", err)
	}
}

func TestBuild_MarshalsAsGeoJSON(t *testing.T) {
	m, err := Build(mustBoundaries(t), testDataset(), Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	fc, err := ReadBoundaries(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("output is not a FeatureCollection: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Errorf("features = %d, want 2", len(fc.Features))
	}
}

func TestWeeks(t *testing.T) {
	got := Weeks(testDataset())
	want := []string{"12/30/2023", "01/01/2024", "01/06/2024"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Weeks() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadBoundaries_NotCollection(t *testing.T) {
	if _, err := ReadBoundaries(strings.NewReader(`{"type":"Feature"}`)); err == nil {
		t.Error("ReadBoundaries() expected error for a single Feature")
	}
}

func TestViridis(t *testing.T) {
	tests := []struct {
		value, min, max float64
		want            string
	}{
		{0, 0, 10, "#440154"},
		{10, 0, 10, "#fde725"},
		{-5, 0, 10, "#440154"},
		{50, 0, 10, "#fde725"},
		{3, 3, 3, "#23908c"},
	}
	for _, tt := range tests {
		if got := Viridis(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Viridis(%v, %v, %v) = %s, want %s", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}
