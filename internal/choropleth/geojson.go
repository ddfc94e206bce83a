package choropleth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Feature is a GeoJSON feature. Geometry is passed through untouched.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// LoadBoundaries reads a GeoJSON FeatureCollection from path.
func LoadBoundaries(path string) (*FeatureCollection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening boundaries: %w", err)
	}
	defer file.Close()

	fc, err := ReadBoundaries(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return fc, nil
}

// ReadBoundaries decodes a GeoJSON FeatureCollection.
func ReadBoundaries(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}
	return &fc, nil
}
