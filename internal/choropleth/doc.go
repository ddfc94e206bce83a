// Package choropleth shades county boundaries by a dataset metric.
//
// Boundaries are a GeoJSON FeatureCollection whose features carry the county FIPS
// code in a property. Build selects one week of the dataset, attaches the metric
// value, a hover label and a Viridis fill color to every matching feature, and
// returns a FeatureCollection ready for a web map.
package choropleth
