// Package cli implements the command-line interface for voter-density.
//
// The cli package provides the Cobra-based CLI: scrape runs the acquisition pipeline
// and writes the dataset, dates prints the weekly reference dates, preview renders the
// persisted dataset as a table, and serve starts the choropleth web view. Settings come
// from a JSON5 config file with flags taking precedence.
package cli
