// Package storage persists the assembled registration dataset as a CSV file.
//
// Datasets are written once per run, atomically: the file is written to a temporary
// name in the data directory and renamed over any previous output, so a failed run
// never leaves a partial file behind.
package storage
