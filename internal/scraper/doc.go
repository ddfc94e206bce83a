// Package scraper fetches the weekly voter registration statistics page from the
// NC State Board of Elections and extracts the JSON payload embedded in it.
//
// The statistics page renders its grid from an inline script that assigns the rows to
// a JavaScript variable. Extraction is isolated behind the Extractor interface; the
// default AnchorExtractor locates the script by a marker token and cuts the payload out
// between two literal anchors.
package scraper
