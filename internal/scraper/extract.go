package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Marker identifies the script block that sets up the results grid.
	Marker = "SetupGrid"
	// StartAnchor precedes the payload inside the marked script.
	StartAnchor = "var data = "
	// EndAnchor follows the payload inside the marked script.
	EndAnchor = "// initialize the igGrid control"
)

// ErrPayloadNotFound is returned when no script block carries a payload.
var ErrPayloadNotFound = errors.New("payload not found")

// Extractor pulls the raw registration payload out of a results page.
type Extractor interface {
	Extract(markup io.Reader) (string, error)
}

// AnchorExtractor finds the first script containing Marker and returns the text
// between Start and End, trimmed, with one trailing separator removed.
type AnchorExtractor struct {
	Marker string
	Start  string
	End    string
}

// NewAnchorExtractor returns an AnchorExtractor for the NCSBE results page.
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{
		Marker: Marker,
		Start:  StartAnchor,
		End:    EndAnchor,
	}
}

// Extract implements Extractor.
func (e *AnchorExtractor) Extract(markup io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var payload string
	doc.Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(text, e.Marker) {
			return true
		}

		found, ok := between(text, e.Start, e.End)
		if !ok {
			return true
		}

		payload = found
		return false
	})

	payload = trimSeparator(payload)
	if payload == "" {
		return "", ErrPayloadNotFound
	}

	return payload, nil
}

// between returns the trimmed text between the first start and the first end anchor.
func between(text, start, end string) (string, bool) {
	startIndex := strings.Index(text, start)
	endIndex := strings.Index(text, end)
	if startIndex == -1 || endIndex == -1 {
		return "", false
	}

	from := startIndex + len(start)
	if endIndex < from {
		return "", false
	}

	return strings.TrimSpace(text[from:endIndex]), true
}

// trimSeparator strips a single trailing statement separator.
func trimSeparator(s string) string {
	if strings.HasSuffix(s, ",") || strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}
