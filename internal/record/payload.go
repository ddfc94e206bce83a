package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedPayload is returned when a payload is not a JSON array of objects.
var ErrMalformedPayload = errors.New("malformed payload")

// ParsePayload parses a JSON array of flat objects into a Table. Columns follow the
// order keys are first seen in. Numbers keep their literal text; null reads as empty.
func ParsePayload(payload string) (*Table, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	table := &Table{}
	for dec.More() {
		row, err := parseObject(dec, table)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedPayload)
	}

	return table, nil
}

func parseObject(dec *json.Decoder, table *Table) (Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	row := make(Row)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected key %v", ErrMalformedPayload, tok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrMalformedPayload, key, err)
		}

		cell, err := formatCell(value)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrMalformedPayload, key, err)
		}

		table.ensureColumn(key)
		row[key] = cell
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedPayload, want, tok)
	}
	return nil
}

func formatCell(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
