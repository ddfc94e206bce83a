package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/voter-density/internal/record"
)

// ErrNoDataset is returned when a dataset has not been written yet.
var ErrNoDataset = errors.New("dataset not found")

// Storage handles persistence of datasets
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns the location of the named dataset. Absolute names are used as is.
func (s *Storage) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dataDir, name)
}

// SaveDataset writes table as CSV with a header row, replacing any previous file.
func (s *Storage) SaveDataset(name string, table *record.Table) error {
	path := s.Path(name)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := WriteCSV(tmp, table); err != nil {
		tmp.Close()
		return fmt.Errorf("writing dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing dataset: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting dataset permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing dataset: %w", err)
	}

	return nil
}

// LoadDataset reads a dataset written by SaveDataset.
func (s *Storage) LoadDataset(name string) (*record.Table, error) {
	path := s.Path(name)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDataset, path)
		}
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	table, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return table, nil
}

// WriteCSV encodes table as CSV with a header row.
func WriteCSV(w io.Writer, table *record.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(table.Values(row)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV decodes a CSV file with a header row into a table.
func ReadCSV(r io.Reader) (*record.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	table := record.NewTable(header...)
	for {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(record.Row, len(header))
		for i, column := range header {
			row[column] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
