package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/week"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByCounty    SortOrder = "county"
	SortByTotal     SortOrder = "total"
	SortByPerCapita SortOrder = "per-capita"
)

// sortRows sorts dataset rows in place. Numeric orders are descending; ties fall
// back to week then county.
func sortRows(dataset *record.Table, order SortOrder) error {
	rows := dataset.Rows
	switch order {
	case SortByCounty:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i][record.ColumnCounty] != rows[j][record.ColumnCounty] {
				return rows[i][record.ColumnCounty] < rows[j][record.ColumnCounty]
			}
			return compareByWeek(rows[i], rows[j])
		})
	case SortByTotal:
		sortByNumber(rows, record.ColumnTotal)
	case SortByPerCapita:
		sortByNumber(rows, record.ColumnPerCapita)
	default:
		return fmt.Errorf("invalid sort: %s (must be 'county', 'total' or 'per-capita')", order)
	}
	return nil
}

func sortByNumber(rows []record.Row, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, errA := strconv.ParseFloat(rows[i][column], 64)
		b, errB := strconv.ParseFloat(rows[j][column], 64)

		// Unparseable values go last
		if errA != nil || errB != nil {
			return errA == nil && errB != nil
		}
		if a != b {
			return a > b
		}
		if rows[i][record.ColumnCounty] != rows[j][record.ColumnCounty] {
			return rows[i][record.ColumnCounty] < rows[j][record.ColumnCounty]
		}
		return compareByWeek(rows[i], rows[j])
	})
}

// compareByWeek returns true if row i's week is earlier than row j's
func compareByWeek(i, j record.Row) bool {
	dateI, errI := week.Parse(i[record.ColumnWeekEnding])
	dateJ, errJ := week.Parse(j[record.ColumnWeekEnding])

	if errI == nil && errJ == nil {
		return dateI.Before(dateJ)
	}
	// If only one date is valid, put the valid one first
	if errI == nil {
		return true
	}
	if errJ == nil {
		return false
	}
	return i[record.ColumnWeekEnding] < j[record.ColumnWeekEnding]
}
