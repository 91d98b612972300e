package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV is a single-sheet Workbook read from comma separated text.
type CSV struct {
	name string
	grid [][]string
}

// OpenCSV reads comma separated text from r as a sheet called name.
func OpenCSV(r io.Reader, name string) (*CSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(grid) > 0 && len(grid[0]) > 0 {
		grid[0][0] = strings.TrimPrefix(grid[0][0], "\uFEFF")
	}
	for i, row := range grid {
		grid[i] = trimTrailingEmpty(row)
	}
	return &CSV{name: name, grid: grid}, nil
}

// SheetNames returns the single sheet name.
func (c *CSV) SheetNames() []string {
	return []string{c.name}
}

// Grid returns the parsed rows.
func (c *CSV) Grid(sheet string) ([][]string, error) {
	if sheet != c.name {
		return nil, fmt.Errorf("sheet %s does not exist", sheet)
	}
	return c.grid, nil
}

// Records returns header-keyed rows.
func (c *CSV) Records(sheet string) ([]Record, error) {
	grid, err := c.Grid(sheet)
	if err != nil {
		return nil, err
	}
	return RecordsFromGrid(grid), nil
}

// Close is a no-op.
func (c *CSV) Close() error { return nil }

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}
