package workbook

import (
	"math"
	"strconv"
	"strings"
)

// Record maps column header to cell text for one row. Empty cells are absent.
type Record map[string]string

// String returns the cell text under header, or "" when absent.
func (r Record) String(header string) string {
	return r[header]
}

// Int returns the cell under header coerced to a non-negative integer.
// Absent, non-numeric and negative values yield 0; fractions are truncated.
func (r Record) Int(header string) int {
	v, ok := ParseNumber(r[header])
	if !ok || v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// ParseNumber attempts to read s as a number, ignoring surrounding spaces.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// RecordsFromGrid turns a grid into header-keyed records. The first row is
// the header; rows without any non-empty cell are skipped. Repeated headers
// are suffixed _1, _2, ... and columns with an empty header are dropped.
func RecordsFromGrid(grid [][]string) []Record {
	if len(grid) == 0 {
		return nil
	}
	headers := uniqueHeaders(grid[0])

	var result []Record
	for _, row := range grid[1:] {
		rec := make(Record)
		for colIdx, cell := range row {
			if cell == "" || colIdx >= len(headers) || headers[colIdx] == "" {
				continue
			}
			rec[headers[colIdx]] = cell
		}
		if len(rec) > 0 {
			result = append(result, rec)
		}
	}
	return result
}

func uniqueHeaders(row []string) []string {
	seen := make(map[string]int, len(row))
	headers := make([]string, len(row))
	for i, h := range row {
		if h == "" {
			continue
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			headers[i] = h + "_" + strconv.Itoa(n+1)
			continue
		}
		seen[h] = 0
		headers[i] = h
	}
	return headers
}
