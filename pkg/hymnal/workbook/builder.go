package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// ErrCellTooLong indicates a text value longer than a worksheet cell holds.
// excelize would otherwise truncate it silently.
var ErrCellTooLong = errors.New("cell text too long")

// Builder assembles an xlsx workbook sheet by sheet.
type Builder struct {
	f      *excelize.File
	sheets int
}

// NewBuilder returns an empty workbook builder.
func NewBuilder() *Builder {
	return &Builder{f: excelize.NewFile()}
}

// AddSheet appends a sheet with a header row followed by rows. Cell values
// are written with their Go type, so numbers stay numeric. It returns the
// sheet name actually used after sanitizing.
func (b *Builder) AddSheet(name string, header []string, rows [][]any) (string, error) {
	name = SanitizeSheetName(name)
	if b.sheets == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return "", err
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		return "", err
	}
	b.sheets++

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := b.f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return "", fmt.Errorf("write header of %q: %w", name, err)
	}
	for i, row := range rows {
		if err := CheckCells(header, row); err != nil {
			return "", fmt.Errorf("row %d of %q: %w", i+2, name, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := b.f.SetSheetRow(name, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d of %q: %w", i+2, name, err)
		}
	}
	return name, nil
}

// CheckCells reports the first string value in row that exceeds the
// worksheet cell limit. header names the columns in the error.
func CheckCells(header []string, row []any) error {
	for i, v := range row {
		text, ok := v.(string)
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(text); n > excelize.TotalCellChars {
			column := fmt.Sprintf("column %d", i+1)
			if i < len(header) {
				column = header[i]
			}
			return fmt.Errorf("%w: %s has %d characters, limit %d", ErrCellTooLong, column, n, excelize.TotalCellChars)
		}
	}
	return nil
}

// WriteTo serializes the workbook as xlsx.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	return b.f.WriteTo(w)
}

// Close releases builder resources.
func (b *Builder) Close() error {
	return b.f.Close()
}

// SanitizeSheetName replaces characters Excel forbids in sheet names and
// truncates to the maximum sheet name length.
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	if strings.TrimSpace(name) == "" {
		return "Sheet1"
	}
	return name
}
