// Package workbook provides a format-neutral view over spreadsheet files.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidFormat indicates the input is not a recognizable spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// Workbook is an ordered collection of sheets.
type Workbook interface {
	io.Closer
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// Grid returns the raw row-by-column cell text of a sheet.
	Grid(sheet string) ([][]string, error)
	// Records returns one header-keyed record per non-blank body row.
	Records(sheet string) ([]Record, error)
}

// Format identifies the encoding of spreadsheet bytes.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook (zip container).
	FormatXLSX Format = "xlsx"
	// FormatCSV is a comma separated text sheet.
	FormatCSV Format = "csv"
	// FormatUnknown is anything else.
	FormatUnknown Format = ""
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1")
)

// Detect sniffs the spreadsheet encoding of data.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic), bytes.HasPrefix(data, oleMagic):
		// OLE containers are handed to the xlsx reader, which understands
		// encrypted OOXML packages.
		return FormatXLSX
	case len(data) > 0 && utf8.Valid(data) && bytes.IndexByte(data, 0) < 0:
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Open parses data as a workbook. fileName names the single sheet of textual
// formats and is otherwise informational.
func Open(data []byte, fileName string) (Workbook, error) {
	switch Detect(data) {
	case FormatXLSX:
		return OpenXLSX(bytes.NewReader(data))
	case FormatCSV:
		return OpenCSV(bytes.NewReader(data), sheetNameFromFile(fileName))
	default:
		return nil, fmt.Errorf("%w: unrecognized content in %q", ErrInvalidFormat, fileName)
	}
}

// sheetNameFromFile returns the file's base name without its extension.
func sheetNameFromFile(fileName string) string {
	base := filepath.Base(fileName)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return "Sheet1"
	}
	return name
}
