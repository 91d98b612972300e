package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX is a Workbook backed by excelize.
type XLSX struct {
	f *excelize.File
}

// OpenXLSX reads an xlsx workbook from r.
func OpenXLSX(r io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &XLSX{f: f}, nil
}

// NewXLSX wraps an already opened excelize file.
func NewXLSX(f *excelize.File) *XLSX {
	return &XLSX{f: f}
}

// SheetNames returns the sheet names in tab order.
func (x *XLSX) SheetNames() []string {
	return x.f.GetSheetList()
}

// Grid returns the raw cell values of a sheet. Numeric cells are returned
// unformatted so that number formats cannot alter song numbers.
func (x *XLSX) Grid(sheet string) ([][]string, error) {
	return x.f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// Records returns header-keyed rows of a sheet.
func (x *XLSX) Records(sheet string) ([]Record, error) {
	grid, err := x.Grid(sheet)
	if err != nil {
		return nil, err
	}
	return RecordsFromGrid(grid), nil
}

// Close releases the underlying file.
func (x *XLSX) Close() error {
	return x.f.Close()
}
