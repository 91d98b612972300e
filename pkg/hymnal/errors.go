package hymnal

import (
	"errors"
	"fmt"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/workbook"
)

// ErrInvalidFormat indicates the input is not a readable spreadsheet.
var ErrInvalidFormat = workbook.ErrInvalidFormat

// ErrCellTooLong indicates exported hymn text exceeds one worksheet cell.
var ErrCellTooLong = workbook.ErrCellTooLong

// ErrNoSheets indicates decoding produced no songbooks or collections.
var ErrNoSheets = errors.New("no sheets found")

// ErrSheetNotFound indicates a requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Codec names the decoder a DecodeError came from.
type Codec string

const (
	CodecHymns Codec = "hymns"
	CodecBible Codec = "bible"
)

// DecodeError is a failure confined to one sheet. Multi-sheet reads log it
// and continue with the next sheet.
type DecodeError struct {
	SheetName string
	Codec     Codec
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error in sheet %q (%s): %v", e.SheetName, e.Codec, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(sheetName string, codec Codec, err error) *DecodeError {
	return &DecodeError{
		SheetName: sheetName,
		Codec:     codec,
		Err:       err,
	}
}
