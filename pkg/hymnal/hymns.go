package hymnal

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/parser"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/workbook"
)

// ContentTypeXLSX is the media type of exported workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReadSongbook decodes a single sheet (opts.Sheet, or the first) of a hymn
// spreadsheet.
func ReadSongbook(data []byte, fileName string, opts Options) (*models.Songbook, error) {
	wb, err := workbook.Open(data, fileName)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return DecodeSongbook(wb, fileName, opts)
}

// DecodeSongbook decodes a single sheet of an open workbook.
func DecodeSongbook(wb workbook.Workbook, fileName string, opts Options) (*models.Songbook, error) {
	sheets := wb.SheetNames()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	index := 0
	if opts.Sheet != "" {
		index = slices.Index(sheets, opts.Sheet)
		if index < 0 {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, opts.Sheet)
		}
	}
	sheetName := sheets[index]

	hymns, err := parser.ExtractHymns(wb, sheetName)
	if err != nil {
		return nil, NewDecodeError(sheetName, CodecHymns, err)
	}
	return &models.Songbook{
		ID:    opts.songbookID()(songbookIDName(fileName, sheetName), opts.now(), index),
		Title: sheetName,
		Hymns: hymns,
	}, nil
}

// ReadSongbooks decodes every sheet of a hymn spreadsheet into its own
// songbook, including sheets without hymns.
func ReadSongbooks(data []byte, fileName string, opts Options) ([]models.Songbook, error) {
	wb, err := workbook.Open(data, fileName)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return DecodeSongbooks(wb, fileName, opts)
}

// DecodeSongbooks decodes every sheet of an open workbook. A sheet that
// cannot be read is skipped and logged; the remaining sheets still decode.
func DecodeSongbooks(wb workbook.Workbook, fileName string, opts Options) ([]models.Songbook, error) {
	logger := opts.logger()
	importedAt := opts.now()
	newID := opts.songbookID()

	var songbooks []models.Songbook
	for i, sheetName := range wb.SheetNames() {
		hymns, err := parser.ExtractHymns(wb, sheetName)
		if err != nil {
			logger.Warn("skipping unreadable sheet",
				slog.String("sheet", sheetName),
				logging.Error(NewDecodeError(sheetName, CodecHymns, err)))
			continue
		}
		if len(hymns) == 0 {
			logger.Debug("sheet has no hymns", slog.String("sheet", sheetName))
		}
		songbooks = append(songbooks, models.Songbook{
			ID:    newID(songbookIDName(fileName, sheetName), importedAt, i),
			Title: sheetName,
			Hymns: hymns,
		})
	}
	if len(songbooks) == 0 {
		return nil, ErrNoSheets
	}
	return songbooks, nil
}

func songbookIDName(fileName, sheetName string) string {
	if stem := fileStem(fileName); stem != "" {
		return stem + "-" + sheetName
	}
	return sheetName
}

// WriteSongbook writes a songbook as a one-sheet xlsx workbook titled after
// the songbook. Hymns are written in slice order. A hymn whose stanzas or
// chorus do not fit in one cell fails with workbook.ErrCellTooLong.
func WriteSongbook(w io.Writer, sb models.Songbook) error {
	rows := parser.HymnRows(sb.Hymns)
	for i, row := range rows {
		if err := workbook.CheckCells(parser.HymnColumns, row); err != nil {
			return fmt.Errorf("export hymn %d of %q: %w", sb.Hymns[i].SongNumber, sb.Title, err)
		}
	}

	b := workbook.NewBuilder()
	defer b.Close()

	if _, err := b.AddSheet(sb.Title, parser.HymnColumns, rows); err != nil {
		return fmt.Errorf("export sheet %q: %w", sb.Title, err)
	}
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// EncodeSongbook returns the xlsx bytes of a songbook.
func EncodeSongbook(sb models.Songbook) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSongbook(&buf, sb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSheetName returns the sheet name an exported songbook is written
// under. It differs from the title when the title holds characters a sheet
// name cannot, in which case a later import yields a differently titled
// songbook.
func ExportSheetName(title string) string {
	return workbook.SanitizeSheetName(title)
}

// ExportFileName returns the download name for a songbook: "<title>.xlsx",
// or "<title>_updated.xlsx" after an edit.
func ExportFileName(title string, edited bool) string {
	title = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, title)
	if edited {
		return title + "_updated.xlsx"
	}
	return title + ".xlsx"
}
