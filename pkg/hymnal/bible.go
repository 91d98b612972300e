package hymnal

import (
	"log/slog"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/parser"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/workbook"
)

// ReadBible decodes a Bible spreadsheet into one collection per sheet.
// Bible data is import-only.
func ReadBible(data []byte, fileName string, opts Options) ([]models.BibleCollection, error) {
	wb, err := workbook.Open(data, fileName)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return DecodeBible(wb, opts)
}

// DecodeBible decodes every sheet of an open workbook. Sheets without any
// verses are dropped, unlike hymn sheets. ErrNoSheets is returned when no
// sheet yields a collection.
func DecodeBible(wb workbook.Workbook, opts Options) ([]models.BibleCollection, error) {
	logger := opts.logger()
	importedAt := opts.now()
	newID := opts.bibleID()

	var collections []models.BibleCollection
	for i, sheetName := range wb.SheetNames() {
		books, stats, err := parser.ExtractBibleBooks(wb, sheetName)
		if err != nil {
			logger.Warn("skipping unreadable sheet",
				slog.String("sheet", sheetName),
				logging.Error(NewDecodeError(sheetName, CodecBible, err)))
			continue
		}
		if stats.Skipped > 0 || stats.Mismatched > 0 {
			logger.Debug("bible sheet had irregular cells",
				slog.String("sheet", sheetName),
				slog.Int("skipped", stats.Skipped),
				slog.Int("book_mismatches", stats.Mismatched))
		}
		if len(books) == 0 {
			logger.Debug("dropping sheet without verses", slog.String("sheet", sheetName))
			continue
		}
		collections = append(collections, models.BibleCollection{
			ID:    newID(sheetName, importedAt, i),
			Title: sheetName,
			Books: books,
		})
	}
	if len(collections) == 0 {
		return nil, ErrNoSheets
	}
	return collections, nil
}
