package parser

import (
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/workbook"
)

// Column headers of a hymn sheet. They are matched exactly.
const (
	ColSongNumber = "Song Number"
	ColGlobalName = "Global Name"
	ColTitle      = "Title"
	ColStanzas    = "Stanzas"
	ColChoruses   = "Choruses"
)

// HymnColumns lists hymn sheet headers in export order.
var HymnColumns = []string{ColSongNumber, ColGlobalName, ColTitle, ColStanzas, ColChoruses}

// ExtractHymns decodes every data row of a sheet into hymns sorted by song
// number. Missing columns fall back to zero values.
func ExtractHymns(wb workbook.Workbook, sheetName string) ([]models.Hymn, error) {
	records, err := wb.Records(sheetName)
	if err != nil {
		return nil, err
	}
	hymns := make([]models.Hymn, 0, len(records))
	for _, rec := range records {
		hymns = append(hymns, DecodeHymn(rec))
	}
	models.SortHymns(hymns)
	return hymns, nil
}

// DecodeHymn builds a hymn from one header-keyed row.
func DecodeHymn(rec workbook.Record) models.Hymn {
	return models.Hymn{
		SongNumber: rec.Int(ColSongNumber),
		GlobalName: rec.String(ColGlobalName),
		Title:      rec.String(ColTitle),
		Stanzas:    SplitStanzas(rec.String(ColStanzas)),
		Chorus:     ExtractChorus(rec.String(ColChoruses)),
	}
}

// EncodeHymn renders a hymn as a row ordered like HymnColumns.
func EncodeHymn(h models.Hymn) []any {
	return []any{
		h.SongNumber,
		h.GlobalName,
		h.Title,
		JoinStanzas(h.Stanzas),
		FormatChorus(h.Chorus),
	}
}

// HymnRows encodes hymns in slice order.
func HymnRows(hymns []models.Hymn) [][]any {
	rows := make([][]any, len(hymns))
	for i, h := range hymns {
		rows[i] = EncodeHymn(h)
	}
	return rows
}
