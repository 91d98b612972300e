package main

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
)

// maxTextWidth caps text columns; longer titles wrap inside the cell.
const maxTextWidth = 48

func songbookTable(songbooks []models.Songbook) string {
	tw := newListing(table.Row{"Songbook", "Hymns", "ID"}, 2)
	for _, sb := range songbooks {
		tw.AppendRow(table.Row{sb.Title, len(sb.Hymns), sb.ID})
	}
	return tw.Render()
}

func hymnTable(hymns []models.Hymn) string {
	tw := newListing(table.Row{"#", "Global Name", "Title", "Stanzas", "Chorus"}, 1, 4)
	for _, h := range hymns {
		chorus := ""
		if h.Chorus != nil {
			chorus = "yes"
		}
		tw.AppendRow(table.Row{h.SongNumber, h.GlobalName, h.Title, len(h.Stanzas), chorus})
	}
	return tw.Render()
}

func bibleTable(bibles []models.BibleMetadata) string {
	tw := newListing(table.Row{"Bible", "Books", "ID"}, 2)
	for _, b := range bibles {
		tw.AppendRow(table.Row{b.Title, b.BookCount, b.ID})
	}
	return tw.Render()
}

// newListing returns a rounded table with header. numeric names the 1-based
// count columns, which are right aligned.
func newListing(header table.Row, numeric ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)

	configs := make([]table.ColumnConfig, len(header))
	for i := range header {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    maxTextWidth,
		}
		if slices.Contains(numeric, i+1) {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)
	return tw
}
