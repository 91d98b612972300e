package parser

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/workbook"
)

// BibleSheetStats counts cells that did not contribute cleanly to a sheet.
type BibleSheetStats struct {
	// Skipped is the number of non-empty cells that are not verse references.
	Skipped int
	// Mismatched is the number of verses whose own book name differs from
	// the column header. The header wins.
	Mismatched int
}

// ExtractBibleBooks decodes a columnar Bible sheet. The first row names one
// book per column and every later cell holds a verse of that column's book.
// Books are returned in header order, each sorted by chapter then verse;
// books without verses are omitted.
func ExtractBibleBooks(wb workbook.Workbook, sheetName string) ([]models.BibleBook, BibleSheetStats, error) {
	var stats BibleSheetStats

	grid, err := wb.Grid(sheetName)
	if err != nil {
		return nil, stats, err
	}
	if len(grid) == 0 {
		return nil, stats, nil
	}

	headers := make([]string, len(grid[0]))
	var order []string
	verses := make(map[string][]models.BibleVerse)
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			continue
		}
		if _, seen := verses[headers[i]]; !seen {
			order = append(order, headers[i])
			verses[headers[i]] = nil
		}
	}

	fold := cases.Fold()
	for _, row := range grid[1:] {
		for col := 0; col < len(row) && col < len(headers); col++ {
			cell, book := row[col], headers[col]
			if cell == "" || book == "" {
				continue
			}
			ref, ok := ParseVerseRef(cell)
			if !ok {
				stats.Skipped++
				continue
			}
			if fold.String(ref.Book) != fold.String(book) {
				stats.Mismatched++
			}
			verses[book] = append(verses[book], models.BibleVerse{
				Book:    book,
				Chapter: ref.Chapter,
				Verse:   ref.Verse,
				Text:    ref.Text,
			})
		}
	}

	var books []models.BibleBook
	for _, name := range order {
		vs := verses[name]
		if len(vs) == 0 {
			continue
		}
		SortVerses(vs)
		books = append(books, models.BibleBook{Name: name, Verses: vs})
	}
	return books, stats, nil
}

// SortVerses orders verses by chapter then verse, keeping ties in place.
func SortVerses(verses []models.BibleVerse) {
	slices.SortStableFunc(verses, func(a, b models.BibleVerse) int {
		if a.Chapter != b.Chapter {
			return a.Chapter - b.Chapter
		}
		return a.Verse - b.Verse
	})
}
