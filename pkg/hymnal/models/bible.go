package models

import "slices"

// BibleVerse represents a single verse of scripture.
type BibleVerse struct {
	// Book is the book name taken from the sheet's column header.
	Book string `json:"book"`
	// Chapter is the chapter number (1-based).
	Chapter int `json:"chapter"`
	// Verse is the verse number (1-based).
	Verse int `json:"verse"`
	// Text is the verse text with line breaks flattened to spaces.
	Text string `json:"text"`
}

// BibleBook represents one book with its verses in (chapter, verse) order.
type BibleBook struct {
	Name   string       `json:"name"`
	Verses []BibleVerse `json:"verses"`
}

// Chapters returns the distinct chapter numbers in ascending order.
func (b BibleBook) Chapters() []int {
	var chapters []int
	for _, v := range b.Verses {
		if !slices.Contains(chapters, v.Chapter) {
			chapters = append(chapters, v.Chapter)
		}
	}
	slices.Sort(chapters)
	return chapters
}

// Chapter returns the verses of chapter n.
func (b BibleBook) Chapter(n int) []BibleVerse {
	var verses []BibleVerse
	for _, v := range b.Verses {
		if v.Chapter == n {
			verses = append(verses, v)
		}
	}
	return verses
}

// BibleCollection represents one imported sheet of Bible books, for example
// a testament.
type BibleCollection struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Books []BibleBook `json:"books"`
}

// Book returns the book with the given name.
func (c BibleCollection) Book(name string) (BibleBook, bool) {
	for _, b := range c.Books {
		if b.Name == name {
			return b, true
		}
	}
	return BibleBook{}, false
}

// Metadata returns the persisted summary of the collection.
func (c BibleCollection) Metadata() BibleMetadata {
	return BibleMetadata{ID: c.ID, Title: c.Title, BookCount: len(c.Books)}
}

// BibleMetadata is the summary kept in persistent storage in place of the
// full collection.
type BibleMetadata struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	BookCount int    `json:"bookCount"`
}
