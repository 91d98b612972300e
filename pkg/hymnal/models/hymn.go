// Package models defines the hymn and Bible documents produced by the codecs.
package models

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Hymn represents a single song within a songbook.
type Hymn struct {
	// SongNumber is the hymn number within its songbook (0 when unknown).
	SongNumber int `json:"songNumber"`
	// GlobalName is the name the hymn is known by across songbooks.
	GlobalName string `json:"globalName"`
	// Title is the title as printed in this songbook.
	Title string `json:"title"`
	// Stanzas holds the verses in order. Entries are never empty.
	Stanzas []string `json:"stanzas"`
	// Chorus is the refrain text, nil when the hymn has none.
	Chorus *string `json:"chorus,omitempty"`
}

// ChorusText returns the chorus or an empty string when absent.
func (h Hymn) ChorusText() string {
	if h.Chorus == nil {
		return ""
	}
	return *h.Chorus
}

// Songbook represents a named collection of hymns, one per imported sheet.
type Songbook struct {
	// ID is a synthesized identifier, unique within one import batch.
	ID string `json:"id"`
	// Title is derived from the sheet name.
	Title string `json:"title"`
	// Hymns are sorted ascending by song number after decoding.
	Hymns []Hymn `json:"hymns"`
}

// SortHymns orders hymns ascending by song number. Equal numbers keep their
// relative order.
func SortHymns(hymns []Hymn) {
	slices.SortStableFunc(hymns, func(a, b Hymn) int {
		return a.SongNumber - b.SongNumber
	})
}

// Hymn returns the first hymn with the given number.
func (s Songbook) Hymn(number int) (Hymn, bool) {
	for _, h := range s.Hymns {
		if h.SongNumber == number {
			return h, true
		}
	}
	return Hymn{}, false
}

// Search returns hymns whose number, global name, title, stanzas or chorus
// contain query, ignoring case. A blank query matches every hymn.
func (s Songbook) Search(query string) []Hymn {
	if strings.TrimSpace(query) == "" {
		return s.Hymns
	}

	fold := cases.Fold()
	q := fold.String(query)
	contains := func(text string) bool {
		return strings.Contains(fold.String(text), q)
	}

	var result []Hymn
	for _, h := range s.Hymns {
		if strings.Contains(strconv.Itoa(h.SongNumber), q) ||
			contains(h.GlobalName) ||
			contains(h.Title) ||
			slices.ContainsFunc(h.Stanzas, contains) ||
			(h.Chorus != nil && contains(*h.Chorus)) {
			result = append(result, h)
		}
	}
	return result
}

// PutHymn returns a copy of the songbook with h added or replaced.
// When original is nil the hymn is appended and the list re-sorted by number.
// Otherwise every hymn numbered *original is replaced by h in place.
func (s Songbook) PutHymn(h Hymn, original *int) Songbook {
	hymns := make([]Hymn, 0, len(s.Hymns)+1)
	if original == nil {
		hymns = append(hymns, s.Hymns...)
		hymns = append(hymns, h)
		SortHymns(hymns)
	} else {
		for _, existing := range s.Hymns {
			if existing.SongNumber == *original {
				existing = h
			}
			hymns = append(hymns, existing)
		}
	}
	s.Hymns = hymns
	return s
}

// DeleteHymn returns a copy of the songbook without hymns numbered number.
func (s Songbook) DeleteHymn(number int) Songbook {
	hymns := make([]Hymn, 0, len(s.Hymns))
	for _, h := range s.Hymns {
		if h.SongNumber != number {
			hymns = append(hymns, h)
		}
	}
	s.Hymns = hymns
	return s
}
