package hymnal

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/parser"
)

var importTime = time.UnixMilli(1700000000000)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return importTime }
	return opts
}

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to write test workbook: %v", err)
	}
	return buf.Bytes()
}

func writeHymnSheet(f *excelize.File, sheet string, rows ...[]any) {
	header := make([]any, len(parser.HymnColumns))
	for i, h := range parser.HymnColumns {
		header[i] = h
	}
	f.SetSheetRow(sheet, "A1", &header)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &row)
	}
}

func strPtr(s string) *string { return &s }

func TestRoundTrip(t *testing.T) {
	original := models.Songbook{
		ID:    "ignored",
		Title: "Favourites",
		Hymns: []models.Hymn{
			{
				SongNumber: 1,
				GlobalName: "Amazing Grace",
				Title:      "AMAZING GRACE D",
				Stanzas:    []string{"Amazing grace\nhow sweet the sound", "Twas grace\nthat taught my heart"},
				Chorus:     strPtr("Praise Him\npraise Him"),
			},
			{SongNumber: 2, GlobalName: "Abide", Title: "EVENTIDE", Stanzas: []string{"Abide with me"}},
			{SongNumber: 7, Title: "Untitled", Stanzas: []string{"One", "Two", "Three"}},
		},
	}

	data, err := EncodeSongbook(original)
	if err != nil {
		t.Fatalf("EncodeSongbook failed: %v", err)
	}

	decoded, err := ReadSongbook(data, "Favourites.xlsx", testOptions())
	if err != nil {
		t.Fatalf("ReadSongbook failed: %v", err)
	}
	if decoded.Title != "Favourites" {
		t.Errorf("Title = %q", decoded.Title)
	}
	if !reflect.DeepEqual(decoded.Hymns, original.Hymns) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", decoded.Hymns, original.Hymns)
	}
}

func TestEncodeSongbookRejectsOversizedCell(t *testing.T) {
	long := strings.Repeat("a", excelize.TotalCellChars+1)
	sb := models.Songbook{
		Title: "Long",
		Hymns: []models.Hymn{
			{SongNumber: 1, Title: "Short", Stanzas: []string{"fits"}},
			{SongNumber: 42, Title: "Endless", Stanzas: []string{long}},
		},
	}

	data, err := EncodeSongbook(sb)
	if !errors.Is(err, ErrCellTooLong) {
		t.Fatalf("EncodeSongbook error = %v, expected ErrCellTooLong", err)
	}
	if data != nil {
		t.Error("expected no output on failure")
	}
	for _, want := range []string{"hymn 42", parser.ColStanzas} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	// Stanzas that only reach the limit once joined also fail.
	half := strings.Repeat("b", excelize.TotalCellChars/2)
	sb.Hymns = []models.Hymn{{SongNumber: 7, Title: "Joined", Stanzas: []string{half, half}}}
	if _, err := EncodeSongbook(sb); !errors.Is(err, ErrCellTooLong) {
		t.Errorf("joined stanzas error = %v, expected ErrCellTooLong", err)
	}

	// Exactly at the limit still round trips.
	exact := strings.Repeat("c", excelize.TotalCellChars)
	sb.Hymns = []models.Hymn{{SongNumber: 1, Title: "Exact", Stanzas: []string{exact}}}
	data, err = EncodeSongbook(sb)
	if err != nil {
		t.Fatalf("EncodeSongbook at limit failed: %v", err)
	}
	decoded, err := ReadSongbook(data, "Long.xlsx", testOptions())
	if err != nil {
		t.Fatalf("ReadSongbook failed: %v", err)
	}
	if got := len(decoded.Hymns[0].Stanzas[0]); got != excelize.TotalCellChars {
		t.Errorf("stanza length = %d, expected %d", got, excelize.TotalCellChars)
	}
}

func TestReadSongbookSelectsSheet(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		writeHymnSheet(f, "Sheet1", []any{1, "A", "A", "a", ""})
		f.NewSheet("Choir")
		writeHymnSheet(f, "Choir", []any{9, "B", "B", "b", ""}, []any{4, "C", "C", "c", ""})
	})

	opts := testOptions()
	opts.Sheet = "Choir"
	sb, err := ReadSongbook(data, "songs.xlsx", opts)
	if err != nil {
		t.Fatalf("ReadSongbook failed: %v", err)
	}
	if sb.Title != "Choir" || len(sb.Hymns) != 2 || sb.Hymns[0].SongNumber != 4 {
		t.Errorf("songbook = %+v", sb)
	}
	if sb.ID != "songs-Choir-1700000000000-1" {
		t.Errorf("ID = %q", sb.ID)
	}

	opts.Sheet = "Missing"
	if _, err := ReadSongbook(data, "songs.xlsx", opts); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("error = %v, expected ErrSheetNotFound", err)
	}
}

func TestReadSongbooksKeepsEmptySheets(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		writeHymnSheet(f, "Sheet1", []any{2, "B", "B", "b", ""}, []any{1, "A", "A", "a", ""})
		f.NewSheet("Empty")
	})

	songbooks, err := ReadSongbooks(data, "/uploads/hymns_collection.xlsx", testOptions())
	if err != nil {
		t.Fatalf("ReadSongbooks failed: %v", err)
	}
	if len(songbooks) != 2 {
		t.Fatalf("Expected 2 songbooks, got %d", len(songbooks))
	}
	if songbooks[0].ID != "hymns_collection-Sheet1-1700000000000-0" {
		t.Errorf("ID[0] = %q", songbooks[0].ID)
	}
	if songbooks[1].ID != "hymns_collection-Empty-1700000000000-1" {
		t.Errorf("ID[1] = %q", songbooks[1].ID)
	}
	if got := []int{songbooks[0].Hymns[0].SongNumber, songbooks[0].Hymns[1].SongNumber}; got[0] != 1 || got[1] != 2 {
		t.Errorf("hymns not sorted: %v", got)
	}
	if songbooks[1].Title != "Empty" || len(songbooks[1].Hymns) != 0 {
		t.Errorf("empty songbook = %+v", songbooks[1])
	}
}

func TestInjectedIDFunc(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		writeHymnSheet(f, "Sheet1")
	})
	opts := testOptions()
	opts.SongbookID = func(name string, at time.Time, index int) string {
		return name + "#" + at.UTC().Format("2006") + "#" + string(rune('a'+index))
	}

	songbooks, err := ReadSongbooks(data, "x.xlsx", opts)
	if err != nil {
		t.Fatalf("ReadSongbooks failed: %v", err)
	}
	if songbooks[0].ID != "x-Sheet1#2023#a" {
		t.Errorf("ID = %q", songbooks[0].ID)
	}
}

func TestReadCSVSongbook(t *testing.T) {
	data := []byte("Song Number,Global Name,Title,Stanzas,Choruses\n" +
		"5,Doxology,OLD HUNDREDTH,\"Praise God<br/>from whom<br/><br/><br/>Praise Him\",\"CHORUS:<br/>Amen\"\n")

	songbooks, err := ReadSongbooks(data, "doxology.csv", testOptions())
	if err != nil {
		t.Fatalf("ReadSongbooks failed: %v", err)
	}
	if len(songbooks) != 1 || songbooks[0].Title != "doxology" {
		t.Fatalf("songbooks = %+v", songbooks)
	}
	h := songbooks[0].Hymns[0]
	if !reflect.DeepEqual(h.Stanzas, []string{"Praise God\nfrom whom", "Praise Him"}) || h.ChorusText() != "Amen" {
		t.Errorf("hymn = %+v", h)
	}
}

func TestReadInvalidFormat(t *testing.T) {
	garbage := []byte{0x00, 0xff, 0x10, 0x00}
	if _, err := ReadSongbooks(garbage, "x.xlsx", testOptions()); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ReadSongbooks error = %v, expected ErrInvalidFormat", err)
	}
	if _, err := ReadBible(garbage, "x.xlsx", testOptions()); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ReadBible error = %v, expected ErrInvalidFormat", err)
	}
}

func TestReadBible(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Old Testament")
		f.SetSheetRow("Old Testament", "A1", &[]any{"Genesis", "Exodus"})
		f.SetSheetRow("Old Testament", "A2", &[]any{"Genesis 1:2<br/>And the earth", "Exodus 1:1<br/>Now these"})
		f.SetSheetRow("Old Testament", "A3", &[]any{"Genesis 1:1<br/>In the beginning God created...", ""})
		f.NewSheet("Blank")
		f.NewSheet("New  Testament")
		f.SetSheetRow("New  Testament", "A1", &[]any{"Matthew"})
		f.SetSheetRow("New  Testament", "A2", &[]any{"Matthew 1:1<br/>The book of the generation"})
	})

	collections, err := ReadBible(data, "kjv_bible.xlsx", testOptions())
	if err != nil {
		t.Fatalf("ReadBible failed: %v", err)
	}
	if len(collections) != 2 {
		t.Fatalf("Expected 2 collections (blank sheet dropped), got %d", len(collections))
	}

	old := collections[0]
	if old.ID != "bible-old-testament-1700000000000-0" || old.Title != "Old Testament" {
		t.Errorf("old testament = %q / %q", old.ID, old.Title)
	}
	genesis, ok := old.Book("Genesis")
	if !ok {
		t.Fatal("Genesis missing")
	}
	expected := models.BibleVerse{Book: "Genesis", Chapter: 1, Verse: 1, Text: "In the beginning God created..."}
	if genesis.Verses[0] != expected {
		t.Errorf("Genesis 1:1 = %+v", genesis.Verses[0])
	}

	// The index is the sheet position, so the dropped sheet leaves a gap.
	if collections[1].ID != "bible-new-testament-1700000000000-2" {
		t.Errorf("new testament ID = %q", collections[1].ID)
	}
}

func TestEmptySheetAsymmetry(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {})

	songbooks, err := ReadSongbooks(data, "empty.xlsx", testOptions())
	if err != nil {
		t.Fatalf("ReadSongbooks failed: %v", err)
	}
	if len(songbooks) != 1 || len(songbooks[0].Hymns) != 0 {
		t.Errorf("songbooks = %+v, expected one empty songbook", songbooks)
	}

	collections, err := ReadBible(data, "empty.xlsx", testOptions())
	if !errors.Is(err, ErrNoSheets) {
		t.Errorf("ReadBible error = %v, expected ErrNoSheets", err)
	}
	if len(collections) != 0 {
		t.Errorf("collections = %+v, expected none", collections)
	}
}

func TestBibleID(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected string
	}{
		{"Old Testament", 0, "bible-old-testament-1700000000000-0"},
		{"New\tTestament  KJV", 1, "bible-new-testament-kjv-1700000000000-1"},
		{"Psalms", 3, "bible-psalms-1700000000000-3"},
	}

	for _, tt := range tests {
		if result := BibleID(tt.name, importTime, tt.index); result != tt.expected {
			t.Errorf("BibleID(%q) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestExportSheetName(t *testing.T) {
	if got := ExportSheetName("Hymns"); got != "Hymns" {
		t.Errorf("ExportSheetName = %q", got)
	}
	if got := ExportSheetName("Songs/Choir"); got != "Songs_Choir" {
		t.Errorf("ExportSheetName = %q", got)
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName("Hymns", false); got != "Hymns.xlsx" {
		t.Errorf("ExportFileName = %q", got)
	}
	if got := ExportFileName("Songs/Choir", true); got != "Songs_Choir_updated.xlsx" {
		t.Errorf("ExportFileName edited = %q", got)
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewDecodeError("Sheet1", CodecHymns, inner)
	if !errors.Is(err, inner) {
		t.Error("DecodeError should unwrap to inner error")
	}
	if err.Error() != `decode error in sheet "Sheet1" (hymns): boom` {
		t.Errorf("Error() = %q", err.Error())
	}
}
