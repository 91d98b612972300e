package workbook

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func xlsxBytes(t *testing.T, build func(f *excelize.File)) []byte {
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

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected Format
	}{
		{"zip", []byte("PK\x03\x04rest"), FormatXLSX},
		{"ole", []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1rest"), FormatXLSX},
		{"csv", []byte("Song Number,Title\n1,Grace\n"), FormatCSV},
		{"binary", []byte{0x00, 0x01, 0xff}, FormatUnknown},
		{"empty", nil, FormatUnknown},
	}

	for _, tt := range tests {
		if result := Detect(tt.input); result != tt.expected {
			t.Errorf("%s: Detect = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestOpenXLSX(t *testing.T) {
	data := xlsxBytes(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Song Number")
		f.SetCellValue("Sheet1", "B1", "Stanzas")
		f.SetCellValue("Sheet1", "A2", 7)
		f.SetCellValue("Sheet1", "B2", "line one\nline two")
		f.NewSheet("Second")
	})

	wb, err := Open(data, "hymns.xlsx")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if names := wb.SheetNames(); !reflect.DeepEqual(names, []string{"Sheet1", "Second"}) {
		t.Errorf("SheetNames = %v", names)
	}

	records, err := wb.Records("Sheet1")
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Int("Song Number") != 7 {
		t.Errorf("Song Number = %q", records[0]["Song Number"])
	}
	if records[0]["Stanzas"] != "line one\nline two" {
		t.Errorf("Stanzas = %q", records[0]["Stanzas"])
	}

	empty, err := wb.Records("Second")
	if err != nil {
		t.Fatalf("Records on empty sheet failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no records on empty sheet, got %d", len(empty))
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte{0x00, 0x13, 0x37}, "junk.bin"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Open(binary) error = %v, expected ErrInvalidFormat", err)
	}
	if _, err := Open([]byte("PK\x03\x04truncated"), "broken.xlsx"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Open(truncated zip) error = %v, expected ErrInvalidFormat", err)
	}
}

func TestOpenCSV(t *testing.T) {
	data := []byte("\uFEFFSong Number,Title,Stanzas\n3,Holy,\"A<br/>B\"\n,,\n")

	wb, err := Open(data, "/tmp/My Songs.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if names := wb.SheetNames(); !reflect.DeepEqual(names, []string{"My Songs"}) {
		t.Fatalf("SheetNames = %v", names)
	}
	records, err := wb.Records("My Songs")
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	expected := []Record{{"Song Number": "3", "Title": "Holy", "Stanzas": "A<br/>B"}}
	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Records = %#v, expected %#v", records, expected)
	}
	if _, err := wb.Grid("Other"); err == nil {
		t.Error("expected error for unknown sheet")
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	defer b.Close()

	name, err := b.AddSheet("Hymns: Vol/1", []string{"Song Number", "Title"}, [][]any{
		{1, "First"},
		{2, "Second\nline"},
	})
	if err != nil {
		t.Fatalf("AddSheet failed: %v", err)
	}
	if name != "Hymns_ Vol_1" {
		t.Errorf("sanitized name = %q", name)
	}
	if _, err := b.AddSheet("Extra", []string{"Title"}, nil); err != nil {
		t.Fatalf("AddSheet second failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	wb, err := OpenXLSX(&buf)
	if err != nil {
		t.Fatalf("OpenXLSX failed: %v", err)
	}
	defer wb.Close()

	if names := wb.SheetNames(); !reflect.DeepEqual(names, []string{"Hymns_ Vol_1", "Extra"}) {
		t.Errorf("SheetNames = %v", names)
	}
	grid, err := wb.Grid("Hymns_ Vol_1")
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	expected := [][]string{
		{"Song Number", "Title"},
		{"1", "First"},
		{"2", "Second\nline"},
	}
	if !reflect.DeepEqual(grid, expected) {
		t.Errorf("Grid = %q, expected %q", grid, expected)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hymns", "Hymns"},
		{"a[b]*c?", "a_b__c_"},
		{"", "Sheet1"},
		{"'quoted'", "quoted"},
		{"abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz01234"},
	}

	for _, tt := range tests {
		if result := SanitizeSheetName(tt.input); result != tt.expected {
			t.Errorf("SanitizeSheetName(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestBuilderRejectsOversizedCell(t *testing.T) {
	b := NewBuilder()
	defer b.Close()

	// Multi-byte runes count once each, so this fits.
	wide := strings.Repeat("\u00e9", excelize.TotalCellChars)
	if _, err := b.AddSheet("Hymns", []string{"Song Number", "Stanzas"}, [][]any{{1, wide}}); err != nil {
		t.Fatalf("AddSheet at limit failed: %v", err)
	}

	long := strings.Repeat("x", excelize.TotalCellChars+1)
	_, err := b.AddSheet("More", []string{"Song Number", "Stanzas"}, [][]any{{1, "ok"}, {2, long}})
	if !errors.Is(err, ErrCellTooLong) {
		t.Fatalf("AddSheet error = %v, expected ErrCellTooLong", err)
	}
	if !strings.Contains(err.Error(), "row 3") || !strings.Contains(err.Error(), "Stanzas") {
		t.Errorf("error %q should name the row and column", err)
	}
}

func TestCheckCells(t *testing.T) {
	long := strings.Repeat("x", excelize.TotalCellChars+1)

	if err := CheckCells([]string{"A"}, []any{12, "short", nil}); err != nil {
		t.Errorf("CheckCells short row = %v", err)
	}
	err := CheckCells([]string{"A"}, []any{"ok", long})
	if !errors.Is(err, ErrCellTooLong) || !strings.Contains(err.Error(), "column 2") {
		t.Errorf("CheckCells unnamed column error = %v", err)
	}
}
