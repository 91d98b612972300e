package main

import (
	"strings"
	"testing"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
)

func TestHymnTable(t *testing.T) {
	refrain := "Refrain"
	out := hymnTable([]models.Hymn{
		{SongNumber: 12, GlobalName: "Holy Holy Holy", Title: "NICAEA", Stanzas: []string{"a", "b", "c"}, Chorus: &refrain},
		{SongNumber: 3, Title: "Plain", Stanzas: []string{"a"}},
	})

	lines := strings.Split(out, "\n")
	var nicaea, plain string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "NICAEA"):
			nicaea = line
		case strings.Contains(line, "Plain"):
			plain = line
		}
	}
	if !strings.Contains(nicaea, "yes") || !strings.Contains(nicaea, "Holy Holy Holy") {
		t.Errorf("row = %q", nicaea)
	}
	if strings.Contains(plain, "yes") {
		t.Errorf("hymn without chorus marked: %q", plain)
	}
	if !strings.Contains(strings.ToUpper(lines[1]), "GLOBAL NAME") {
		t.Errorf("header = %q", lines[1])
	}
}

func TestSongbookTableCountsHymns(t *testing.T) {
	out := songbookTable([]models.Songbook{{ID: "x-1", Title: "Choir", Hymns: make([]models.Hymn, 4)}})
	for _, want := range []string{"Choir", "x-1", " 4 "} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
