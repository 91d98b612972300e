package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// verseRefRe matches "<book> <chapter>:<verse>[<br/>]<text>".
var verseRefRe = regexp.MustCompile(`(?s)^([^<]+?)\s+(\d+):(\d+)(?i:<br\s*/?>)?(.*)$`)

// VerseRef is a verse cell split into its parts.
type VerseRef struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// ParseVerseRef parses a Bible verse cell such as
// "Genesis 1:1<br/>In the beginning...". Line-break markers inside the text
// become single spaces. It reports false for cells that do not match or
// carry a zero chapter or verse.
func ParseVerseRef(cell string) (VerseRef, bool) {
	m := verseRefRe.FindStringSubmatch(cell)
	if m == nil {
		return VerseRef{}, false
	}
	chapter, err := strconv.Atoi(m[2])
	if err != nil || chapter < 1 {
		return VerseRef{}, false
	}
	verse, err := strconv.Atoi(m[3])
	if err != nil || verse < 1 {
		return VerseRef{}, false
	}
	return VerseRef{
		Book:    strings.TrimSpace(m[1]),
		Chapter: chapter,
		Verse:   verse,
		Text:    strings.TrimSpace(FlattenLineBreaks(m[4])),
	}, true
}
