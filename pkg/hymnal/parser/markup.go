// Package parser converts spreadsheet cells into hymn and Bible documents and
// back.
//
// Cell text carries line breaks as inline <br/> markers (any case, optional
// space and slash), since real newlines do not survive every spreadsheet
// tool. Stanza boundaries are blank lines once markers are normalized.
package parser

import (
	"regexp"
	"strings"
)

const (
	// ChorusLabel prefixes chorus text in the Choruses column.
	ChorusLabel = "CHORUS:"
	// StanzaSeparator joins stanzas on export. It must contain at least two
	// newlines to be recognized as a boundary by SplitStanzas.
	StanzaSeparator = "\n\n\n"
	// EditorStanzaSeparator joins stanzas for plain-text editing.
	EditorStanzaSeparator = "\n\n---\n\n"
)

var (
	lineBreakRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n+`)
	chorusLabelRe = regexp.MustCompile(`(?i)^(?:CHORUS:\s*)+`)
	editorSepRe   = regexp.MustCompile(`\n\s*---\s*\n`)
)

// NormalizeLineBreaks converts line-break markers and CRLF pairs to "\n".
func NormalizeLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return lineBreakRe.ReplaceAllString(s, "\n")
}

// FlattenLineBreaks converts each line-break marker to a single space.
func FlattenLineBreaks(s string) string {
	return lineBreakRe.ReplaceAllString(s, " ")
}

// SplitStanzas splits cell text into stanzas at blank lines. Single line
// breaks stay inside a stanza. Segments are trimmed and empty ones dropped.
func SplitStanzas(s string) []string {
	if s == "" {
		return []string{}
	}
	stanzas := []string{}
	for _, part := range blankLineRe.Split(NormalizeLineBreaks(s), -1) {
		if part = strings.TrimSpace(part); part != "" {
			stanzas = append(stanzas, part)
		}
	}
	return stanzas
}

// JoinStanzas is the inverse of SplitStanzas.
func JoinStanzas(stanzas []string) string {
	return strings.Join(stanzas, StanzaSeparator)
}

// ExtractChorus returns the chorus text without its label, or nil when
// nothing remains. Leading line breaks and repeated labels are removed too,
// so the result never starts with the label.
func ExtractChorus(s string) *string {
	return stripChorusLabel(NormalizeLineBreaks(s))
}

func stripChorusLabel(s string) *string {
	s = strings.TrimSpace(chorusLabelRe.ReplaceAllString(strings.TrimSpace(s), ""))
	if s == "" {
		return nil
	}
	return &s
}

// FormatChorus renders a chorus for the Choruses column.
func FormatChorus(chorus *string) string {
	if chorus == nil || *chorus == "" {
		return ""
	}
	return ChorusLabel + "\n" + *chorus
}

// FormatEditorStanzas renders stanzas for a plain-text editor, separated by
// lines holding "---".
func FormatEditorStanzas(stanzas []string) string {
	return strings.Join(stanzas, EditorStanzaSeparator)
}

// ParseEditorStanzas splits editor text on "---" separator lines. Blank
// lines inside a stanza are collapsed, since a blank line is a stanza
// boundary once exported.
func ParseEditorStanzas(s string) []string {
	stanzas := []string{}
	for _, part := range editorSepRe.Split(strings.ReplaceAll(s, "\r\n", "\n"), -1) {
		part = blankLineRe.ReplaceAllString(strings.TrimSpace(part), "\n")
		if part != "" {
			stanzas = append(stanzas, part)
		}
	}
	return stanzas
}

// ParseEditorChorus trims editor chorus text; blank input means no chorus.
// A typed label is dropped like one read from a cell.
func ParseEditorChorus(s string) *string {
	return stripChorusLabel(strings.ReplaceAll(s, "\r\n", "\n"))
}
