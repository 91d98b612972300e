// Package hymnal imports hymn and Bible spreadsheets into documents and
// exports edited songbooks back to xlsx.
package hymnal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
)

// IDFunc synthesizes a document id from a name, the import time and the
// sheet's position in the workbook.
type IDFunc func(name string, importedAt time.Time, index int) string

// Options configures decoding.
type Options struct {
	// Sheet selects the sheet for single-sheet reads. Empty means the first.
	Sheet string
	// Now returns the import time. Defaults to time.Now.
	Now func() time.Time
	// SongbookID names songbooks. Defaults to SongbookID.
	SongbookID IDFunc
	// BibleID names Bible collections. Defaults to BibleID.
	BibleID IDFunc
	// Logger receives debug output about skipped data. Defaults to a nop logger.
	Logger *slog.Logger
}

// DefaultOptions returns default decoding options.
func DefaultOptions() Options {
	return Options{
		Now:        time.Now,
		SongbookID: SongbookID,
		BibleID:    BibleID,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) songbookID() IDFunc {
	if o.SongbookID != nil {
		return o.SongbookID
	}
	return SongbookID
}

func (o Options) bibleID() IDFunc {
	if o.BibleID != nil {
		return o.BibleID
	}
	return BibleID
}

func (o Options) logger() *slog.Logger {
	return logging.WithComponent(o.Logger, "codec")
}

// SongbookID formats "<name>-<unix millis>-<index>". Name is the file base
// name and sheet name joined by a hyphen.
func SongbookID(name string, importedAt time.Time, index int) string {
	return fmt.Sprintf("%s-%d-%d", name, importedAt.UnixMilli(), index)
}

var whitespaceRunRe = regexp.MustCompile(`\s+`)

// BibleID formats "bible-<slug>-<unix millis>-<index>" where slug is the
// lower-cased name with whitespace runs turned into hyphens.
func BibleID(name string, importedAt time.Time, index int) string {
	slug := whitespaceRunRe.ReplaceAllString(strings.ToLower(name), "-")
	return fmt.Sprintf("bible-%s-%d-%d", slug, importedAt.UnixMilli(), index)
}

// fileStem strips directory and extension from a file name.
func fileStem(fileName string) string {
	base := filepath.Base(fileName)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
