// Package library keeps imported songbooks and Bible summaries in a Store.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/store"
)

// Storage keys.
const (
	KeySongbooks     = "songbooks"
	KeyBibleMetadata = "bible-metadata"
)

// ErrSongbookNotFound indicates no stored songbook matched.
var ErrSongbookNotFound = errors.New("songbook not found")

// MergeResult reports how an import changed the library.
type MergeResult struct {
	Added    int
	Replaced int
}

// Library reads and writes whole collections through a Store.
type Library struct {
	store  store.Store
	logger *slog.Logger
}

// New returns a library over s.
func New(s store.Store, logger *slog.Logger) *Library {
	return &Library{store: s, logger: logging.WithComponent(logger, "library")}
}

// Songbooks returns every stored songbook in stored order.
func (l *Library) Songbooks(ctx context.Context) ([]models.Songbook, error) {
	var songbooks []models.Songbook
	if err := l.load(ctx, KeySongbooks, &songbooks); err != nil {
		return nil, err
	}
	return songbooks, nil
}

// MergeSongbooks stores imported songbooks. A stored songbook with the same
// title is replaced in place; other titles are appended.
func (l *Library) MergeSongbooks(ctx context.Context, imported []models.Songbook) (MergeResult, error) {
	current, err := l.Songbooks(ctx)
	if err != nil {
		return MergeResult{}, err
	}
	merged, result := mergeByTitle(current, imported, func(sb models.Songbook) string { return sb.Title })
	if err := l.save(ctx, KeySongbooks, merged); err != nil {
		return MergeResult{}, err
	}
	l.logger.Info("merged songbooks",
		slog.Int("added", result.Added),
		slog.Int("replaced", result.Replaced))
	return result, nil
}

// FindSongbook looks a songbook up by id, then exact title, then title
// ignoring case.
func (l *Library) FindSongbook(ctx context.Context, ref string) (models.Songbook, error) {
	songbooks, err := l.Songbooks(ctx)
	if err != nil {
		return models.Songbook{}, err
	}
	for _, sb := range songbooks {
		if sb.ID == ref {
			return sb, nil
		}
	}
	for _, sb := range songbooks {
		if sb.Title == ref {
			return sb, nil
		}
	}
	fold := cases.Fold()
	want := fold.String(ref)
	for _, sb := range songbooks {
		if fold.String(sb.Title) == want {
			return sb, nil
		}
	}
	return models.Songbook{}, fmt.Errorf("%w: %q", ErrSongbookNotFound, ref)
}

// PutSongbook replaces the stored songbook with the same id.
func (l *Library) PutSongbook(ctx context.Context, sb models.Songbook) error {
	songbooks, err := l.Songbooks(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range songbooks {
		if songbooks[i].ID == sb.ID {
			songbooks[i] = sb
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrSongbookNotFound, sb.ID)
	}
	return l.save(ctx, KeySongbooks, songbooks)
}

// DeleteSongbook removes the songbook with the given id.
func (l *Library) DeleteSongbook(ctx context.Context, id string) error {
	songbooks, err := l.Songbooks(ctx)
	if err != nil {
		return err
	}
	kept := songbooks[:0]
	for _, sb := range songbooks {
		if sb.ID != id {
			kept = append(kept, sb)
		}
	}
	if len(kept) == len(songbooks) {
		return fmt.Errorf("%w: %q", ErrSongbookNotFound, id)
	}
	return l.save(ctx, KeySongbooks, kept)
}

// Bibles returns the stored Bible summaries.
func (l *Library) Bibles(ctx context.Context) ([]models.BibleMetadata, error) {
	var bibles []models.BibleMetadata
	if err := l.load(ctx, KeyBibleMetadata, &bibles); err != nil {
		return nil, err
	}
	return bibles, nil
}

// MergeBibles stores summaries of the collections, replacing by title. Verse
// content is not persisted.
func (l *Library) MergeBibles(ctx context.Context, collections []models.BibleCollection) (MergeResult, error) {
	current, err := l.Bibles(ctx)
	if err != nil {
		return MergeResult{}, err
	}
	imported := make([]models.BibleMetadata, len(collections))
	for i, c := range collections {
		imported[i] = c.Metadata()
	}
	merged, result := mergeByTitle(current, imported, func(m models.BibleMetadata) string { return m.Title })
	if err := l.save(ctx, KeyBibleMetadata, merged); err != nil {
		return MergeResult{}, err
	}
	l.logger.Info("merged bible summaries",
		slog.Int("added", result.Added),
		slog.Int("replaced", result.Replaced))
	return result, nil
}

func mergeByTitle[T any](current, imported []T, title func(T) string) ([]T, MergeResult) {
	var result MergeResult
	merged := make([]T, 0, len(current)+len(imported))
	merged = append(merged, current...)
	for _, item := range imported {
		replaced := false
		for i := range merged {
			if title(merged[i]) == title(item) {
				merged[i] = item
				replaced = true
				break
			}
		}
		if replaced {
			result.Replaced++
			continue
		}
		merged = append(merged, item)
		result.Added++
	}
	return merged, result
}

func (l *Library) load(ctx context.Context, key string, dst any) error {
	data, ok, err := l.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (l *Library) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
