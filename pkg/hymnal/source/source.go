// Package source acquires spreadsheet bytes from user files or from the
// bundled default data shipped under a base path.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Bundled data files, relative to the base path.
const (
	DefaultHymnsFile = "data/hymns_collection.xlsx"
	DefaultBibleFile = "data/kjv_bible.xlsx"
)

// maxSize bounds how much is read from one source.
const maxSize = 64 << 20

// Fetch reads location completely. Locations starting with http:// or
// https:// are requested over HTTP; anything else is a local file path.
func Fetch(ctx context.Context, location string) ([]byte, error) {
	if isURL(location) {
		return fetchHTTP(ctx, http.DefaultClient, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// Bundled reads a file shipped relative to basePath, which may be a
// directory or a URL.
func Bundled(ctx context.Context, basePath, rel string) ([]byte, error) {
	return Fetch(ctx, Resolve(basePath, rel))
}

// Resolve joins basePath and rel. An empty base path means the working
// directory.
func Resolve(basePath, rel string) string {
	if isURL(basePath) {
		u, err := url.Parse(basePath)
		if err != nil {
			return strings.TrimSuffix(basePath, "/") + "/" + rel
		}
		u.Path = path.Join("/", u.Path, rel)
		return u.String()
	}
	if basePath == "" {
		return filepath.FromSlash(rel)
	}
	return filepath.Join(basePath, filepath.FromSlash(rel))
}

func fetchHTTP(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	if len(data) > maxSize {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", location, maxSize)
	}
	return data, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
