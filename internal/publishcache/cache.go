// Package publishcache remembers which asset fingerprints were published by
// earlier runs, so a deployment can skip building and publishing them again.
//
// Each asset is stored as `<asset>.fingerprint` inside the cache directory.
package publishcache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Cache is a directory of published fingerprints. It is safe for concurrent
// use as long as concurrent writers handle different assets.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir. The directory is created on first write.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Has reports whether fingerprint was recorded for the asset. An empty
// fingerprint is never considered published.
func (c *Cache) Has(assetID, fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}

	data, err := os.ReadFile(c.path(assetID))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading fingerprint of asset %q: %w", assetID, err)
	}
	return strings.TrimSpace(string(data)) == fingerprint, nil
}

// Record stores fingerprint as the published version of the asset.
func (c *Cache) Record(assetID, fingerprint string) error {
	if fingerprint == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating publish cache directory: %w", err)
	}
	if err := writeFileAtomic(c.path(assetID), []byte(fingerprint+"\n"), 0o644); err != nil {
		return fmt.Errorf("recording fingerprint of asset %q: %w", assetID, err)
	}
	return nil
}

// path maps an asset id to its file. Slashes in nested ids are flattened.
func (c *Cache) path(assetID string) string {
	return filepath.Join(c.dir, strings.ReplaceAll(assetID, "/", "__")+".fingerprint")
}
