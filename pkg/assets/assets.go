// Package assets resolves car images from a directory of static files served
// by an externally configured host.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds asset settings, sourced from environment variables under the
// ASSETS_ prefix.
type Config struct {
	Dir     string `split_words:"true" default:"images"`
	BaseURL string `split_words:"true" default:"http://localhost:3000"`
}

// Store serves image URLs for assets that exist on disk. The store never
// creates or modifies files.
type Store struct {
	dir     string
	baseURL string
}

func New(cfg Config) *Store {
	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Resolve reports whether the named asset exists and, if so, the public URL
// it is served under.
func (s *Store) Resolve(filename string) (string, bool) {
	if _, err := os.Stat(filepath.Join(s.dir, filename)); err != nil {
		return "", false
	}
	return s.baseURL + "/images/" + filename, true
}
