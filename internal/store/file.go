package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the document as an indented JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

// Load reads the document; a missing file yields Default().
func (f *FileStore) Load(ctx context.Context) (*GameConfig, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	return decode(f.path, b)
}

// Save writes the whole document to a temp file and renames it over the
// previous one, so a crash never leaves a half-written file.
func (f *FileStore) Save(ctx context.Context, cfg *GameConfig) error {
	b, err := encode(cfg)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "mkdir " + dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: "create temp", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return &PersistenceError{Op: "write " + tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &PersistenceError{Op: "sync " + tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "close " + tmpName, Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &PersistenceError{Op: "rename " + f.path, Err: err}
	}
	return nil
}

// encode renders the document with 4-space indentation and unescaped
// non-ASCII, matching config.json files written by earlier versions.
func encode(cfg *GameConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(source string, b []byte) (*GameConfig, error) {
	cfg := Default()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return cfg, nil
}
