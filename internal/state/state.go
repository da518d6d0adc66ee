// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state persists the Content aggregate between runs.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-robot/pkg/types"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved content")

// Store loads and saves the aggregate. Save followed by Load must return an
// equal aggregate, including empty keyword lists and their order.
type Store interface {
	Load(ctx context.Context) (*types.Content, error)
	Save(ctx context.Context, c *types.Content) error
}

// Open returns the store selected by cfg.
func Open(cfg types.StateConfig) (Store, error) {
	switch cfg.Backend {
	case "", types.StateFile:
		path := cfg.Path
		if path == "" {
			path = filepath.Join("content", "content.json")
		}
		return NewFileStore(path), nil
	case types.StateSQLite:
		path := cfg.Path
		if path == "" {
			path = filepath.Join("content", "content.db")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}

// Close releases resources held by s, if any.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// FileStore keeps the aggregate in a single file. The codec follows the
// extension: .yaml or .yml for YAML, anything else for indented JSON.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context) (*types.Content, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var c types.Content
	if s.isYAML() {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	c.Normalize()
	return &c, nil
}

// Save implements Store. The document is written to a temporary file in the
// same directory and renamed over the previous one, so a failed Save leaves
// the earlier state intact.
func (s *FileStore) Save(_ context.Context, c *types.Content) error {
	data, err := Marshal(c, s.isYAML())
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	// CreateTemp opens with 0600 and the rename keeps it.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Marshal encodes c as YAML or indented JSON with a trailing newline.
func Marshal(c *types.Content, asYAML bool) ([]byte, error) {
	if asYAML {
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("marshaling content: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling content: %w", err)
	}
	return append(data, '\n'), nil
}
