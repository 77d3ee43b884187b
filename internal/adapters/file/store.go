package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tabula/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of snapshots.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Store implements ports.TableStore using the local filesystem.
// It stores one snapshot per file in a configured directory.
type Store struct {
	BasePath string
	Format   Format
}

// New creates a new JSON Store with the given base path.
// If basePath is empty, it defaults to ".tabula/tables".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".tabula", "tables")
	}
	return &Store{BasePath: basePath, Format: FormatJSON}
}

// NewYAML creates a Store that writes YAML files.
func NewYAML(basePath string) *Store {
	s := New(basePath)
	s.Format = FormatYAML
	return s
}

func (s *Store) ext() string {
	if s.Format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+s.ext())
}

func (s *Store) marshal(snap *domain.Snapshot) ([]byte, error) {
	if s.Format == FormatYAML {
		return yaml.Marshal(snap)
	}
	return json.MarshalIndent(snap, "", "  ")
}

func (s *Store) unmarshal(data []byte, snap *domain.Snapshot) error {
	if s.Format == FormatYAML {
		return yaml.Unmarshal(data, snap)
	}
	return json.Unmarshal(data, snap)
}

// Save persists the snapshot atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if snap == nil {
		return fmt.Errorf("snapshot is nil: %w", domain.ErrSnapshotMismatch)
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure table directory: %w", err)
	}

	data, err := s.marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+s.ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		return fmt.Errorf("failed to rename table file: %w", err)
	}
	return nil
}

// Load retrieves the snapshot from its file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	var snap domain.Snapshot
	if err := s.unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the snapshot file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete table file: %w", err)
	}
	return nil
}

// List returns the names of all stored snapshots in this store's format.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != s.ext() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, s.ext()))
	}
	return names, nil
}
