package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
)

// ErrNoSelection is returned by Load when no selection has been saved yet
var ErrNoSelection = errors.New("no saved selection")

// selectionFile is the on-disk shape of the host document's picked items
type selectionFile struct {
	Version int                 `toml:"version"`
	Items   []domain.PickedItem `toml:"items"`
}

const selectionVersion = 1

// SelectionStore persists the ordered selection as TOML
type SelectionStore struct {
	bus  eventbus.EventBus
	path string
}

// NewSelectionStore creates a store writing to path. bus may be nil.
func NewSelectionStore(path string, bus eventbus.EventBus) *SelectionStore {
	return &SelectionStore{path: path, bus: bus}
}

// Path returns the file the store reads and writes
func (s *SelectionStore) Path() string {
	return s.path
}

// Load reads the saved selection in its stored order
func (s *SelectionStore) Load() ([]domain.PickedItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrNoSelection)
		}
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}

	var f selectionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse selection file: %w", err)
	}
	if f.Version > selectionVersion {
		return nil, fmt.Errorf("selection file version %d is newer than supported version %d", f.Version, selectionVersion)
	}

	return f.Items, nil
}

// Save replaces the stored selection with items
func (s *SelectionStore) Save(items []domain.PickedItem) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create selection directory: %w", err)
	}

	if items == nil {
		items = []domain.PickedItem{}
	}
	data, err := toml.Marshal(selectionFile{Version: selectionVersion, Items: items})
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write selection file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace selection file: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(domain.SelectionSavedEvent{Path: s.path, Count: len(items)})
	}

	return nil
}
