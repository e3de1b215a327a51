package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
)

func TestSelectionStoreMissingFile(t *testing.T) {
	store := NewSelectionStore(filepath.Join(t.TempDir(), "selection.toml"), nil)

	items, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Nil(t, items)
}

func TestSelectionStoreKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "selection.toml")
	store := NewSelectionStore(path, nil)

	items := []domain.PickedItem{
		{ID: 3, Type: "page", UUID: "u-3", Title: "Third", URL: "https://example.test/third"},
		{ID: 1, Type: "post", UUID: "u-1", Title: "First", URL: "https://example.test/first"},
		{ID: 2, Type: "category", UUID: "u-2", Title: "Second"},
	}
	require.NoError(t, store.Save(items))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestSelectionStoreSaveEmpty(t *testing.T) {
	store := NewSelectionStore(filepath.Join(t.TempDir(), "selection.toml"), nil)
	require.NoError(t, store.Save(nil))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSelectionStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0644))

	_, err := NewSelectionStore(path, nil).Load()
	assert.Error(t, err)
}

func TestSelectionStorePublishesSaved(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan domain.SelectionSavedEvent, 1)
	bus.Subscribe(eventbus.EventSelectionSaved, func(e eventbus.DomainEvent) {
		saved <- e.(domain.SelectionSavedEvent)
	})

	path := filepath.Join(t.TempDir(), "selection.toml")
	store := NewSelectionStore(path, bus)
	require.NoError(t, store.Save([]domain.PickedItem{{ID: 1, Type: "post", UUID: "a"}}))

	select {
	case ev := <-saved:
		assert.Equal(t, path, ev.Path)
		assert.Equal(t, 1, ev.Count)
	case <-time.After(2 * time.Second):
		t.Fatal("SelectionSaved was not published")
	}
}
