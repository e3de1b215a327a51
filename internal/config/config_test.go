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

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://example.test"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "https://example.test", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"post", "page"}, cfg.Search.ContentTypes)
	assert.Equal(t, 20, cfg.Search.PerPage)
	assert.Equal(t, 1, cfg.Picker.MaxItems)
	assert.True(t, cfg.Picker.UniqueItems)
	assert.True(t, cfg.Picker.ExcludeCurrentPost)
	assert.True(t, cfg.Post.Editable)
	assert.Equal(t, domain.ModePost, cfg.ParsedMode())
	assert.NotNil(t, cfg.API.RestBases)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
selection_file = "/tmp/sel.toml"

[api]
base_url = "http://localhost:8080"
timeout = "3s"

[api.rest_bases]
book = "books"

[search]
mode = "term"
content_types = ["category", "post_tag"]
per_page = 5
debounce = "100ms"

[picker]
max_items = 4
orderable = true

[post]
id = 42
type = "page"
editable = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, map[string]string{"book": "books"}, cfg.API.RestBases)
	assert.Equal(t, domain.ModeTerm, cfg.ParsedMode())
	assert.Equal(t, []string{"category", "post_tag"}, cfg.Search.ContentTypes)
	assert.Equal(t, 5, cfg.Search.PerPage)
	assert.Equal(t, 100*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 4, cfg.Picker.MaxItems)
	assert.True(t, cfg.Picker.Orderable)
	assert.Equal(t, domain.PostContext{PostID: 42, PostType: "page", IsEditable: false}, cfg.PostContext())
	assert.Equal(t, "/tmp/sel.toml", cfg.SelectionFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://example.test"
`)
	t.Setenv("CONTENTPICKER_API_BASE_URL", "https://override.test")
	t.Setenv("CONTENTPICKER_SEARCH_PER_PAGE", "7")
	t.Setenv("CONTENTPICKER_SEARCH_CONTENT_TYPES", "post,book")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://override.test", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.Search.PerPage)
	assert.Equal(t, []string{"post", "book"}, cfg.Search.ContentTypes)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:           APIConfig{BaseURL: "https://example.test"},
			Search:        SearchConfig{Mode: "post", ContentTypes: []string{"post"}, PerPage: 20},
			SelectionFile: "sel.toml",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, false},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/wp-json" }, false},
		{"unknown mode", func(c *Config) { c.Search.Mode = "comment" }, false},
		{"zero per page", func(c *Config) { c.Search.PerPage = 0 }, false},
		{"per page above api max", func(c *Config) { c.Search.PerPage = MaxPerPage + 1 }, false},
		{"no content types", func(c *Config) { c.Search.ContentTypes = nil }, false},
		{"user mode needs no content types", func(c *Config) {
			c.Search.Mode = "user"
			c.Search.ContentTypes = nil
		}, true},
		{"negative debounce", func(c *Config) { c.Search.Debounce = -time.Second }, false},
		{"missing selection file", func(c *Config) { c.SelectionFile = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAnnounce(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://example.test"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	bus := &recordingBus{}
	cfg.Announce(bus)
	cfg.Announce(nil)

	require.Len(t, bus.events, 1)
	assert.Equal(t, domain.ConfigLoadedEvent{Path: path}, bus.events[0])
}

type recordingBus struct {
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(e domain.DomainEvent) { b.events = append(b.events, e) }

func (b *recordingBus) Subscribe(domain.EventType, eventbus.EventHandler) func() { return func() {} }
