//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// cmsPost is one entry served by the fake CMS
type cmsPost struct {
	ID      int
	Title   string
	Subtype string
}

// FakeCMS serves the REST routes the picker uses
type FakeCMS struct {
	*httptest.Server

	mu    sync.Mutex
	posts []cmsPost
}

// NewFakeCMS starts a fake CMS with the given posts
func NewFakeCMS(posts ...cmsPost) *FakeCMS {
	c := &FakeCMS{posts: posts}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serve))
	return c
}

// BaseURL returns the REST root for the config file
func (c *FakeCMS) BaseURL() string {
	return c.URL + "/wp-json"
}

// Delete removes a post so that lookups return 404
func (c *FakeCMS) Delete(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.posts {
		if p.ID == id {
			c.posts = append(c.posts[:i], c.posts[i+1:]...)
			return
		}
	}
}

func (c *FakeCMS) serve(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/")
	w.Header().Set("Content-Type", "application/json")

	if path == "search" {
		term := strings.ToLower(r.URL.Query().Get("search"))
		results := []map[string]any{}
		for _, p := range c.posts {
			if strings.Contains(strings.ToLower(p.Title), term) {
				results = append(results, map[string]any{
					"id":      p.ID,
					"title":   p.Title,
					"url":     fmt.Sprintf("%s/%d/", c.URL, p.ID),
					"type":    "post",
					"subtype": p.Subtype,
				})
			}
		}
		w.Header().Set("X-WP-TotalPages", "1")
		_ = json.NewEncoder(w).Encode(results)
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) == 2 {
		id, _ := strconv.Atoi(parts[1])
		for _, p := range c.posts {
			if p.ID == id {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"id":    p.ID,
					"title": map[string]string{"rendered": p.Title},
					"link":  fmt.Sprintf("%s/%d/", c.URL, p.ID),
				})
				return
			}
		}
	}
	http.NotFound(w, r)
}

// CreateTestWorkspace creates a temporary directory for config, selection and log
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes config.toml into the workspace pointing at cms.
// extra is appended verbatim.
func (tf *TUITestFramework) WriteConfig(cms *FakeCMS, extra string) (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	body := fmt.Sprintf(`selection_file = %q
log_file = %q

[api]
base_url = %q

[search]
debounce = "50ms"
%s`, tf.SelectionPath(), filepath.Join(tf.workspace, "contentpicker.log"), cms.BaseURL(), extra)

	path := filepath.Join(tf.workspace, "config.toml")
	return path, os.WriteFile(path, []byte(body), 0644)
}

// SelectionPath returns where the app stores the selection
func (tf *TUITestFramework) SelectionPath() string {
	return filepath.Join(tf.workspace, "selection.toml")
}

// WriteSelection stores an initial selection
func (tf *TUITestFramework) WriteSelection(body string) error {
	return os.WriteFile(tf.SelectionPath(), []byte(body), 0644)
}

// Selection returns the stored selection file contents
func (tf *TUITestFramework) Selection() string {
	data, err := os.ReadFile(tf.SelectionPath())
	if err != nil {
		return ""
	}
	return string(data)
}
