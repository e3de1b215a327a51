package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
)

// EnvPrefix is the prefix for environment overrides, e.g. CONTENTPICKER_API_BASE_URL
const EnvPrefix = "CONTENTPICKER"

// MaxPerPage is the largest page size the REST API accepts
const MaxPerPage = 100

// Config represents the application configuration
type Config struct {
	API           APIConfig    `mapstructure:"api"`
	Search        SearchConfig `mapstructure:"search"`
	Picker        PickerConfig `mapstructure:"picker"`
	Post          PostConfig   `mapstructure:"post"`
	SelectionFile string       `mapstructure:"selection_file"`
	LogFile       string       `mapstructure:"log_file"`

	// Path of the config file that was read, empty when none was found
	Path string `mapstructure:"-"`
}

// APIConfig holds the REST endpoint settings
type APIConfig struct {
	BaseURL     string            `mapstructure:"base_url"`
	Username    string            `mapstructure:"username"`
	AppPassword string            `mapstructure:"app_password"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	RestBases   map[string]string `mapstructure:"rest_bases"` // entity type -> REST collection
}

// SearchConfig holds ContentSearch settings
type SearchConfig struct {
	Mode                string        `mapstructure:"mode"`
	ContentTypes        []string      `mapstructure:"content_types"`
	PerPage             int           `mapstructure:"per_page"`
	FetchInitialResults bool          `mapstructure:"fetch_initial_results"`
	Debounce            time.Duration `mapstructure:"debounce"`
	CacheSize           int           `mapstructure:"cache_size"`
}

// PickerConfig holds ContentPicker settings
type PickerConfig struct {
	MaxItems           int  `mapstructure:"max_items"`
	Orderable          bool `mapstructure:"orderable"`
	UniqueItems        bool `mapstructure:"unique_items"`
	ExcludeCurrentPost bool `mapstructure:"exclude_current_post"`
}

// PostConfig describes the document being edited
type PostConfig struct {
	ID       int    `mapstructure:"id"`
	Type     string `mapstructure:"type"`
	Editable bool   `mapstructure:"editable"`
}

// ParsedMode returns the search mode, defaulting to post
func (c *Config) ParsedMode() domain.Mode {
	m, err := domain.ParseMode(c.Search.Mode)
	if err != nil {
		return domain.ModePost
	}
	return m
}

// PostContext returns the editing context injected into the picker
func (c *Config) PostContext() domain.PostContext {
	return domain.PostContext{
		PostID:     c.Post.ID,
		PostType:   c.Post.Type,
		IsEditable: c.Post.Editable,
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute http(s) URL", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}

	mode, err := domain.ParseMode(c.Search.Mode)
	if err != nil {
		errs = append(errs, err)
	}
	if mode != domain.ModeUser && len(c.Search.ContentTypes) == 0 {
		errs = append(errs, errors.New("search.content_types must list at least one type"))
	}
	if c.Search.PerPage < 1 || c.Search.PerPage > MaxPerPage {
		errs = append(errs, fmt.Errorf("search.per_page must be between 1 and %d, got %d", MaxPerPage, c.Search.PerPage))
	}
	if c.Search.Debounce < 0 {
		errs = append(errs, errors.New("search.debounce must not be negative"))
	}
	if c.Search.CacheSize < 0 {
		errs = append(errs, errors.New("search.cache_size must not be negative"))
	}
	if c.SelectionFile == "" {
		errs = append(errs, errors.New("selection_file is required"))
	}

	return errors.Join(errs...)
}

// setDefaults registers every key so env overrides apply even without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.username", "")
	v.SetDefault("api.app_password", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.rest_bases", map[string]string{})

	v.SetDefault("search.mode", string(domain.ModePost))
	v.SetDefault("search.content_types", []string{"post", "page"})
	v.SetDefault("search.per_page", 20)
	v.SetDefault("search.fetch_initial_results", false)
	v.SetDefault("search.debounce", 350*time.Millisecond)
	v.SetDefault("search.cache_size", 64)

	v.SetDefault("picker.max_items", 1)
	v.SetDefault("picker.orderable", false)
	v.SetDefault("picker.unique_items", true)
	v.SetDefault("picker.exclude_current_post", true)

	v.SetDefault("post.id", 0)
	v.SetDefault("post.type", "post")
	v.SetDefault("post.editable", true)

	v.SetDefault("selection_file", filepath.Join(defaultDir(), "selection.toml"))
	v.SetDefault("log_file", "contentpicker.log")
}

func defaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "contentpicker")
}

// Load reads configuration from file and env.
// An empty path falls back to CONTENTPICKER_CONFIG and then to the user config
// directory; a missing file there is not an error, a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	// A comma separated env value arrives as a single element
	if len(cfg.Search.ContentTypes) == 1 && strings.Contains(cfg.Search.ContentTypes[0], ",") {
		cfg.Search.ContentTypes = splitList(cfg.Search.ContentTypes[0])
	}
	if cfg.API.RestBases == nil {
		cfg.API.RestBases = make(map[string]string)
	}

	return &cfg, nil
}

// Announce publishes the loaded configuration on the bus
func (c *Config) Announce(bus eventbus.EventBus) {
	if bus != nil {
		bus.Publish(domain.ConfigLoadedEvent{Path: c.Path})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
