package ui

import (
	"fmt"
	"strings"
	"time"

	"contentpicker/internal/domain"
	"contentpicker/internal/richtext"
	"contentpicker/internal/search"
)

// RenderItemProps is passed to a custom result renderer
type RenderItemProps struct {
	Item         domain.Suggestion
	SearchTerm   string
	ContentTypes []string
	IsSelected   bool
	RenderType   func(domain.Suggestion) string
}

// SearchOptions configure a ContentSearch
type SearchOptions struct {
	OnSelectItem        func(domain.Suggestion)
	Placeholder         string
	Label               string
	ContentTypes        []string
	Mode                domain.Mode
	PerPage             int
	QueryFilter         search.QueryFilter
	ExcludeItems        []domain.Excludable
	RenderItemType      func(domain.Suggestion) string
	RenderItem          func(RenderItemProps) string // nil renders title, URL and type
	FetchInitialResults bool
	Debounce            time.Duration
	CacheSize           int
}

// PickerOptions configure a ContentPicker
type PickerOptions struct {
	Content             []domain.PickedItem
	OnPickChange        func([]domain.PickedItem)
	MaxContentItems     int // <= 0 is unbounded
	IsOrderable         bool
	Mode                domain.Mode
	ContentTypes        []string
	PerPage             int
	QueryFilter         search.QueryFilter
	Placeholder         string
	Label               string
	PickedItemPreview   func(domain.PickedItem) string
	UniqueContentItems  bool
	ExcludeCurrentPost  bool
	SinglePickedLabel   string
	MultiPickedLabel    string
	FetchInitialResults bool
	Debounce            time.Duration
	CacheSize           int
	RestBases           map[string]string
}

// DefaultPickerOptions returns the picker defaults
func DefaultPickerOptions() PickerOptions {
	return PickerOptions{
		MaxContentItems:    1,
		Mode:               domain.ModePost,
		ContentTypes:       []string{"post", "page"},
		PerPage:            20,
		Placeholder:        "Start typing to search…",
		UniqueContentItems: true,
		ExcludeCurrentPost: true,
		Debounce:           350 * time.Millisecond,
	}
}

// withDefaults fills zero values of the search options
func (o SearchOptions) withDefaults() SearchOptions {
	if o.Mode == "" {
		o.Mode = domain.ModePost
	}
	if len(o.ContentTypes) == 0 {
		o.ContentTypes = []string{"post", "page"}
	}
	if o.PerPage <= 0 {
		o.PerPage = 20
	}
	if o.RenderItemType == nil {
		o.RenderItemType = richtext.DefaultRenderItemType
	}
	return o
}

// DefaultPickedItemPreview shows the title and URL of an item
func DefaultPickedItemPreview(item domain.PickedItem) string {
	var b strings.Builder
	title := richtext.StripMarkup(item.Title)
	if title == "" {
		title = "(no title)"
	}
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Type: %s\nID:   %d\n", item.Type, item.ID)
	if item.URL != "" {
		fmt.Fprintf(&b, "URL:  %s\n", richtext.SafeDecodeURI(item.URL))
	}
	return b.String()
}
