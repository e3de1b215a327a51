package domain

import (
	"encoding/json"
	"fmt"
)

// Mode is the search target discriminator
type Mode string

const (
	ModePost Mode = "post"
	ModeUser Mode = "user"
	ModeTerm Mode = "term"
)

// ParseMode converts a config/flag value into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePost, ModeUser, ModeTerm:
		return Mode(s), nil
	case "":
		return ModePost, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Suggestion is a normalized search result shown before selection
type Suggestion struct {
	ID      int
	Title   string // may contain markup
	URL     string
	Type    string // "post", "user" or a taxonomy slug
	Subtype string // post type name, taxonomy slug or "user"
}

// ResultID returns the entity id used for exclusion
func (s Suggestion) ResultID() int { return s.ID }

// PickedType returns the type recorded on a PickedItem created from s
func (s Suggestion) PickedType() string {
	if s.Subtype != "" {
		return s.Subtype
	}
	return s.Type
}

// PickedItem is a selected, user-ordered entry owned by the host document
type PickedItem struct {
	ID    int    `toml:"id" json:"id"`
	Type  string `toml:"type" json:"type"`
	UUID  string `toml:"uuid" json:"uuid"`
	Title string `toml:"title" json:"title"`
	URL   string `toml:"url" json:"url"`
}

// Excludable is anything carrying an entity id that can be filtered out of results
type Excludable struct {
	ID int
}

// ExcludablesFromPicked converts a selection into an exclusion list
func ExcludablesFromPicked(items []PickedItem) []Excludable {
	out := make([]Excludable, 0, len(items))
	for _, it := range items {
		out = append(out, Excludable{ID: it.ID})
	}
	return out
}

// PostContext is the read-only editing context injected into the picker
type PostContext struct {
	PostID     int
	PostType   string
	IsEditable bool
}

// RawResult is one backend search result before normalization.
// The concrete variants are SearchResult, UserResult and TermResult.
type RawResult interface {
	ResultID() int
	isRawResult()
}

// SearchResult is the shape returned by the unified search endpoint
type SearchResult struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

func (r SearchResult) ResultID() int { return r.ID }
func (SearchResult) isRawResult()    {}

// UserResult is the shape returned by the user search endpoint
type UserResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
	Slug string `json:"slug"`
}

func (r UserResult) ResultID() int { return r.ID }
func (UserResult) isRawResult()    {}

// TermResult is a taxonomy term. The search endpoint returns terms in the
// SearchResult shape, so both sets of fields are decoded.
type TermResult struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Link     string `json:"link"`
	Taxonomy string `json:"taxonomy"`

	Title   string `json:"title"`
	URL     string `json:"url"`
	Subtype string `json:"subtype"`
}

func (r TermResult) ResultID() int { return r.ID }
func (TermResult) isRawResult()    {}

// UnmarshalJSON accepts ids encoded as numbers or numeric strings
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	type alias SearchResult
	aux := struct {
		ID json.Number `json:"id"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == "" {
		r.ID = 0
		return nil
	}
	id, err := aux.ID.Int64()
	if err != nil {
		return fmt.Errorf("invalid result id %q: %w", aux.ID, err)
	}
	r.ID = int(id)
	return nil
}
