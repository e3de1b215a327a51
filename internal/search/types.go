package search

import (
	"context"

	"contentpicker/internal/domain"
	"contentpicker/internal/wpapi"
)

// Status is the lifecycle state of one query key
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// QueryArgs is the full argument set a query is built from
type QueryArgs struct {
	Keyword      string
	Page         int
	Mode         domain.Mode
	ContentTypes []string
	PerPage      int
}

// QueryFilter rewrites a built query; its output is the canonical key
type QueryFilter func(query string, args QueryArgs) string

// Fetcher performs a REST request for a query path
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*wpapi.Response, error)
}

// QueryState holds one page of one search string
type QueryState struct {
	Key        string
	Keyword    string
	Page       int
	Results    []domain.Suggestion
	Status     Status
	TotalPages int

	seq    uint64
	cancel context.CancelFunc
}

// ResultMsg delivers a fetch outcome back to the UI loop
type ResultMsg struct {
	Key      string
	Seq      uint64
	Response *wpapi.Response
	Err      error
}

// Results is the flattened view of the current search string
type Results struct {
	Keyword         string
	Items           []domain.Suggestion
	HasSearchString bool
	Active          bool // a search (possibly empty) has been issued
	Loading         bool // first page pending
	LoadingMore     bool // a later page pending
	ShowLoadMore    bool
	Failed          bool
	Page            int
	TotalPages      int
}

// Options configure a Controller
type Options struct {
	Mode         domain.Mode
	ContentTypes []string
	PerPage      int
	QueryFilter  QueryFilter
	Exclude      []domain.Excludable
	CacheSize    int
}
