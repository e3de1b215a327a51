package picker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"contentpicker/internal/domain"
	"contentpicker/internal/wpapi"
)

// DefaultConcurrency bounds parallel lookups in ResolveAll
const DefaultConcurrency = 4

var defaultRestBases = map[string]string{
	"post":     "posts",
	"page":     "pages",
	"category": "categories",
	"post_tag": "tags",
	"user":     "users",
}

// Resolver looks up the entities behind picked items
type Resolver struct {
	fetcher     Fetcher
	restBases   map[string]string
	concurrency int
	group       singleflight.Group
}

// NewResolver creates a resolver; overrides map entity types to REST collections
func NewResolver(fetcher Fetcher, overrides map[string]string) *Resolver {
	bases := make(map[string]string, len(defaultRestBases)+len(overrides))
	for k, v := range defaultRestBases {
		bases[k] = v
	}
	for k, v := range overrides {
		bases[k] = v
	}
	return &Resolver{
		fetcher:     fetcher,
		restBases:   bases,
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency changes the number of parallel lookups
func (r *Resolver) SetConcurrency(n int) {
	if n > 0 {
		r.concurrency = n
	}
}

// EntityPath returns the REST path of the entity behind item
func (r *Resolver) EntityPath(item domain.PickedItem) string {
	base, ok := r.restBases[item.Type]
	if !ok {
		base = item.Type
	}
	return "wp/v2/" + base + "/" + strconv.Itoa(item.ID)
}

// entityBody covers posts ({"title":{"rendered":..}}) as well as terms and users ({"name":..})
type entityBody struct {
	ID    int             `json:"id"`
	Title json.RawMessage `json:"title"`
	Name  string          `json:"name"`
	Link  string          `json:"link"`
}

func (b entityBody) title() string {
	if len(b.Title) > 0 {
		var rendered struct {
			Rendered string `json:"rendered"`
		}
		if err := json.Unmarshal(b.Title, &rendered); err == nil && rendered.Rendered != "" {
			return rendered.Rendered
		}
		var plain string
		if err := json.Unmarshal(b.Title, &plain); err == nil && plain != "" {
			return plain
		}
	}
	return b.Name
}

// Resolve looks up one item. Concurrent calls for the same entity share a request.
// A missing entity yields an error wrapping wpapi.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, item domain.PickedItem) (Entity, error) {
	path := r.EntityPath(item)

	v, err, _ := r.group.Do(path, func() (interface{}, error) {
		resp, err := r.fetcher.Fetch(ctx, path)
		if err != nil {
			return Entity{}, err
		}
		var body entityBody
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return Entity{}, fmt.Errorf("failed to decode entity %s: %w", path, err)
		}
		return Entity{ID: item.ID, Title: body.title(), URL: body.Link}, nil
	})
	if err != nil {
		return Entity{}, err
	}
	return v.(Entity), nil
}

// ResolveAll resolves every item. Items whose entity is gone are reported
// as missing; other failures leave the item alone.
func (r *Resolver) ResolveAll(ctx context.Context, items []domain.PickedItem) (Resolution, error) {
	res := Resolution{Entities: make(map[string]Entity, len(items))}
	if len(items) == 0 {
		return res, nil
	}

	var mu sync.Mutex
	missing := make(map[string]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, item := range items {
		g.Go(func() error {
			ent, err := r.Resolve(gctx, item)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				res.Entities[item.UUID] = ent
			case errors.Is(err, wpapi.ErrNotFound):
				missing[item.UUID] = true
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				log.Printf("picker: failed to resolve %s %d: %v", item.Type, item.ID, err)
				res.Failed++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Resolution{}, fmt.Errorf("failed to resolve selection: %w", err)
	}

	// keep selection order
	for _, item := range items {
		if missing[item.UUID] {
			res.Missing = append(res.Missing, item.UUID)
		}
	}
	return res, nil
}
