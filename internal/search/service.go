package search

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
)

// Controller owns the query state machine of one search box.
// All methods must be called from the UI loop; fetches run as tea.Cmds.
type Controller struct {
	fetcher Fetcher
	bus     eventbus.EventBus
	opts    Options
	cache   *Cache
	exclude []domain.Excludable

	keyword string
	page    int
	active  bool
	seq     uint64
}

// NewController creates a search controller. bus may be nil.
func NewController(fetcher Fetcher, bus eventbus.EventBus, opts Options) *Controller {
	if opts.Mode == "" {
		opts.Mode = domain.ModePost
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 20
	}
	if len(opts.ContentTypes) == 0 {
		opts.ContentTypes = []string{"post", "page"}
	}
	return &Controller{
		fetcher: fetcher,
		bus:     bus,
		opts:    opts,
		cache:   NewCache(opts.CacheSize),
		exclude: opts.Exclude,
		page:    1,
	}
}

// Mode returns the search mode
func (c *Controller) Mode() domain.Mode {
	return c.opts.Mode
}

// ContentTypes returns the searched content types
func (c *Controller) ContentTypes() []string {
	return c.opts.ContentTypes
}

// Keyword returns the current search string
func (c *Controller) Keyword() string {
	return c.keyword
}

// key computes the canonical key for keyword and page
func (c *Controller) key(keyword string, page int) string {
	return BuildQuery(QueryArgs{
		Keyword:      keyword,
		Page:         page,
		Mode:         c.opts.Mode,
		ContentTypes: c.opts.ContentTypes,
		PerPage:      c.opts.PerPage,
	}, c.opts.QueryFilter)
}

// pagesPaginate reports whether the page number is part of the key
func (c *Controller) pagesPaginate() bool {
	return c.opts.Mode != domain.ModeUser
}

// SetSearchString makes keyword the current search string.
// It returns the fetch to run, or nil when the page is already cached.
// A page is only requested once every page before it has succeeded.
func (c *Controller) SetSearchString(keyword string, page int) tea.Cmd {
	if keyword == "" || page < 1 || !c.pagesPaginate() {
		page = 1
	}

	c.keyword = keyword
	c.active = true
	c.page = page
	for p := 1; p < page; p++ {
		st, ok := c.cache.Get(c.key(keyword, p))
		if !ok || st.Status != StatusSuccess || st.TotalPages <= p {
			c.page = p
			break
		}
	}
	c.cache.Reserve(c.page + MinCacheSize/2)

	c.cancelPendingExcept(c.currentKeys())

	key := c.key(keyword, c.page)
	if st, ok := c.cache.Get(key); ok && st.Status != StatusError {
		return nil
	}
	return c.issue(key, keyword, c.page)
}

// LoadMore requests the next page of the current search string.
// It is a no-op unless the current page has succeeded and more pages exist.
func (c *Controller) LoadMore() tea.Cmd {
	if !c.active || !c.canLoadMore() {
		return nil
	}

	c.page++
	c.cache.Reserve(c.page + MinCacheSize/2)

	key := c.key(c.keyword, c.page)
	if st, ok := c.cache.Get(key); ok && st.Status != StatusError {
		return nil
	}
	return c.issue(key, c.keyword, c.page)
}

func (c *Controller) canLoadMore() bool {
	if !c.pagesPaginate() {
		return false
	}
	st, ok := c.cache.Peek(c.key(c.keyword, c.page))
	return ok && st.Status == StatusSuccess && st.TotalPages > c.page
}

// currentKeys returns the keys of pages 1..page of the current search string
func (c *Controller) currentKeys() map[string]struct{} {
	keys := make(map[string]struct{}, c.page)
	for p := 1; p <= c.page; p++ {
		keys[c.key(c.keyword, p)] = struct{}{}
	}
	return keys
}

// cancelPendingExcept cancels and forgets every pending state not in keep.
// Forgetting guarantees a late response finds no state to land in.
func (c *Controller) cancelPendingExcept(keep map[string]struct{}) {
	for _, st := range c.cache.States() {
		if st.Status != StatusPending {
			continue
		}
		if _, ok := keep[st.Key]; ok {
			continue
		}
		log.Printf("search: cancelling superseded query %s", st.Key)
		c.cache.Remove(st.Key)
		c.publish(domain.QueryCancelledEvent{Key: st.Key})
	}
}

// issue creates a pending state for key and returns the fetch command
func (c *Controller) issue(key, keyword string, page int) tea.Cmd {
	c.seq++
	ctx, cancel := context.WithCancel(context.Background())
	st := &QueryState{
		Key:     key,
		Keyword: keyword,
		Page:    page,
		Status:  StatusPending,
		seq:     c.seq,
		cancel:  cancel,
	}
	c.cache.Put(st)

	log.Printf("search: fetching %s", key)
	c.publish(domain.SearchRequestedEvent{Key: key, Keyword: keyword, Page: page})

	fetcher := c.fetcher
	seq := st.seq
	return func() tea.Msg {
		resp, err := fetcher.Fetch(ctx, key)
		return ResultMsg{Key: key, Seq: seq, Response: resp, Err: err}
	}
}

// Update integrates a fetch result. It reports whether the view changed.
func (c *Controller) Update(msg tea.Msg) bool {
	res, ok := msg.(ResultMsg)
	if !ok {
		return false
	}

	st, ok := c.cache.Peek(res.Key)
	if !ok || st.seq != res.Seq || st.Status != StatusPending {
		// superseded, evicted or already integrated
		return false
	}

	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return false
		}
		log.Printf("search: query %s failed: %v", res.Key, res.Err)
		st.release()
		st.Status = StatusError
		st.Results = nil
		st.TotalPages = 0
		c.publish(domain.QueryFailedEvent{Key: res.Key, Err: res.Err})
		return true
	}

	raw, err := DecodeResults(c.opts.Mode, res.Response.Body)
	if err != nil {
		log.Printf("search: query %s returned unreadable body: %v", res.Key, err)
		st.release()
		st.Status = StatusError
		st.Results = nil
		c.publish(domain.QueryFailedEvent{Key: res.Key, Err: err})
		return true
	}

	st.release()
	st.Results = Normalize(c.opts.Mode, raw, c.exclude)
	st.TotalPages = res.Response.TotalPages
	st.Status = StatusSuccess

	log.Printf("search: query %s loaded %d results (%d pages)", res.Key, len(st.Results), st.TotalPages)
	c.publish(domain.ResultsLoadedEvent{Key: res.Key, Count: len(st.Results), TotalPages: st.TotalPages})
	return true
}

// SetExclude replaces the exclusion list
func (c *Controller) SetExclude(exclude []domain.Excludable) {
	c.exclude = exclude
}

// View flattens pages 1..currentPage of the current search string in page order
func (c *Controller) View() Results {
	r := Results{
		Keyword:         c.keyword,
		HasSearchString: c.keyword != "",
		Active:          c.active,
		Page:            c.page,
	}
	if !c.active {
		return r
	}

	for p := 1; p <= c.page; p++ {
		st, ok := c.cache.Peek(c.key(c.keyword, p))
		if !ok {
			break
		}
		r.TotalPages = st.TotalPages
		if st.Status == StatusPending {
			if p == 1 {
				r.Loading = true
			} else {
				r.LoadingMore = true
			}
			break
		}
		if st.Status == StatusError {
			r.Failed = p == 1
			break
		}
		r.Items = append(r.Items, FilterExcluded(st.Results, c.exclude)...)
	}

	r.ShowLoadMore = c.canLoadMore()
	return r
}

// Reset forgets the current search string without dropping cached pages
func (c *Controller) Reset() {
	c.cancelPendingExcept(nil)
	c.keyword = ""
	c.page = 1
	c.active = false
}

// Close cancels every request in flight
func (c *Controller) Close() {
	c.cache.Purge()
	c.active = false
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
