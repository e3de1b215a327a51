package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
	"contentpicker/internal/search"
	"contentpicker/internal/ui/logic"
	"contentpicker/internal/ui/views"
)

// debounceMsg fires when typing paused long enough to search
type debounceMsg struct {
	id   int
	text string
}

// ContentSearch is the search box with its result list
type ContentSearch struct {
	opts     SearchOptions
	ctrl     *search.Controller
	renderer *views.SuggestionRenderer
	nav      *logic.Navigator

	focused    bool
	cursor     int
	text       string
	debounceID int
}

// NewContentSearch creates a search component fetching through fetcher
func NewContentSearch(fetcher search.Fetcher, bus eventbus.EventBus, opts SearchOptions, renderer *views.SuggestionRenderer) *ContentSearch {
	opts = opts.withDefaults()
	ctrl := search.NewController(fetcher, bus, search.Options{
		Mode:         opts.Mode,
		ContentTypes: opts.ContentTypes,
		PerPage:      opts.PerPage,
		QueryFilter:  opts.QueryFilter,
		Exclude:      opts.ExcludeItems,
		CacheSize:    opts.CacheSize,
	})
	return &ContentSearch{
		opts:     opts,
		ctrl:     ctrl,
		renderer: renderer,
		nav:      logic.NewNavigator(0),
	}
}

// SetVisibleRows limits how many result rows are drawn at once, 0 for all
func (s *ContentSearch) SetVisibleRows(rows int) {
	s.nav.SetHeight(rows)
}

// Focus activates the search box, issuing the initial search when configured
func (s *ContentSearch) Focus() tea.Cmd {
	s.focused = true
	s.cursor = 0
	s.text = ""
	s.nav.Reset()
	if s.opts.FetchInitialResults {
		return s.ctrl.SetSearchString("", 1)
	}
	return nil
}

// Blur deactivates the search box and clears the search string
func (s *ContentSearch) Blur() {
	s.focused = false
	s.cursor = 0
	s.text = ""
	s.debounceID++
	s.nav.Reset()
	s.ctrl.Reset()
}

// Focused reports whether the search box has focus
func (s *ContentSearch) Focused() bool {
	return s.focused
}

// SetText records a keystroke and schedules the search
func (s *ContentSearch) SetText(text string) tea.Cmd {
	if text == s.text {
		return nil
	}
	s.text = text
	s.cursor = 0
	s.debounceID++

	if s.opts.Debounce <= 0 {
		return s.ctrl.SetSearchString(text, 1)
	}
	id := s.debounceID
	return tea.Tick(s.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, text: text}
	})
}

// handleDebounce starts the search for a settled search string
func (s *ContentSearch) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.id != s.debounceID || !s.focused {
		return nil
	}
	return s.ctrl.SetSearchString(msg.text, 1)
}

// Update integrates fetch results
func (s *ContentSearch) Update(msg tea.Msg) bool {
	changed := s.ctrl.Update(msg)
	if changed {
		s.clampCursor()
	}
	return changed
}

// SetExclude replaces the items hidden from results
func (s *ContentSearch) SetExclude(exclude []domain.Excludable) {
	s.ctrl.SetExclude(exclude)
	s.clampCursor()
}

// Rows returns the selectable suggestions; results without a title are skipped
func (s *ContentSearch) Rows() []domain.Suggestion {
	items := s.ctrl.View().Items
	rows := make([]domain.Suggestion, 0, len(items))
	for _, it := range items {
		if views.Title(it) != "" {
			rows = append(rows, it)
		}
	}
	return rows
}

// RowCount returns the number of cursor positions, including the load more row
func (s *ContentSearch) RowCount() int {
	if !s.ResultsVisible() {
		return 0
	}
	n := len(s.Rows())
	if s.ctrl.View().ShowLoadMore {
		n++
	}
	return n
}

// ResultsVisible reports whether the result list is shown
func (s *ContentSearch) ResultsVisible() bool {
	if !s.focused {
		return false
	}
	r := s.ctrl.View()
	return r.HasSearchString || (s.opts.FetchInitialResults && r.Active)
}

// Move moves the result cursor
func (s *ContentSearch) Move(direction string) {
	n := s.RowCount()
	if n == 0 {
		s.cursor = 0
		return
	}
	switch direction {
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "pageup", "home":
		s.cursor = 0
	case "pagedown", "end":
		s.cursor = n - 1
	}
}

// Submit acts on the row under the cursor: it loads the next page on the
// load more row, otherwise it reports the suggestion through OnSelectItem.
func (s *ContentSearch) Submit() (tea.Cmd, bool) {
	rows := s.Rows()
	if s.cursor == len(rows) && s.ctrl.View().ShowLoadMore {
		return s.ctrl.LoadMore(), false
	}
	if s.cursor < 0 || s.cursor >= len(rows) {
		return nil, false
	}
	if s.opts.OnSelectItem != nil {
		s.opts.OnSelectItem(rows[s.cursor])
	}
	return nil, true
}

// Loading reports whether any page is being fetched
func (s *ContentSearch) Loading() bool {
	r := s.ctrl.View()
	return r.Loading || r.LoadingMore
}

// Close cancels requests in flight
func (s *ContentSearch) Close() {
	s.ctrl.Close()
}

func (s *ContentSearch) clampCursor() {
	n := s.RowCount()
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// fill copies the result list into the view state
func (s *ContentSearch) fill(state *views.ViewState, spin spinner.Model) {
	state.SearchLabel = s.opts.Label
	state.SearchFocused = s.focused
	state.ResultsVisible = s.ResultsVisible()
	if !state.ResultsVisible {
		return
	}

	r := s.ctrl.View()
	rows := s.Rows()
	showType := len(s.opts.ContentTypes) > 1

	s.nav.Update(s.cursor, s.RowCount())
	start, end, above, below := s.nav.Window()
	visible := rows[min(start, len(rows)):min(end, len(rows))]

	state.ResultLines = make([]string, 0, len(visible))
	for i, row := range visible {
		selected := start+i == s.cursor
		if s.opts.RenderItem != nil {
			state.ResultLines = append(state.ResultLines, s.opts.RenderItem(RenderItemProps{
				Item:         row,
				SearchTerm:   r.Keyword,
				ContentTypes: s.opts.ContentTypes,
				IsSelected:   selected,
				RenderType:   s.opts.RenderItemType,
			}))
			continue
		}
		typeLabel := ""
		if showType && row.Type != "" {
			typeLabel = s.opts.RenderItemType(row)
		}
		state.ResultLines = append(state.ResultLines, s.renderer.RenderSuggestion(row, r.Keyword, typeLabel, selected))
	}

	state.MoreAbove = above
	state.MoreBelow = below
	state.ResultCursor = s.cursor - start
	state.Loading = r.Loading
	state.LoadingMore = r.LoadingMore
	state.ShowLoadMore = r.ShowLoadMore && end > len(rows)
	state.Failed = r.Failed
	state.NothingFound = !r.Loading && !r.Failed && len(rows) == 0
	state.Spinner = spin.View()
}
