package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
	"contentpicker/internal/picker"
	"contentpicker/internal/search"
	"contentpicker/internal/ui/input"
	inputtypes "contentpicker/internal/ui/input/types"
	"contentpicker/internal/ui/views"
)

const (
	statusTimeout  = 3 * time.Second
	resolveTimeout = 30 * time.Second

	// lines taken by everything but the result list and the picked rows
	chromeHeight  = 12
	minResultRows = 3
)

// Model is the content picker: a search box feeding an ordered selection
type Model struct {
	bus  eventbus.EventBus
	opts PickerOptions
	post domain.PostContext

	content  []domain.PickedItem
	entities map[string]picker.Entity

	picker   *picker.Picker
	resolver *picker.Resolver
	drag     *picker.DragController
	search   *ContentSearch

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps
	spinner      spinner.Model
	help         help.Model
	keys         keyMap

	width         int
	height        int
	pickedCursor  int
	statusMessage string
	title         string
	inPagerMode   bool

	ctx    context.Context
	cancel context.CancelFunc

	program *tea.Program
}

// NewModel creates a picker over the stored selection in opts.Content
func NewModel(fetcher search.Fetcher, bus eventbus.EventBus, post domain.PostContext, opts PickerOptions) *Model {
	if opts.Mode == "" {
		opts.Mode = domain.ModePost
	}
	if opts.PickedItemPreview == nil {
		opts.PickedItemPreview = DefaultPickedItemPreview
	}

	ctx, cancel := context.WithCancel(context.Background())
	renderer := views.NewRenderer()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = renderer.Styles().StatusLoading

	m := &Model{
		bus:          bus,
		opts:         opts,
		post:         post,
		content:      append([]domain.PickedItem(nil), opts.Content...),
		entities:     make(map[string]picker.Entity),
		picker:       picker.NewPicker(opts.MaxContentItems, bus),
		resolver:     picker.NewResolver(fetcher, opts.RestBases),
		drag:         picker.NewDragController(),
		inputHandler: input.New(),
		renderer:     renderer,
		helpRenderer: NewHelpRenderer(""),
		pager:        NewPagerOps(nil),
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		ctx:          ctx,
		cancel:       cancel,
	}

	m.search = NewContentSearch(fetcher, bus, SearchOptions{
		OnSelectItem:        m.selectSuggestion,
		Placeholder:         opts.Placeholder,
		Label:               opts.Label,
		ContentTypes:        opts.ContentTypes,
		Mode:                opts.Mode,
		PerPage:             opts.PerPage,
		QueryFilter:         opts.QueryFilter,
		ExcludeItems:        m.excludeItems(),
		FetchInitialResults: opts.FetchInitialResults,
		Debounce:            opts.Debounce,
		CacheSize:           opts.CacheSize,
	}, renderer.Suggestions())

	if ti := m.inputHandler.TextInput(); ti != nil {
		ti.Placeholder = opts.Placeholder
	}

	m.picker.SetPickChangeFunction(m.pickChanged)
	m.drag.SetItems(m.content, m.opts.IsOrderable && m.post.IsEditable)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetTitle sets the heading shown above the picker
func (m *Model) SetTitle(title string) {
	m.title = title
	m.helpRenderer = NewHelpRenderer(title)
}

// Content returns the current selection
func (m *Model) Content() []domain.PickedItem {
	return append([]domain.PickedItem(nil), m.content...)
}

// Close cancels outstanding requests
func (m *Model) Close() {
	m.cancel()
	m.search.Close()
}

// Init resolves the stored selection and focuses the search box when
// there is nothing picked yet
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}

	if len(m.content) > 0 {
		cmds = append(cmds, m.resolveEntities(m.Content()))
	}
	if cmd := m.autoFocusSearch(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.SetVisibleRows(m.resultRows())
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case search.ResultMsg:
		m.search.Update(msg)
		return m, nil

	case debounceMsg:
		return m, m.search.handleDebounce(msg)

	case spinner.TickMsg:
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case entitiesResolvedMsg:
		return m, m.handleResolved(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.what, msg.err)
			return m, m.setStatus(fmt.Sprintf("Could not open %s", msg.what))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	// cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			m.search.Move(a.Direction)
			return nil
		}
		m.movePickedCursor(a.Direction)

	case inputtypes.ChangeModeAction:
		switch {
		case a.Mode == inputtypes.ModeSearch && !m.search.Focused():
			return m.search.Focus()
		case a.Mode != inputtypes.ModeSearch && m.search.Focused():
			m.search.Blur()
		}

	case inputtypes.UpdateTextAction:
		return m.search.SetText(a.Text)

	case inputtypes.CancelTextAction:
		m.search.Blur()

	case inputtypes.SubmitTextAction:
		cmd, selected := m.search.Submit()
		if !selected {
			return cmd
		}
		m.search.Blur()
		return tea.Batch(m.inputHandler.ChangeMode(inputtypes.ModeNormal), m.autoFocusSearch())

	case inputtypes.RemoveItemAction:
		if !m.post.IsEditable {
			return nil
		}
		if i := m.indexOf(a.UUID); i >= 0 {
			m.picker.Remove(m.content, m.content[i])
			return m.autoFocusSearch()
		}

	case inputtypes.MoveItemAction:
		if !m.canReorder() {
			return nil
		}
		to := clamp(m.pickedCursor+a.Delta, 0, len(m.content)-1)
		if to != m.pickedCursor {
			m.picker.Reorder(m.content, m.pickedCursor, to)
			m.pickedCursor = to
		}

	case inputtypes.StartDragAction:
		if !m.post.IsEditable || !m.drag.Start(a.UUID) {
			return m.inputHandler.ChangeMode(inputtypes.ModeNormal)
		}

	case inputtypes.DragMoveAction:
		m.drag.MoveBy(a.Delta)

	case inputtypes.DropAction:
		if from, to, ok := m.drag.End(); ok {
			m.picker.Reorder(m.content, from, to)
			m.pickedCursor = to
		}

	case inputtypes.CancelDragAction:
		m.drag.Cancel()

	case inputtypes.PreviewAction:
		if i := m.indexOf(a.UUID); i >= 0 {
			return m.showInPager("preview", m.opts.PickedItemPreview(m.previewItem(m.content[i])))
		}

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// selectSuggestion appends a picked result to the selection
func (m *Model) selectSuggestion(s domain.Suggestion) {
	if !m.post.IsEditable {
		return
	}
	m.picker.Add(m.content, s)
}

// pickChanged receives every new selection from the picker
func (m *Model) pickChanged(next []domain.PickedItem) {
	m.content = next
	m.search.SetExclude(m.excludeItems())
	m.drag.SetItems(m.content, m.opts.IsOrderable && m.post.IsEditable)
	m.search.SetVisibleRows(m.resultRows())

	if m.pickedCursor >= len(m.content) {
		m.pickedCursor = len(m.content) - 1
	}
	if m.pickedCursor < 0 {
		m.pickedCursor = 0
	}

	if m.opts.OnPickChange != nil {
		m.opts.OnPickChange(m.Content())
	}
}

// excludeItems returns the ids hidden from search results
func (m *Model) excludeItems() []domain.Excludable {
	var out []domain.Excludable
	if m.opts.UniqueContentItems {
		out = append(out, domain.ExcludablesFromPicked(m.content)...)
	}
	if m.opts.ExcludeCurrentPost && m.post.PostID > 0 {
		out = append(out, domain.Excludable{ID: m.post.PostID})
	}
	return out
}

// resultRows returns how many results fit, each taking a title and a URL line
func (m *Model) resultRows() int {
	if m.height <= 0 {
		return 0
	}
	return max((m.height-chromeHeight-len(m.content))/2, minResultRows)
}

// searchAvailable reports whether the search box is shown
func (m *Model) searchAvailable() bool {
	return m.post.IsEditable && !m.picker.IsFull(m.content)
}

func (m *Model) canReorder() bool {
	return m.post.IsEditable && picker.Enabled(len(m.content), m.opts.IsOrderable)
}

// autoFocusSearch moves focus to the search box when the selection is empty
func (m *Model) autoFocusSearch() tea.Cmd {
	if len(m.content) > 0 || !m.searchAvailable() || m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
		return nil
	}
	return tea.Batch(m.inputHandler.ChangeMode(inputtypes.ModeSearch), m.search.Focus())
}

func (m *Model) inputContext() *input.ModelContext {
	uuids := make([]string, len(m.content))
	for i, it := range m.content {
		uuids[i] = it.UUID
	}
	return &input.ModelContext{
		Search:     !m.picker.IsFull(m.content),
		Editable:   m.post.IsEditable,
		Orderable:  m.opts.IsOrderable,
		Picked:     uuids,
		Cursor:     m.pickedCursor,
		NumResults: m.search.RowCount(),
	}
}

func (m *Model) movePickedCursor(direction string) {
	if len(m.content) == 0 {
		return
	}
	switch direction {
	case "up":
		m.pickedCursor--
	case "down":
		m.pickedCursor++
	case "home", "pageup":
		m.pickedCursor = 0
	case "end", "pagedown":
		m.pickedCursor = len(m.content) - 1
	}
	m.pickedCursor = clamp(m.pickedCursor, 0, len(m.content)-1)
}

func (m *Model) indexOf(uuid string) int {
	for i, it := range m.content {
		if it.UUID == uuid {
			return i
		}
	}
	return -1
}

// previewItem overlays the resolved entity on a stored item
func (m *Model) previewItem(item domain.PickedItem) domain.PickedItem {
	if ent, ok := m.entities[item.UUID]; ok {
		if ent.Title != "" {
			item.Title = ent.Title
		}
		if ent.URL != "" {
			item.URL = ent.URL
		}
	}
	return item
}

// resolveEntities fetches the current state of each stored item
func (m *Model) resolveEntities(items []domain.PickedItem) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
		defer cancel()
		res, err := m.resolver.ResolveAll(ctx, items)
		return entitiesResolvedMsg{resolution: res, err: err}
	}
}

func (m *Model) handleResolved(msg entitiesResolvedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("Failed to resolve picked items: %v", msg.err)
		return nil
	}
	for uuid, ent := range msg.resolution.Entities {
		m.entities[uuid] = ent
	}

	var cmds []tea.Cmd
	if len(msg.resolution.Missing) > 0 && m.post.IsEditable {
		before := len(m.content)
		m.picker.RemoveMissing(m.content, msg.resolution.Missing)
		if removed := before - len(m.content); removed > 0 {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Removed %d item(s) that no longer exist", removed)))
		}
		cmds = append(cmds, m.autoFocusSearch())
	}
	if msg.resolution.Failed > 0 {
		cmds = append(cmds, m.setStatus(fmt.Sprintf("Could not refresh %d item(s)", msg.resolution.Failed)))
	}
	return tea.Batch(cmds...)
}

// handleEvent reacts to domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.SelectionSavedEvent:
		return m.setStatus(fmt.Sprintf("Saved %d item(s)", e.Count))
	case domain.QueryFailedEvent:
		log.Printf("Search failed for %s: %v", e.Key, e.Err)
	}
	return nil
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// showInPager returns a command that shows content using the ov pager
func (m *Model) showInPager(what, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{what: what, err: err}
	}
}

// View renders the picker
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	mode := m.inputHandler.CurrentMode()

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.title,
		ShowSearch:    m.searchAvailable(),
		PickedCursor:  m.pickedCursor,
		PickedFocused: mode != inputtypes.ModeSearch,
		ReadOnly:      !m.post.IsEditable,
		Orderable:     m.opts.IsOrderable,
		DragTarget:    m.drag.Target(),
		Remaining:     m.picker.Remaining(m.content),
		StatusMessage: m.statusMessage,
		ModeName:      m.inputHandler.ModeName(),
		HelpModel:     m.help,
		KeyBindings:   m.keys.bindings(mode, m.searchAvailable(), m.post.IsEditable, m.canReorder()),
	}
	if uuid, ok := m.drag.Active(); ok {
		state.DragUUID = uuid
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.SearchInput = ti.View()
	}
	if state.ShowSearch {
		m.search.fill(&state, m.spinner)
	}

	if len(m.content) == 1 {
		state.PickedLabel = m.opts.SinglePickedLabel
	} else {
		state.PickedLabel = m.opts.MultiPickedLabel
	}
	state.Picked = make([]views.PickedRow, len(m.content))
	for i, it := range m.content {
		row := views.PickedRow{Item: it}
		if ent, ok := m.entities[it.UUID]; ok {
			row.Title = ent.Title
			row.URL = ent.URL
		}
		state.Picked[i] = row
	}
	return state
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
