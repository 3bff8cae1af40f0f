// Package reviews is the Bubble Tea view of the paginated review list.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/app"
	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/app/paging"
	"github.com/CrestNiraj12/reviewlist/domain"
	"github.com/CrestNiraj12/reviewlist/infra/images"
	"github.com/CrestNiraj12/reviewlist/tui/common"
)

// --- Messages ---

// StateChangedMsg delivers a list snapshot published by the controller.
type StateChangedMsg struct {
	State paging.ListState
}

// PageResultMsg is sent when a page fetch finishes, successfully or not.
type PageResultMsg struct {
	Result paging.PageResult
}

// --- Model ---

// Deps holds what the list view needs. Plain struct, not a DI container.
type Deps struct {
	Controller   *paging.Controller
	Images       app.ImageSource // nil disables image loading
	Engine       *layout.Engine
	ScreensAhead float64
	Log          zerolog.Logger
}

type thumb struct {
	ansi   string
	failed bool
}

// session holds the parts of the model that must be shared between copies
// of the value-typed Model.
type session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	states      chan paging.ListState
	unsubscribe func()
	tasks       *imageTasks
	thumbs      map[thumbKey]thumb
	closed      bool
}

// placedRow is a row with its layout and vertical position in the list.
type placedRow struct {
	index  int
	row    paging.Row
	layout layout.RowLayout
	top    int
	height int
}

// Model holds the state for the review list view.
type Model struct {
	ctrl         *paging.Controller
	engine       *layout.Engine
	screensAhead float64
	log          zerolog.Logger
	keys         common.KeyMap
	spinner      spinner.Model
	sess         *session

	state   paging.ListState
	rows    []placedRow
	content int // total height of all rows in lines
	width   int
	height  int
	cursor  int // index of the selected review
	offset  int // first visible line
	err     error
	notice  string
}

const (
	headerLines = 1
	footerLines = 1
)

// New creates the list view and subscribes it to the controller.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = common.SpinnerStyle

	screensAhead := deps.ScreensAhead
	if screensAhead <= 0 {
		screensAhead = paging.DefaultScreensAhead
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		ctx:    ctx,
		cancel: cancel,
		states: make(chan paging.ListState, 1),
		tasks:  newImageTasks(ctx, deps.Images),
		thumbs: make(map[thumbKey]thumb),
	}
	sess.unsubscribe = deps.Controller.Subscribe(sess.publish)

	m := Model{
		ctrl:         deps.Controller,
		engine:       deps.Engine,
		screensAhead: screensAhead,
		log:          deps.Log,
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		sess:         sess,
		state:        deps.Controller.State(),
	}
	m.relayout()
	return m
}

// publish keeps only the newest snapshot. It runs on the update loop, which
// is the only writer.
func (s *session) publish(st paging.ListState) {
	select {
	case s.states <- st:
		return
	default:
	}
	select {
	case <-s.states:
	default:
	}
	select {
	case s.states <- st:
	default:
	}
}

// Init starts the first page fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.requestPage(),
		m.waitForState(),
		m.spinner.Tick,
	)
}

// Close cancels outstanding fetches, image tasks and the subscription.
func (m Model) Close() {
	if m.sess.closed {
		return
	}
	m.sess.closed = true
	m.sess.cancel()
	m.sess.tasks.closeAll()
	m.sess.unsubscribe()
	m.ctrl.Close()
}

// State returns the last snapshot the view rendered.
func (m Model) State() paging.ListState { return m.state }

func (m Model) waitForState() tea.Cmd {
	ch, ctx := m.sess.states, m.sess.ctx
	return func() tea.Msg {
		select {
		case st := <-ch:
			return StateChangedMsg{State: st}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) requestPage() tea.Cmd {
	fetch := m.ctrl.RequestNextPage(m.sess.ctx)
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return PageResultMsg{Result: fetch()}
	}
}

// maybeLoad requests the next page when the list is about to settle at
// target close enough to the end.
func (m Model) maybeLoad(target int) tea.Cmd {
	if !paging.ShouldTriggerLoad(float64(m.viewportHeight()), float64(m.content), float64(target), m.screensAhead) {
		return nil
	}
	return m.requestPage()
}

func (m Model) viewportHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m Model) maxOffset() int {
	return max(m.content-m.viewportHeight(), 0)
}

// relayout recomputes every row layout for the current width.
func (m *Model) relayout() {
	rows := m.state.Rows()
	m.rows = make([]placedRow, 0, len(rows))
	top := 0
	for i, r := range rows {
		l := r.Layout(m.engine, float64(m.width))
		h := cells(l.Height)
		m.rows = append(m.rows, placedRow{index: i, row: r, layout: l, top: top, height: h})
		top += h
	}
	m.content = top
	m.cursor = max(0, min(m.cursor, len(m.state.Items)-1))
	m.offset = max(0, min(m.offset, m.maxOffset()))
}

// syncImages gives each visible review its own slot and starts fetches for
// images not seen yet. Slots past the last visible review are released and
// thumbnails of rows that left the viewport are dropped.
func (m Model) syncImages() tea.Cmd {
	if m.sess.closed {
		return nil
	}
	need := func(k thumbKey) bool {
		_, seen := m.sess.thumbs[k]
		return !seen
	}

	var cmds []tea.Cmd
	visible := make(map[uuid.UUID]struct{})
	slot := 0
	for _, pr := range m.visibleRows() {
		rr, ok := pr.row.(paging.ReviewRow)
		if !ok {
			continue
		}
		visible[rr.Item.ID] = struct{}{}
		cmds = append(cmds, m.sess.tasks.assign(slot, rr.Item, need)...)
		slot++
	}
	m.sess.tasks.release(slot)
	for k := range m.sess.thumbs {
		if _, ok := visible[k.row]; !ok {
			delete(m.sess.thumbs, k)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) visibleRows() []placedRow {
	lo, hi := m.offset, m.offset+m.viewportHeight()
	var out []placedRow
	for _, pr := range m.rows {
		if pr.top+pr.height <= lo {
			continue
		}
		if pr.top >= hi {
			break
		}
		out = append(out, pr)
	}
	return out
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		m.ensureCursorVisible()
		return m, m.syncImages()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StateChangedMsg:
		m.state = msg.State
		m.relayout()
		return m, tea.Batch(m.syncImages(), m.waitForState())

	case PageResultMsg:
		if err := msg.Result.Err; err != nil && !errors.Is(err, context.Canceled) {
			m.err = err
		} else {
			m.err = nil
		}
		m.ctrl.Apply(msg.Result)
		return m, nil

	case ImageLoadedMsg:
		return m.handleImageLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleImageLoaded(msg ImageLoadedMsg) Model {
	if !m.sess.tasks.accept(msg) {
		return m
	}
	k := thumbKey{row: msg.Row, kind: msg.Kind, index: msg.Index}
	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			m.log.Debug().Err(msg.Err).Int("slot", msg.Slot).Msg("image unavailable, keeping placeholder")
			m.sess.thumbs[k] = thumb{failed: true}
		}
		return m
	}
	g := m.engine.Geometry()
	size := g.Avatar
	if msg.Kind == ImagePhoto {
		size = g.Photo
	}
	m.sess.thumbs[k] = thumb{ansi: images.Thumbnail(msg.Image, cells(size.W), cells(size.H))}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m.scrollTo(m.cursorTarget(), false)

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
			return m.scrollTo(m.cursorTarget(), false)
		}
		return m.scrollTo(m.offset+1, false)

	case key.Matches(msg, m.keys.PageDown):
		return m.scrollTo(m.offset+m.viewportHeight(), true)

	case key.Matches(msg, m.keys.PageUp):
		return m.scrollTo(m.offset-m.viewportHeight(), true)

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m.scrollTo(0, false)

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.state.Items)-1, 0)
		return m.scrollTo(m.maxOffset(), false)

	case key.Matches(msg, m.keys.Expand):
		if rr, ok := m.selectedRow(); ok && rr.layout.ShowMoreVisible {
			m.ctrl.Expand(rr.row.(paging.ReviewRow).Item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.notice = ""
		for k, t := range m.sess.thumbs {
			if t.failed {
				delete(m.sess.thumbs, k)
			}
		}
		m.sess.tasks.closeAll()
		cmd := m.requestPage()
		if cmd == nil && !m.state.IsLoading && m.state.Exhausted() {
			m.notice = "All reviews loaded."
		}
		m.relayout()
		return m, tea.Batch(cmd, m.syncImages())
	}
	return m, nil
}

// scrollTo moves the viewport to target. The load trigger is checked against
// the offset the list will settle at, before the move is applied.
func (m Model) scrollTo(target int, moveCursor bool) (Model, tea.Cmd) {
	target = max(0, min(target, m.maxOffset()))
	load := m.maybeLoad(target)
	m.offset = target
	if moveCursor {
		m.cursor = m.firstVisibleReview()
	}
	return m, tea.Batch(load, m.syncImages())
}

// cursorTarget returns the smallest scroll change that shows the selected
// review; a review taller than the viewport is aligned to its top.
func (m Model) cursorTarget() int {
	pr, ok := m.selectedRow()
	if !ok {
		return m.offset
	}
	view := m.viewportHeight()
	switch {
	case pr.top < m.offset || pr.height > view:
		return pr.top
	case pr.top+pr.height > m.offset+view:
		return pr.top + pr.height - view
	default:
		return m.offset
	}
}

func (m *Model) ensureCursorVisible() {
	m.offset = max(0, min(m.cursorTarget(), m.maxOffset()))
}

func (m Model) selectedRow() (placedRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Items) || m.cursor >= len(m.rows) {
		return placedRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) firstVisibleReview() int {
	for i, pr := range m.rows {
		if _, ok := pr.row.(paging.ReviewRow); !ok {
			break
		}
		if pr.top+pr.height > m.offset {
			return i
		}
	}
	return max(len(m.state.Items)-1, 0)
}

// View renders the header, the visible part of the list and the footer.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	view := m.viewportHeight()
	lines := make([]string, 0, view)
	for _, pr := range m.visibleRows() {
		rendered := RenderRow(pr.row, pr.layout, m.renderOptions(pr))
		for i, ln := range rendered {
			y := pr.top + i
			if y < m.offset || y >= m.offset+view {
				continue
			}
			lines = append(lines, ln)
		}
	}
	for len(lines) < view {
		lines = append(lines, "")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderOptions(pr placedRow) RenderOptions {
	opts := RenderOptions{
		Width:   m.width,
		Loading: m.state.IsLoading,
		Spinner: m.spinner.View(),
	}
	if rr, ok := pr.row.(paging.ReviewRow); ok {
		id := rr.Item.ID
		opts.Selected = pr.index == m.cursor
		opts.Thumb = func(kind ImageKind, index int) (string, bool) {
			t, ok := m.sess.thumbs[thumbKey{row: id, kind: kind, index: index}]
			if !ok || t.failed {
				return "", false
			}
			return t.ansi, true
		}
	}
	return opts
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("Reviews")
	if m.state.TotalCount > 0 {
		title += common.StatusBarStyle.Render(fmt.Sprintf("%d of %d loaded", m.state.Loaded(), m.state.TotalCount))
	}
	return title
}

func (m Model) renderFooter() string {
	switch {
	case m.err != nil:
		return common.ErrorStyle.Render(failureText(m.err) + " · press r to retry")
	case m.state.IsLoading:
		return m.spinner.View() + common.StatusBarStyle.Render(" Loading reviews…")
	case m.notice != "":
		return common.StatusBarStyle.Render(m.notice)
	}
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return common.StatusBarStyle.Render(strings.Join(parts, " · "))
}

func failureText(err error) string {
	switch domain.KindOf(err) {
	case domain.KindDecodeFailure:
		return "Couldn't read reviews"
	case domain.KindSourceUnavailable:
		return "Reviews unavailable"
	default:
		return "Loading reviews failed"
	}
}
