package reviews

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/app/paging"
	"github.com/CrestNiraj12/reviewlist/domain"
	"github.com/CrestNiraj12/reviewlist/infra/textmetrics"
)

var longText = strings.Repeat("lorem ipsum dolor sit amet ", 20)

type stubSource struct {
	mu    sync.Mutex
	total int
	fails int // number of leading calls that fail
	calls int
}

func (s *stubSource) Fetch(_ context.Context, offset, limit int) (domain.ReviewsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.fails {
		return domain.ReviewsPage{}, &domain.DecodeError{Cause: errors.New("unexpected token")}
	}
	var items []domain.Review
	for i := offset; i < min(offset+limit, s.total); i++ {
		r := domain.Review{
			FirstName: "Reviewer",
			LastName:  fmt.Sprint(i),
			Rating:    i%5 + 1,
			Text:      "short review",
			Created:   "1 June 2024",
			AvatarURL: fmt.Sprintf("https://img.test/avatar/%d.png", i),
		}
		if i%2 == 0 {
			r.Text = longText
		}
		if i%3 == 1 {
			r.PhotoURLs = []string{fmt.Sprintf("https://img.test/photo/%d.png", i)}
		}
		items = append(items, r)
	}
	return domain.ReviewsPage{Items: items, Count: s.total}, nil
}

type stubImages struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (s *stubImages) FetchImage(context.Context, string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail {
		return nil, errors.New("404")
	}
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	return img, nil
}

func newTestModel(t *testing.T, src *stubSource, imgs *stubImages) Model {
	t.Helper()
	deps := Deps{
		Controller: paging.New(src),
		Engine:     layout.NewEngine(textmetrics.Cells{}, layout.TerminalGeometry()),
		Log:        zerolog.Nop(),
	}
	if imgs != nil {
		deps.Images = imgs
	}
	m := New(deps)
	t.Cleanup(m.Close)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// settle delivers every pending state snapshot to the model.
func settle(m Model) Model {
	for {
		select {
		case st := <-m.sess.states:
			m, _ = m.Update(StateChangedMsg{State: st})
		default:
			return m
		}
	}
}

// loadNextPage requests, fetches and applies one page synchronously.
func loadNextPage(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.requestPage()
	if cmd == nil {
		t.Fatalf("expected a page request")
	}
	m = settle(m)
	msg, ok := cmd().(PageResultMsg)
	if !ok {
		t.Fatalf("expected PageResultMsg")
	}
	m, _ = m.Update(msg)
	return settle(m)
}

// runCmds executes cmd and any batched commands, returning their messages.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// ctxImages fails with the context error once the caller's context is done.
type ctxImages struct{}

func (ctxImages) FetchImage(ctx context.Context, _ string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}
