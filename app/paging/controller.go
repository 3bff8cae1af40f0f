package paging

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/app"
	"github.com/CrestNiraj12/reviewlist/domain"
)

// Fetch performs one page fetch. It is safe to run off the owner goroutine;
// its result must be handed back to Controller.Apply on the owner.
type Fetch func() PageResult

// PageResult is the outcome of one Fetch.
type PageResult struct {
	Seq    int
	Offset int
	Page   domain.ReviewsPage
	Err    error
}

// Subscriber receives a snapshot of the list after every state change.
type Subscriber func(ListState)

type subscription struct {
	id int
	fn Subscriber
}

// Controller is the pagination state machine. All methods except Subscribe
// must be called from a single owner goroutine (e.g. the Bubble Tea update
// loop). At most one fetch is outstanding at any time.
type Controller struct {
	source app.ReviewSource
	log    zerolog.Logger

	state  ListState
	seq    int
	closed bool

	mu     sync.Mutex
	subs   []subscription
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLimit sets the page size. Non-positive values are ignored.
func WithLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.state.Limit = limit
		}
	}
}

// WithLogger sets the logger used for page and expand events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New creates a controller that loads pages from src.
func New(src app.ReviewSource, opts ...Option) *Controller {
	c := &Controller{
		source: src,
		log:    zerolog.Nop(),
		state:  initialState(DefaultLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the list. The snapshot is not affected by later
// changes.
func (c *Controller) State() ListState {
	return c.state.clone()
}

// Rows returns the current rows: one per review plus the summary row.
func (c *Controller) Rows() []Row {
	return c.State().Rows()
}

// Subscribe registers fn to receive a snapshot after every state change and
// returns a function that removes it.
func (c *Controller) Subscribe(fn Subscriber) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(c.state.clone())
	}
}

// RequestNextPage marks the list as loading and returns the Fetch for the next
// page. It returns nil when a fetch is already in flight, the collection is
// exhausted, or the controller is closed; such triggers are dropped, not queued.
func (c *Controller) RequestNextPage(ctx context.Context) Fetch {
	if c.closed || !c.state.ShouldLoad || c.state.IsLoading {
		return nil
	}
	c.state.IsLoading = true
	c.state.ShouldLoad = false
	c.seq++
	c.notify()

	var (
		src    = c.source
		seq    = c.seq
		offset = c.state.Offset
		limit  = c.state.Limit
	)
	c.log.Debug().Int("offset", offset).Int("limit", limit).Int("seq", seq).Msg("requesting page")
	return func() PageResult {
		page, err := src.Fetch(ctx, offset, limit)
		return PageResult{Seq: seq, Offset: offset, Page: page, Err: err}
	}
}

// Apply folds a fetch result into the list. Results for a closed controller
// or an outdated request are discarded. It reports whether the result was
// taken.
func (c *Controller) Apply(res PageResult) bool {
	if c.closed {
		c.log.Debug().Int("seq", res.Seq).Msg("dropping page result for closed controller")
		return false
	}
	if !c.state.IsLoading || res.Seq != c.seq || res.Offset != c.state.Offset {
		c.log.Debug().Int("seq", res.Seq).Int("current_seq", c.seq).Msg("dropping stale page result")
		return false
	}

	if res.Err != nil {
		c.state.ShouldLoad = true
		c.state.IsLoading = false
		c.log.Warn().
			Err(res.Err).
			Str("kind", domain.KindOf(res.Err)).
			Int("offset", res.Offset).
			Msg("page fetch failed")
		c.notify()
		return true
	}

	items := make([]RowItem, 0, len(res.Page.Items))
	for _, r := range res.Page.Items {
		items = append(items, NewRowItem(r))
	}
	c.state.Items = append(c.state.Items, items...)
	c.state.Offset += c.state.Limit
	c.state.TotalCount = res.Page.Count
	c.state.ShouldLoad = c.state.Offset < c.state.TotalCount
	c.state.IsLoading = false
	c.log.Debug().
		Int("received", len(items)).
		Int("offset", c.state.Offset).
		Int("total", c.state.TotalCount).
		Bool("should_load", c.state.ShouldLoad).
		Msg("page applied")
	c.notify()
	return true
}

// Expand removes the line limit of the item with the given id. Unknown ids
// and already expanded items are ignored. It reports whether anything changed.
func (c *Controller) Expand(id uuid.UUID) bool {
	if c.closed {
		return false
	}
	for i := range c.state.Items {
		it := &c.state.Items[i]
		if it.ID != id {
			continue
		}
		if it.MaxLines == 0 {
			return false
		}
		it.MaxLines = 0
		c.log.Debug().Str("id", id.String()).Msg("expanded review")
		c.notify()
		return true
	}
	c.log.Debug().Str("id", id.String()).Msg("expand for unknown review ignored")
	return false
}

// Close tears the controller down. Results arriving later are discarded and
// no further notifications are sent.
func (c *Controller) Close() {
	c.closed = true
	c.mu.Lock()
	c.subs = nil
	c.mu.Unlock()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }
