package reviews

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/app/paging"
	"github.com/CrestNiraj12/reviewlist/infra/textmetrics"
	"github.com/CrestNiraj12/reviewlist/tui/common"
)

const maxRating = 5

// ThumbFunc returns the rendered image for a row slot, if one has loaded.
type ThumbFunc func(kind ImageKind, index int) (string, bool)

// RenderOptions control how a row is drawn.
type RenderOptions struct {
	Width    int
	Selected bool
	Thumb    ThumbFunc // nil draws placeholders
	Loading  bool      // summary row shows Spinner instead of the count
	Spinner  string
}

// RenderRow draws row into exactly l.Height lines of opts.Width cells. For a
// ReviewRow every element is placed at its rectangle in l; a SummaryRow only
// uses l.Height.
func RenderRow(row paging.Row, l layout.RowLayout, opts RenderOptions) []string {
	switch r := row.(type) {
	case paging.ReviewRow:
		return renderReview(r.Item, l, opts)
	case paging.SummaryRow:
		return renderSummary(r, cells(l.Height), opts)
	default:
		return nil
	}
}

func renderReview(it paging.RowItem, l layout.RowLayout, opts RenderOptions) []string {
	c := newCanvas(opts.Width, cells(l.Height))
	thumb := opts.Thumb
	if thumb == nil {
		thumb = func(ImageKind, int) (string, bool) { return "", false }
	}

	if opts.Selected {
		marker := common.SelectedMarkerStyle.Render("▌")
		c.put(layout.Rect{X: 0, Y: 0, W: 1, H: l.Height}, repeat(marker, cells(l.Height)))
	}

	if img, ok := thumb(ImageAvatar, 0); ok {
		c.put(l.Avatar, strings.Split(img, "\n"))
	} else {
		c.put(l.Avatar, avatarPlaceholder(it.Name.Content, cells(l.Avatar.W), cells(l.Avatar.H)))
	}

	c.put(l.Name, styled(common.AuthorStyle, textmetrics.Wrap(it.Name.Content, cells(l.Name.W))))
	c.put(l.Rating, []string{common.RatingStyle.Render(common.Stars(it.Rating, maxRating))})

	for i, r := range l.Photos {
		if img, ok := thumb(ImagePhoto, i); ok {
			c.put(r, strings.Split(img, "\n"))
			continue
		}
		c.put(r, repeat(common.PhotoPlaceholderStyle.Render(strings.Repeat("░", cells(r.W))), cells(r.H)))
	}

	body := textmetrics.Clip(it.Body.Content, cells(l.Body.W), cells(l.Body.H))
	c.put(l.Body, styled(common.ContentStyle, body))

	if l.ShowMoreVisible {
		c.put(l.ShowMore, []string{common.ShowMoreStyle.Render(layout.ShowMoreLabel)})
	}
	c.put(l.Created, styled(common.TimestampStyle, textmetrics.Wrap(it.Created.Content, cells(l.Created.W))))

	return c.render()
}

func renderSummary(s paging.SummaryRow, height int, opts RenderOptions) []string {
	lines := make([]string, max(height, 1))
	label := common.SummaryStyle.Render(common.Plural(s.Total, "review", "reviews"))
	if opts.Loading {
		label = opts.Spinner + " " + common.StatusBarStyle.Render("Loading reviews…")
	}
	blank := strings.Repeat(" ", max(opts.Width, 0))
	for i := range lines {
		lines[i] = blank
	}
	lines[(len(lines)-1)/2] = lipgloss.PlaceHorizontal(max(opts.Width, 0), lipgloss.Center, label)
	return lines
}

func avatarPlaceholder(name string, w, h int) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	style := common.AvatarPlaceholderStyle.Width(w).Align(lipgloss.Center)
	lines := make([]string, h)
	for i := range lines {
		text := ""
		if i == (h-1)/2 {
			text = common.Initials(name)
		}
		lines[i] = style.Render(text)
	}
	return lines
}

func styled(s lipgloss.Style, lines []string) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = s.Render(ln)
	}
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, max(n, 0))
	for i := range out {
		out[i] = s
	}
	return out
}
