package layout

// ShowMoreLabel is the text of the control revealing truncated body text.
const ShowMoreLabel = "Show more…"

// RowContent is everything the engine needs to know about a review row.
type RowContent struct {
	Name       Text
	RatingSize Size // zero uses the geometry's rating size
	PhotoCount int
	Body       Text
	MaxLines   int // 0 (or less) means unlimited
	Created    Text
}

// RowLayout is the computed geometry of one review row.
type RowLayout struct {
	Avatar   Rect
	Name     Rect
	Rating   Rect
	Photos   []Rect
	Body     Rect
	ShowMore Rect // zero when ShowMoreVisible is false
	Created  Rect

	ShowMoreVisible bool
	Height          float64
}

// Engine computes review row layouts. It is safe for concurrent use as long
// as its TextMetrics is.
type Engine struct {
	metrics  TextMetrics
	geometry Geometry
	showMore Size
}

// NewEngine creates an engine. The show-more control is measured once here.
func NewEngine(metrics TextMetrics, g Geometry) *Engine {
	return &Engine{
		metrics:  metrics,
		geometry: g,
		showMore: metrics.Measure(ShowMoreText(), 0, 0),
	}
}

// ShowMoreText returns the styled show-more label.
func ShowMoreText() Text {
	return Text{Content: ShowMoreLabel, Style: StyleShowMore}
}

// Geometry returns the engine's geometry.
func (e *Engine) Geometry() Geometry { return e.geometry }

// ColumnWidth returns the width of the content column for maxWidth.
func (e *Engine) ColumnWidth(maxWidth float64) float64 {
	g := e.geometry
	return max(maxWidth-g.Avatar.W-g.AvatarToName-g.Insets.Right, 0)
}

// Compute lays out a review row top to bottom and returns its rectangles and
// height. It is deterministic and has no side effects.
func (e *Engine) Compute(c RowContent, maxWidth float64) RowLayout {
	g := e.geometry
	width := e.ColumnWidth(maxWidth)

	var out RowLayout

	out.Avatar = Rect{X: g.Insets.Left, Y: g.Insets.Top, W: g.Avatar.W, H: g.Avatar.H}

	colX := out.Avatar.MaxX() + g.AvatarToName
	name := e.metrics.Measure(c.Name, width, 0)
	out.Name = Rect{X: colX, Y: g.Insets.Top, W: name.W, H: name.H}
	y := out.Name.MaxY() + g.NameToRating

	rating := c.RatingSize
	if rating == (Size{}) {
		rating = g.Rating
	}
	out.Rating = Rect{X: colX, Y: y, W: rating.W, H: rating.H}
	y = out.Rating.MaxY()

	if c.PhotoCount > 0 {
		y += g.RatingToPhotos
		out.Photos = make([]Rect, 0, c.PhotoCount)
		x := colX
		for range c.PhotoCount {
			out.Photos = append(out.Photos, Rect{X: x, Y: y, W: g.Photo.W, H: g.Photo.H})
			x += g.Photo.W + g.PhotoSpacing
		}
		y += g.Photo.H + g.PhotosToText
	} else {
		y += g.RatingToText
	}

	if !e.metrics.IsEmpty(c.Body) {
		var body Size
		if c.MaxLines <= 0 {
			body = e.metrics.Measure(c.Body, width, 0)
		} else {
			capped := e.metrics.LineHeight(c.Body) * float64(c.MaxLines)
			natural := e.metrics.Measure(c.Body, width, 0)
			out.ShowMoreVisible = natural.H > capped
			body = e.metrics.Measure(c.Body, width, capped)
		}
		out.Body = Rect{X: colX, Y: y, W: body.W, H: body.H}
		y = out.Body.MaxY() + g.TextToNext
	}

	if out.ShowMoreVisible {
		out.ShowMore = Rect{X: colX, Y: y, W: e.showMore.W, H: e.showMore.H}
		y = out.ShowMore.MaxY() + g.ShowMoreToCreated
	}

	created := e.metrics.Measure(c.Created, width, 0)
	out.Created = Rect{X: colX, Y: y, W: created.W, H: created.H}

	out.Height = out.Created.MaxY() + g.Insets.Bottom
	return out
}

// SummaryHeight returns the fixed height of the trailing summary row.
func SummaryHeight(g Geometry) float64 {
	return g.SummaryHeight
}
