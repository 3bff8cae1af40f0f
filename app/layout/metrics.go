package layout

// TextStyle identifies how a text blob is styled. Metrics may use it to pick
// a font or line height; renderers use it to pick colors.
type TextStyle int

const (
	StyleBody TextStyle = iota
	StyleUsername
	StyleCreated
	StyleShowMore
	StyleTotal
)

// Text is an opaque styled text handle.
type Text struct {
	Content string
	Style   TextStyle
}

// TextMetrics measures styled text. Real text shaping is platform-specific.
type TextMetrics interface {
	// Measure returns the rendered size of t wrapped at maxWidth. A maxHeight
	// of zero or less means unbounded; otherwise the height is capped.
	Measure(t Text, maxWidth, maxHeight float64) Size

	// LineHeight returns the height of one line in t's style.
	LineHeight(t Text) float64

	// IsEmpty reports whether t renders nothing.
	IsEmpty(t Text) bool
}
