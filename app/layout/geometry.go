// Package layout computes the geometry of list rows. It is pure arithmetic
// over a TextMetrics collaborator and has no rendering dependencies.
package layout

// Size is a width/height pair in layout units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle. The zero Rect means "absent".
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// IsZero reports whether r has no area and no origin.
func (r Rect) IsZero() bool { return r == Rect{} }

// Insets are the distances from the row edges to its content.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Geometry holds the fixed sizes and spacings of a review row.
type Geometry struct {
	Insets Insets

	Avatar       Size
	AvatarToName float64 // horizontal
	NameToRating float64

	Rating         Size
	RatingToText   float64 // used when the row has no photos
	RatingToPhotos float64

	Photo        Size
	PhotoSpacing float64 // horizontal, between photos
	PhotosToText float64

	TextToNext        float64 // body text to show-more or created
	ShowMoreToCreated float64

	SummaryHeight float64
}

// DefaultGeometry returns the reference geometry in logical points.
func DefaultGeometry() Geometry {
	return Geometry{
		Insets:            Insets{Top: 9, Left: 12, Bottom: 9, Right: 12},
		Avatar:            Size{W: 36, H: 36},
		AvatarToName:      10,
		NameToRating:      6,
		Rating:            Size{W: 86, H: 16},
		RatingToText:      6,
		RatingToPhotos:    10,
		Photo:             Size{W: 55, H: 66},
		PhotoSpacing:      8,
		PhotosToText:      10,
		TextToNext:        6,
		ShowMoreToCreated: 6,
		SummaryHeight:     44,
	}
}

// TerminalGeometry returns the same flow expressed in terminal cells.
// Photos and the avatar are sized for two-column-per-pixel ANSI thumbnails.
func TerminalGeometry() Geometry {
	return Geometry{
		Insets:            Insets{Top: 1, Left: 1, Bottom: 0, Right: 1},
		Avatar:            Size{W: 4, H: 2},
		AvatarToName:      2,
		NameToRating:      0,
		Rating:            Size{W: 5, H: 1},
		RatingToText:      0,
		RatingToPhotos:    1,
		Photo:             Size{W: 6, H: 3},
		PhotoSpacing:      1,
		PhotosToText:      1,
		TextToNext:        0,
		ShowMoreToCreated: 0,
		SummaryHeight:     3,
	}
}
