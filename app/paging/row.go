package paging

import "github.com/CrestNiraj12/reviewlist/app/layout"

// Reuse identifiers group rows by shape.
const (
	ReuseReview  = "review"
	ReuseSummary = "summary"
)

// Row is one renderable list unit. The set of implementations is closed:
// ReviewRow and SummaryRow.
type Row interface {
	ReuseID() string
	// Layout places the row's elements for the given width. Its Height is
	// the row height.
	Layout(e *layout.Engine, width float64) layout.RowLayout
	isRow()
}

// ReviewRow renders a single review.
type ReviewRow struct {
	Item RowItem
}

func (ReviewRow) ReuseID() string { return ReuseReview }
func (ReviewRow) isRow()          {}

// Content describes the row to the layout engine.
func (r ReviewRow) Content() layout.RowContent { return r.Item.Content() }

// Layout computes the review's element rectangles.
func (r ReviewRow) Layout(e *layout.Engine, width float64) layout.RowLayout {
	return e.Compute(r.Content(), width)
}

// SummaryRow is the trailing fixed-height row with the collection size.
type SummaryRow struct {
	Total int
}

func (SummaryRow) ReuseID() string { return ReuseSummary }
func (SummaryRow) isRow()          {}

// Layout returns the fixed summary height; the row has no placed elements.
func (SummaryRow) Layout(e *layout.Engine, _ float64) layout.RowLayout {
	return layout.RowLayout{Height: layout.SummaryHeight(e.Geometry())}
}

// Rows returns one ReviewRow per item followed by the SummaryRow.
func (s ListState) Rows() []Row {
	rows := make([]Row, 0, len(s.Items)+1)
	for _, it := range s.Items {
		rows = append(rows, ReviewRow{Item: it})
	}
	return append(rows, SummaryRow{Total: s.TotalCount})
}
