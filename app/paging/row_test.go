package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/domain"
	"github.com/CrestNiraj12/reviewlist/infra/textmetrics"
)

func TestRowLayout(t *testing.T) {
	e := layout.NewEngine(textmetrics.Cells{}, layout.TerminalGeometry())
	st := ListState{
		Items: []RowItem{
			NewRowItem(domain.Review{FirstName: "Anna", Rating: 4, Text: "short", Created: "1 May"}),
		},
		TotalCount: 1,
	}

	rows := st.Rows()
	assert.Len(t, rows, 2)

	review := rows[0].(ReviewRow)
	assert.Equal(t, e.Compute(review.Content(), 60), rows[0].Layout(e, 60))

	summary := rows[1].Layout(e, 60)
	assert.InDelta(t, layout.SummaryHeight(e.Geometry()), summary.Height, 0)
	assert.False(t, summary.ShowMoreVisible)
}
