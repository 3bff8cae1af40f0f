// Package paging owns the loaded review list and drives incremental page
// fetches through an app.ReviewSource.
package paging

import (
	"slices"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/domain"
)

// DefaultMaxLines is the number of body lines shown before "show more".
const DefaultMaxLines = 3

// RowItem is the presentation record of one review.
type RowItem struct {
	ID        uuid.UUID
	Name      layout.Text
	Body      layout.Text
	Created   layout.Text
	Rating    int
	AvatarURL string
	PhotoURLs []string
	MaxLines  int // 0 means unlimited
}

// NewRowItem maps a review to a fresh row item with its own identifier.
func NewRowItem(r domain.Review) RowItem {
	return RowItem{
		ID:        uuid.New(),
		Name:      layout.Text{Content: r.FullName(), Style: layout.StyleUsername},
		Body:      layout.Text{Content: r.Text, Style: layout.StyleBody},
		Created:   layout.Text{Content: r.Created, Style: layout.StyleCreated},
		Rating:    r.Rating,
		AvatarURL: r.AvatarURL,
		PhotoURLs: slices.Clone(r.PhotoURLs),
		MaxLines:  DefaultMaxLines,
	}
}

// Expanded reports whether the body is shown without a line limit.
func (it RowItem) Expanded() bool { return it.MaxLines == 0 }

// Content describes the item to the layout engine.
func (it RowItem) Content() layout.RowContent {
	return layout.RowContent{
		Name:       it.Name,
		PhotoCount: len(it.PhotoURLs),
		Body:       it.Body,
		MaxLines:   it.MaxLines,
		Created:    it.Created,
	}
}

func (it RowItem) clone() RowItem {
	it.PhotoURLs = slices.Clone(it.PhotoURLs)
	return it
}
