// Package reviewsource implements app.ReviewSource over a JSON fixture, a
// JSON file on disk, or an HTTP endpoint that speaks the same format.
package reviewsource

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/CrestNiraj12/reviewlist/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// wireReview is one review as it appears in the JSON payload. Only the shape
// of a record is checked here; image URLs are resolved lazily per row.
type wireReview struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
	Rating    int      `json:"rating" validate:"min=0"`
	Text      string   `json:"text"`
	Created   string   `json:"created"`
}

type wirePage struct {
	Items []wireReview `json:"items" validate:"dive"`
	Count *int         `json:"count" validate:"required,min=0"`
}

// Decode parses one page payload. Any syntax or validation problem yields a
// *domain.DecodeError and no partial page.
func Decode(data []byte) (domain.ReviewsPage, error) {
	var page wirePage
	if err := json.Unmarshal(data, &page); err != nil {
		return domain.ReviewsPage{}, &domain.DecodeError{Cause: err}
	}
	if err := validate.Struct(&page); err != nil {
		return domain.ReviewsPage{}, &domain.DecodeError{Cause: err}
	}
	if *page.Count < len(page.Items) {
		return domain.ReviewsPage{}, &domain.DecodeError{
			Cause: fmt.Errorf("count %d is smaller than page size %d", *page.Count, len(page.Items)),
		}
	}

	out := domain.ReviewsPage{
		Items: make([]domain.Review, 0, len(page.Items)),
		Count: *page.Count,
	}
	for _, r := range page.Items {
		out.Items = append(out.Items, domain.Review{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			AvatarURL: r.AvatarURL,
			PhotoURLs: slices.Clone(r.PhotoURLs),
			Rating:    r.Rating,
			Text:      r.Text,
			Created:   r.Created,
		})
	}
	return out, nil
}

// Encode renders a page in the wire format.
func Encode(p domain.ReviewsPage) ([]byte, error) {
	count := p.Count
	page := wirePage{
		Items: make([]wireReview, 0, len(p.Items)),
		Count: &count,
	}
	for _, r := range p.Items {
		page.Items = append(page.Items, wireReview{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			AvatarURL: r.AvatarURL,
			PhotoURLs: r.PhotoURLs,
			Rating:    r.Rating,
			Text:      r.Text,
			Created:   r.Created,
		})
	}
	return json.Marshal(page)
}

// Slice returns the page of all starting at offset. Count is always the size
// of the whole collection; an offset past the end yields no items.
func Slice(all []domain.Review, offset, limit int) domain.ReviewsPage {
	if offset < 0 {
		offset = 0
	}
	start := min(offset, len(all))
	end := len(all)
	if limit > 0 {
		end = min(start+limit, len(all))
	}
	return domain.ReviewsPage{
		Items: slices.Clone(all[start:end]),
		Count: len(all),
	}
}

// validationFields lists the fields that failed validation in err, if any.
func validationFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace())
	}
	return fields
}
