package app

import (
	"context"
	"image"

	"github.com/CrestNiraj12/reviewlist/domain"
)

// ReviewSource fetches pages of reviews.
// Implemented by infrastructure (fixture file, HTTP API).
type ReviewSource interface {
	// Fetch returns the page starting at offset. Errors match
	// domain.ErrSourceUnavailable or domain.ErrDecodeFailure.
	Fetch(ctx context.Context, offset, limit int) (domain.ReviewsPage, error)
}

// ImageSource loads images by URL. Best-effort: callers show a placeholder on error.
type ImageSource interface {
	FetchImage(ctx context.Context, url string) (image.Image, error)
}
