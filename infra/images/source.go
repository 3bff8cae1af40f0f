package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const maxImageBytes = 4 * 1024 * 1024

// ErrNoURL is returned for an empty image URL.
var ErrNoURL = errors.New("image url is empty")

// Source fetches images over HTTP. Results are kept in an injected Cache and
// concurrent requests for the same URL share one download.
type Source struct {
	http  *http.Client
	cache *Cache
	group singleflight.Group
	log   zerolog.Logger
}

// NewSource creates a Source. A nil cache disables caching.
func NewSource(cache *Cache, timeout time.Duration, log zerolog.Logger) *Source {
	return &Source{
		http:  &http.Client{Timeout: timeout},
		cache: cache,
		log:   log,
	}
}

// FetchImage implements app.ImageSource. The download continues for other
// waiters when ctx is cancelled, but this caller returns immediately.
func (s *Source) FetchImage(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoURL
	}
	if s.cache != nil {
		if img, ok := s.cache.Get(url); ok {
			return img, nil
		}
	}

	ch := s.group.DoChan(url, func() (any, error) {
		img, err := s.download(url)
		if err != nil {
			s.log.Debug().Err(err).Str("url", url).Msg("image fetch failed")
			return nil, err
		}
		if s.cache != nil {
			s.cache.Add(url, img)
		}
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

func (s *Source) download(url string) (image.Image, error) {
	resp, err := s.http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
