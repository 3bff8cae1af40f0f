package reviewsource

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/domain"
)

//go:embed fixture/reviews.json
var fixtureFS embed.FS

const fixtureName = "fixture/reviews.json"

// FileSource serves pages out of a JSON document holding the whole
// collection. The document is re-read on every fetch.
type FileSource struct {
	name       string
	read       func() ([]byte, error)
	latencyMin time.Duration
	latencyMax time.Duration
	log        zerolog.Logger
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithLatency delays every fetch by a random duration in [lo, hi].
func WithLatency(lo, hi time.Duration) FileOption {
	return func(s *FileSource) {
		s.latencyMin = max(lo, 0)
		s.latencyMax = max(hi, s.latencyMin)
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l zerolog.Logger) FileOption {
	return func(s *FileSource) {
		s.log = l
	}
}

// NewFileSource reads reviews from the file at path.
func NewFileSource(path string, opts ...FileOption) *FileSource {
	return newFileSource(path, func() ([]byte, error) { return os.ReadFile(path) }, opts...)
}

// NewFixtureSource serves the reviews bundled into the binary.
func NewFixtureSource(opts ...FileOption) *FileSource {
	return newFileSource(fixtureName, func() ([]byte, error) { return fixtureFS.ReadFile(fixtureName) }, opts...)
}

func newFileSource(name string, read func() ([]byte, error), opts ...FileOption) *FileSource {
	s := &FileSource{name: name, read: read, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements app.ReviewSource.
func (s *FileSource) Fetch(ctx context.Context, offset, limit int) (domain.ReviewsPage, error) {
	if err := s.wait(ctx); err != nil {
		return domain.ReviewsPage{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	all, err := s.readAll()
	if err != nil {
		s.log.Warn().Err(err).Str("file", s.name).Strs("fields", validationFields(err)).Msg("reading reviews failed")
		return domain.ReviewsPage{}, err
	}
	return Slice(all, offset, limit), nil
}

// All returns every review in the document.
func (s *FileSource) All() ([]domain.Review, error) {
	return s.readAll()
}

func (s *FileSource) readAll() ([]domain.Review, error) {
	data, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", domain.ErrSourceUnavailable, s.name)
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, s.name, err)
	}
	page, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *FileSource) wait(ctx context.Context) error {
	if s.latencyMax <= 0 {
		return ctx.Err()
	}
	d := s.latencyMin
	if spread := s.latencyMax - s.latencyMin; spread > 0 {
		d += rand.N(spread + 1)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
