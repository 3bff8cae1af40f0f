package reviewsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/reviewlist/domain"
)

// maxPageBytes caps the size of a single page payload.
const maxPageBytes = 4 << 20

// HTTPSource fetches pages with GET <endpoint>?offset=N&limit=M.
type HTTPSource struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// NewHTTPSource creates a source for endpoint. A nil client uses
// http.DefaultClient.
func NewHTTPSource(endpoint string, client *http.Client, log zerolog.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{endpoint: endpoint, http: client, log: log}
}

// Fetch implements app.ReviewSource.
func (s *HTTPSource) Fetch(ctx context.Context, offset, limit int) (domain.ReviewsPage, error) {
	data, err := s.get(ctx, offset, limit)
	if err != nil {
		s.log.Warn().Err(err).Int("offset", offset).Msg("fetching reviews failed")
		return domain.ReviewsPage{}, err
	}
	page, err := Decode(data)
	if err != nil {
		s.log.Warn().Err(err).Int("offset", offset).Strs("fields", validationFields(err)).Msg("decoding reviews failed")
		return domain.ReviewsPage{}, err
	}
	return page, nil
}

func (s *HTTPSource) get(ctx context.Context, offset, limit int) ([]byte, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint: %w", domain.ErrSourceUnavailable, err)
	}
	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request to %s: %w", domain.ErrSourceUnavailable, u.Host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s returned %d", domain.ErrSourceUnavailable, u.Path, resp.StatusCode)
	}
	if len(data) > maxPageBytes {
		return nil, &domain.DecodeError{Cause: errors.New("page payload too large")}
	}
	return data, nil
}
