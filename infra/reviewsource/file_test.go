package reviewsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/reviewlist/domain"
)

func TestFixtureSource_Pages(t *testing.T) {
	src := NewFixtureSource()
	ctx := context.Background()

	var got []domain.Review
	for offset := 0; ; offset += 20 {
		page, err := src.Fetch(ctx, offset, 20)
		require.NoError(t, err)
		assert.Equal(t, 45, page.Count)
		got = append(got, page.Items...)
		if offset+20 >= page.Count {
			break
		}
	}
	assert.Len(t, got, 45)

	all, err := src.All()
	require.NoError(t, err)
	assert.Equal(t, all, got)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := src.Fetch(context.Background(), 0, 20)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Equal(t, domain.KindSourceUnavailable, domain.KindOf(err))
}

func TestFileSource_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"first_name":1}]`), 0o600))

	_, err := NewFileSource(path).Fetch(context.Background(), 0, 20)
	require.ErrorIs(t, err, domain.ErrDecodeFailure)
}

func TestFileSource_BadImageURLDoesNotBlockPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	doc := `{"items":[
		{"first_name":"A","rating":1,"text":"a","created":"1 May"},
		{"first_name":"B","rating":2,"text":"b","created":"2 May","photo_urls":["img/1.jpg"]},
		{"first_name":"C","rating":3,"text":"c","created":"3 May","avatar_url":"::"}
	],"count":3}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	src := NewFileSource(path)

	for offset := 0; offset < 3; offset += 2 {
		page, err := src.Fetch(context.Background(), offset, 2)
		require.NoError(t, err, "offset=%d", offset)
		assert.Equal(t, 3, page.Count)
	}
}

func TestFileSource_LatencyHonoursContext(t *testing.T) {
	src := NewFixtureSource(WithLatency(time.Hour, time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := src.Fetch(ctx, 0, 20)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestFileSource_LatencyRange(t *testing.T) {
	src := NewFixtureSource(WithLatency(time.Millisecond, 3*time.Millisecond))

	start := time.Now()
	_, err := src.Fetch(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
