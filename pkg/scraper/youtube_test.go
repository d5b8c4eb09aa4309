package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/oddscope/pkg/domain"
)

const youtubeSearchJSON = `{"items": [{"id": {"videoId": "vid1"}}, {"id": {"videoId": "vid2"}}]}`

const youtubeVideosJSON = `{
  "items": [
    {
      "id": "vid1",
      "snippet": {
        "title": "man plays accordion for confused pelicans",
        "description": "found this tape at an estate sale",
        "channelTitle": "Obscure Archives",
        "publishedAt": "2026-08-01T10:00:00Z",
        "tags": ["Found Footage", "Accordion", "Birds", "Extra Tag"]
      },
      "contentDetails": {"duration": "PT1M30S"},
      "statistics": {"viewCount": "742", "likeCount": "50", "dislikeCount": "3"}
    },
    {
      "id": "vid2",
      "snippet": {"title": ""},
      "contentDetails": {"duration": "PT10S"},
      "statistics": {}
    }
  ]
}`

func TestYouTubeAdapter_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "video", r.URL.Query().Get("type"))
			assert.NotEmpty(t, r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(youtubeSearchJSON))
		case "/videos":
			assert.Equal(t, "vid1,vid2", r.URL.Query().Get("id"))
			_, _ = w.Write([]byte(youtubeVideosJSON))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	adapter := NewYouTubeAdapter("test-key", time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "", 10)
	require.NoError(t, err)

	// titleless video dropped
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "man plays accordion for confused pelicans", item.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", item.URL)
	assert.Equal(t, domain.SourceYouTube, item.SourceType)
	assert.Equal(t, "Obscure Archives", item.SourceName)
	assert.Equal(t, []string{"found-footage", "accordion", "birds"}, item.Tags, "tags capped at 3")
	assert.Equal(t, int64(742), item.Signals.Views)
	assert.Equal(t, int64(50), item.Signals.Likes)
	assert.Equal(t, int64(3), item.Signals.Dislikes)
	assert.Equal(t, 90, item.Signals.DurationSec)
	assert.Equal(t, "vid1", item.Metadata.ExternalID)
}

func TestYouTubeAdapter_Fetch_NoAPIKey(t *testing.T) {
	adapter := NewYouTubeAdapter("", time.Second)
	_, err := adapter.Fetch(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestYouTubeAdapter_Fetch_EmptySearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path, "videos call must be skipped with no candidates")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer ts.Close()

	adapter := NewYouTubeAdapter("test-key", time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "rarest of queries", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT1H2M3S", 3723},
		{"PT1M30S", 90},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
		{"P1DT1H", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseISODuration(tt.in))
		})
	}
}
