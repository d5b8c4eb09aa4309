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

const freesoundSearchJSON = `{
  "results": [
    {
      "id": 12345,
      "name": "haunted dishwasher loop",
      "url": "https://freesound.org/people/spooky/sounds/12345/",
      "description": "my dishwasher started making this sound at 3am",
      "username": "spooky",
      "created": "2026-08-15T03:12:45",
      "license": "https://creativecommons.org/licenses/by/4.0/",
      "duration": 42.7,
      "num_ratings": 9,
      "avg_rating": 4.5,
      "tags": ["Haunted", "Appliance", "Field Recording"]
    },
    {
      "id": 12346,
      "name": "",
      "url": "https://freesound.org/people/spooky/sounds/12346/"
    }
  ]
}`

func TestFreesoundAdapter_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/text/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(freesoundSearchJSON))
	}))
	defer ts.Close()

	adapter := NewFreesoundAdapter("test-key", time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "", 10)
	require.NoError(t, err)

	// nameless result dropped
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "haunted dishwasher loop", item.Title)
	assert.Equal(t, "https://freesound.org/people/spooky/sounds/12345/", item.URL)
	assert.Equal(t, domain.SourceFreesound, item.SourceType)
	assert.Equal(t, "spooky", item.SourceName)
	assert.Equal(t, []string{"haunted", "appliance", "field-recording"}, item.Tags)
	assert.Equal(t, int64(9), item.Signals.Likes)
	assert.Equal(t, 42, item.Signals.DurationSec)
	assert.Equal(t, "12345", item.Metadata.ExternalID)
	assert.Equal(t, "https://creativecommons.org/licenses/by/4.0/", item.Metadata.License)
	assert.Equal(t, time.Date(2026, 8, 15, 3, 12, 45, 0, time.UTC), item.Published)
}

func TestFreesoundAdapter_Fetch_NoAPIKey(t *testing.T) {
	adapter := NewFreesoundAdapter("", time.Second)
	_, err := adapter.Fetch(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestFreesoundAdapter_Fetch_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	adapter := NewFreesoundAdapter("bad-key", time.Second)
	adapter.baseURL = ts.URL

	_, err := adapter.Fetch(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
