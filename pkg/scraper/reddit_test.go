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

const redditListingJSON = `{
  "data": {
    "children": [
      {"data": {
        "id": "abc1",
        "title": "florida man arrested for teaching squirrels to juggle",
        "url": "https://example.com/squirrels",
        "permalink": "/r/FloridaMan/comments/abc1/",
        "selftext": "",
        "author": "oddfan",
        "created_utc": 1700000000,
        "score": 1234,
        "upvote_ratio": 0.95,
        "num_comments": 87,
        "total_awards_received": 3
      }},
      {"data": {
        "id": "abc2",
        "title": "short title",
        "url": "https://example.com/short",
        "permalink": "/r/FloridaMan/comments/abc2/",
        "created_utc": 1700000100
      }},
      {"data": {
        "id": "abc3",
        "title": "city council votes to rename itself after local raccoon",
        "url": "https://example.com/raccoon",
        "permalink": "/r/FloridaMan/comments/abc3/",
        "created_utc": 1700000200,
        "over_18": true
      }},
      {"data": {
        "id": "abc4",
        "title": "self post about a very strange vending machine downtown",
        "url": "",
        "permalink": "/r/FloridaMan/comments/abc4/",
        "selftext": "it only accepts expired coupons and dispenses single socks",
        "created_utc": 1700000300,
        "score": 55
      }}
    ]
  }
}`

func TestRedditAdapter_Fetch(t *testing.T) {
	var requestedPaths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Oddscope")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(redditListingJSON))
	}))
	defer ts.Close()

	adapter := NewRedditAdapter([]string{"FloridaMan"}, time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"/r/FloridaMan/hot.json"}, requestedPaths)

	// short title and NSFW posts filtered out
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "florida man arrested for teaching squirrels to juggle", first.Title)
	assert.Equal(t, "https://example.com/squirrels", first.URL)
	assert.Equal(t, domain.SourceReddit, first.SourceType)
	assert.Equal(t, "Reddit - r/FloridaMan", first.SourceName)
	assert.Equal(t, []string{"floridaman"}, first.Tags)
	assert.Equal(t, 1234, first.Signals.Upvotes)
	assert.InDelta(t, 0.95, first.Signals.UpvoteRatio, 0.0001)
	assert.Equal(t, 87, first.Signals.Comments)
	assert.Equal(t, 3, first.Signals.Awards)
	assert.Equal(t, "abc1", first.Metadata.ExternalID)
	assert.Equal(t, time.Unix(1700000000, 0), first.Published)

	// self post falls back to the thread permalink and selftext summary
	second := items[1]
	assert.Equal(t, ts.URL+"/r/FloridaMan/comments/abc4/", second.URL)
	assert.Contains(t, second.Summary, "expired coupons")
}

func TestRedditAdapter_Fetch_QuerySelectsSubreddit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/nottheonion/hot.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer ts.Close()

	adapter := NewRedditAdapter(nil, time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "nottheonion", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedditAdapter_Fetch_FailedSubredditSkipped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/r/broken/hot.json" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(redditListingJSON))
	}))
	defer ts.Close()

	adapter := NewRedditAdapter([]string{"broken", "FloridaMan"}, time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "", 10)
	require.NoError(t, err, "one bad subreddit must not fail the whole fetch")
	assert.Len(t, items, 2)
}

func TestRedditAdapter_Fetch_LimitApplied(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(redditListingJSON))
	}))
	defer ts.Close()

	adapter := NewRedditAdapter([]string{"FloridaMan"}, time.Second)
	adapter.baseURL = ts.URL

	items, err := adapter.Fetch(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestValidPost(t *testing.T) {
	tests := []struct {
		name string
		post redditPost
		want bool
	}{
		{"valid", redditPost{Title: "a perfectly reasonable weird headline"}, true},
		{"empty title", redditPost{}, false},
		{"too short", redditPost{Title: "short"}, false},
		{"removed", redditPost{Title: "a perfectly reasonable weird headline", Removed: true}, false},
		{"removed by category", redditPost{Title: "a perfectly reasonable weird headline", RemovedByCategory: "moderator"}, false},
		{"nsfw", redditPost{Title: "a perfectly reasonable weird headline", Over18: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validPost(tt.post))
		})
	}
}
