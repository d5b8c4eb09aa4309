package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/oddscope/pkg/domain"
)

// TwitterAdapter searches recent tweets for weird content. Without
// credentials it is a no-op returning empty results so the rest of the
// pipeline keeps working.
type TwitterAdapter struct {
	client  *http.Client
	bearer  string
	baseURL string
}

const defaultTwitterQuery = `("florida man" OR "you can't make this up" OR "brand new sentence") -is:retweet lang:en`

// NewTwitterAdapter creates a twitter adapter, bearer may be empty
func NewTwitterAdapter(bearer string, timeout time.Duration) *TwitterAdapter {
	return &TwitterAdapter{
		client:  newHTTPClient(timeout),
		bearer:  bearer,
		baseURL: "https://api.twitter.com",
	}
}

// Name returns the source type
func (a *TwitterAdapter) Name() domain.SourceType { return domain.SourceTwitter }

type twitterSearchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

// Fetch runs a recent-search query. With no bearer token it logs once and
// returns nothing, which is not an error.
func (a *TwitterAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if a.bearer == "" {
		lgr.Printf("[DEBUG] twitter adapter skipped, no credentials")
		return nil, nil
	}
	if query == "" {
		query = defaultTwitterQuery
	}
	if limit < 10 { // API minimum for max_results
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(limit))
	params.Set("tweet.fields", "created_at,public_metrics,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")

	reqURL := a.baseURL + "/2/tweets/search/recent?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.bearer)
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search tweets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload twitterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	usernames := map[string]string{}
	for _, u := range payload.Includes.Users {
		usernames[u.ID] = u.Username
	}

	items := make([]domain.RawItem, 0, len(payload.Data))
	for _, tweet := range payload.Data {
		if len(tweet.Text) < 20 {
			continue
		}
		author := usernames[tweet.AuthorID]
		items = append(items, domain.RawItem{
			Title:      truncate(tweet.Text, 200),
			URL:        fmt.Sprintf("https://twitter.com/%s/status/%s", author, tweet.ID),
			SourceType: domain.SourceTwitter,
			SourceName: "@" + author,
			Summary:    tweet.Text,
			Author:     author,
			Published:  tweet.CreatedAt,
			Tags:       []string{"twitter"},
			Signals: domain.Signals{
				Likes:    int64(tweet.PublicMetrics.LikeCount),
				Comments: tweet.PublicMetrics.ReplyCount,
			},
			Metadata: domain.Metadata{
				ExternalID: tweet.ID,
				Author:     author,
			},
		})
	}
	return items, nil
}
