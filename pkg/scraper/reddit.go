package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/oddscope/pkg/domain"
)

// RedditAdapter scrapes hot posts from weird-news subreddits via the public
// JSON listings. No authentication needed for read-only access.
type RedditAdapter struct {
	client     *http.Client
	subreddits []string
	baseURL    string
}

// defaultSubreddits are communities known for absurd real news
var defaultSubreddits = []string{
	"nottheonion",
	"NewsOfTheStupid",
	"offbeat",
	"FloridaMan",
	"AbsurdNews",
	"BrandNewSentence",
	"facepalm",
	"mildlyinteresting",
}

// maxSubredditsPerFetch bounds how many subreddits one fetch call hits
const maxSubredditsPerFetch = 5

// NewRedditAdapter creates a reddit adapter. Empty subreddits uses the built-in set.
func NewRedditAdapter(subreddits []string, timeout time.Duration) *RedditAdapter {
	if len(subreddits) == 0 {
		subreddits = defaultSubreddits
	}
	return &RedditAdapter{
		client:     newHTTPClient(timeout),
		subreddits: subreddits,
		baseURL:    "https://www.reddit.com",
	}
}

// Name returns the source type
func (a *RedditAdapter) Name() domain.SourceType { return domain.SourceReddit }

// redditListing is the subset of the listing payload we care about
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	URL               string  `json:"url"`
	Permalink         string  `json:"permalink"`
	Selftext          string  `json:"selftext"`
	Author            string  `json:"author"`
	CreatedUTC        float64 `json:"created_utc"`
	Score             int     `json:"score"`
	UpvoteRatio       float64 `json:"upvote_ratio"`
	NumComments       int     `json:"num_comments"`
	TotalAwards       int     `json:"total_awards_received"`
	Over18            bool    `json:"over_18"`
	Removed           bool    `json:"removed"`
	RemovedByCategory string  `json:"removed_by_category"`
}

// Fetch retrieves hot posts across the configured subreddits. A query selects
// a single subreddit; empty query walks the default rotation. Failures in one
// subreddit are logged and don't block the others.
func (a *RedditAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	subs := a.subreddits
	if query != "" {
		subs = []string{query}
	}
	if len(subs) > maxSubredditsPerFetch {
		subs = subs[:maxSubredditsPerFetch]
	}

	perSub := limit/len(subs) + 1
	var items []domain.RawItem
	for _, sub := range subs {
		posts, err := a.fetchSubreddit(ctx, sub, perSub)
		if err != nil {
			lgr.Printf("[WARN] reddit fetch failed for r/%s: %v", sub, err)
			continue
		}
		items = append(items, posts...)
		if len(items) >= limit {
			break
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (a *RedditAdapter) fetchSubreddit(ctx context.Context, subreddit string, limit int) ([]domain.RawItem, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", a.baseURL, subreddit, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	items := make([]domain.RawItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if !validPost(post) {
			continue
		}
		items = append(items, a.toRawItem(post, subreddit))
	}
	return items, nil
}

// validPost filters out removed, NSFW and too-short posts
func validPost(post redditPost) bool {
	if post.Removed || post.RemovedByCategory != "" || post.Title == "" {
		return false
	}
	if len(post.Title) < 20 {
		return false
	}
	if post.Over18 {
		return false
	}
	return true
}

func (a *RedditAdapter) toRawItem(post redditPost, subreddit string) domain.RawItem {
	// link posts point at the original article, self posts at the thread
	url := post.URL
	if url == "" || strings.Contains(url, "reddit.com") {
		url = a.baseURL + post.Permalink
	}

	summary := truncate(post.Selftext, 300)
	if summary == "" {
		summary = post.Title
	}

	return domain.RawItem{
		Title:      post.Title,
		URL:        url,
		SourceType: domain.SourceReddit,
		SourceName: "Reddit - r/" + subreddit,
		Summary:    summary,
		Author:     post.Author,
		Published:  time.Unix(int64(post.CreatedUTC), 0),
		Tags:       []string{strings.ToLower(subreddit)},
		Signals: domain.Signals{
			Upvotes:     post.Score,
			UpvoteRatio: post.UpvoteRatio,
			Comments:    post.NumComments,
			Awards:      post.TotalAwards,
		},
		Metadata: domain.Metadata{
			ExternalID: post.ID,
			Author:     post.Author,
		},
	}
}
