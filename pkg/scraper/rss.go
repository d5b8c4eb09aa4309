package scraper

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/oddscope/pkg/domain"
)

// RSSAdapter scrapes satirical and odd-news RSS/Atom feeds
type RSSAdapter struct {
	client    *http.Client
	feeds     []string
	sanitizer *bluemonday.Policy
}

// defaultFeeds covers satirical outlets and odd-news wires
var defaultFeeds = []string{
	"https://feeds.theonion.com/onion/daily",
	"https://babylonbee.com/feed",
	"https://www.clickhole.com/rss",
	"https://reductress.com/feed/",
	"https://www.upi.com/rss/Odd_News/",
	"https://www.mentalfloss.com/feed",
	"https://www.boredpanda.com/feed/",
	"https://www.cracked.com/feeds/rss.xml",
}

// maxItemAge filters out stale feed entries
const maxItemAge = 30 * 24 * time.Hour

// NewRSSAdapter creates an RSS adapter. Empty feeds uses the built-in set.
func NewRSSAdapter(feeds []string, timeout time.Duration) *RSSAdapter {
	if len(feeds) == 0 {
		feeds = defaultFeeds
	}
	return &RSSAdapter{
		client:    newHTTPClient(timeout),
		feeds:     feeds,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Name returns the source type
func (a *RSSAdapter) Name() domain.SourceType { return domain.SourceRSS }

// Fetch parses all configured feeds and returns up to limit items, newest
// first. A query selects a single feed URL. One broken feed doesn't block
// the others.
func (a *RSSAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	feeds := a.feeds
	if query != "" {
		feeds = []string{query}
	}

	perFeed := limit/len(feeds) + 1
	var items []domain.RawItem
	for _, feedURL := range feeds {
		feedItems, err := a.parseFeed(ctx, feedURL, perFeed)
		if err != nil {
			lgr.Printf("[WARN] rss fetch failed for %s: %v", feedURL, err)
			continue
		}
		items = append(items, feedItems...)
	}

	// newest first
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (a *RSSAdapter) parseFeed(ctx context.Context, feedURL string, limit int) ([]domain.RawItem, error) {
	body, err := a.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = domainOf(feedURL)
	}

	items := make([]domain.RawItem, 0, limit)
	cutoff := time.Now().Add(-maxItemAge)
	for _, item := range feed.Items {
		if len(items) >= limit {
			break
		}
		if item.Title == "" || item.Link == "" || len(item.Title) < 10 {
			continue
		}
		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}
		if published.Before(cutoff) {
			continue
		}

		items = append(items, a.toRawItem(item, sourceName, published))
	}
	return items, nil
}

func (a *RSSAdapter) toRawItem(item *gofeed.Item, sourceName string, published time.Time) domain.RawItem {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	summary = truncate(a.cleanHTML(summary), 300)

	var author string
	if len(item.Authors) > 0 {
		author = item.Authors[0].Name
	}

	tags := make([]string, 0, len(item.Categories))
	for _, cat := range item.Categories {
		if tag := cleanCategory(cat); tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.RawItem{
		Title:      a.cleanHTML(item.Title),
		URL:        item.Link,
		SourceType: domain.SourceRSS,
		SourceName: sourceName,
		Summary:    summary,
		Author:     author,
		Published:  published,
		Tags:       tags,
		Metadata: domain.Metadata{
			ExternalID: item.GUID,
			Author:     author,
		},
	}
}

// cleanHTML strips markup and entities, collapsing whitespace
func (a *RSSAdapter) cleanHTML(s string) string {
	s = a.sanitizer.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanCategory normalizes a feed category into a tag, dropping long ones
func cleanCategory(cat string) string {
	cat = strings.ToLower(strings.TrimSpace(cat))
	cat = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, cat)
	if cat == "" || len(cat) > 20 {
		return ""
	}
	return cat
}

func (a *RSSAdapter) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown source"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
