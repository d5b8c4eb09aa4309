package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/oddscope/pkg/domain"
)

// YouTubeAdapter searches for strange videos via the Data API v3.
// A search call gets the candidates and a videos call fills in
// statistics and duration.
type YouTubeAdapter struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

const defaultYouTubeQuery = "weird obscure found footage"

// NewYouTubeAdapter creates a youtube adapter, apiKey is required for fetches
func NewYouTubeAdapter(apiKey string, timeout time.Duration) *YouTubeAdapter {
	return &YouTubeAdapter{
		client:  newHTTPClient(timeout),
		apiKey:  apiKey,
		baseURL: "https://www.googleapis.com/youtube/v3",
	}
}

// Name returns the source type
func (a *YouTubeAdapter) Name() domain.SourceType { return domain.SourceYouTube }

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			PublishedAt  time.Time `json:"publishedAt"`
			Tags         []string  `json:"tags"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			DislikeCount string `json:"dislikeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Fetch searches for videos and hydrates them with stats. Empty query falls
// back to the built-in weirdness query.
func (a *YouTubeAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("youtube api key not configured")
	}
	if query == "" {
		query = defaultYouTubeQuery
	}
	if limit > 50 {
		limit = 50
	}

	ids, err := a.search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return a.videos(ctx, ids)
}

func (a *YouTubeAdapter) search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("order", "relevance")
	params.Set("key", a.apiKey)

	var payload youtubeSearchResponse
	if err := a.get(ctx, a.baseURL+"/search?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (a *YouTubeAdapter) videos(ctx context.Context, ids []string) ([]domain.RawItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", a.apiKey)

	var payload youtubeVideosResponse
	if err := a.get(ctx, a.baseURL+"/videos?"+params.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	items := make([]domain.RawItem, 0, len(payload.Items))
	for _, v := range payload.Items {
		if v.Snippet.Title == "" {
			continue
		}
		tags := make([]string, 0, 3)
		for _, t := range v.Snippet.Tags {
			if tag := cleanCategory(t); tag != "" {
				tags = append(tags, tag)
			}
			if len(tags) >= 3 {
				break
			}
		}
		items = append(items, domain.RawItem{
			Title:      v.Snippet.Title,
			URL:        "https://www.youtube.com/watch?v=" + v.ID,
			SourceType: domain.SourceYouTube,
			SourceName: v.Snippet.ChannelTitle,
			Summary:    truncate(v.Snippet.Description, 300),
			Author:     v.Snippet.ChannelTitle,
			Published:  v.Snippet.PublishedAt,
			Tags:       tags,
			Signals: domain.Signals{
				Views:       int64(atoiSafe(v.Statistics.ViewCount)),
				Likes:       int64(atoiSafe(v.Statistics.LikeCount)),
				Dislikes:    int64(atoiSafe(v.Statistics.DislikeCount)),
				DurationSec: parseISODuration(v.ContentDetails.Duration),
			},
			Metadata: domain.Metadata{
				ExternalID: v.ID,
				Author:     v.Snippet.ChannelTitle,
			},
		})
	}
	return items, nil
}

func (a *YouTubeAdapter) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO 8601 duration like PT1H2M3S to seconds
func parseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return atoiSafe(m[1])*3600 + atoiSafe(m[2])*60 + atoiSafe(m[3])
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
