package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/umputun/oddscope/pkg/domain"
)

// FreesoundAdapter pulls strange audio recordings from freesound.org
type FreesoundAdapter struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

const defaultFreesoundQuery = "weird strange bizarre"

// NewFreesoundAdapter creates a freesound adapter, apiKey is required for fetches
func NewFreesoundAdapter(apiKey string, timeout time.Duration) *FreesoundAdapter {
	return &FreesoundAdapter{
		client:  newHTTPClient(timeout),
		apiKey:  apiKey,
		baseURL: "https://freesound.org/apiv2",
	}
}

// Name returns the source type
func (a *FreesoundAdapter) Name() domain.SourceType { return domain.SourceFreesound }

type freesoundSearchResponse struct {
	Results []struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Username    string   `json:"username"`
		Created     string   `json:"created"`
		License     string   `json:"license"`
		Duration    float64  `json:"duration"`
		NumRatings  int      `json:"num_ratings"`
		AvgRating   float64  `json:"avg_rating"`
		Tags        []string `json:"tags"`
	} `json:"results"`
}

// Fetch runs a text search against the freesound API
func (a *FreesoundAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("freesound api key not configured")
	}
	if query == "" {
		query = defaultFreesoundQuery
	}
	if limit > 150 {
		limit = 150
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page_size", strconv.Itoa(limit))
	params.Set("fields", "id,name,url,description,username,created,license,duration,num_ratings,avg_rating,tags")
	params.Set("token", a.apiKey)

	reqURL := a.baseURL + "/search/text/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search sounds: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload freesoundSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.RawItem, 0, len(payload.Results))
	for _, snd := range payload.Results {
		if snd.Name == "" || snd.URL == "" {
			continue
		}
		published := time.Now()
		if t, err := time.Parse("2006-01-02T15:04:05", snd.Created); err == nil {
			published = t
		}
		tags := make([]string, 0, 5)
		for _, t := range snd.Tags {
			if tag := cleanCategory(t); tag != "" {
				tags = append(tags, tag)
			}
			if len(tags) >= 5 {
				break
			}
		}
		items = append(items, domain.RawItem{
			Title:      snd.Name,
			URL:        snd.URL,
			SourceType: domain.SourceFreesound,
			SourceName: snd.Username,
			Summary:    truncate(snd.Description, 300),
			Author:     snd.Username,
			Published:  published,
			Tags:       tags,
			Signals: domain.Signals{
				Likes:       int64(snd.NumRatings),
				DurationSec: int(snd.Duration),
			},
			Metadata: domain.Metadata{
				ExternalID: strconv.Itoa(snd.ID),
				Author:     snd.Username,
				License:    snd.License,
			},
		})
	}
	return items, nil
}
