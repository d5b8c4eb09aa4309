package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/umputun/oddscope/pkg/domain"
)

// ArchiveAdapter searches the Internet Archive for obscure vintage media
type ArchiveAdapter struct {
	client  *http.Client
	baseURL string
}

const defaultArchiveQuery = `(title:(weird) OR title:(strange) OR title:(bizarre)) AND mediatype:(movies OR audio)`

// NewArchiveAdapter creates an archive.org adapter, no credentials needed
func NewArchiveAdapter(timeout time.Duration) *ArchiveAdapter {
	return &ArchiveAdapter{
		client:  newHTTPClient(timeout),
		baseURL: "https://archive.org",
	}
}

// Name returns the source type
func (a *ArchiveAdapter) Name() domain.SourceType { return domain.SourceArchive }

type archiveSearchResponse struct {
	Response struct {
		Docs []struct {
			Identifier  string   `json:"identifier"`
			Title       string   `json:"title"`
			Description any      `json:"description"` // string or []string
			Creator     any      `json:"creator"`     // string or []string
			Subject     any      `json:"subject"`     // string or []string
			Date        string   `json:"date"`
			Year        any      `json:"year"` // number or string
			Downloads   int      `json:"downloads"`
			Collection  []string `json:"collection"`
		} `json:"docs"`
	} `json:"response"`
}

// Fetch runs the advanced-search endpoint and normalizes the notoriously
// loose archive.org field types
func (a *ArchiveAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if query == "" {
		query = defaultArchiveQuery
	}
	if limit > 100 {
		limit = 100
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fl[]", "identifier,title,description,creator,subject,date,year,downloads,collection")
	params.Set("sort[]", "downloads asc")
	params.Set("rows", strconv.Itoa(limit))
	params.Set("output", "json")

	reqURL := a.baseURL + "/advancedsearch.php?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload archiveSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.RawItem, 0, len(payload.Response.Docs))
	for _, doc := range payload.Response.Docs {
		if doc.Identifier == "" || doc.Title == "" {
			continue
		}
		year := extractYear(doc.Year, doc.Date)
		author := firstString(doc.Creator)
		tags := make([]string, 0, 5)
		for _, s := range allStrings(doc.Subject) {
			if tag := cleanCategory(s); tag != "" {
				tags = append(tags, tag)
			}
			if len(tags) >= 5 {
				break
			}
		}

		published := time.Now()
		if t, err := time.Parse("2006-01-02T15:04:05Z", doc.Date); err == nil {
			published = t
		} else if year > 0 {
			published = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		}

		items = append(items, domain.RawItem{
			Title:      doc.Title,
			URL:        a.baseURL + "/details/" + doc.Identifier,
			SourceType: domain.SourceArchive,
			SourceName: "Internet Archive",
			Summary:    truncate(firstString(doc.Description), 300),
			Author:     author,
			Published:  published,
			Tags:       tags,
			Signals: domain.Signals{
				Views: int64(doc.Downloads),
				Year:  year,
			},
			Metadata: domain.Metadata{
				ExternalID: doc.Identifier,
				Author:     author,
			},
		})
	}
	return items, nil
}

var yearRe = regexp.MustCompile(`\b(1[89]\d\d|20\d\d)\b`)

// extractYear pulls a plausible year out of the year field or date string
func extractYear(year any, date string) int {
	switch v := year.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if m := yearRe.FindString(date); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}

// firstString handles archive fields that may be a string or a list
func firstString(v any) string {
	ss := allStrings(v)
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

func allStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
