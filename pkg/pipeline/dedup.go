package pipeline

import (
	"net/url"
	"strings"

	"github.com/umputun/oddscope/pkg/domain"
)

// CanonicalURL normalizes a URL for duplicate detection: lowercase, no
// fragment, no trailing slash. Unparseable URLs fall back to plain
// lowercasing so they still dedupe against exact copies.
func CanonicalURL(rawURL string) string {
	lowered := strings.ToLower(strings.TrimSpace(rawURL))
	u, err := url.Parse(lowered)
	if err != nil {
		return lowered
	}
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// Dedupe drops items whose canonical URL was already seen, keeping the
// first occurrence. Order is preserved.
func Dedupe(items []domain.RawItem) []domain.RawItem {
	seen := make(map[string]struct{}, len(items))
	result := make([]domain.RawItem, 0, len(items))
	for _, item := range items {
		key := CanonicalURL(item.URL)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}
