package domain

import "time"

// SourceType identifies the external source an item was scraped from
type SourceType string

// known source types
const (
	SourceReddit    SourceType = "reddit"
	SourceRSS       SourceType = "rss"
	SourceTwitter   SourceType = "twitter"
	SourceYouTube   SourceType = "youtube"
	SourceFreesound SourceType = "freesound"
	SourceArchive   SourceType = "archive"
)

// Valid reports whether the source type is one of the known values
func (s SourceType) Valid() bool {
	switch s {
	case SourceReddit, SourceRSS, SourceTwitter, SourceYouTube, SourceFreesound, SourceArchive:
		return true
	}
	return false
}

// RawItem represents a normalized candidate item produced by a source adapter,
// before scoring and persistence
type RawItem struct {
	Title      string
	URL        string
	SourceType SourceType
	SourceName string // human-readable origin, e.g. "Reddit - r/FloridaMan" or a feed title
	Summary    string
	Author     string
	Published  time.Time
	Tags       []string
	Signals    Signals
	Metadata   Metadata
}

// Signals holds source-specific engagement numbers used by the heuristic scorer.
// Zero values mean the signal is not available for the source.
type Signals struct {
	Upvotes     int
	UpvoteRatio float64
	Comments    int
	Awards      int
	Views       int64
	Likes       int64
	Dislikes    int64
	DurationSec int
	Year        int
}

// Metadata captures provenance for an item. The pipeline passes it through
// untouched except for the AI enhancement fields it sets itself.
type Metadata struct {
	ExternalID string `json:"external_id,omitempty"`
	Author     string `json:"author,omitempty"`
	License    string `json:"license,omitempty"`

	AIEnhanced bool       `json:"ai_enhanced,omitempty"`
	AIScore    int        `json:"ai_score,omitempty"`
	EnhancedAt *time.Time `json:"enhanced_at,omitempty"`
}

// Item represents a persisted content item
type Item struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	CanonicalURL string     `json:"canonical_url"`
	SourceType   SourceType `json:"source_type"`
	SourceName   string     `json:"source_name"`
	Summary      string     `json:"summary,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Score        int        `json:"score"` // oddity score, 1-100
	Upvotes      int        `json:"upvotes"`
	Downvotes    int        `json:"downvotes"`
	Published    time.Time  `json:"published"`
	Metadata     Metadata   `json:"metadata"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ItemFilter represents filtering criteria for item listings
type ItemFilter struct {
	SourceType SourceType
	MinScore   int
	Tag        string
}
