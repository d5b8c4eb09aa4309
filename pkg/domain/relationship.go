package domain

import "time"

// RelationType classifies a relationship between two items
type RelationType string

// relationship types, ordered by decreasing strength requirements
const (
	RelationSimilar  RelationType = "similar"
	RelationFollowUp RelationType = "follow_up"
	RelationRelated  RelationType = "related"
)

// Relationship is a typed, weighted edge between two persisted items.
// Undirected in meaning; stored with SourceID < TargetID to avoid duplicate pairs.
type Relationship struct {
	ID        int64        `json:"id"`
	SourceID  int64        `json:"source_id"`
	TargetID  int64        `json:"target_id"`
	Type      RelationType `json:"type"`
	Strength  float64      `json:"strength"` // 0-1, monotonic in similarity
	CreatedAt time.Time    `json:"created_at"`
}

// BatchResult reports the outcome of one ingestion run. Total counts unique
// items after dedup, and Succeeded+Failed always equals Total.
type BatchResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
