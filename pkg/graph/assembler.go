// Package graph turns stored items and relationships into a renderable
// node/edge structure with visual attributes precomputed server-side.
package graph

import (
	"fmt"
	"strings"

	"github.com/umputun/oddscope/pkg/domain"
)

// Node is a single item positioned for rendering
type Node struct {
	ID         int64             `json:"id"`
	Label      string            `json:"label"`
	Title      string            `json:"title"`
	Tooltip    string            `json:"tooltip"`
	URL        string            `json:"url"`
	SourceType domain.SourceType `json:"source_type"`
	Score      int               `json:"score"`
	Size       float64           `json:"size"`
	Color      string            `json:"color"`
	Tags       []string          `json:"tags,omitempty"`
}

// Edge connects two nodes with a typed, weighted link
type Edge struct {
	Source int64               `json:"source"`
	Target int64               `json:"target"`
	Type   domain.RelationType `json:"type"`
	Width  float64             `json:"width"`
	Color  string              `json:"color"`
}

// Graph is the complete structure returned to clients
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

const (
	maxLabelLen = 30
	minNodeSize = 15
	maxNodeSize = 30
)

// source base colors, rendered as rgba with score-driven intensity
var sourceColors = map[domain.SourceType][3]int{
	domain.SourceReddit:    {0xFF, 0x45, 0x00},
	domain.SourceRSS:       {0xFF, 0x66, 0x00},
	domain.SourceTwitter:   {0x1D, 0xA1, 0xF2},
	domain.SourceYouTube:   {0xCC, 0x00, 0x00},
	domain.SourceFreesound: {0x00, 0xBC, 0xD4},
	domain.SourceArchive:   {0x99, 0x00, 0xCC},
}

var defaultColor = [3]int{0x66, 0x66, 0x66}

var edgeColors = map[domain.RelationType]string{
	domain.RelationSimilar:  "#10B981",
	domain.RelationRelated:  "#06B6D4",
	domain.RelationFollowUp: "#8B5CF6",
}

// Assemble builds a graph from items and their relationships. Edges
// referencing items missing from the node set are dropped.
func Assemble(items []domain.Item, rels []domain.Relationship) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(items)),
		Edges: make([]Edge, 0, len(rels)),
	}

	present := make(map[int64]struct{}, len(items))
	for _, item := range items {
		present[item.ID] = struct{}{}
		g.Nodes = append(g.Nodes, Node{
			ID:         item.ID,
			Label:      truncateLabel(item.Title),
			Title:      item.Title,
			Tooltip:    tooltip(item),
			URL:        item.CanonicalURL,
			SourceType: item.SourceType,
			Score:      item.Score,
			Size:       nodeSize(item.Score),
			Color:      nodeColor(item.SourceType, item.Score),
			Tags:       item.Tags,
		})
	}

	for _, rel := range rels {
		if _, ok := present[rel.SourceID]; !ok {
			continue
		}
		if _, ok := present[rel.TargetID]; !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Source: rel.SourceID,
			Target: rel.TargetID,
			Type:   rel.Type,
			Width:  edgeWidth(rel.Strength),
			Color:  edgeColor(rel.Type),
		})
	}
	return g
}

// tooltip builds the hover text shown on a node
func tooltip(item domain.Item) string {
	s := fmt.Sprintf("%s\nOddity: %d/100", item.Title, item.Score)
	if len(item.Tags) > 0 {
		s += "\nTags: " + strings.Join(item.Tags, ", ")
	}
	if item.SourceName != "" {
		s += "\nSource: " + item.SourceName
	}
	return s
}

func truncateLabel(title string) string {
	runes := []rune(title)
	if len(runes) <= maxLabelLen {
		return title
	}
	return string(runes[:maxLabelLen]) + "..."
}

// nodeSize scales with the score, clamped so low scorers stay visible
func nodeSize(score int) float64 {
	size := float64(score) * 0.3
	if size < minNodeSize {
		return minNodeSize
	}
	if size > maxNodeSize {
		return maxNodeSize
	}
	return size
}

// nodeColor renders the source base color at score-driven intensity
func nodeColor(source domain.SourceType, score int) string {
	rgb, ok := sourceColors[source]
	if !ok {
		rgb = defaultColor
	}
	intensity := float64(score) / 100
	if intensity < 0.6 {
		intensity = 0.6
	}
	if intensity > 1 {
		intensity = 1
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", rgb[0], rgb[1], rgb[2], intensity)
}

func edgeWidth(strength float64) float64 {
	width := strength * 3
	if width < 1 {
		return 1
	}
	return width
}

func edgeColor(t domain.RelationType) string {
	if c, ok := edgeColors[t]; ok {
		return c
	}
	return edgeColors[domain.RelationRelated]
}
