package pipeline

import (
	"math"
	"strings"

	"github.com/umputun/oddscope/pkg/config"
	"github.com/umputun/oddscope/pkg/domain"
)

// Builder computes pairwise relationships between stored items. Strength
// combines shared tags, same-source affinity and title word overlap, and
// the relation type follows from the strength and whether the pair shares
// a source.
type Builder struct {
	tagWeight         float64
	sourceBonus       float64
	titleWordWeight   float64
	minStrength       float64
	similarThreshold  float64
	followUpThreshold float64
	maxRelationships  int
}

// NewBuilder creates a relationship builder from pipeline tunables
func NewBuilder(cfg config.PipelineConfig) *Builder {
	return &Builder{
		tagWeight:         cfg.TagWeight,
		sourceBonus:       cfg.SourceBonus,
		titleWordWeight:   cfg.TitleWordWeight,
		minStrength:       cfg.MinStrength,
		similarThreshold:  cfg.SimilarThreshold,
		followUpThreshold: cfg.FollowUpThreshold,
		maxRelationships:  cfg.MaxRelationships,
	}
}

// Build walks all item pairs once and returns relationships with strength
// at or above the minimum, capped at the configured maximum. Pairs are
// emitted with SourceID < TargetID.
func (b *Builder) Build(items []domain.Item) []domain.Relationship {
	var rels []domain.Relationship
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if len(rels) >= b.maxRelationships {
				return rels
			}
			rel, ok := b.relate(items[i], items[j])
			if !ok {
				continue
			}
			rels = append(rels, rel)
		}
	}
	return rels
}

// relate scores one pair, false means below the persistence threshold
func (b *Builder) relate(a, c domain.Item) (domain.Relationship, bool) {
	strength := b.Strength(a, c)
	if strength < b.minStrength {
		return domain.Relationship{}, false
	}

	sourceID, targetID := a.ID, c.ID
	if sourceID > targetID {
		sourceID, targetID = targetID, sourceID
	}
	return domain.Relationship{
		SourceID: sourceID,
		TargetID: targetID,
		Type:     b.classify(strength, a.SourceName == c.SourceName),
		Strength: strength,
	}, true
}

// Strength computes pair affinity in [0, 1]
func (b *Builder) Strength(a, c domain.Item) float64 {
	strength := float64(sharedTags(a.Tags, c.Tags)) * b.tagWeight
	if a.SourceName != "" && a.SourceName == c.SourceName {
		strength += b.sourceBonus
	}
	strength += float64(sharedTitleWords(a.Title, c.Title)) * b.titleWordWeight
	return math.Min(1, math.Max(0, strength))
}

func (b *Builder) classify(strength float64, sameSource bool) domain.RelationType {
	switch {
	case strength > b.similarThreshold:
		return domain.RelationSimilar
	case sameSource && strength > b.followUpThreshold:
		return domain.RelationFollowUp
	default:
		return domain.RelationRelated
	}
}

func sharedTags(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[strings.ToLower(t)] = struct{}{}
	}
	count := 0
	for _, t := range b {
		if _, ok := set[strings.ToLower(t)]; ok {
			count++
		}
	}
	return count
}

// sharedTitleWords counts distinct words longer than 3 chars present in
// both titles
func sharedTitleWords(a, b string) int {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(a)) {
		if len(w) > 3 {
			set[w] = struct{}{}
		}
	}
	seen := map[string]struct{}{}
	count := 0
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if len(w) <= 3 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}
