package score

import (
	"math"
	"strings"

	"github.com/umputun/oddscope/pkg/domain"
)

// oddity score bounds
const (
	Min     = 1
	Max     = 100
	Default = 50 // midpoint, used when nothing is known about an item
)

// MaxTags limits how many tags an item can carry
const MaxTags = 8

// baseScores is the per-source starting point before signal adjustments
var baseScores = map[domain.SourceType]int{
	domain.SourceReddit:    60,
	domain.SourceRSS:       55,
	domain.SourceTwitter:   50,
	domain.SourceYouTube:   50,
	domain.SourceFreesound: 50,
	domain.SourceArchive:   60,
}

// sourceNameBases overrides the base score when the item's origin matches a
// known community or publication. Checked in order, first match wins.
var sourceNameBases = []struct {
	substr string
	base   int
}{
	{"floridaman", 85},
	{"newsofthestupid", 80},
	{"absurdnews", 80},
	{"nottheonion", 75},
	{"wtf", 70},
	{"offbeat", 65},
	{"facepalm", 60},
	{"clickhole", 90},
	{"onion", 85},
	{"babylon bee", 80},
	{"reductress", 75},
	{"cracked", 70},
	{"odd", 70},
	{"weird", 70},
}

// weirdKeywords add a fixed increment per match anywhere in the item text
var weirdKeywords = []string{
	"bizarre", "weird", "absurd", "ridiculous", "hilarious", "wtf",
	"florida man", "florida", "cursed", "liminal", "unsettling",
	"disturbing", "eerie", "haunting", "strange", "glitch", "corrupted",
	"experimental", "noise", "feedback", "distorted", "forbidden",
	"lost", "mystery",
}

// vintageKeywords add a smaller increment, mostly relevant for archival sources
var vintageKeywords = []string{
	"vintage", "analog", "vhs", "tape", "phonograph", "gramophone",
	"broadcast", "found footage", "field recording", "lo-fi", "8bit",
	"retro", "antique",
}

// Heuristic computes the initial oddity score for a raw item. Pure and
// deterministic: the same input always produces the same score.
func Heuristic(raw domain.RawItem) int {
	score := float64(baseFor(raw))

	text := itemText(raw)
	for _, kw := range weirdKeywords {
		if strings.Contains(text, kw) {
			score += 5
		}
	}
	for _, kw := range vintageKeywords {
		if strings.Contains(text, kw) {
			score += 3
		}
	}

	score += signalAdjustment(raw.Signals)

	return Clamp(int(math.Round(score)))
}

// baseFor picks the starting score from the origin name if recognized,
// falling back to the source type table and finally the global default.
func baseFor(raw domain.RawItem) int {
	name := strings.ToLower(raw.SourceName)
	for _, sb := range sourceNameBases {
		if strings.Contains(name, sb.substr) {
			return sb.base
		}
	}
	if base, ok := baseScores[raw.SourceType]; ok {
		return base
	}
	return Default
}

// signalAdjustment converts engagement signals into a bounded score delta.
// Each signal contributes only when the source provided it.
func signalAdjustment(s domain.Signals) float64 {
	var adj float64

	// strong community approval pushes up, heavy downvoting pushes down
	if s.UpvoteRatio > 0.9 {
		adj += 10
	} else if s.UpvoteRatio > 0 && s.UpvoteRatio < 0.6 {
		adj -= 10
	}

	// comment activity, capped
	adj += math.Min(float64(s.Comments)/10, 10)

	if s.Awards > 0 {
		adj += math.Min(float64(s.Awards)*2, 15)
	}

	// obscurity: barely-watched videos tend to be the weird ones
	if s.Views > 0 {
		if s.Views < 1000 {
			adj += 10
		} else if s.Views < 10000 {
			adj += 5
		}
	}

	if s.Dislikes > s.Likes && s.Dislikes > 0 {
		adj += 10
	}

	// duration outliers: very short or very long recordings
	if s.DurationSec > 0 && (s.DurationSec < 5 || s.DurationSec > 300) {
		adj += 5
	}

	// old recordings are inherently odd
	if s.Year > 0 {
		if s.Year < 1960 {
			adj += 10
		} else if s.Year < 1980 {
			adj += 5
		}
	}

	return adj
}

// tagLexicon maps a tag to the keywords that trigger it
var tagLexicon = []struct {
	tag      string
	keywords []string
}{
	{"florida-man", []string{"florida"}},
	{"politics", []string{"politics", "government", "senate", "election"}},
	{"tech", []string{"tech", "technology", "software", "ai "}},
	{"science", []string{"science", "research", "study"}},
	{"bizarre", []string{"bizarre", "weird", "strange"}},
	{"wtf", []string{"wtf", "what the"}},
	{"absurd", []string{"absurd", "ridiculous"}},
	{"viral", []string{"viral", "trending"}},
	{"humor", []string{"funny", "hilarious"}},
	{"cursed", []string{"cursed", "forbidden", "haunted"}},
	{"glitch", []string{"glitch", "corrupted", "broken"}},
	{"experimental", []string{"experimental", "avant-garde", "abstract"}},
	{"ambient", []string{"ambient", "atmospheric", "drone"}},
	{"vintage", []string{"vintage", "retro", "analog", "vhs"}},
	{"eerie", []string{"eerie", "spooky", "creepy"}},
	{"field-recording", []string{"field recording", "found sound"}},
	{"noise", []string{"noise", "static", "white noise"}},
}

// Tags derives the tag set for a raw item: the adapter-provided tags plus
// lexicon matches from the item text, lowercased, deduplicated and capped.
func Tags(raw domain.RawItem) []string {
	text := itemText(raw)

	seen := make(map[string]bool)
	tags := make([]string, 0, MaxTags)

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] || len(tags) >= MaxTags {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, t := range raw.Tags {
		add(t)
	}
	for _, entry := range tagLexicon {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				add(entry.tag)
				break
			}
		}
	}

	return tags
}

// MergeTags combines existing tags with AI-suggested ones, keeping order,
// dropping duplicates and enforcing the cap
func MergeTags(existing, suggested []string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, MaxTags)
	for _, t := range append(append([]string{}, existing...), suggested...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] || len(merged) >= MaxTags {
			continue
		}
		seen[t] = true
		merged = append(merged, t)
	}
	return merged
}

// Clamp forces a score into the valid range
func Clamp(score int) int {
	if score < Min {
		return Min
	}
	if score > Max {
		return Max
	}
	return score
}

func itemText(raw domain.RawItem) string {
	return strings.ToLower(raw.Title + " " + raw.Summary + " " + strings.Join(raw.Tags, " "))
}
