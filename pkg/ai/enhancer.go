package ai

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/oddscope/pkg/config"
	"github.com/umputun/oddscope/pkg/score"
)

// Enhancer refines scraped items using an OpenAI-compatible text endpoint.
// All three operations degrade gracefully: without credentials they return
// their unavailable value immediately, and any request or parse failure is
// logged and absorbed. They never return an error to the caller.
type Enhancer struct {
	client *openai.Client
	config config.AIConfig
}

// NewEnhancer creates an enhancer for the given AI configuration
func NewEnhancer(cfg config.AIConfig) *Enhancer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Enhancer{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Available reports whether the enhancer has credentials to make calls
func (e *Enhancer) Available() bool {
	return e.config.APIKey != ""
}

const systemPrompt = `You are an assistant for a site that aggregates weird, funny and absurd content from around the internet. Answer concisely and exactly in the format each request asks for.`

// Analyze generates a short witty write-up for an item.
// Returns empty string when unavailable or on any failure.
func (e *Enhancer) Analyze(ctx context.Context, title, source string, tags []string) string {
	if !e.Available() {
		return ""
	}

	prompt := fmt.Sprintf(`Write a witty and engaging analysis (2-3 sentences max) for this item: %q from %s with these tags: %s. `+
		`Make it humorous and appealing to someone who enjoys absurd, satirical, or bizarre content. Focus on what makes it funny or interesting.`,
		title, source, strings.Join(tags, ", "))

	text, err := e.complete(ctx, prompt)
	if err != nil {
		lgr.Printf("[WARN] ai analysis failed for %q: %v", title, err)
		return ""
	}
	return strings.TrimSpace(text)
}

// SuggestTags asks the model for 3-5 tags from a fixed vocabulary.
// Returns an empty slice when unavailable or on any failure.
func (e *Enhancer) SuggestTags(ctx context.Context, title, source, summary string) []string {
	if !e.Available() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Suggest 3-5 relevant tags for this item from this list: ")
	sb.WriteString("politics, tech, science, entertainment, sports, business, weird, absurd, florida-man, celebrity, scandal, viral, ")
	sb.WriteString("trending, breaking, satire, humor, bizarre, wtf, cursed, glitch, experimental, ambient, vintage, eerie, noise.\n\n")
	fmt.Fprintf(&sb, "Title: %q\nSource: %q\n", title, source)
	if summary != "" {
		fmt.Fprintf(&sb, "Summary: %q\n", summary)
	}
	sb.WriteString("\nReturn only the tags as a comma-separated list, no explanations.")

	text, err := e.complete(ctx, sb.String())
	if err != nil {
		lgr.Printf("[WARN] ai tag suggestion failed for %q: %v", title, err)
		return nil
	}

	var tags []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ScoreContent rates how odd/funny an item is on the 1-100 scale.
// The second return value is false when no valid score could be obtained.
func (e *Enhancer) ScoreContent(ctx context.Context, title, source, summary string, tags []string) (int, bool) {
	if !e.Available() {
		return 0, false
	}

	var sb strings.Builder
	sb.WriteString("Rate how weird, funny or absurd this item is on a scale of 1-100, where:\n")
	sb.WriteString("1-25 = ordinary content, not particularly odd\n")
	sb.WriteString("26-50 = mildly amusing or ironic\n")
	sb.WriteString("51-75 = pretty funny/absurd/bizarre\n")
	sb.WriteString("76-100 = hilariously absurd, peak internet content\n\n")
	fmt.Fprintf(&sb, "Title: %q\nSource: %q\n", title, source)
	if summary != "" {
		fmt.Fprintf(&sb, "Summary: %q\n", summary)
	}
	if len(tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(tags, ", "))
	}
	sb.WriteString("\nReturn only a single number between 1 and 100, no explanations.")

	text, err := e.complete(ctx, sb.String())
	if err != nil {
		lgr.Printf("[WARN] ai scoring failed for %q: %v", title, err)
		return 0, false
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		lgr.Printf("[WARN] ai score not a number for %q: %q", title, text)
		return 0, false
	}
	n := int(val)
	if n < score.Min || n > score.Max {
		lgr.Printf("[WARN] ai score out of range for %q: %v", title, val)
		return 0, false
	}
	return n, true
}

// complete sends a single-prompt chat completion and returns the response text
func (e *Enhancer) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: float32(e.config.Temperature),
		MaxTokens:   e.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ai")
	}
	return resp.Choices[0].Message.Content, nil
}
