// Package dashboard generates the weekly actionable summary shown on
// the seller dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/enrich"
	"sellerpilot/internal/llm"
	"sellerpilot/internal/prompt"
)

const systemPrompt = "You are an expert e-commerce analyst for sellers in India."

const summaryTemplate = `Your task is to provide a short, actionable weekly summary based on the context.

Analyze the following context:
{context}

Your instructions:
- Be concise, practical, and encouraging.
- Base your advice strictly on product inventory, local weather, and upcoming festivals.
- Do not invent data. If context is limited, give general business guidance.

{format_instructions}`

var summaryFields = []prompt.Field{
	{Name: "focus", Type: "string", Required: true, Description: "A concise, actionable focus for the week. Should be 1-2 sentences."},
	{Name: "opportunity", Type: "string", Required: true, Description: "A key product or category opportunity to capitalize on. 1-2 sentences."},
	{Name: "caution", Type: "string", Required: true, Description: "A key product or category to be cautious about. 1-2 sentences."},
	{Name: "action", Type: "string", Required: true, Description: "A single, clear, actionable next step for the seller. 1 sentence."},
}

// fallback is returned whenever generation fails for any reason; the
// dashboard always renders a complete summary.
var fallback = insight.Summary{
	Focus:       "Maintain steady stock and monitor demand patterns across top categories.",
	Opportunity: "Capitalize on trending and weather-relevant products this week.",
	Caution:     "Avoid overstocking slow-moving or seasonal items nearing demand decline.",
	Action:      "Review key listings and adjust pricing or bundles to improve visibility.",
}

// Config holds dashboard generation configuration.
type Config struct {
	Model         string
	Temperature   float32
	RetryCooldown time.Duration
}

// Service generates dashboard summaries.
type Service struct {
	llm    llm.Provider
	enrich enrich.Provider
	cfg    Config
	sleep  func(time.Duration)
}

// NewService creates a dashboard service.
func NewService(provider llm.Provider, enricher enrich.Provider, cfg Config) *Service {
	if cfg.RetryCooldown <= 0 {
		cfg.RetryCooldown = 90 * time.Second
	}
	return &Service{llm: provider, enrich: enricher, cfg: cfg, sleep: time.Sleep}
}

// Summary builds the weekly summary from inventory and local context.
// A rate-limited completion is retried once after the cooldown; any
// unrecovered failure yields the static fallback summary.
func (s *Service) Summary(ctx context.Context, products []insight.Product, pincode string) insight.Summary {
	richContext := s.enrich.RichContext(ctx, products, pincode)

	user, err := prompt.Render(summaryTemplate, map[string]string{
		"context":             richContext,
		"format_instructions": prompt.FormatInstructions(summaryFields),
	})
	if err != nil {
		log.Printf("dashboard: prompt render failed: %v", err)
		return fallback
	}

	summary, err := s.generate(ctx, user)
	if err == nil {
		return summary
	}
	log.Printf("dashboard: summary generation failed: %v", err)

	if llm.IsRateLimit(err) {
		log.Printf("dashboard: rate limit hit, retrying after %s cooldown", s.cfg.RetryCooldown)
		s.sleep(s.cfg.RetryCooldown)
		if summary, err = s.generate(ctx, user); err == nil {
			return summary
		}
		log.Printf("dashboard: retry failed: %v", err)
	}
	return fallback
}

func (s *Service) generate(ctx context.Context, user string) (insight.Summary, error) {
	raw, err := s.llm.CompleteStructured(ctx, llm.Options{Model: s.cfg.Model, Temperature: s.cfg.Temperature}, systemPrompt, user)
	if err != nil {
		return insight.Summary{}, err
	}
	var summary insight.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return insight.Summary{}, err
	}
	if summary.Focus == "" || summary.Opportunity == "" || summary.Caution == "" || summary.Action == "" {
		return insight.Summary{}, errIncomplete
	}
	return summary, nil
}

var errIncomplete = errors.New("dashboard: summary is missing required fields")
