// Package trends analyzes market trends per city from web search
// results and finds product images for trending features. A failed
// city is reported inline and never aborts the batch.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/jsonx"
	"sellerpilot/internal/llm"
	"sellerpilot/internal/prompt"
	"sellerpilot/internal/search"
)

const analysisTemplate = `You are an expert fashion and lifestyle trend analyst.

Analyze the following search results about {category} trends in {city},
and return logical insights based on local culture, season, and events.

For each trend, you must decide its popularity and an estimated Change (%) value.

Rules:
- High 🔥 means Change between 35% to 70%
- Medium ⚡ means Change between 15% to 35%
- Low ❄️ means Change between 0% to 15%
- The Change value should make sense with reasoning. (E.g., High if it's festival season or influencer-driven, Low if fading or niche.)
- Base your reasoning on real-world logic for that city and category.

Return STRICT JSON in this format:
[
  {
    "city": "{city}",
    "trend": "Trend Name",
    "popularity": "High 🔥 / Medium ⚡ / Low ❄️",
    "change_pct": "45.2%",
    "features": ["Feature 1", "Feature 2"],
    "competitors": ["Competitor 1", "Competitor 2"],
    "local_hotspots": ["Market/Area 1", "Market/Area 2"],
    "tips": ["Tip 1", "Tip 2"]
  }
]

Search Results:
{search_results}`

// Searcher is the web-search capability the analyzer depends on.
type Searcher interface {
	Organic(ctx context.Context, query string) ([]search.OrganicResult, error)
	Images(ctx context.Context, query string) ([]search.ImageResult, error)
}

// Config holds trend analysis configuration.
type Config struct {
	Model       string
	Temperature float32
}

// Service analyzes trends.
type Service struct {
	llm    llm.Provider
	search Searcher
	cfg    Config
	rand   func() float64
}

// NewService creates a trends service. The package-level random
// source backs the fallback percentage; tests swap it via SetRand.
func NewService(provider llm.Provider, searcher Searcher, cfg Config) *Service {
	return &Service{llm: provider, search: searcher, cfg: cfg, rand: rand.Float64}
}

// SetRand replaces the uniform [0,1) source used for fallback
// percentages.
func (s *Service) SetRand(fn func() float64) { s.rand = fn }

// Bucket maps a change percentage to its popularity label and score.
func Bucket(pct float64) (label string, score int) {
	switch {
	case pct >= 35.0:
		return "High 🔥", 85
	case pct >= 15.0:
		return "Medium ⚡", 55
	default:
		return "Low ❄️", 20
	}
}

// Analyze runs one search-plus-completion round per requested city.
// Each city succeeds or fails independently.
func (s *Service) Analyze(ctx context.Context, cities []string, category string) []insight.CityTrends {
	out := make([]insight.CityTrends, 0, len(cities))
	for _, city := range cities {
		records, err := s.analyzeCity(ctx, city, category)
		if err != nil {
			log.Printf("trends: analysis for %s failed: %v", city, err)
			out = append(out, insight.CityTrends{City: city, Err: err})
			continue
		}
		out = append(out, insight.CityTrends{City: city, Records: records})
	}
	return out
}

func (s *Service) analyzeCity(ctx context.Context, city, category string) ([]insight.TrendRecord, error) {
	results, err := s.search.Organic(ctx, fmt.Sprintf("%s trends in %s", category, city))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	var snippets strings.Builder
	for _, r := range results {
		fmt.Fprintf(&snippets, "- %s: %s\n", r.Title, r.Snippet)
	}

	user, err := prompt.Render(analysisTemplate, map[string]string{
		"city":           city,
		"category":       category,
		"search_results": snippets.String(),
	})
	if err != nil {
		return nil, err
	}

	text, err := s.llm.CompleteText(ctx, llm.Options{Model: s.cfg.Model, Temperature: s.cfg.Temperature}, "", user)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	var parsed []rawTrend
	if err := json.Unmarshal([]byte(jsonx.ExtractArray(text)), &parsed); err != nil {
		return nil, fmt.Errorf("parse trends: %w", err)
	}

	records := make([]insight.TrendRecord, 0, len(parsed))
	for _, rt := range parsed {
		records = append(records, s.normalize(rt, city))
	}
	return records, nil
}

// rawTrend tolerates the model's loose output shape; change_pct may be
// a percent string, a bare number, or missing.
type rawTrend struct {
	City          string          `json:"city"`
	Trend         string          `json:"trend"`
	Popularity    string          `json:"popularity"`
	ChangePct     json.RawMessage `json:"change_pct"`
	Features      []string        `json:"features"`
	Competitors   []string        `json:"competitors"`
	LocalHotspots []string        `json:"local_hotspots"`
	Tips          []string        `json:"tips"`
}

var numberRe = regexp.MustCompile(`[-+]?\d+(\.\d+)?`)

// normalize attaches consistent numeric metrics to a parsed trend.
// When the model supplied no extractable percentage, a random value in
// [3.0, 65.0] is generated. The percentage is clamped to [0, 70] and
// label and score always follow the bucket thresholds.
func (s *Service) normalize(rt rawTrend, city string) insight.TrendRecord {
	pct, ok := extractPct(rt.ChangePct)
	if !ok {
		pct = round1(3.0 + s.rand()*62.0)
	}
	pct = clampPct(pct)
	label, score := Bucket(pct)

	rec := insight.TrendRecord{
		City:            rt.City,
		Trend:           rt.Trend,
		Popularity:      label,
		ChangePct:       fmt.Sprintf("%.1f%%", pct),
		PctChange:       pct,
		PopularityScore: score,
		Features:        ensureList(rt.Features),
		Competitors:     ensureList(rt.Competitors),
		LocalHotspots:   ensureList(rt.LocalHotspots),
		Tips:            ensureList(rt.Tips),
	}
	if rec.City == "" {
		rec.City = city
	}
	return rec
}

func extractPct(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	m := numberRe.FindString(string(raw))
	if m == "" {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return round1(pct), true
}

// clampPct keeps a change percentage inside the range the analysis
// prompt asks for; models drift outside it on occasion.
func clampPct(v float64) float64 {
	return math.Min(70.0, math.Max(0.0, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ensureList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// maxFeatureImages caps the image URLs returned per feature lookup.
const maxFeatureImages = 6

// FeatureImages refines the feature term into a shopping query via the
// completion provider, then pulls matching product images from image
// search. Only http(s) URLs survive the filter.
func (s *Service) FeatureImages(ctx context.Context, feature, category string) (insight.FeatureImageResult, error) {
	refined, err := s.llm.CompleteText(ctx, llm.Options{Model: s.cfg.Model, Temperature: 0.5}, "",
		fmt.Sprintf("Refine this term for real e-commerce search: '%s' in context of '%s'. Output only a short query likely to find trending or best-selling items on Amazon, Myntra, or Flipkart.", feature, category))
	if err != nil {
		return insight.FeatureImageResult{}, fmt.Errorf("refine query: %w", err)
	}
	refined = strings.TrimSpace(refined)

	query := fmt.Sprintf("best selling %s %s fashion site:myntra.com OR site:amazon.in OR site:flipkart.com", refined, category)
	images, err := s.search.Images(ctx, query)
	if err != nil {
		return insight.FeatureImageResult{}, fmt.Errorf("image search: %w", err)
	}

	urls := make([]string, 0, maxFeatureImages)
	for _, img := range images {
		u := img.Original
		if u == "" {
			u = img.Thumbnail
		}
		if !strings.HasPrefix(u, "http") {
			continue
		}
		urls = append(urls, u)
		if len(urls) == maxFeatureImages {
			break
		}
	}

	return insight.FeatureImageResult{
		Feature:      feature,
		Category:     category,
		RefinedQuery: refined,
		Images:       urls,
	}, nil
}
