// Package planner generates the festival and inventory planning
// report. Report generation is serialized process-wide: at most one
// provider call for this endpoint is in flight at any time.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/enrich"
	"sellerpilot/internal/jsonx"
	"sellerpilot/internal/llm"
	"sellerpilot/internal/prompt"
)

// wrapperKey is an envelope key some model replies nest the report
// under.
const wrapperKey = "InventoryPlan"

const reportTemplate = `You are an expert Indian retail and inventory planning AI for online sellers.
Seller location: {location}.
Real upcoming festivals: {real_festivals}.

Generate 4 upcoming festivals, 5 top products, 3 nearby demand areas, 3 avoid products, and 5 AI recommendations.

All product-related insights (top products, nearby demand, avoid products, and AI recommendations) must focus only on ethnic wear and festive fashion items such as sarees, kurtis, lehengas, dupattas, sherwanis, ethnic jewelry, and related accessories.
Do not include electronics or unrelated items.

Respond ONLY with a valid JSON object. Do not include any text before or after the JSON.
The JSON object must contain these fields:
- upcomingFestivals (array, required): objects with id, name, date (YYYY-MM-DD), daysLeft, urgency, items, expectedSales, preparation, color
- topProductsToStock (array, required): objects with id, name, demand, profit, units, trend, yourPrice, stockLevel, urgency
- nearbyDemand (array, required): objects with id, area, product, demand, distance, avgSpend, shoppers, peakHours
- avoidProducts (array, required): objects with id, name, reason, suggestion, returnRate, impact, lossAmount
- aiRecommendations (array, required): objects with id, product, action, priority, reason, confidence, potentialRevenue`

// Config holds planner generation configuration.
type Config struct {
	Model       string
	Temperature float32
}

// Service generates planner reports.
type Service struct {
	llm    llm.Provider
	enrich enrich.Provider
	cfg    Config
	now    func() time.Time

	// mu throttles the endpoint, not data: every value is built
	// fresh per request.
	mu sync.Mutex
}

// NewService creates a planner service.
func NewService(provider llm.Provider, enricher enrich.Provider, cfg Config) *Service {
	return &Service{llm: provider, enrich: enricher, cfg: cfg, now: time.Now}
}

// FullReport generates the five-section planner report for a seller
// location. Festival dates are normalized server-side; a festival
// whose date fails to parse passes through unchanged.
func (s *Service) FullReport(ctx context.Context, location string) (insight.PlannerReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	festivals, _ := json.Marshal(s.enrich.UpcomingFestivals(ctx, location))

	user, err := prompt.Render(reportTemplate, map[string]string{
		"location":       location,
		"real_festivals": string(festivals),
	})
	if err != nil {
		return insight.PlannerReport{}, fmt.Errorf("planner: render prompt: %w", err)
	}

	raw, err := s.llm.CompleteStructured(ctx, llm.Options{Model: s.cfg.Model, Temperature: s.cfg.Temperature}, "", user)
	if err != nil {
		return insight.PlannerReport{}, fmt.Errorf("planner: generate report: %w", err)
	}

	var report insight.PlannerReport
	if err := json.Unmarshal(jsonx.Unwrap(raw, wrapperKey), &report); err != nil {
		return insight.PlannerReport{}, fmt.Errorf("planner: parse report: %w", err)
	}

	report.UpcomingFestivals = normalizeFestivals(report.UpcomingFestivals, s.now())
	return report, nil
}

// normalizeFestivals recomputes daysLeft from today and reformats each
// parseable YYYY-MM-DD date to its long display form. Unparseable
// entries are logged and kept as-is.
func normalizeFestivals(festivals []insight.Festival, now time.Time) []insight.Festival {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]insight.Festival, 0, len(festivals))
	for _, f := range festivals {
		date, err := time.ParseInLocation("2006-01-02", f.Date, time.UTC)
		if err != nil {
			log.Printf("planner: festival %q has unparseable date %q: %v", f.Name, f.Date, err)
			out = append(out, f)
			continue
		}
		f.DaysLeft = int(date.Sub(today).Hours() / 24)
		f.Date = date.Format("January 02, 2006")
		out = append(out, f)
	}
	return out
}
