package planner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/enrich"
	"sellerpilot/internal/llm"
)

type fakeProvider struct {
	structured func(system, user string) (json.RawMessage, error)
}

func (f *fakeProvider) CompleteStructured(ctx context.Context, opts llm.Options, system, user string) (json.RawMessage, error) {
	return f.structured(system, user)
}

func (f *fakeProvider) CompleteText(ctx context.Context, opts llm.Options, system, user string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeProvider) DescribeImage(ctx context.Context, opts llm.Options, instruction, mimeType string, data []byte) (string, error) {
	return "", errors.New("not implemented")
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 30, 0, 0, time.UTC)
	}
}

func TestNormalizeFestivals(t *testing.T) {
	today := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	out := normalizeFestivals([]insight.Festival{
		{Name: "Republic Day", Date: "2025-01-26"},
		{Name: "Garbled", Date: "next month sometime", DaysLeft: 7},
		{Name: "Past", Date: "2024-12-25"},
	}, today)

	if out[0].Date != "January 26, 2025" || out[0].DaysLeft != 25 {
		t.Fatalf("unexpected normalization: %+v", out[0])
	}
	// Unparseable dates pass through untouched.
	if out[1].Date != "next month sometime" || out[1].DaysLeft != 7 {
		t.Fatalf("unparseable entry was mutated: %+v", out[1])
	}
	if out[2].DaysLeft != -7 {
		t.Fatalf("past dates should yield negative daysLeft, got %d", out[2].DaysLeft)
	}
}

func TestFullReport_UnwrapsEnvelopeAndNormalizes(t *testing.T) {
	report := insight.PlannerReport{
		UpcomingFestivals: []insight.Festival{
			{ID: 1, Name: "Diwali", Date: "2025-10-20", Urgency: "high"},
		},
		TopProductsToStock: []insight.RecommendedProduct{{ID: 1, Name: "Silk saree"}},
	}
	inner, _ := json.Marshal(report)
	wrapped, _ := json.Marshal(map[string]json.RawMessage{"InventoryPlan": inner})

	provider := &fakeProvider{
		structured: func(_, user string) (json.RawMessage, error) {
			return wrapped, nil
		},
	}
	svc := NewService(provider, enrich.NewStaticProvider(), Config{Model: "m"})
	svc.now = fixedClock(2025, time.October, 1)

	got, err := svc.FullReport(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.UpcomingFestivals) != 1 {
		t.Fatalf("expected 1 festival, got %d", len(got.UpcomingFestivals))
	}
	f := got.UpcomingFestivals[0]
	if f.Date != "October 20, 2025" || f.DaysLeft != 19 {
		t.Fatalf("festival not normalized: %+v", f)
	}
	if len(got.TopProductsToStock) != 1 || got.TopProductsToStock[0].Name != "Silk saree" {
		t.Fatalf("report sections lost in unwrap: %+v", got)
	}
}

func TestFullReport_ProviderErrorSurfaces(t *testing.T) {
	provider := &fakeProvider{
		structured: func(_, _ string) (json.RawMessage, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	svc := NewService(provider, enrich.NewStaticProvider(), Config{Model: "m"})

	if _, err := svc.FullReport(context.Background(), "Delhi"); err == nil {
		t.Fatal("expected error when generation fails")
	}
}

func TestFullReport_ConcurrentRequestsSerialized(t *testing.T) {
	var mu sync.Mutex
	active, maxActive := 0, 0

	provider := &fakeProvider{
		structured: func(_, _ string) (json.RawMessage, error) {
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return json.RawMessage(`{"upcomingFestivals":[]}`), nil
		},
	}
	svc := NewService(provider, enrich.NewStaticProvider(), Config{Model: "m"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.FullReport(context.Background(), "Delhi"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("provider calls overlapped: max concurrent = %d", maxActive)
	}
}

var _ insight.PlannerService = (*Service)(nil)
