// Package enrich supplies the local context (inventory signals,
// season, upcoming festivals) interpolated into prompts. Providers
// never fail: missing or partial data degrades to a shorter context
// block.
package enrich

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sellerpilot/internal/domain/insight"
)

// Festival is a calendar entry offered to the planner prompt.
type Festival struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Provider derives prompt context from local lookups.
type Provider interface {
	RichContext(ctx context.Context, products []insight.Product, pincode string) string
	UpcomingFestivals(ctx context.Context, location string) []Festival
}

// calendarEntry is a recurring festival anchored to an approximate
// month/day. Lunar dates drift year to year; an approximation is
// enough for prompt context.
type calendarEntry struct {
	name  string
	month time.Month
	day   int
}

var calendar = []calendarEntry{
	{"Makar Sankranti", time.January, 14},
	{"Holi", time.March, 14},
	{"Eid al-Fitr", time.March, 31},
	{"Raksha Bandhan", time.August, 9},
	{"Ganesh Chaturthi", time.August, 27},
	{"Navratri", time.September, 22},
	{"Durga Puja", time.September, 28},
	{"Karwa Chauth", time.October, 10},
	{"Diwali", time.October, 20},
	{"Christmas", time.December, 25},
}

// StaticProvider derives context from a built-in festival calendar and
// the caller-supplied inventory, with no network calls.
type StaticProvider struct {
	now func() time.Time
}

// NewStaticProvider creates the default context provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{now: time.Now}
}

// RichContext summarizes the seller's inventory, the current season
// and the next festivals into a bounded text block.
func (p *StaticProvider) RichContext(_ context.Context, products []insight.Product, pincode string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Seller pincode: %s.\n", strings.TrimSpace(pincode))
	now := p.now()
	fmt.Fprintf(&buf, "Current month: %s. Season: %s.\n", now.Month(), season(now.Month()))

	if len(products) > 0 {
		fmt.Fprintf(&buf, "Inventory (%d products):\n", len(products))
		const maxListed = 15
		for i, prod := range products {
			if i == maxListed {
				fmt.Fprintf(&buf, "- ... and %d more\n", len(products)-maxListed)
				break
			}
			buf.WriteString("- " + describeProduct(prod) + "\n")
		}
	}

	if fests := p.upcoming(now, 4); len(fests) > 0 {
		buf.WriteString("Upcoming festivals: ")
		names := make([]string, 0, len(fests))
		for _, f := range fests {
			names = append(names, fmt.Sprintf("%s (%s)", f.Name, f.Date))
		}
		buf.WriteString(strings.Join(names, ", ") + ".\n")
	}

	return strings.TrimSpace(buf.String())
}

// UpcomingFestivals returns the next festivals from the built-in
// calendar with dates in YYYY-MM-DD form.
func (p *StaticProvider) UpcomingFestivals(_ context.Context, _ string) []Festival {
	return p.upcoming(p.now(), 6)
}

func (p *StaticProvider) upcoming(now time.Time, limit int) []Festival {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	fests := make([]Festival, 0, len(calendar))
	for _, e := range calendar {
		date := time.Date(now.Year(), e.month, e.day, 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			date = date.AddDate(1, 0, 0)
		}
		fests = append(fests, Festival{Name: e.name, Date: date.Format("2006-01-02")})
	}
	sort.Slice(fests, func(i, j int) bool { return fests[i].Date < fests[j].Date })
	if len(fests) > limit {
		fests = fests[:limit]
	}
	return fests
}

func describeProduct(prod insight.Product) string {
	name, _ := prod["name"].(string)
	if name == "" {
		name, _ = prod["product_name"].(string)
	}
	if name == "" {
		name = "unnamed product"
	}
	parts := []string{name}
	if cat, _ := prod["category"].(string); cat != "" {
		parts = append(parts, "category "+cat)
	}
	if stock, ok := prod["stock"].(float64); ok {
		parts = append(parts, fmt.Sprintf("stock %.0f", stock))
	}
	if price, ok := prod["price"].(float64); ok {
		parts = append(parts, fmt.Sprintf("price %.0f", price))
	}
	return strings.Join(parts, ", ")
}

func season(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "summer"
	case m >= time.June && m <= time.September:
		return "monsoon"
	case m >= time.October && m <= time.November:
		return "post-monsoon festive season"
	default:
		return "winter"
	}
}
