package insight

import "context"

// Product is a raw inventory record supplied by the frontend. Fields
// vary per seller, so it stays schemaless.
type Product map[string]any

// DashboardService produces the weekly seller summary.
type DashboardService interface {
	Summary(ctx context.Context, products []Product, pincode string) Summary
}

// PlannerService produces the full inventory planner report.
type PlannerService interface {
	FullReport(ctx context.Context, location string) (PlannerReport, error)
}

// ListingOptions selects which content types to generate.
type ListingOptions struct {
	SEO            bool `json:"seo"`
	WhatsApp       bool `json:"whatsapp"`
	Conversational bool `json:"conversational"`
}

// ListingRequest carries the inputs for a listing generation.
type ListingRequest struct {
	Description string
	Category    string
	Options     ListingOptions
	ImageMIME   string
	ImageData   []byte
}

// ListingService generates, refines and translates listing content.
type ListingService interface {
	Generate(ctx context.Context, req ListingRequest) (GeneratedContent, error)
	Improve(ctx context.Context, content GeneratedContent) (GeneratedContent, error)
	Translate(ctx context.Context, content GeneratedContent, language string) (GeneratedContent, error)
}

// TrendsService analyzes market trends and finds feature images.
type TrendsService interface {
	Analyze(ctx context.Context, cities []string, category string) []CityTrends
	FeatureImages(ctx context.Context, feature, category string) (FeatureImageResult, error)
}
