package insight

// Summary is the weekly actionable dashboard summary for a seller.
type Summary struct {
	Focus       string `json:"focus"`
	Opportunity string `json:"opportunity"`
	Caution     string `json:"caution"`
	Action      string `json:"action"`
}

// Festival is one upcoming festival entry in the planner report.
// Date arrives from the model as YYYY-MM-DD and is reformatted to a
// long display form ("January 26, 2025") with DaysLeft recomputed.
type Festival struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Date          string   `json:"date"`
	DaysLeft      int      `json:"daysLeft"`
	Urgency       string   `json:"urgency"`
	Items         []string `json:"items"`
	ExpectedSales string   `json:"expectedSales"`
	Preparation   string   `json:"preparation"`
	Color         string   `json:"color"`
}

// RecommendedProduct is a product the seller should stock up on.
type RecommendedProduct struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Demand     string `json:"demand"`
	Profit     string `json:"profit"`
	Units      string `json:"units"`
	Trend      string `json:"trend"`
	YourPrice  string `json:"yourPrice"`
	StockLevel string `json:"stockLevel"`
	Urgency    string `json:"urgency"`
}

// LocalDemand describes demand for a product in a nearby area.
type LocalDemand struct {
	ID        int    `json:"id"`
	Area      string `json:"area"`
	Product   string `json:"product"`
	Demand    string `json:"demand"`
	Distance  string `json:"distance"`
	AvgSpend  string `json:"avgSpend"`
	Shoppers  int    `json:"shoppers"`
	PeakHours string `json:"peakHours"`
}

// AvoidProduct is a product the seller should stay away from.
type AvoidProduct struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
	ReturnRate string `json:"returnRate"`
	Impact     string `json:"impact"`
	LossAmount string `json:"lossAmount"`
}

// AIRecommendation is a single prioritized action for the seller.
type AIRecommendation struct {
	ID               int    `json:"id"`
	Product          string `json:"product"`
	Action           string `json:"action"`
	Priority         string `json:"priority"`
	Reason           string `json:"reason"`
	Confidence       string `json:"confidence"`
	PotentialRevenue string `json:"potentialRevenue"`
}

// PlannerReport aggregates the five sections of the inventory planner.
type PlannerReport struct {
	UpcomingFestivals  []Festival           `json:"upcomingFestivals"`
	TopProductsToStock []RecommendedProduct `json:"topProductsToStock"`
	NearbyDemand       []LocalDemand        `json:"nearbyDemand"`
	AvoidProducts      []AvoidProduct       `json:"avoidProducts"`
	AIRecommendations  []AIRecommendation   `json:"aiRecommendations"`
}

// SEOContent is search-optimized listing copy.
type SEOContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
}

// WhatsAppContent is short promotional copy for WhatsApp sharing.
type WhatsAppContent struct {
	Caption            string `json:"caption"`
	PromotionalMessage string `json:"promotional_message"`
}

// ConversationalContent holds natural search phrases buyers might use.
type ConversationalContent struct {
	SearchPhrases []string `json:"search_phrases"`
}

// GeneratedContent is the listing-generation result. Each sub-object is
// present only when that content type was requested and its generation
// succeeded; at least one must be present for a request to succeed.
// GenerationID is assigned once at generation time and carried through
// improve and translate calls so server logs can be correlated with a
// specific generation.
type GeneratedContent struct {
	GenerationID          string                 `json:"generation_id,omitempty"`
	SEOContent            *SEOContent            `json:"seo_content"`
	WhatsAppContent       *WhatsAppContent       `json:"whatsapp_content"`
	ConversationalContent *ConversationalContent `json:"conversational_content"`
	Category              string                 `json:"category"`
}

// Empty reports whether no content slot was filled.
func (g GeneratedContent) Empty() bool {
	return g.SEOContent == nil && g.WhatsAppContent == nil && g.ConversationalContent == nil
}

// TrendRecord is one analyzed trend for a city. PctChange is always a
// number and Popularity/PopularityScore always agree with the bucket
// thresholds, regardless of what the model produced.
type TrendRecord struct {
	City            string   `json:"city"`
	Trend           string   `json:"trend"`
	Popularity      string   `json:"popularity"`
	ChangePct       string   `json:"change_pct"`
	PctChange       float64  `json:"pct_change"`
	PopularityScore int      `json:"popularity_score"`
	Features        []string `json:"features"`
	Competitors     []string `json:"competitors"`
	LocalHotspots   []string `json:"local_hotspots"`
	Tips            []string `json:"tips"`
}

// TrendError marks a city whose analysis failed inside a batch.
type TrendError struct {
	City  string `json:"city"`
	Error string `json:"error"`
}

// CityTrends is the per-city outcome of a trend analysis batch: either
// a set of records or an error, never both.
type CityTrends struct {
	City    string
	Records []TrendRecord
	Err     error
}

// FeatureImageResult holds product image URLs found for a feature.
type FeatureImageResult struct {
	Feature      string   `json:"feature"`
	Category     string   `json:"category"`
	RefinedQuery string   `json:"refined_query"`
	Images       []string `json:"images"`
}
