package model

// RecommendationKind identifies which heuristic check produced an observation.
type RecommendationKind string

// Recommendation kinds, in the order the checks run.
const (
	RecSeasonality      RecommendationKind = "seasonality"
	RecTopProducts      RecommendationKind = "top_products"
	RecCustomerSegment  RecommendationKind = "customer_segment"
	RecLocation         RecommendationKind = "location"
	RecTrend            RecommendationKind = "trend"
	RecPriceElasticity  RecommendationKind = "price_elasticity"
	RecInsufficientData RecommendationKind = "insufficient_data"
)

// Recommendation is a single free-text observation derived from the data.
type Recommendation struct {
	Kind RecommendationKind
	Text string
}
