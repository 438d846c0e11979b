package model

// FilterCriteria represents one filter request. Every field is optional;
// an absent field means "do not filter on this dimension".
type FilterCriteria struct {
	PriceMin        *float64 `json:"price_min,omitempty"`
	PriceMax        *float64 `json:"price_max,omitempty"`
	MinRating       *float64 `json:"min_rating,omitempty"`
	PropertyType    *string  `json:"property_type,omitempty"` // "All" disables
	UnitType        *string  `json:"unit_type,omitempty"`     // "All" disables
	Location        *string  `json:"location,omitempty"`
	AvailableBy     *string  `json:"available_by,omitempty"`
	MinBedrooms     *int     `json:"min_bedrooms,omitempty"`
	MinBathrooms    *int     `json:"min_bathrooms,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
	Available       *bool    `json:"available,omitempty"`
	MaxPricePerSqft *float64 `json:"max_price_per_sqft,omitempty"`
	MaxAgeDays      *int     `json:"max_age_days,omitempty"`
}

// Preferences is a soft preference profile for recommendations. Unlike filter
// criteria these never exclude a listing; they only adjust its score.
type Preferences struct {
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Location     *string  `json:"location,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// Recommendation is a listing with its preference match score attached.
type Recommendation struct {
	Property
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// SearchRequest represents a search query request
type SearchRequest struct {
	Query    string          `json:"query" binding:"required"`
	Criteria *FilterCriteria `json:"criteria,omitempty"`
	Options  *SearchOptions  `json:"options,omitempty"`
}

// SearchOptions represents paging options
type SearchOptions struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results []Property `json:"results"`
	Total   int        `json:"total"`
	HasMore bool       `json:"has_more"`
	Took    int64      `json:"took_ms"` // Response time in milliseconds
}

// PropertyListResponse represents a filtered, sorted listing page
type PropertyListResponse struct {
	Results []Property `json:"results"`
	Total   int        `json:"total"`
	HasMore bool       `json:"has_more"`
	Took    int64      `json:"took_ms"`
}

// RecommendationRequest represents a recommendation request
type RecommendationRequest struct {
	Preferences Preferences `json:"preferences"`
	Limit       int         `json:"limit"`
}

// RecommendationResponse represents a recommendation response
type RecommendationResponse struct {
	Results []Recommendation `json:"results"`
	Took    int64            `json:"took_ms"`
}

// Summary holds aggregate statistics over a property collection.
type Summary struct {
	Total            int            `json:"total"`
	AveragePrice     float64        `json:"average_price"`
	MinPrice         float64        `json:"min_price"`
	MaxPrice         float64        `json:"max_price"`
	TypeCounts       map[string]int `json:"type_counts"`
	AverageRating    float64        `json:"average_rating"`
	RatedCount       int            `json:"rated_count"`
	AvailableCount   int            `json:"available_count"`
	AverageBedrooms  float64        `json:"average_bedrooms"`
	AverageBathrooms float64        `json:"average_bathrooms"`
	PriceBuckets     map[string]int `json:"price_buckets"`
	RatingBuckets    map[string]int `json:"rating_buckets"`
}

// Price and rating histogram bucket names used in Summary.
const (
	PriceBucketUnder25K = "under_25k"
	PriceBucket25To50K  = "25k_50k"
	PriceBucket50To100K = "50k_100k"
	PriceBucket100KPlus = "100k_plus"

	RatingBucketExcellent = "4.5_plus"
	RatingBucketGood      = "4_4.5"
	RatingBucketAverage   = "3_4"
	RatingBucketLow       = "under_3"
)

// FeedbackRequest represents user feedback on a returned listing
type FeedbackRequest struct {
	SearchID   string `json:"search_id" binding:"required"`
	PropertyID int64  `json:"property_id" binding:"required"`
	Action     string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
