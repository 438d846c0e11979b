package query

import (
	"testing"
	"time"

	"rentscope/internal/model"
)

func TestRecommendNeverExcludes(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	props := []model.Property{
		{ID: 1, Price: 20000, PropertyType: "Condo", Address: "Orchard Road"},
		{ID: 2, Price: 999999, PropertyType: "Warehouse", Address: "Industrial Park"},
		{ID: 3}, // no data at all
	}
	prefs := model.Preferences{
		MaxPrice:     floatPtr(25000),
		PropertyType: strPtr("Condo"),
		Location:     strPtr("orchard"),
	}

	got := e.Recommend(props, prefs, 10)

	if len(got) != len(props) {
		t.Fatalf("Recommend() returned %d of %d listings; mismatches must score low, not disappear", len(got), len(props))
	}
	if got[0].Property.ID != 1 {
		t.Errorf("best match = %d, want 1", got[0].Property.ID)
	}
}

func TestRecommendBudgetScaling(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		maxPrice float64
		want     float64
	}{
		{name: "Half of budget scores half the max", price: 12500, maxPrice: 25000, want: 7.5},
		{name: "At budget scores full", price: 25000, maxPrice: 25000, want: 15},
		{name: "Well under budget floors at 5", price: 1000, maxPrice: 25000, want: 5},
		{name: "Over budget scores nothing", price: 26000, maxPrice: 25000, want: 0},
		{name: "Unknown price scores nothing", price: 0, maxPrice: 25000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := budgetPoints(tt.price, tt.maxPrice); got != tt.want {
				t.Errorf("budgetPoints(%v, %v) = %v, want %v", tt.price, tt.maxPrice, got, tt.want)
			}
		})
	}
}

func TestRecommendTypeAndBedroomTerms(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	f := false
	props := []model.Property{
		{ID: 1, PropertyType: "condo", IsAvailable: &f, Facilities: e.NormalizeFacilities(`{"Bedrooms": 2}`)},
		{ID: 2, PropertyType: "Villa", IsAvailable: &f, Facilities: e.NormalizeFacilities(`{"Bedrooms": 3}`)},
		{ID: 3, PropertyType: "Villa", IsAvailable: &f, Facilities: e.NormalizeFacilities(`{"Bedrooms": 5}`)},
	}
	prefs := model.Preferences{
		PropertyType: strPtr("Condo"),
		Bedrooms:     intPtr(2),
	}

	got := e.Recommend(props, prefs, 0)

	byID := recommendationsByID(got)
	// exact type (25) + exact bedrooms (15)
	if byID[1].Score != 40 {
		t.Errorf("score(1) = %v, want 40", byID[1].Score)
	}
	// off-by-one bedrooms only
	if byID[2].Score != 8 {
		t.Errorf("score(2) = %v, want 8", byID[2].Score)
	}
	if byID[3].Score != 0 {
		t.Errorf("score(3) = %v, want 0", byID[3].Score)
	}
	if !hasReason(byID[1], ReasonTypeMatch) || !hasReason(byID[1], ReasonBedroomsMatch) {
		t.Errorf("reasons(1) = %v", byID[1].Reasons)
	}
	if !hasReason(byID[2], ReasonBedroomsClose) {
		t.Errorf("reasons(2) = %v", byID[2].Reasons)
	}
}

func TestRecommendAmenityTerm(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	f := false
	props := []model.Property{
		{ID: 1, IsAvailable: &f, Amenities: model.AmenityList{"Swimming Pool", "Gym", "Parking"}},
		{ID: 2, IsAvailable: &f, Amenities: model.AmenityList{"Gym"}},
		{ID: 3, IsAvailable: &f},
	}
	prefs := model.Preferences{Amenities: []string{"pool", "gym"}}

	got := e.Recommend(props, prefs, 0)

	byID := recommendationsByID(got)
	if byID[1].Score != 12 {
		t.Errorf("score(1) = %v, want 12 (two matched amenities)", byID[1].Score)
	}
	if byID[2].Score != 6 {
		t.Errorf("score(2) = %v, want 6", byID[2].Score)
	}
	if byID[3].Score != 0 {
		t.Errorf("score(3) = %v, want 0", byID[3].Score)
	}
	if !hasReason(byID[1], ReasonAmenityMatch) {
		t.Errorf("reasons(1) = %v", byID[1].Reasons)
	}
}

func TestRecommendAgeAndPopularityTerms(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e, _ := newTestEngine(now)

	f := false
	props := []model.Property{
		{ID: 1, CreatedAt: "2026-07-29", IsAvailable: &f}, // 3 days old
		{ID: 2, CreatedAt: "2026-07-10", IsAvailable: &f}, // 22 days old
		{ID: 3, CreatedAt: "2026-01-01", IsAvailable: &f}, // stale
		{ID: 4, CreatedAt: "no idea", IsAvailable: &f},    // unparseable, no bonus
		{ID: 5, TotalRatings: 200, IsAvailable: &f},       // popular, capped at 10
		{ID: 6, TotalRatings: 4, IsAvailable: &f},         // below the popularity threshold
	}

	got := e.Recommend(props, model.Preferences{}, 0)

	byID := recommendationsByID(got)
	if byID[1].Score != 8 {
		t.Errorf("score(fresh) = %v, want 8", byID[1].Score)
	}
	if byID[2].Score != 4 {
		t.Errorf("score(recent) = %v, want 4", byID[2].Score)
	}
	if byID[3].Score != 0 {
		t.Errorf("score(stale) = %v, want 0", byID[3].Score)
	}
	if byID[4].Score != 0 {
		t.Errorf("score(bad date) = %v, want 0", byID[4].Score)
	}
	if byID[5].Score != 10 {
		t.Errorf("score(popular) = %v, want 10", byID[5].Score)
	}
	if byID[6].Score != 0 {
		t.Errorf("score(few ratings) = %v, want 0", byID[6].Score)
	}
	if !hasReason(byID[1], ReasonNewlyListed) || !hasReason(byID[5], ReasonPopular) {
		t.Errorf("reasons: fresh=%v popular=%v", byID[1].Reasons, byID[5].Reasons)
	}
}

func TestRecommendRatingReasonThreshold(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	f := false
	props := []model.Property{
		{ID: 1, Rating: 4.5, IsAvailable: &f}, // 13.5 points, reason attached
		{ID: 2, Rating: 3.0, IsAvailable: &f}, // 9 points, no reason
	}

	got := e.Recommend(props, model.Preferences{}, 0)

	byID := recommendationsByID(got)
	if byID[1].Score != 13.5 {
		t.Errorf("score(1) = %v, want 13.5", byID[1].Score)
	}
	if !hasReason(byID[1], ReasonHighlyRated) {
		t.Errorf("reasons(1) = %v, want %q", byID[1].Reasons, ReasonHighlyRated)
	}
	if hasReason(byID[2], ReasonHighlyRated) {
		t.Errorf("a middling rating still contributes points but must not claim %q", ReasonHighlyRated)
	}
}

func TestRecommendDefaultLimit(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	props := make([]model.Property, 10)
	for i := range props {
		props[i].ID = int64(i + 1)
		props[i].Rating = float64(i)
	}

	got := e.Recommend(props, model.Preferences{}, 0)
	if len(got) != DefaultRecommendLimit {
		t.Fatalf("len = %d, want default limit %d", len(got), DefaultRecommendLimit)
	}
	if got[0].Property.ID != 10 {
		t.Errorf("best = %d, want the highest-rated listing", got[0].Property.ID)
	}
}

func TestRecommendSortedDescending(t *testing.T) {
	e, _ := newTestEngine(time.Time{})

	f := false
	props := []model.Property{
		{ID: 1, Rating: 2, IsAvailable: &f},
		{ID: 2, Rating: 5, IsAvailable: &f},
		{ID: 3, Rating: 4, IsAvailable: &f},
	}

	got := e.Recommend(props, model.Preferences{}, 0)
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("recommendations not in descending score order: %v then %v", got[i-1].Score, got[i].Score)
		}
	}
}

func recommendationsByID(recs []model.Recommendation) map[int64]model.Recommendation {
	out := make(map[int64]model.Recommendation, len(recs))
	for _, r := range recs {
		out[r.Property.ID] = r
	}
	return out
}

func hasReason(rec model.Recommendation, reason string) bool {
	for _, r := range rec.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
