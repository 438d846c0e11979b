package query

import (
	"math"
	"sort"
	"strings"

	"rentscope/internal/model"
)

// Match reason constants
const (
	ReasonWithinBudget  = "Within budget"
	ReasonLocationMatch = "Location match"
	ReasonTypeMatch     = "Property type match"
	ReasonHighlyRated   = "Highly rated"
	ReasonBedroomsMatch = "Bedrooms match"
	ReasonBedroomsClose = "Bedrooms close to preference"
	ReasonAmenityMatch  = "Preferred amenities"
	ReasonNewlyListed   = "Newly listed"
	ReasonAvailableNow  = "Available now"
	ReasonPopular       = "Popular with tenants"
)

// DefaultRecommendLimit caps a recommendation response when no limit is given.
const DefaultRecommendLimit = 6

// scoreTerm is one additive contribution to a recommendation score. Terms are
// kept declarative so each one is testable on its own. The reason is attached
// when the term contributes more than reasonMin points.
type scoreTerm struct {
	reason    string
	reasonMin float64
	points    func(p *model.Property) float64
}

// Recommend ranks all listings against a soft preference profile and returns
// the top limit by descending score. Preferences never exclude a listing;
// a total mismatch simply scores low.
func (e *Engine) Recommend(props []model.Property, prefs model.Preferences, limit int) []model.Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	terms := e.scoreTerms(prefs)

	out := make([]model.Recommendation, 0, len(props))
	for i := range props {
		rec := model.Recommendation{
			Property: props[i],
			Reasons:  []string{},
		}
		for _, term := range terms {
			pts := term.points(&props[i])
			if pts <= 0 {
				continue
			}
			rec.Score += pts
			if term.reason != "" && pts > term.reasonMin {
				rec.Reasons = append(rec.Reasons, term.reason)
			}
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// scoreTerms builds the additive scoring table for a preference profile.
func (e *Engine) scoreTerms(prefs model.Preferences) []scoreTerm {
	terms := []scoreTerm{
		{reason: ReasonHighlyRated, reasonMin: 11, points: func(p *model.Property) float64 { return ratingPoints(p) }},
		{reason: ReasonNewlyListed, points: func(p *model.Property) float64 { return e.agePoints(p) }},
		{reason: ReasonAvailableNow, points: func(p *model.Property) float64 {
			if p.Available() {
				return 5
			}
			return 0
		}},
		{reason: ReasonPopular, points: func(p *model.Property) float64 {
			if p.TotalRatings > 5 {
				return math.Min(10, float64(p.TotalRatings))
			}
			return 0
		}},
	}

	if prefs.MaxPrice != nil && *prefs.MaxPrice > 0 {
		maxPrice := *prefs.MaxPrice
		terms = append(terms, scoreTerm{reason: ReasonWithinBudget, points: func(p *model.Property) float64 {
			return budgetPoints(p.Price, maxPrice)
		}})
	}
	if prefs.Location != nil && strings.TrimSpace(*prefs.Location) != "" {
		loc := fold(*prefs.Location)
		terms = append(terms, scoreTerm{reason: ReasonLocationMatch, points: func(p *model.Property) float64 {
			if strings.Contains(fold(p.Address), loc) {
				return 20
			}
			return 0
		}})
	}
	if prefs.PropertyType != nil && strings.TrimSpace(*prefs.PropertyType) != "" {
		wantType := *prefs.PropertyType
		terms = append(terms, scoreTerm{reason: ReasonTypeMatch, points: func(p *model.Property) float64 {
			if strings.EqualFold(strings.TrimSpace(p.PropertyType), strings.TrimSpace(wantType)) {
				return 25
			}
			return 0
		}})
	}
	if prefs.Bedrooms != nil && *prefs.Bedrooms > 0 {
		want := *prefs.Bedrooms
		terms = append(terms, scoreTerm{reason: ReasonBedroomsMatch, points: func(p *model.Property) float64 {
			if p.Bedrooms() == want {
				return 15
			}
			return 0
		}})
		terms = append(terms, scoreTerm{reason: ReasonBedroomsClose, points: func(p *model.Property) float64 {
			diff := p.Bedrooms() - want
			if diff == 1 || diff == -1 {
				return 8
			}
			return 0
		}})
	}
	if len(prefs.Amenities) > 0 {
		wanted := prefs.Amenities
		terms = append(terms, scoreTerm{reason: ReasonAmenityMatch, points: func(p *model.Property) float64 {
			points := 0.0
			for _, want := range wanted {
				for _, a := range p.Amenities {
					if matchAmenity(want, a) {
						points += 6
						break
					}
				}
			}
			return points
		}})
	}

	return terms
}

// budgetPoints contributes up to 15 points scaled by closeness to the cap:
// a price just under budget scores near 15, well under budget floors at 5,
// over budget scores nothing.
func budgetPoints(price, maxPrice float64) float64 {
	if price <= 0 || price > maxPrice {
		return 0
	}
	pts := 15 * (price / maxPrice)
	if pts < 5 {
		pts = 5
	}
	return pts
}

// ratingPoints is the rating bonus: rating times 3.
func ratingPoints(p *model.Property) float64 {
	if p.Rating <= 0 {
		return 0
	}
	return p.Rating * 3
}

// agePoints rewards fresh listings: 8 points within a week, 4 within a month.
func (e *Engine) agePoints(p *model.Property) float64 {
	created, ok := parseDate(p.CreatedAt)
	if !ok {
		return 0
	}
	days := e.now().Sub(created).Hours() / 24
	switch {
	case days < 0:
		return 0
	case days <= 7:
		return 8
	case days <= 30:
		return 4
	}
	return 0
}
