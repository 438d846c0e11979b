package query

import (
	"math"
	"strings"
	"time"

	"rentscope/internal/model"
)

// Filter applies each populated criterion as an independent predicate and
// keeps the listings that pass all of them. Input order is preserved and the
// input slice is never mutated. Malformed criteria values degrade to "no
// constraint" rather than failing the query.
func (e *Engine) Filter(props []model.Property, c *model.FilterCriteria) []model.Property {
	out := make([]model.Property, 0, len(props))
	if c == nil {
		return append(out, props...)
	}

	priceMin, priceMax := validatePriceRange(c.PriceMin, c.PriceMax)
	priceFiltered := c.PriceMin != nil || c.PriceMax != nil

	var availableBy time.Time
	availableByOK := false
	if c.AvailableBy != nil {
		if cutoff, ok := parseDate(*c.AvailableBy); ok {
			availableBy = cutoff
			availableByOK = true
		} else {
			e.warn("unparseable availability cutoff %q, skipping date filter", *c.AvailableBy)
		}
	}

	for i := range props {
		p := &props[i]

		if priceFiltered && (p.Price < priceMin || p.Price > priceMax) {
			continue
		}
		if c.MinRating != nil && p.Rating < *c.MinRating {
			continue
		}
		if availableByOK && !e.availableBy(p, availableBy) {
			continue
		}
		if c.Location != nil && !matchLocation(p.Address, *c.Location) {
			continue
		}
		if !matchType(p.PropertyType, c.PropertyType) {
			continue
		}
		if !matchType(p.UnitType, c.UnitType) {
			continue
		}
		if c.MinBedrooms != nil && p.Bedrooms() < *c.MinBedrooms {
			continue
		}
		if c.MinBathrooms != nil && p.Bathrooms() < *c.MinBathrooms {
			continue
		}
		if len(c.Amenities) > 0 && !hasAllAmenities(p.Amenities, c.Amenities) {
			continue
		}
		if c.Available != nil && p.Available() != *c.Available {
			continue
		}
		if c.MaxPricePerSqft != nil && p.AreaSqft > 0 && p.Price/p.AreaSqft > *c.MaxPricePerSqft {
			continue
		}
		if c.MaxAgeDays != nil && !e.withinAgeDays(p, *c.MaxAgeDays) {
			continue
		}

		out = append(out, props[i])
	}
	return out
}

// validatePriceRange clamps a requested price range into a usable one: the
// minimum is never negative, the maximum never below the minimum, and absent
// bounds default to fully open.
func validatePriceRange(minPrice, maxPrice *float64) (float64, float64) {
	lo := 0.0
	if minPrice != nil && *minPrice > 0 {
		lo = *minPrice
	}
	hi := math.MaxFloat64
	if maxPrice != nil && *maxPrice > 0 {
		hi = math.Max(lo, *maxPrice)
	}
	return lo, hi
}

// availableBy reports whether a listing is available on or before the cutoff.
// Listings with unparseable availability dates pass rather than being dropped.
func (e *Engine) availableBy(p *model.Property, cutoff time.Time) bool {
	from, ok := parseDate(p.AvailableFrom)
	if !ok {
		if strings.TrimSpace(p.AvailableFrom) != "" {
			e.warn("listing %d has unparseable available_from %q, skipping date filter", p.ID, p.AvailableFrom)
		}
		return true
	}
	return !from.After(cutoff)
}

// withinAgeDays reports whether the listing was created at most maxAge days
// ago. Listings with unparseable creation dates pass.
func (e *Engine) withinAgeDays(p *model.Property, maxAge int) bool {
	created, ok := parseDate(p.CreatedAt)
	if !ok {
		if strings.TrimSpace(p.CreatedAt) != "" {
			e.warn("listing %d has unparseable created_at %q, skipping age filter", p.ID, p.CreatedAt)
		}
		return true
	}
	age := e.now().Sub(created).Hours() / 24
	return age <= float64(maxAge)
}

// matchLocation tests a case-folded substring match of the requested location
// against the address, falling back to a per-token match where any token
// longer than 2 characters found in the address counts.
func matchLocation(address, requested string) bool {
	addr := fold(address)
	loc := fold(requested)
	if loc == "" {
		return true
	}
	if strings.Contains(addr, loc) {
		return true
	}
	for _, token := range strings.Fields(loc) {
		if len(token) > 2 && strings.Contains(addr, token) {
			return true
		}
	}
	return false
}

// matchType tests a case-insensitive exact match; a nil, empty, or "All"
// criterion disables the filter.
func matchType(value string, requested *string) bool {
	if requested == nil {
		return true
	}
	want := strings.TrimSpace(*requested)
	if want == "" || strings.EqualFold(want, "All") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), want)
}

// hasAllAmenities reports whether every requested amenity matches some listing
// amenity (substring match per amenity, AND across the list).
func hasAllAmenities(have model.AmenityList, requested []string) bool {
	for _, want := range requested {
		if strings.TrimSpace(want) == "" {
			continue
		}
		found := false
		for _, a := range have {
			if matchAmenity(want, a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
