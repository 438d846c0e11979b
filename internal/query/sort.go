package query

import (
	"sort"
	"strings"

	"rentscope/internal/model"
)

// SortKey identifies a supported ordering.
type SortKey string

const (
	SortByPrice      SortKey = "price"
	SortByDate       SortKey = "date"
	SortByRating     SortKey = "rating"
	SortByBedrooms   SortKey = "bedrooms"
	SortByType       SortKey = "type"
	SortByLocation   SortKey = "location"
	SortByNewest     SortKey = "newest"
	SortByPopularity SortKey = "popularity"
	SortByRelevance  SortKey = "relevance"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseSortKey normalizes a sort key string, folding historical aliases.
// Unknown keys are returned as-is; Sort treats them as a no-op.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return SortByPrice
	case "date", "availability", "available_from":
		return SortByDate
	case "rating":
		return SortByRating
	case "bedrooms":
		return SortByBedrooms
	case "type", "name":
		return SortByType
	case "location", "address":
		return SortByLocation
	case "newest", "created", "created_at":
		return SortByNewest
	case "popularity":
		return SortByPopularity
	case "relevance":
		return SortByRelevance
	}
	return SortKey(strings.ToLower(strings.TrimSpace(s)))
}

// ParseOrder normalizes an order string; anything other than "desc" is ascending.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(OrderDesc)) {
		return OrderDesc
	}
	return OrderAsc
}

// Sort returns a new slice ordered by the given key. Ties keep their relative
// input order. An unrecognized key returns the input order unchanged.
func (e *Engine) Sort(props []model.Property, key SortKey, order Order) []model.Property {
	out := append(make([]model.Property, 0, len(props)), props...)

	less := lessFunc(key)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderDesc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out
}

// lessFunc returns the ascending comparison for a sort key, nil for unknown
// keys. String keys compare byte-wise after case folding; feed text is ASCII,
// so no collation library is pulled in.
func lessFunc(key SortKey) func(a, b *model.Property) bool {
	switch key {
	case SortByPrice:
		return func(a, b *model.Property) bool { return a.Price < b.Price }
	case SortByDate:
		return func(a, b *model.Property) bool {
			ta, _ := parseDate(a.AvailableFrom)
			tb, _ := parseDate(b.AvailableFrom)
			return ta.Before(tb)
		}
	case SortByRating:
		return func(a, b *model.Property) bool { return a.Rating < b.Rating }
	case SortByBedrooms:
		return func(a, b *model.Property) bool { return a.Bedrooms() < b.Bedrooms() }
	case SortByType:
		return func(a, b *model.Property) bool { return fold(a.PropertyType) < fold(b.PropertyType) }
	case SortByLocation:
		return func(a, b *model.Property) bool { return fold(a.Address) < fold(b.Address) }
	case SortByNewest:
		return func(a, b *model.Property) bool {
			ta, _ := parseDate(a.CreatedAt)
			tb, _ := parseDate(b.CreatedAt)
			return ta.Before(tb)
		}
	case SortByPopularity:
		return func(a, b *model.Property) bool {
			return a.Rating*float64(a.TotalRatings) < b.Rating*float64(b.TotalRatings)
		}
	case SortByRelevance:
		return func(a, b *model.Property) bool { return a.Relevance < b.Relevance }
	}
	return nil
}
