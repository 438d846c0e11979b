package query

import (
	"math"

	"rentscope/internal/model"
)

// Statistics computes the aggregate summary for a property collection.
// Empty input yields a zeroed summary with empty distributions, never nil maps.
func (e *Engine) Statistics(props []model.Property) model.Summary {
	s := model.Summary{
		TypeCounts:    map[string]int{},
		PriceBuckets:  map[string]int{},
		RatingBuckets: map[string]int{},
	}
	s.Total = len(props)
	if len(props) == 0 {
		return s
	}

	var (
		priceSum    float64
		pricedCount int
		ratingSum   float64
		bedSum      int
		bedCount    int
		bathSum     int
		bathCount   int
	)

	for i := range props {
		p := &props[i]

		if p.Price > 0 {
			priceSum += p.Price
			pricedCount++
			if s.MinPrice == 0 || p.Price < s.MinPrice {
				s.MinPrice = p.Price
			}
			if p.Price > s.MaxPrice {
				s.MaxPrice = p.Price
			}
			s.PriceBuckets[priceBucket(p.Price)]++
		}

		if p.PropertyType != "" {
			s.TypeCounts[p.PropertyType]++
		}

		if p.Rating > 0 {
			ratingSum += p.Rating
			s.RatedCount++
			s.RatingBuckets[ratingBucket(p.Rating)]++
		}

		if p.Available() {
			s.AvailableCount++
		}

		if beds := p.Bedrooms(); beds > 0 {
			bedSum += beds
			bedCount++
		}
		if baths := p.Bathrooms(); baths > 0 {
			bathSum += baths
			bathCount++
		}
	}

	if pricedCount > 0 {
		s.AveragePrice = priceSum / float64(pricedCount)
	}
	if s.RatedCount > 0 {
		s.AverageRating = round1(ratingSum / float64(s.RatedCount))
	}
	if bedCount > 0 {
		s.AverageBedrooms = round1(float64(bedSum) / float64(bedCount))
	}
	if bathCount > 0 {
		s.AverageBathrooms = round1(float64(bathSum) / float64(bathCount))
	}
	return s
}

func priceBucket(price float64) string {
	switch {
	case price < 25000:
		return model.PriceBucketUnder25K
	case price < 50000:
		return model.PriceBucket25To50K
	case price < 100000:
		return model.PriceBucket50To100K
	default:
		return model.PriceBucket100KPlus
	}
}

func ratingBucket(rating float64) string {
	switch {
	case rating >= 4.5:
		return model.RatingBucketExcellent
	case rating >= 4:
		return model.RatingBucketGood
	case rating >= 3:
		return model.RatingBucketAverage
	default:
		return model.RatingBucketLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
