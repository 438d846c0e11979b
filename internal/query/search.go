package query

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"rentscope/internal/model"
)

// Search scoring constants. A token hitting a whole word in a field scores
// wholeWordScore times the field weight, a substring hit scores
// substringScore times the field weight.
const (
	minQueryLength  = 2
	minTokenLength  = 2
	wholeWordScore  = 10
	substringScore  = 5
	priceMatchScore = 5
	priceTolerance  = 0.10
)

// fieldWeight binds a weight multiplier to the text values it applies to.
// Multi-value fields (amenities, facility names) score each value separately.
type fieldWeight struct {
	weight float64
	values func(p *model.Property) []string
}

// searchFields is the declarative scoring table, highest priority first.
var searchFields = []fieldWeight{
	{3, func(p *model.Property) []string { return []string{p.PropertyType} }},
	{2.5, func(p *model.Property) []string { return []string{p.UnitType} }},
	{2, func(p *model.Property) []string { return []string{p.Address} }},
	{2, func(p *model.Property) []string { return []string{p.Title} }},
	{1.5, func(p *model.Property) []string { return []string{p.Description} }},
	{1, func(p *model.Property) []string { return p.Amenities }},
	{1, func(p *model.Property) []string {
		names := make([]string, 0, len(p.Facilities))
		for name := range p.Facilities {
			names = append(names, name)
		}
		return names
	}},
	{1, func(p *model.Property) []string { return []string{p.OtherFacility} }},
}

// Search scores listings against a free-text query and returns the matches
// sorted by descending relevance, with each listing's Relevance field set.
// Listings with no matching field are excluded. A query shorter than 2
// characters disables search and returns the input unchanged.
func (e *Engine) Search(props []model.Property, queryText string) []model.Property {
	q := fold(queryText)
	if len(q) < minQueryLength {
		return props
	}

	tokens := tokenize(q)
	if len(tokens) == 0 {
		return props
	}

	out := make([]model.Property, 0, len(props))
	for i := range props {
		score, matched := scoreListing(&props[i], tokens)
		if !matched {
			continue
		}
		scored := props[i]
		scored.Relevance = score
		out = append(out, scored)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})
	return out
}

// tokenize splits a case-folded query on whitespace, discarding tokens
// shorter than 2 characters.
func tokenize(q string) []string {
	fields := strings.Fields(q)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// scoreListing accumulates the relevance score for one listing across all
// tokens and weighted fields, plus the price-proximity bonus.
func scoreListing(p *model.Property, tokens []string) (float64, bool) {
	score := 0.0
	matched := false

	for _, fw := range searchFields {
		for _, value := range fw.values(p) {
			folded := fold(value)
			if folded == "" {
				continue
			}
			words := fieldWords(folded)
			for _, token := range tokens {
				if hit := tokenFieldScore(token, folded, words); hit > 0 {
					score += hit * fw.weight
					matched = true
				}
			}
		}
	}

	// Numeric tokens near the listed price count as a match. Kept from the
	// original behavior: a query like "30000" surfaces listings priced close
	// to that figure.
	if p.Price > 0 {
		for _, token := range tokens {
			if v, ok := parsePriceToken(token); ok {
				if math.Abs(v-p.Price) <= priceTolerance*p.Price {
					score += priceMatchScore
					matched = true
					break
				}
			}
		}
	}

	return score, matched
}

// tokenFieldScore scores a single token against a single field value.
func tokenFieldScore(token, folded string, words []string) float64 {
	for _, w := range words {
		if w == token {
			return wholeWordScore
		}
	}
	if strings.Contains(folded, token) {
		return substringScore
	}
	return 0
}

// fieldWords splits a folded field value into its words.
func fieldWords(folded string) []string {
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// parsePriceToken parses a token as a price figure, tolerating currency
// punctuation like "$30,000".
func parsePriceToken(token string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',':
			return -1
		}
		return r
	}, token)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
