package model

import (
	"database/sql/driver"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"rentscope/internal/utils"
)

// Property represents one rental listing as supplied by the external feed.
// Nested fields (facilities, amenities) arrive either as native JSON, as a
// JSON-encoded string, or not at all; they are normalized once on ingestion
// and malformed payloads degrade to an empty value with a logged warning.
type Property struct {
	ID            int64       `json:"id" db:"id"`
	Title         string      `json:"title" db:"title"`
	Description   string      `json:"description" db:"description"`
	PropertyType  string      `json:"property_type" db:"property_type"`
	UnitType      string      `json:"unit_type" db:"unit_type"`
	Address       string      `json:"address" db:"address"`
	Price         float64     `json:"price" db:"price"`
	AreaSqft      float64     `json:"area_sqft" db:"area_sqft"`
	Rating        float64     `json:"rating" db:"rating"`
	TotalRatings  int         `json:"total_ratings" db:"total_ratings"`
	AvailableFrom string      `json:"available_from" db:"available_from"`
	CreatedAt     string      `json:"created_at" db:"created_at"`
	IsActive      *bool       `json:"is_active,omitempty" db:"is_active"`
	IsAvailable   *bool       `json:"is_available,omitempty" db:"is_available"`
	OtherFacility string      `json:"other_facility,omitempty" db:"other_facility"`
	Facilities    FacilityMap `json:"facilities,omitempty" db:"facilities"`
	Amenities     AmenityList `json:"amenities,omitempty" db:"amenities"`
	Relevance     float64     `json:"relevance,omitempty" db:"-"`
}

// Available reports whether the listing is open for booking. A listing counts
// as available unless it is explicitly marked unavailable or inactive.
func (p *Property) Available() bool {
	if p.IsAvailable != nil && !*p.IsAvailable {
		return false
	}
	if p.IsActive != nil && !*p.IsActive {
		return false
	}
	return true
}

// Bedrooms returns the bedroom count resolved through the canonical facility key.
func (p *Property) Bedrooms() int {
	return p.Facilities.Count("bedroom")
}

// Bathrooms returns the bathroom count resolved through the canonical facility key.
func (p *Property) Bathrooms() int {
	return p.Facilities.Count("bathroom")
}

// CanonicalFacilityKey folds the historical key spellings for a facility into
// one canonical lowercase form (Bedrooms/bedrooms/Bedroom/bedroom -> bedroom).
func CanonicalFacilityKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "bedrooms":
		return "bedroom"
	case "bathrooms":
		return "bathroom"
	}
	return key
}

// FacilityMap maps a canonical facility name to its count.
type FacilityMap map[string]int

// Count returns the count for a facility, 0 when absent.
func (f FacilityMap) Count(name string) int {
	if f == nil {
		return 0
	}
	return f[CanonicalFacilityKey(name)]
}

// Value implements driver.Valuer interface
func (f FacilityMap) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner interface
func (f *FacilityMap) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*f = decodeFacilities(string(v))
	case string:
		*f = decodeFacilities(v)
	default:
		log.Printf("Warning: unsupported facilities column type %T, using empty map", value)
		*f = FacilityMap{}
	}
	return nil
}

// UnmarshalJSON accepts either a native object or a JSON-encoded string.
func (f *FacilityMap) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			log.Printf("Warning: malformed facilities string, using empty map: %v", err)
			*f = FacilityMap{}
			return nil
		}
		*f = decodeFacilities(inner)
		return nil
	}
	*f = decodeFacilities(s)
	return nil
}

// decodeFacilities parses a facilities payload, canonicalizing keys and
// coercing counts. Malformed payloads degrade to an empty map.
func decodeFacilities(raw string) FacilityMap {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var m map[string]interface{}
	if err := utils.ParseLenientJSON(raw, &m); err != nil {
		log.Printf("Warning: malformed facilities JSON, using empty map: %v", err)
		return FacilityMap{}
	}
	out := make(FacilityMap, len(m))
	for k, v := range m {
		out[CanonicalFacilityKey(k)] = CoerceFacilityCount(v)
	}
	return out
}

// CoerceFacilityCount turns a facility count of any JSON type into an int,
// 0 on failure. Legacy feeds encode counts as numbers, numeric strings, or
// booleans interchangeably.
func CoerceFacilityCount(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(parsed)
		}
	}
	return 0
}

// AmenityList is the list of amenity names attached to a listing.
type AmenityList []string

// Value implements driver.Valuer interface
func (a AmenityList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface
func (a *AmenityList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*a = decodeAmenities(string(v))
	case string:
		*a = decodeAmenities(v)
	default:
		log.Printf("Warning: unsupported amenities column type %T, using empty list", value)
		*a = AmenityList{}
	}
	return nil
}

// UnmarshalJSON accepts either a native array or a JSON-encoded string.
func (a *AmenityList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = nil
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			log.Printf("Warning: malformed amenities string, using empty list: %v", err)
			*a = AmenityList{}
			return nil
		}
		*a = decodeAmenities(inner)
		return nil
	}
	*a = decodeAmenities(s)
	return nil
}

func decodeAmenities(raw string) AmenityList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var list []string
	if err := utils.ParseLenientJSON(raw, &list); err != nil {
		log.Printf("Warning: malformed amenities JSON, using empty list: %v", err)
		return AmenityList{}
	}
	out := make(AmenityList, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
