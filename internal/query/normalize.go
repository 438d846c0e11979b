package query

import (
	"strings"

	"rentscope/internal/model"
	"rentscope/internal/utils"
)

// NormalizeFacilities converts a facilities payload of any supported shape
// (native map, JSON-encoded string, nil) into a FacilityMap with canonical
// keys. Malformed payloads degrade to an empty map with a warning.
func (e *Engine) NormalizeFacilities(raw interface{}) model.FacilityMap {
	switch v := raw.(type) {
	case nil:
		return nil
	case model.FacilityMap:
		return v
	case map[string]int:
		out := make(model.FacilityMap, len(v))
		for k, n := range v {
			out[model.CanonicalFacilityKey(k)] = n
		}
		return out
	case map[string]interface{}:
		out := make(model.FacilityMap, len(v))
		for k, n := range v {
			out[model.CanonicalFacilityKey(k)] = model.CoerceFacilityCount(n)
		}
		return out
	case []byte:
		return e.normalizeFacilitiesString(string(v))
	case string:
		return e.normalizeFacilitiesString(v)
	default:
		e.warn("facilities payload has unsupported type %T, using empty map", raw)
		return model.FacilityMap{}
	}
}

func (e *Engine) normalizeFacilitiesString(raw string) model.FacilityMap {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var m map[string]interface{}
	if err := utils.ParseLenientJSON(raw, &m); err != nil {
		e.warn("malformed facilities JSON, using empty map: %v", err)
		return model.FacilityMap{}
	}
	out := make(model.FacilityMap, len(m))
	for k, n := range m {
		out[model.CanonicalFacilityKey(k)] = model.CoerceFacilityCount(n)
	}
	return out
}

// NormalizeAmenities converts an amenities payload of any supported shape
// (native list, JSON-encoded string, nil) into an AmenityList. Malformed
// payloads degrade to an empty list with a warning.
func (e *Engine) NormalizeAmenities(raw interface{}) model.AmenityList {
	switch v := raw.(type) {
	case nil:
		return nil
	case model.AmenityList:
		return v
	case []string:
		return cleanAmenities(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return cleanAmenities(out)
	case []byte:
		return e.normalizeAmenitiesString(string(v))
	case string:
		return e.normalizeAmenitiesString(v)
	default:
		e.warn("amenities payload has unsupported type %T, using empty list", raw)
		return model.AmenityList{}
	}
}

func (e *Engine) normalizeAmenitiesString(raw string) model.AmenityList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var list []string
	if err := utils.ParseLenientJSON(raw, &list); err != nil {
		e.warn("malformed amenities JSON, using empty list: %v", err)
		return model.AmenityList{}
	}
	return cleanAmenities(list)
}

func cleanAmenities(list []string) model.AmenityList {
	out := make(model.AmenityList, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
