package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"rentscope/internal/model"
	"rentscope/internal/query"
	"rentscope/internal/service"

	"github.com/gin-gonic/gin"
)

// QueryHandler handles property query HTTP requests
type QueryHandler struct {
	queryService *service.QueryService
	defaultLimit int
	maxLimit     int
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService, defaultLimit, maxLimit int) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Search handles POST /api/v1/search
func (h *QueryHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Options = h.capOptions(req.Options)

	response, err := h.queryService.Search(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Browse handles GET /api/v1/properties with filter/sort query parameters.
// Malformed parameter values drop that constraint instead of failing the
// request, matching the filter panel's partially-entered state.
func (h *QueryHandler) Browse(c *gin.Context) {
	criteria := &model.FilterCriteria{
		PriceMin:        floatParam(c, "price_min"),
		PriceMax:        floatParam(c, "price_max"),
		MinRating:       floatParam(c, "min_rating"),
		PropertyType:    stringParam(c, "property_type"),
		UnitType:        stringParam(c, "unit_type"),
		Location:        stringParam(c, "location"),
		AvailableBy:     stringParam(c, "available_by"),
		MinBedrooms:     intParam(c, "min_bedrooms"),
		MinBathrooms:    intParam(c, "min_bathrooms"),
		Available:       boolParam(c, "available"),
		MaxPricePerSqft: floatParam(c, "max_price_per_sqft"),
		MaxAgeDays:      intParam(c, "max_age_days"),
	}
	if amenities := c.Query("amenities"); amenities != "" {
		for _, a := range strings.Split(amenities, ",") {
			if a = strings.TrimSpace(a); a != "" {
				criteria.Amenities = append(criteria.Amenities, a)
			}
		}
	}

	sortKey := query.ParseSortKey(c.DefaultQuery("sort", ""))
	order := query.ParseOrder(c.DefaultQuery("order", "asc"))

	opts := h.capOptions(&model.SearchOptions{
		Limit:  intParamOr(c, "limit", h.defaultLimit),
		Offset: intParamOr(c, "offset", 0),
	})

	response, err := h.queryService.Browse(c.Request.Context(), criteria, sortKey, order, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProperty handles GET /api/v1/properties/:id
func (h *QueryHandler) GetProperty(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, err := h.queryService.GetProperty(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}

	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Statistics handles GET /api/v1/statistics
func (h *QueryHandler) Statistics(c *gin.Context) {
	summary, err := h.queryService.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Statistics failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Recommend handles POST /api/v1/recommendations
func (h *QueryHandler) Recommend(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Limit <= 0 {
		req.Limit = query.DefaultRecommendLimit
	}
	if req.Limit > h.maxLimit {
		req.Limit = h.maxLimit
	}

	response, err := h.queryService.Recommend(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// capOptions validates paging options and caps the limit.
func (h *QueryHandler) capOptions(opts *model.SearchOptions) *model.SearchOptions {
	if opts == nil {
		return &model.SearchOptions{Limit: h.defaultLimit}
	}
	if opts.Limit <= 0 {
		opts.Limit = h.defaultLimit
	}
	if opts.Limit > h.maxLimit {
		opts.Limit = h.maxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

// Query parameter helpers. Malformed values warn and yield no constraint.

func stringParam(c *gin.Context, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

func floatParam(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, ignoring", raw, name)
		return nil
	}
	return &v
}

func intParam(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, ignoring", raw, name)
		return nil
	}
	return &v
}

func intParamOr(c *gin.Context, name string, fallback int) int {
	if v := intParam(c, name); v != nil {
		return *v
	}
	return fallback
}

func boolParam(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, ignoring", raw, name)
		return nil
	}
	return &v
}
