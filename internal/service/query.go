package service

import (
	"context"
	"time"

	"rentscope/internal/model"
	"rentscope/internal/query"
)

// PropertyStore is the storage contract the query service needs. The concrete
// implementation lives in the repository package; tests use in-memory stubs.
type PropertyStore interface {
	ListProperties(ctx context.Context) ([]model.Property, error)
	GetPropertyByID(ctx context.Context, id int64) (*model.Property, error)
	LogSearch(ctx context.Context, queryText string, criteria *model.FilterCriteria, resultCount int, propertyIDs []int64, responseTimeMs int) error
	LogFeedback(ctx context.Context, searchID string, propertyID int64, action string) error
}

// QueryService orchestrates the property query flow: fetch the collection,
// run the in-memory engine passes, and page the result.
type QueryService struct {
	store  PropertyStore
	engine *query.Engine
}

// NewQueryService creates a new query service
func NewQueryService(store PropertyStore, engine *query.Engine) *QueryService {
	return &QueryService{
		store:  store,
		engine: engine,
	}
}

// Search runs a free-text search, optionally constrained by filter criteria.
func (s *QueryService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	filtered := s.engine.Filter(props, req.Criteria)
	results := s.engine.Search(filtered, req.Query)
	total := len(results)

	page := paginate(results, req.Options)
	took := time.Since(startTime).Milliseconds()

	// Log search (non-blocking)
	go func() {
		propertyIDs := make([]int64, len(page))
		for i, p := range page {
			propertyIDs[i] = p.ID
		}
		_ = s.store.LogSearch(context.Background(), req.Query, req.Criteria, total, propertyIDs, int(took))
	}()

	return &model.SearchResponse{
		Results: page,
		Total:   total,
		HasMore: hasMore(total, req.Options),
		Took:    took,
	}, nil
}

// Browse returns a filtered, sorted page of the property collection.
func (s *QueryService) Browse(ctx context.Context, criteria *model.FilterCriteria, sortKey query.SortKey, order query.Order, opts *model.SearchOptions) (*model.PropertyListResponse, error) {
	startTime := time.Now()

	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	filtered := s.engine.Filter(props, criteria)
	sorted := s.engine.Sort(filtered, sortKey, order)
	total := len(sorted)

	return &model.PropertyListResponse{
		Results: paginate(sorted, opts),
		Total:   total,
		HasMore: hasMore(total, opts),
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// Statistics computes the aggregate summary over the whole collection.
func (s *QueryService) Statistics(ctx context.Context) (*model.Summary, error) {
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	summary := s.engine.Statistics(props)
	return &summary, nil
}

// Recommend ranks the collection against a preference profile.
func (s *QueryService) Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error) {
	startTime := time.Now()

	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	results := s.engine.Recommend(props, req.Preferences, req.Limit)

	return &model.RecommendationResponse{
		Results: results,
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// GetProperty retrieves a single property by ID
func (s *QueryService) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	return s.store.GetPropertyByID(ctx, id)
}

// LogFeedback logs user feedback/action
func (s *QueryService) LogFeedback(ctx context.Context, searchID string, propertyID int64, action string) error {
	return s.store.LogFeedback(ctx, searchID, propertyID, action)
}

// paginate slices a result set by the request options. A nil options block
// returns the whole set.
func paginate(props []model.Property, opts *model.SearchOptions) []model.Property {
	if opts == nil {
		return props
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(props) {
		return []model.Property{}
	}
	end := len(props)
	if opts.Limit > 0 && offset+opts.Limit < end {
		end = offset + opts.Limit
	}
	return props[offset:end]
}

func hasMore(total int, opts *model.SearchOptions) bool {
	if opts == nil || opts.Limit <= 0 {
		return false
	}
	return opts.Offset+opts.Limit < total
}
