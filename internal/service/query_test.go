package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rentscope/internal/model"
	"rentscope/internal/query"
)

// stubStore is an in-memory PropertyStore for service tests.
type stubStore struct {
	mu         sync.Mutex
	props      []model.Property
	listErr    error
	searchLogs []string
	feedback   []string
}

func (s *stubStore) ListProperties(ctx context.Context) ([]model.Property, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.props, nil
}

func (s *stubStore) GetPropertyByID(ctx context.Context, id int64) (*model.Property, error) {
	for i := range s.props {
		if s.props[i].ID == id {
			return &s.props[i], nil
		}
	}
	return nil, nil
}

func (s *stubStore) LogSearch(ctx context.Context, queryText string, criteria *model.FilterCriteria, resultCount int, propertyIDs []int64, responseTimeMs int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchLogs = append(s.searchLogs, queryText)
	return nil
}

func (s *stubStore) LogFeedback(ctx context.Context, searchID string, propertyID int64, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, action)
	return nil
}

func testProperties() []model.Property {
	return []model.Property{
		{ID: 1, PropertyType: "Condo", Address: "Orchard Road", Price: 30000, Rating: 4.5},
		{ID: 2, PropertyType: "Villa", Address: "Sentosa Cove", Price: 90000, Rating: 4.8},
		{ID: 3, PropertyType: "Condo", Address: "Bukit Timah", Price: 20000, Rating: 3.9},
	}
}

func newTestService(store *stubStore) *QueryService {
	discard := func(format string, args ...interface{}) {}
	return NewQueryService(store, query.New(discard))
}

func TestSearchFiltersThenRanks(t *testing.T) {
	store := &stubStore{props: testProperties()}
	svc := newTestService(store)

	maxPrice := 50000.0
	resp, err := svc.Search(context.Background(), &model.SearchRequest{
		Query:    "condo",
		Criteria: &model.FilterCriteria{PriceMax: &maxPrice},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2 (villa is over budget)", resp.Total)
	}
	for _, p := range resp.Results {
		if p.PropertyType != "Condo" {
			t.Errorf("unexpected result type %q", p.PropertyType)
		}
	}
	if resp.Took < 0 {
		t.Errorf("Took = %d, want non-negative", resp.Took)
	}
}

func TestSearchStoreErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	svc := newTestService(&stubStore{listErr: wantErr})

	_, err := svc.Search(context.Background(), &model.SearchRequest{Query: "condo"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Search() error = %v, want %v", err, wantErr)
	}
}

func TestBrowseSortsAndPages(t *testing.T) {
	store := &stubStore{props: testProperties()}
	svc := newTestService(store)

	resp, err := svc.Browse(context.Background(), nil, query.SortByPrice, query.OrderAsc,
		&model.SearchOptions{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("page size = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].ID != 3 || resp.Results[1].ID != 1 {
		t.Errorf("page order = [%d %d], want [3 1]", resp.Results[0].ID, resp.Results[1].ID)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3", resp.Total)
	}
	if !resp.HasMore {
		t.Error("HasMore = false, want true with one record beyond the page")
	}
}

func TestStatisticsOverWholeCollection(t *testing.T) {
	svc := newTestService(&stubStore{props: testProperties()})

	s, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.TypeCounts["Condo"] != 2 {
		t.Errorf("TypeCounts[Condo] = %d, want 2", s.TypeCounts["Condo"])
	}
}

func TestRecommendPassesPreferences(t *testing.T) {
	svc := newTestService(&stubStore{props: testProperties()})

	wantType := "Villa"
	resp, err := svc.Recommend(context.Background(), &model.RecommendationRequest{
		Preferences: model.Preferences{PropertyType: &wantType},
		Limit:       2,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Property.ID != 2 {
		t.Errorf("best = %d, want the villa", resp.Results[0].Property.ID)
	}
}

func TestGetProperty(t *testing.T) {
	svc := newTestService(&stubStore{props: testProperties()})

	p, err := svc.GetProperty(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetProperty() error = %v", err)
	}
	if p == nil || p.ID != 2 {
		t.Fatalf("GetProperty(2) = %v", p)
	}

	missing, err := svc.GetProperty(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetProperty(99) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetProperty(99) = %v, want nil", missing)
	}
}

func TestPaginate(t *testing.T) {
	props := testProperties()

	tests := []struct {
		name    string
		opts    *model.SearchOptions
		wantIDs []int64
	}{
		{name: "Nil options returns all", opts: nil, wantIDs: []int64{1, 2, 3}},
		{name: "Limit only", opts: &model.SearchOptions{Limit: 2}, wantIDs: []int64{1, 2}},
		{name: "Offset into the set", opts: &model.SearchOptions{Limit: 2, Offset: 2}, wantIDs: []int64{3}},
		{name: "Offset past the end", opts: &model.SearchOptions{Limit: 2, Offset: 10}, wantIDs: []int64{}},
		{name: "Negative offset clamps", opts: &model.SearchOptions{Limit: 1, Offset: -3}, wantIDs: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(props, tt.opts)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("paginate() len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("item %d = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestHasMore(t *testing.T) {
	if hasMore(10, nil) {
		t.Error("hasMore with nil options must be false")
	}
	if !hasMore(10, &model.SearchOptions{Limit: 5, Offset: 0}) {
		t.Error("hasMore(10, limit 5) = false, want true")
	}
	if hasMore(10, &model.SearchOptions{Limit: 5, Offset: 5}) {
		t.Error("hasMore(10, offset 5 limit 5) = true, want false")
	}
}
