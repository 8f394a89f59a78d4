package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// MockCatalogRepository is an in-memory domain.CatalogRepository
type MockCatalogRepository struct {
	mu          sync.Mutex
	byBarcode   map[string]*domain.Whiskey
	byID        map[string]*domain.Whiskey
	findError   error
	insertError error
	findCalls   int
	inserted    []*domain.Whiskey
	lastFilter  domain.SearchFilter
}

func NewMockCatalogRepository(records ...*domain.Whiskey) *MockCatalogRepository {
	m := &MockCatalogRepository{
		byBarcode: make(map[string]*domain.Whiskey),
		byID:      make(map[string]*domain.Whiskey),
	}
	for _, w := range records {
		m.byBarcode[w.Barcode] = w
		m.byID[w.ID] = w
	}
	return m
}

func (m *MockCatalogRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Whiskey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.findError != nil {
		return nil, m.findError
	}
	if w, ok := m.byBarcode[barcode]; ok {
		return w, nil
	}
	return nil, domain.ErrWhiskeyNotFound
}

func (m *MockCatalogRepository) FindByID(ctx context.Context, id string) (*domain.Whiskey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.byID[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWhiskeyNotFound
}

func (m *MockCatalogRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Whiskey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	out := make([]domain.Whiskey, 0, len(m.byID))
	for _, w := range m.byID {
		out = append(out, *w)
	}
	return out, nil
}

func (m *MockCatalogRepository) Insert(ctx context.Context, w *domain.Whiskey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertError != nil {
		return m.insertError
	}
	m.inserted = append(m.inserted, w)
	m.byID[w.ID] = w
	m.byBarcode[w.Barcode] = w
	return nil
}

// MockUPCClient is a canned domain.UPCClient that counts calls
type MockUPCClient struct {
	mu        sync.Mutex
	responses map[string]*domain.UPCLookupResponse
	err       error
	calls     int
}

func NewMockUPCClient() *MockUPCClient {
	return &MockUPCClient{responses: make(map[string]*domain.UPCLookupResponse)}
}

func (m *MockUPCClient) LookupUPC(ctx context.Context, code string) (*domain.UPCLookupResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[code]; ok {
		return resp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockUPCClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockOpenFoodFactsClient is a canned domain.OpenFoodFactsClient that counts calls
type MockOpenFoodFactsClient struct {
	mu       sync.Mutex
	products map[string]*domain.OFFProduct
	err      error
	calls    int
}

func NewMockOpenFoodFactsClient() *MockOpenFoodFactsClient {
	return &MockOpenFoodFactsClient{products: make(map[string]*domain.OFFProduct)}
}

func (m *MockOpenFoodFactsClient) GetProduct(ctx context.Context, code string) (*domain.OFFProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.products[code]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockOpenFoodFactsClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockReviewRepository is an in-memory domain.ReviewRepository
type MockReviewRepository struct {
	mu       sync.Mutex
	byID     map[string]*domain.Review
	whiskeys map[string]bool
	lastPage domain.Page
}

func NewMockReviewRepository(whiskeyIDs ...string) *MockReviewRepository {
	m := &MockReviewRepository{
		byID:     make(map[string]*domain.Review),
		whiskeys: make(map[string]bool),
	}
	for _, id := range whiskeyIDs {
		m.whiskeys[id] = true
	}
	return m
}

func (m *MockReviewRepository) InsertReview(ctx context.Context, r *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.whiskeys[r.WhiskeyID] {
		return domain.ErrWhiskeyNotFound
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *MockReviewRepository) FindReview(ctx context.Context, id string) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockReviewRepository) UpdateReview(ctx context.Context, r *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[r.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *MockReviewRepository) DeleteReview(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *MockReviewRepository) ListWhiskeyReviews(ctx context.Context, whiskeyID string, page domain.Page) ([]domain.Review, error) {
	return m.list(page, func(r *domain.Review) bool { return r.WhiskeyID == whiskeyID }), nil
}

func (m *MockReviewRepository) ListUserReviews(ctx context.Context, userID string, page domain.Page) ([]domain.Review, error) {
	return m.list(page, func(r *domain.Review) bool { return r.UserID == userID }), nil
}

func (m *MockReviewRepository) list(page domain.Page, keep func(*domain.Review) bool) []domain.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPage = page
	out := make([]domain.Review, 0)
	for _, r := range m.byID {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MockFavoriteRepository is an in-memory domain.FavoriteRepository
type MockFavoriteRepository struct {
	mu    sync.Mutex
	saved map[string]map[string]time.Time
}

func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{saved: make(map[string]map[string]time.Time)}
}

func (m *MockFavoriteRepository) AddFavorite(ctx context.Context, userID, whiskeyID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved[userID] == nil {
		m.saved[userID] = make(map[string]time.Time)
	}
	if _, ok := m.saved[userID][whiskeyID]; !ok {
		m.saved[userID][whiskeyID] = at
	}
	return nil
}

func (m *MockFavoriteRepository) RemoveFavorite(ctx context.Context, userID, whiskeyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved[userID], whiskeyID)
	return nil
}

func (m *MockFavoriteRepository) ListFavorites(ctx context.Context, userID string, page domain.Page) ([]domain.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Favorite, 0)
	for id, at := range m.saved[userID] {
		out = append(out, domain.Favorite{WhiskeyID: id, CreatedAt: at, Whiskey: domain.Whiskey{ID: id}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WhiskeyID < out[j].WhiskeyID })
	return out, nil
}
