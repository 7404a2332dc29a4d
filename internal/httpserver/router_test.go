package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
	checkoutsvc "reseller-portal/internal/service/checkout"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubIdentity struct {
	user *domain.User
}

func (s *stubIdentity) Signup(_ context.Context, email, _ string) (*domain.User, error) {
	return &domain.User{ID: "new", Email: email, Role: domain.RoleCustomer}, nil
}

func (s *stubIdentity) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, "access-token", nil
}

func (s *stubIdentity) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if s.user == nil || token != "valid-token" {
		return nil, domain.ErrNotFound
	}
	return s.user, nil
}

func (s *stubIdentity) AccessTTLSeconds() int { return 3600 }

type stubCatalog struct {
	products  map[string]domain.Product
	ratePlans map[string]domain.RatePlan
	features  map[string]domain.Feature
}

func (s *stubCatalog) ListActiveProducts(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubCatalog) UpsertProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubCatalog) DeactivateProduct(context.Context, string) error { return nil }

func (s *stubCatalog) ListActiveRatePlans(context.Context) ([]domain.RatePlan, error) {
	return nil, nil
}

func (s *stubCatalog) GetRatePlan(_ context.Context, id string) (*domain.RatePlan, error) {
	p, ok := s.ratePlans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubCatalog) UpsertRatePlan(_ context.Context, p domain.RatePlan) (*domain.RatePlan, error) {
	return &p, nil
}

func (s *stubCatalog) DeactivateRatePlan(context.Context, string) error { return nil }

func (s *stubCatalog) ListActiveFeatures(context.Context) ([]domain.Feature, error) {
	return nil, nil
}

func (s *stubCatalog) GetFeature(_ context.Context, id string) (*domain.Feature, error) {
	f, ok := s.features[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *stubCatalog) UpsertFeature(_ context.Context, f domain.Feature) (*domain.Feature, error) {
	return &f, nil
}

func (s *stubCatalog) DeactivateFeature(context.Context, string) error { return nil }

type stubCheckout struct {
	order *domain.Order
	err   error
}

func (s *stubCheckout) Submit(_ context.Context, _ string, _ domain.Cart, _ checkoutsvc.SubmitInput) (*domain.Order, error) {
	return s.order, s.err
}

type stubOrders struct{}

func (stubOrders) ListForUser(context.Context, string) ([]domain.Order, error) { return nil, nil }
func (stubOrders) Get(context.Context, domain.User, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (stubOrders) UpdateStatus(_ context.Context, requester domain.User, id string, status domain.OrderStatus, tracking *string) (*domain.Order, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	o := &domain.Order{ID: id, Status: status}
	if tracking != nil {
		o.TrackingNumber = *tracking
	}
	return o, nil
}

type stubSubscribers struct{}

func (stubSubscribers) ListForUser(context.Context, string) ([]domain.Subscriber, error) {
	return nil, nil
}
func (stubSubscribers) Get(context.Context, domain.User, string) (*domain.Subscriber, error) {
	return nil, domain.ErrNotFound
}
func (stubSubscribers) Update(context.Context, domain.User, string, domain.SubscriberUpdate) (*domain.Subscriber, error) {
	return nil, domain.ErrNotFound
}

type stubBilling struct{}

func (stubBilling) ListReports(context.Context, string) ([]domain.BillingReport, error) {
	return nil, nil
}
func (stubBilling) GetReport(context.Context, domain.User, string) (*domain.BillingReport, error) {
	return nil, domain.ErrNotFound
}
func (stubBilling) FilterLineItems(context.Context, domain.User, string, domain.BillingFilter) ([]domain.BillingLineItem, error) {
	return nil, nil
}

// memorySlotRepo is an in-memory cart slot store for handler tests.
type memorySlotRepo struct {
	rows map[string][]byte
}

func newMemorySlotRepo() *memorySlotRepo {
	return &memorySlotRepo{rows: map[string][]byte{}}
}

func (m *memorySlotRepo) Load(_ context.Context, ownerID, key string) ([]byte, error) {
	data, ok := m.rows[ownerID+"/"+key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *memorySlotRepo) Save(_ context.Context, ownerID, key string, data []byte) error {
	m.rows[ownerID+"/"+key] = data
	return nil
}

func (m *memorySlotRepo) Delete(_ context.Context, ownerID, key string) error {
	delete(m.rows, ownerID+"/"+key)
	return nil
}

func testDeps() Deps {
	return Deps{
		Identity:    &stubIdentity{user: &domain.User{ID: "u1", Email: "user@example.com", Role: domain.RoleCustomer}},
		Catalog:     &stubCatalog{},
		Checkout:    &stubCheckout{},
		Orders:      stubOrders{},
		Subscribers: stubSubscribers{},
		Billing:     stubBilling{},
		CartSlots:   newMemorySlotRepo(),
	}
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(logDiscard(), nil, deps, nil)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := newTestRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	router := newTestRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutes_ForbiddenForCustomers(t *testing.T) {
	router := newTestRouter(testDeps())

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/p1", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutes_AllowedForAdmins(t *testing.T) {
	deps := testDeps()
	deps.Identity = &stubIdentity{user: &domain.User{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/p1", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
}
