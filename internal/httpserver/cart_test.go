package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func catalogFixture() *stubCatalog {
	monthly := dec("20")
	term := 24
	return &stubCatalog{
		products: map[string]domain.Product{
			"p1": {
				ID: "p1", Name: "Phone X", Category: domain.CategoryPhone, IsActive: true,
				PricingOptions: []domain.PricingOption{
					{ID: "po1", ProductID: "p1", Name: "Financed", Kind: domain.PricingFinanced,
						DownPayment: dec("100"), MonthlyPayment: &monthly, TermMonths: &term, TotalCost: dec("580")},
				},
			},
		},
		ratePlans: map[string]domain.RatePlan{
			"rp1": {ID: "rp1", Name: "Unlimited", MonthlyCost: dec("45"), IsActive: true},
		},
		features: map[string]domain.Feature{
			"f1": {ID: "f1", Name: "Insurance", Type: domain.FeatureInsurance, MonthlyCost: dec("10"), IsActive: true},
		},
	}
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type cartPayload struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Subtotal            string `json:"subtotal"`
	Taxes               string `json:"taxes"`
	Fees                string `json:"fees"`
	TotalDueNow         string `json:"total_due_now"`
	TotalMonthlyCharges string `json:"total_monthly_charges"`
}

func parseCart(t *testing.T, rec *httptest.ResponseRecorder) cartPayload {
	t.Helper()
	var out cartPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode cart: %v body=%s", err, rec.Body.String())
	}
	return out
}

func TestGetCart_EmptyStillHasProcessingFee(t *testing.T) {
	deps := testDeps()
	router := newTestRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	cart := parseCart(t, rec)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.Fees != "2.99" || cart.TotalDueNow != "2.99" {
		t.Fatalf("unexpected totals: %+v", cart)
	}
}

func TestAddCartItem_FullFlow(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	body := `{"product_id":"p1","pricing_option_id":"po1","rate_plan_id":"rp1","feature_ids":["f1"],"quantity":2}`
	rec := doJSON(t, router, http.MethodPost, "/cart/items", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	cart := parseCart(t, rec)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", cart.Items)
	}
	// 2 x 100 down, 8% tax, 2.99 fee; monthly 2 x (20+45+10)
	if cart.Subtotal != "200" || cart.Taxes != "16" || cart.TotalDueNow != "218.99" {
		t.Fatalf("unexpected totals: %+v", cart)
	}
	if cart.TotalMonthlyCharges != "150" {
		t.Fatalf("unexpected monthly: %+v", cart)
	}

	// the sequence survives a fresh request via the slot store
	rec = doJSON(t, router, http.MethodGet, "/cart", "")
	cart = parseCart(t, rec)
	if len(cart.Items) != 1 || cart.TotalDueNow != "218.99" {
		t.Fatalf("cart not persisted across requests: %+v", cart)
	}
}

func TestAddCartItem_MissingPricingOption(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), domain.CodeMissingPricingOption) {
		t.Fatalf("expected %s code, body=%s", domain.CodeMissingPricingOption, rec.Body.String())
	}
}

func TestAddCartItem_ForeignPricingOption(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"other","quantity":1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), domain.CodePricingOptionMismatch) {
		t.Fatalf("expected %s code, body=%s", domain.CodePricingOptionMismatch, rec.Body.String())
	}
}

func TestAddCartItem_BadQuantity(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"po1","quantity":0}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), domain.CodeInvalidQuantity) {
		t.Fatalf("expected %s code, body=%s", domain.CodeInvalidQuantity, rec.Body.String())
	}
}

func TestUpdateCartItem_ZeroQuantityRemoves(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"po1","quantity":1}`)
	cart := parseCart(t, rec)
	if len(cart.Items) != 1 {
		t.Fatalf("setup failed: %+v", cart)
	}
	itemID := cart.Items[0].ID

	rec = doJSON(t, router, http.MethodPatch, "/cart/items/"+itemID, `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	cart = parseCart(t, rec)
	if len(cart.Items) != 0 {
		t.Fatalf("zero quantity should remove the item: %+v", cart.Items)
	}
}

func TestRemoveCartItem_UnknownIDIsNoop(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	router := newTestRouter(deps)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"po1","quantity":1}`)
	rec := doJSON(t, router, http.MethodDelete, "/cart/items/no-such-id", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	cart := parseCart(t, rec)
	if len(cart.Items) != 1 {
		t.Fatalf("no-op remove must keep the cart intact: %+v", cart.Items)
	}
}

func TestCheckout_ClearsCartOnSuccess(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	deps.Checkout = &stubCheckout{order: &domain.Order{ID: "order-1", Status: domain.OrderPending}}
	router := newTestRouter(deps)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"po1","quantity":1}`)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"addresses":{},"flags":{},"customer_info":{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", "")
	cart := parseCart(t, rec)
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout: %+v", cart.Items)
	}
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	deps := testDeps()
	deps.Catalog = catalogFixture()
	deps.Checkout = &stubCheckout{err: domain.NewValidationError(domain.CodeIncompleteAddress, "shipping address is missing required fields")}
	router := newTestRouter(deps)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"p1","pricing_option_id":"po1","quantity":1}`)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"addresses":{},"flags":{},"customer_info":{}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", "")
	cart := parseCart(t, rec)
	if len(cart.Items) != 1 {
		t.Fatalf("failed checkout must keep the cart: %+v", cart.Items)
	}
}
