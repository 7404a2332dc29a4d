package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testProduct() domain.Product {
	return domain.Product{
		ID:       "p1",
		Name:     "Phone X",
		Category: domain.CategoryPhone,
		IsActive: true,
	}
}

func testOption() *domain.PricingOption {
	return &domain.PricingOption{
		ID:             "po1",
		ProductID:      "p1",
		Name:           "24-month installments",
		Kind:           domain.PricingFinanced,
		DownPayment:    dec("100"),
		MonthlyPayment: decPtr("20"),
		TotalCost:      dec("580"),
	}
}

func TestBuildRequiresPricingOption(t *testing.T) {
	_, err := Build(testProduct(), nil, nil, nil, 1)
	ve, ok := domain.AsValidation(err)
	if !ok || ve.Code != domain.CodeMissingPricingOption {
		t.Fatalf("expected missing_pricing_option, got %v", err)
	}
}

func TestBuildRejectsForeignPricingOption(t *testing.T) {
	opt := testOption()
	opt.ProductID = "other-product"
	_, err := Build(testProduct(), opt, nil, nil, 1)
	ve, ok := domain.AsValidation(err)
	if !ok || ve.Code != domain.CodePricingOptionMismatch {
		t.Fatalf("expected pricing_option_mismatch, got %v", err)
	}
}

func TestBuildRejectsBadQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		_, err := Build(testProduct(), testOption(), nil, nil, qty)
		ve, ok := domain.AsValidation(err)
		if !ok || ve.Code != domain.CodeInvalidQuantity {
			t.Fatalf("quantity %d: expected invalid_quantity, got %v", qty, err)
		}
	}
}

func TestBuildDedupesFeatures(t *testing.T) {
	f1 := domain.Feature{ID: "f1", Name: "Insurance", MonthlyCost: dec("10")}
	f2 := domain.Feature{ID: "f2", Name: "Hotspot", MonthlyCost: dec("5")}
	item, err := Build(testProduct(), testOption(), nil, []domain.Feature{f1, f2, f1}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(item.SelectedFeatures) != 2 {
		t.Fatalf("expected 2 features, got %d", len(item.SelectedFeatures))
	}
	if item.SelectedFeatures[0].ID != "f1" || item.SelectedFeatures[1].ID != "f2" {
		t.Fatalf("feature order not preserved: %+v", item.SelectedFeatures)
	}
}

func TestBuildGeneratesUniqueIDs(t *testing.T) {
	a, err := Build(testProduct(), testOption(), nil, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Build(testProduct(), testOption(), nil, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
}

func TestBuildCopiesRatePlan(t *testing.T) {
	plan := &domain.RatePlan{ID: "rp1", Name: "Unlimited", MonthlyCost: dec("45")}
	item, err := Build(testProduct(), testOption(), plan, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.SelectedRatePlan == nil || item.SelectedRatePlan == plan {
		t.Fatalf("expected an embedded copy of the rate plan")
	}
	plan.Name = "changed after add"
	if item.SelectedRatePlan.Name != "Unlimited" {
		t.Fatalf("line item should not track later edits, got %q", item.SelectedRatePlan.Name)
	}
}

func TestCheckPricingOption(t *testing.T) {
	cases := []struct {
		name string
		opt  domain.PricingOption
		ok   bool
	}{
		{"full payment", domain.PricingOption{ID: "a", ProductID: "p", Name: "Full", Kind: domain.PricingFullPayment, DownPayment: dec("999"), TotalCost: dec("999")}, true},
		{"financed", domain.PricingOption{ID: "a", ProductID: "p", Name: "Fin", Kind: domain.PricingFinanced, DownPayment: dec("0"), MonthlyPayment: decPtr("41.62"), TotalCost: dec("999")}, true},
		{"financed without monthly", domain.PricingOption{ID: "a", ProductID: "p", Name: "Fin", Kind: domain.PricingFinanced, DownPayment: dec("0"), TotalCost: dec("999")}, false},
		{"unknown kind", domain.PricingOption{ID: "a", ProductID: "p", Name: "??", Kind: "lease", DownPayment: dec("0"), TotalCost: dec("0")}, false},
		{"negative down payment", domain.PricingOption{ID: "a", ProductID: "p", Name: "Full", Kind: domain.PricingFullPayment, DownPayment: dec("-1"), TotalCost: dec("0")}, false},
		{"missing id", domain.PricingOption{ProductID: "p", Name: "Full", Kind: domain.PricingFullPayment}, false},
	}
	for _, tc := range cases {
		err := CheckPricingOption(tc.opt)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			ve, isVE := domain.AsValidation(err)
			if !isVE || ve.Code != domain.CodeMalformedRecord {
				t.Fatalf("%s: expected malformed_record, got %v", tc.name, err)
			}
		}
	}
}

func TestCheckProductValidatesCategoryAndOptions(t *testing.T) {
	p := testProduct()
	p.PricingOptions = []domain.PricingOption{*testOption()}
	if err := CheckProduct(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Category = "laptop"
	if err := CheckProduct(p); err == nil {
		t.Fatal("expected category error")
	}

	p = testProduct()
	bad := *testOption()
	bad.MonthlyPayment = nil
	p.PricingOptions = []domain.PricingOption{bad}
	if err := CheckProduct(p); err == nil {
		t.Fatal("expected nested pricing option error")
	}
}

func TestCheckRatePlanAndFeature(t *testing.T) {
	if err := CheckRatePlan(domain.RatePlan{ID: "rp", Name: "Plan", MonthlyCost: dec("30")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckRatePlan(domain.RatePlan{ID: "rp", Name: "Plan", MonthlyCost: dec("-1")}); err == nil {
		t.Fatal("expected negative cost error")
	}
	if err := CheckFeature(domain.Feature{ID: "f", Name: "Ins", MonthlyCost: dec("10")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckFeature(domain.Feature{Name: "no id"}); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestValidationErrorUnwrapsThroughWrapping(t *testing.T) {
	err := CheckFeature(domain.Feature{})
	wrapped := errorsJoin(err)
	if _, ok := domain.AsValidation(wrapped); !ok {
		t.Fatalf("expected validation error through wrap, got %v", wrapped)
	}
}

func errorsJoin(err error) error {
	return errors.Join(errors.New("context"), err)
}
