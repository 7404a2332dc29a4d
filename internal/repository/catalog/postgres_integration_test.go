package catalog

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
	"reseller-portal/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetCatalogTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE pricing_options, products, rate_plans, features RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func TestPostgresCatalog_ProductRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCatalogTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	monthly := decimal.RequireFromString("29.17")
	term := 24
	saved, err := repo.UpsertProduct(ctx, domain.Product{
		Name:           "Axon 12",
		Description:    "Flagship handset",
		Category:       domain.CategoryPhone,
		IsActive:       true,
		Specifications: map[string]string{"display": "6.4in OLED"},
		PricingOptions: []domain.PricingOption{
			{Name: "Pay in full", Kind: domain.PricingFullPayment,
				DownPayment: decimal.RequireFromString("799.99"), TotalCost: decimal.RequireFromString("799.99")},
			{Name: "24-month financing", Kind: domain.PricingFinanced,
				DownPayment: decimal.RequireFromString("99.99"), MonthlyPayment: &monthly, TermMonths: &term,
				TotalCost: decimal.RequireFromString("800.07"), IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("upsert product: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("no id generated")
	}
	if len(saved.PricingOptions) != 2 {
		t.Fatalf("expected 2 pricing options, got %d", len(saved.PricingOptions))
	}
	// the default sorts first
	def := saved.PricingOptions[0]
	if !def.IsDefault || def.Kind != domain.PricingFinanced {
		t.Fatalf("unexpected default option: %+v", def)
	}
	if def.MonthlyPayment == nil || !def.MonthlyPayment.Equal(monthly) {
		t.Fatalf("monthly payment lost: %+v", def.MonthlyPayment)
	}
	if saved.Specifications["display"] != "6.4in OLED" {
		t.Fatalf("specifications lost: %+v", saved.Specifications)
	}

	got, err := repo.GetProduct(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Axon 12" || len(got.PricingOptions) != 2 {
		t.Fatalf("unexpected product: %+v", got)
	}

	active, err := repo.ListActiveProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active product, got %d", len(active))
	}

	if err := repo.DeactivateProduct(ctx, saved.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err = repo.ListActiveProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated product still listed: %+v", active)
	}
	// still fetchable by id for admin edit screens
	if _, err := repo.GetProduct(ctx, saved.ID); err != nil {
		t.Fatalf("get deactivated product: %v", err)
	}
}

func TestPostgresCatalog_GetProductNotFound(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCatalogTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	_, err := repo.GetProduct(ctx, "00000000-0000-4000-8000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresCatalog_RatePlansAndFeatures(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCatalogTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	plan, err := repo.UpsertRatePlan(ctx, domain.RatePlan{
		Name:          "Unlimited Plus",
		MonthlyCost:   decimal.RequireFromString("55.00"),
		DataAllowance: "Unlimited",
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("upsert rate plan: %v", err)
	}
	if !plan.MonthlyCost.Equal(decimal.RequireFromString("55")) {
		t.Fatalf("monthly cost mangled: %s", plan.MonthlyCost)
	}

	feature, err := repo.UpsertFeature(ctx, domain.Feature{
		Name:        "Device Protection",
		Type:        domain.FeatureInsurance,
		MonthlyCost: decimal.RequireFromString("12.00"),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("upsert feature: %v", err)
	}

	plans, err := repo.ListActiveRatePlans(ctx)
	if err != nil || len(plans) != 1 {
		t.Fatalf("list rate plans: %v count=%d", err, len(plans))
	}
	features, err := repo.ListActiveFeatures(ctx)
	if err != nil || len(features) != 1 {
		t.Fatalf("list features: %v count=%d", err, len(features))
	}

	if err := repo.DeactivateRatePlan(ctx, plan.ID); err != nil {
		t.Fatalf("deactivate rate plan: %v", err)
	}
	if err := repo.DeactivateFeature(ctx, feature.ID); err != nil {
		t.Fatalf("deactivate feature: %v", err)
	}
	if plans, _ = repo.ListActiveRatePlans(ctx); len(plans) != 0 {
		t.Fatalf("deactivated plan still listed: %+v", plans)
	}
	if features, _ = repo.ListActiveFeatures(ctx); len(features) != 0 {
		t.Fatalf("deactivated feature still listed: %+v", features)
	}
}
