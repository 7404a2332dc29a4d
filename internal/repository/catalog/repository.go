package catalog

import (
	"context"

	"reseller-portal/internal/domain"
)

// Repository is the catalog store: devices with their pricing options,
// rate plans and add-on features. List methods return active records
// only; Get methods return any record so admin screens can edit
// deactivated entries.
type Repository interface {
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id string) error

	ListActiveRatePlans(ctx context.Context) ([]domain.RatePlan, error)
	GetRatePlan(ctx context.Context, id string) (*domain.RatePlan, error)
	UpsertRatePlan(ctx context.Context, p domain.RatePlan) (*domain.RatePlan, error)
	DeactivateRatePlan(ctx context.Context, id string) error

	ListActiveFeatures(ctx context.Context) ([]domain.Feature, error)
	GetFeature(ctx context.Context, id string) (*domain.Feature, error)
	UpsertFeature(ctx context.Context, f domain.Feature) (*domain.Feature, error)
	DeactivateFeature(ctx context.Context, id string) error
}
