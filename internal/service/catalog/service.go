package catalog

import (
	"context"

	"reseller-portal/internal/cart"
	"reseller-portal/internal/domain"
	catalogrepo "reseller-portal/internal/repository/catalog"
)

// Service wraps the catalog store. Reads serve the storefront (active
// records only); writes serve the admin screens and validate records
// before they are stored, so nothing malformed can later enter a cart.
type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListActiveRatePlans(ctx context.Context) ([]domain.RatePlan, error) {
	return s.repo.ListActiveRatePlans(ctx)
}

func (s *Service) GetRatePlan(ctx context.Context, id string) (*domain.RatePlan, error) {
	return s.repo.GetRatePlan(ctx, id)
}

func (s *Service) ListActiveFeatures(ctx context.Context) ([]domain.Feature, error) {
	return s.repo.ListActiveFeatures(ctx)
}

func (s *Service) GetFeature(ctx context.Context, id string) (*domain.Feature, error) {
	return s.repo.GetFeature(ctx, id)
}

func (s *Service) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProductInput(p); err != nil {
		return nil, err
	}
	return s.repo.UpsertProduct(ctx, p)
}

func (s *Service) DeactivateProduct(ctx context.Context, id string) error {
	return s.repo.DeactivateProduct(ctx, id)
}

func (s *Service) UpsertRatePlan(ctx context.Context, p domain.RatePlan) (*domain.RatePlan, error) {
	if p.Name == "" {
		return nil, domain.NewValidationError(domain.CodeMalformedRecord, "rate plan name required")
	}
	if p.MonthlyCost.IsNegative() {
		return nil, domain.NewValidationError(domain.CodeMalformedRecord, "rate plan monthly cost must not be negative")
	}
	return s.repo.UpsertRatePlan(ctx, p)
}

func (s *Service) DeactivateRatePlan(ctx context.Context, id string) error {
	return s.repo.DeactivateRatePlan(ctx, id)
}

func (s *Service) UpsertFeature(ctx context.Context, f domain.Feature) (*domain.Feature, error) {
	if f.Name == "" {
		return nil, domain.NewValidationError(domain.CodeMalformedRecord, "feature name required")
	}
	switch f.Type {
	case domain.FeatureAddon, domain.FeatureService, domain.FeatureInsurance, domain.FeatureAccessory:
	default:
		return nil, domain.NewValidationError(domain.CodeMalformedRecord, "unknown feature type")
	}
	if f.MonthlyCost.IsNegative() {
		return nil, domain.NewValidationError(domain.CodeMalformedRecord, "feature monthly cost must not be negative")
	}
	return s.repo.UpsertFeature(ctx, f)
}

func (s *Service) DeactivateFeature(ctx context.Context, id string) error {
	return s.repo.DeactivateFeature(ctx, id)
}

// validateProductInput is the admin-side variant of cart.CheckProduct:
// ids may be empty (they are generated on insert) but everything else
// must already be well formed.
func validateProductInput(p domain.Product) error {
	if p.Name == "" {
		return domain.NewValidationError(domain.CodeMalformedRecord, "product name required")
	}
	if !p.Category.Valid() {
		return domain.NewValidationError(domain.CodeMalformedRecord, "unknown product category")
	}
	defaults := 0
	for _, opt := range p.PricingOptions {
		if opt.Name == "" {
			return domain.NewValidationError(domain.CodeMalformedRecord, "pricing option name required")
		}
		probe := opt
		if probe.ID == "" {
			probe.ID = "pending"
		}
		if probe.ProductID == "" {
			probe.ProductID = "pending"
		}
		if err := cart.CheckPricingOption(probe); err != nil {
			return err
		}
		if opt.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return domain.NewValidationError(domain.CodeMalformedRecord, "at most one default pricing option per product")
	}
	return nil
}
