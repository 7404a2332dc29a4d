package cart

import (
	"fmt"

	"github.com/google/uuid"

	"reseller-portal/internal/domain"
)

// Build validates a user's selection and produces a new line item ready
// for the aggregator. The returned item embeds copies of the catalog
// records, so later catalog edits do not touch items already in a cart.
// Build never mutates its inputs or any global state.
func Build(product domain.Product, option *domain.PricingOption, plan *domain.RatePlan, features []domain.Feature, quantity int) (domain.CartLineItem, error) {
	if option == nil {
		return domain.CartLineItem{}, domain.NewValidationError(domain.CodeMissingPricingOption, "a pricing option must be selected")
	}
	if option.ProductID != product.ID {
		return domain.CartLineItem{}, domain.NewValidationError(domain.CodePricingOptionMismatch,
			fmt.Sprintf("pricing option %s does not belong to product %s", option.ID, product.ID))
	}
	if quantity < 1 {
		return domain.CartLineItem{}, domain.NewValidationError(domain.CodeInvalidQuantity, "quantity must be a positive integer")
	}

	item := domain.CartLineItem{
		ID:                    uuid.NewString(),
		Product:               product,
		SelectedPricingOption: *option,
		SelectedFeatures:      dedupeFeatures(features),
		Quantity:              quantity,
	}
	if plan != nil {
		p := *plan
		item.SelectedRatePlan = &p
	}
	return item, nil
}

// dedupeFeatures keeps the first occurrence of each feature id.
func dedupeFeatures(features []domain.Feature) []domain.Feature {
	out := make([]domain.Feature, 0, len(features))
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out
}
