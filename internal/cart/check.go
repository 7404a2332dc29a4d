package cart

import (
	"fmt"

	"reseller-portal/internal/domain"
)

// Catalog records cross a collaborator boundary before they reach the
// configurator. These checks reject malformed records at that boundary
// so nothing half-formed can end up inside a cart.

func CheckProduct(p domain.Product) error {
	if p.ID == "" || p.Name == "" {
		return malformed("product missing id or name")
	}
	if !p.Category.Valid() {
		return malformed(fmt.Sprintf("product %s has unknown category %q", p.ID, p.Category))
	}
	for _, opt := range p.PricingOptions {
		if err := CheckPricingOption(opt); err != nil {
			return err
		}
	}
	return nil
}

func CheckPricingOption(o domain.PricingOption) error {
	if o.ID == "" || o.ProductID == "" || o.Name == "" {
		return malformed("pricing option missing id, product id or name")
	}
	switch o.Kind {
	case domain.PricingFullPayment:
	case domain.PricingFinanced:
		if o.MonthlyPayment == nil {
			return malformed(fmt.Sprintf("financed pricing option %s has no monthly payment", o.ID))
		}
	default:
		return malformed(fmt.Sprintf("pricing option %s has unknown kind %q", o.ID, o.Kind))
	}
	if o.DownPayment.IsNegative() || o.TotalCost.IsNegative() {
		return malformed(fmt.Sprintf("pricing option %s has negative amounts", o.ID))
	}
	if o.MonthlyPayment != nil && o.MonthlyPayment.IsNegative() {
		return malformed(fmt.Sprintf("pricing option %s has negative monthly payment", o.ID))
	}
	return nil
}

func CheckRatePlan(p domain.RatePlan) error {
	if p.ID == "" || p.Name == "" {
		return malformed("rate plan missing id or name")
	}
	if p.MonthlyCost.IsNegative() {
		return malformed(fmt.Sprintf("rate plan %s has negative monthly cost", p.ID))
	}
	return nil
}

func CheckFeature(f domain.Feature) error {
	if f.ID == "" || f.Name == "" {
		return malformed("feature missing id or name")
	}
	if f.MonthlyCost.IsNegative() {
		return malformed(fmt.Sprintf("feature %s has negative monthly cost", f.ID))
	}
	return nil
}

func malformed(msg string) error {
	return domain.NewValidationError(domain.CodeMalformedRecord, msg)
}
