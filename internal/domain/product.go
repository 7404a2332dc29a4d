package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a device in the catalog.
type Category string

const (
	CategoryPhone   Category = "phone"
	CategoryTablet  Category = "tablet"
	CategoryHotspot Category = "hotspot"
	CategoryIoT     Category = "iot"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPhone, CategoryTablet, CategoryHotspot, CategoryIoT:
		return true
	}
	return false
}

// PricingKind distinguishes pay-in-full from installment pricing.
type PricingKind string

const (
	PricingFullPayment PricingKind = "full_payment"
	PricingFinanced    PricingKind = "financed"
)

// Product is a catalog device. Immutable from the cart's perspective;
// line items embed a copy at add-time so later catalog edits never
// retroactively change a cart.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Category       Category          `json:"category"`
	ImageURL       string            `json:"image_url,omitempty"`
	IsActive       bool              `json:"is_active"`
	Specifications map[string]string `json:"specifications,omitempty"`
	PricingOptions []PricingOption   `json:"pricing_options"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// PricingOption belongs to exactly one product. MonthlyPayment and
// TermMonths are set when Kind is financed. TotalCost is taken as given
// from the catalog, not recomputed here.
type PricingOption struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	Name           string           `json:"name"`
	Kind           PricingKind      `json:"kind"`
	DownPayment    decimal.Decimal  `json:"down_payment"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
	TermMonths     *int             `json:"term_months,omitempty"`
	TotalCost      decimal.Decimal  `json:"total_cost"`
	IsDefault      bool             `json:"is_default"`
}

// DefaultPricingOption returns the option flagged as default, or the
// first one when none is flagged.
func (p Product) DefaultPricingOption() *PricingOption {
	for i := range p.PricingOptions {
		if p.PricingOptions[i].IsDefault {
			return &p.PricingOptions[i]
		}
	}
	if len(p.PricingOptions) > 0 {
		return &p.PricingOptions[0]
	}
	return nil
}
