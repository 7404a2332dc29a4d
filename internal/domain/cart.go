package domain

import "github.com/shopspring/decimal"

// CartLineItem is one configured selection in the cart. The product,
// pricing option, rate plan and features are embedded copies taken at
// add-time (snapshot semantics), not references into the live catalog.
type CartLineItem struct {
	ID                    string        `json:"id"`
	Product               Product       `json:"product"`
	SelectedRatePlan      *RatePlan     `json:"selected_rate_plan,omitempty"`
	SelectedFeatures      []Feature     `json:"selected_features"`
	SelectedPricingOption PricingOption `json:"selected_pricing_option"`
	Quantity              int           `json:"quantity"`
}

// Cart is a derived snapshot, recomputed from the line items on every
// read. Items keep insertion order.
type Cart struct {
	Items               []CartLineItem  `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Taxes               decimal.Decimal `json:"taxes"`
	Fees                decimal.Decimal `json:"fees"`
	TotalDueNow         decimal.Decimal `json:"total_due_now"`
	TotalMonthlyCharges decimal.Decimal `json:"total_monthly_charges"`
}

// ItemCount is the total number of units across all line items.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
