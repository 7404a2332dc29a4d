package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

// CopyFlags selects which address roles are filled from the shipping
// address. They are evaluated when the bundle is resolved, not when the
// flag is set: if the shipping address changes after a flag is toggled,
// the copy reflects the shipping value at resolution time.
type CopyFlags struct {
	UseShippingForBilling bool `json:"use_shipping_for_billing"`
	UseShippingForPPU     bool `json:"use_shipping_for_ppu"`
	UseShippingForE911    bool `json:"use_shipping_for_e911"`
}

// ResolveAddresses produces the final four-address bundle. Each flagged
// role becomes a copy of the shipping address with only its role tag
// changed. Every address that ends up in the bundle must be complete.
func ResolveAddresses(in domain.AddressBundle, flags CopyFlags) (domain.AddressBundle, error) {
	out := domain.AddressBundle{
		Shipping: in.Shipping.WithRole(domain.AddressShipping),
		Billing:  in.Billing.WithRole(domain.AddressBilling),
		PPU:      in.PPU.WithRole(domain.AddressPPU),
		E911:     in.E911.WithRole(domain.AddressE911),
	}
	if flags.UseShippingForBilling {
		out.Billing = in.Shipping.WithRole(domain.AddressBilling)
	}
	if flags.UseShippingForPPU {
		out.PPU = in.Shipping.WithRole(domain.AddressPPU)
	}
	if flags.UseShippingForE911 {
		out.E911 = in.Shipping.WithRole(domain.AddressE911)
	}

	for _, addr := range []domain.Address{out.Shipping, out.Billing, out.PPU, out.E911} {
		if !addr.Complete() {
			return domain.AddressBundle{}, domain.NewValidationError(domain.CodeIncompleteAddress,
				fmt.Sprintf("%s address is missing required fields", addr.Role))
		}
	}
	return out, nil
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// Service turns a cart snapshot plus checkout input into a submitted
// order. Fulfillment beyond persisting the order is out of scope.
type Service struct {
	orders orderRepo
	now    func() time.Time
}

func New(orders orderRepo) *Service {
	return &Service{orders: orders, now: time.Now}
}

// SubmitInput is the checkout form payload.
type SubmitInput struct {
	Addresses           domain.AddressBundle `json:"addresses"`
	Flags               CopyFlags            `json:"flags"`
	CustomerInfo        domain.CustomerInfo  `json:"customer_info"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
}

// Submit validates the payload against the cart snapshot and persists
// a pending order with the cart's denormalized pricing.
func (s *Service) Submit(ctx context.Context, userID string, snapshot domain.Cart, in SubmitInput) (*domain.Order, error) {
	if len(snapshot.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	if strings.TrimSpace(in.CustomerInfo.FirstName) == "" ||
		strings.TrimSpace(in.CustomerInfo.LastName) == "" ||
		strings.TrimSpace(in.CustomerInfo.Email) == "" {
		return nil, errors.New("first name, last name and email are required")
	}

	addresses, err := ResolveAddresses(in.Addresses, in.Flags)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		UserID:              userID,
		InternalOrderNumber: s.orderNumber(),
		Status:              domain.OrderPending,
		Subtotal:            snapshot.Subtotal,
		Taxes:               snapshot.Taxes,
		Fees:                snapshot.Fees,
		TotalAmount:         snapshot.TotalDueNow,
		MonthlyCharges:      snapshot.TotalMonthlyCharges,
		Addresses:           addresses,
		CustomerInfo:        in.CustomerInfo,
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
	}
	for _, item := range snapshot.Items {
		order.Items = append(order.Items, domain.OrderItem{
			Product:              item.Product,
			RatePlan:             item.SelectedRatePlan,
			Features:             item.SelectedFeatures,
			PricingOption:        item.SelectedPricingOption,
			Quantity:             item.Quantity,
			UnitPrice:            item.SelectedPricingOption.DownPayment,
			MonthlyRecurringCost: monthlyPerUnit(item),
		})
	}

	return s.orders.Create(ctx, order)
}

// monthlyPerUnit is the recurring cost of one unit of the line item:
// installment payment plus rate plan plus features.
func monthlyPerUnit(item domain.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	if item.SelectedPricingOption.MonthlyPayment != nil {
		total = total.Add(*item.SelectedPricingOption.MonthlyPayment)
	}
	if item.SelectedRatePlan != nil {
		total = total.Add(item.SelectedRatePlan.MonthlyCost)
	}
	for _, f := range item.SelectedFeatures {
		total = total.Add(f.MonthlyCost)
	}
	return total
}

func (s *Service) orderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", s.now().UTC().Format("20060102"), suffix)
}
