package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks fulfillment progress as reported by the carrier.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CustomerInfo is the contact block captured at checkout.
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Order is a submitted checkout. Item pricing is denormalized from the
// cart snapshot at submission time.
type Order struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	InternalOrderNumber string          `json:"internal_order_number"`
	Status              OrderStatus     `json:"status"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Taxes               decimal.Decimal `json:"taxes"`
	Fees                decimal.Decimal `json:"fees"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	MonthlyCharges      decimal.Decimal `json:"monthly_charges"`
	Addresses           AddressBundle   `json:"addresses"`
	CustomerInfo        CustomerInfo    `json:"customer_info"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	TrackingNumber      string          `json:"tracking_number,omitempty"`
	Items               []OrderItem     `json:"items"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OrderItem mirrors the cart line item it was created from.
type OrderItem struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	Product              Product         `json:"product"`
	RatePlan             *RatePlan       `json:"rate_plan,omitempty"`
	Features             []Feature       `json:"features"`
	PricingOption        PricingOption   `json:"pricing_option"`
	Quantity             int             `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	MonthlyRecurringCost decimal.Decimal `json:"monthly_recurring_cost"`
	DeviceDetails        *DeviceDetails  `json:"device_details,omitempty"`
}

// DeviceDetails is filled in by provisioning once a device ships.
type DeviceDetails struct {
	SIMNumber      string     `json:"sim_number,omitempty"`
	IMEI           string     `json:"imei,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	ActivationDate *time.Time `json:"activation_date,omitempty"`
}
