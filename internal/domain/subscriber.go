package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriberStatus is the service state of a line.
type SubscriberStatus string

const (
	SubscriberActive    SubscriberStatus = "active"
	SubscriberSuspended SubscriberStatus = "suspended"
	SubscriberCancelled SubscriberStatus = "cancelled"
)

// CustomField is a user-definable label/value pair on a subscriber.
// Four of them are available per line.
type CustomField struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
}

// Subscriber is an activated line owned by a portal user.
type Subscriber struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	PhoneNumber    string           `json:"phone_number"`
	SIMNumber      string           `json:"sim_number"`
	IMEI           string           `json:"imei"`
	RatePlan       RatePlan         `json:"rate_plan"`
	Features       []Feature        `json:"features"`
	Status         SubscriberStatus `json:"status"`
	ActivationDate time.Time        `json:"activation_date"`
	UserName       string           `json:"user_name,omitempty"`
	CustomFields   [4]CustomField   `json:"custom_fields"`
	MonthlyCost    decimal.Decimal  `json:"monthly_cost"`
	LastBillDate   *time.Time       `json:"last_bill_date,omitempty"`
	NextBillDate   *time.Time       `json:"next_bill_date,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SubscriberUpdate is the customer-editable subset of a subscriber.
type SubscriberUpdate struct {
	UserName     *string         `json:"user_name,omitempty"`
	CustomFields *[4]CustomField `json:"custom_fields,omitempty"`
}
