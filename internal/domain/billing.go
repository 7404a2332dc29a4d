package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeType classifies a billing line item.
type ChargeType string

const (
	ChargeRecurring ChargeType = "recurring"
	ChargeOneTime   ChargeType = "one_time"
	ChargeUsage     ChargeType = "usage"
	ChargeFee       ChargeType = "fee"
)

// BillingReport is one processed billing period for a user.
type BillingReport struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	BillingPeriodStart time.Time         `json:"billing_period_start"`
	BillingPeriodEnd   time.Time         `json:"billing_period_end"`
	TotalCharges       decimal.Decimal   `json:"total_charges"`
	SourceFile         string            `json:"source_file,omitempty"`
	ProcessedDate      time.Time         `json:"processed_date"`
	LineItems          []BillingLineItem `json:"line_items"`
	CreatedAt          time.Time         `json:"created_at"`
}

// BillingLineItem is a single charge on a report. The custom field
// values are copied from the subscriber at processing time so reports
// remain filterable after a subscriber is relabeled.
type BillingLineItem struct {
	ID              string           `json:"id"`
	BillingReportID string           `json:"billing_report_id"`
	PhoneNumber     string           `json:"phone_number"`
	SubscriberID    string           `json:"subscriber_id,omitempty"`
	Description     string           `json:"line_description"`
	ChargeType      ChargeType       `json:"charge_type"`
	Amount          decimal.Decimal  `json:"amount"`
	Quantity        *int             `json:"quantity,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	CustomValues    [4]string        `json:"custom_values"`
	CreatedAt       time.Time        `json:"created_at"`
}

// BillingFilter narrows a line-item listing.
type BillingFilter struct {
	PeriodStart      *time.Time   `json:"period_start,omitempty"`
	PeriodEnd        *time.Time   `json:"period_end,omitempty"`
	ChargeTypes      []ChargeType `json:"charge_types,omitempty"`
	CustomFieldIndex int          `json:"custom_field_index,omitempty"` // 1-4, 0 means unset
	CustomFieldValue string       `json:"custom_field_value,omitempty"`
	PhoneNumbers     []string     `json:"phone_numbers,omitempty"`
}
