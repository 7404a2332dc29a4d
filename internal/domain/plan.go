package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePlan is a monthly service plan, independent of any product.
type RatePlan struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	MonthlyCost    decimal.Decimal `json:"monthly_cost"`
	DataAllowance  string          `json:"data_allowance,omitempty"`
	VoiceAllowance string          `json:"voice_allowance,omitempty"`
	TextAllowance  string          `json:"text_allowance,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FeatureType tags an add-on feature.
type FeatureType string

const (
	FeatureAddon     FeatureType = "addon"
	FeatureService   FeatureType = "service"
	FeatureInsurance FeatureType = "insurance"
	FeatureAccessory FeatureType = "accessory"
)

// Feature is an optional monthly add-on attached to a cart line item.
type Feature struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        FeatureType     `json:"type"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
