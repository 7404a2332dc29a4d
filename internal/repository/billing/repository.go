package billing

import (
	"context"

	"reseller-portal/internal/domain"
)

type Repository interface {
	ListReportsByUser(ctx context.Context, userID string) ([]domain.BillingReport, error)
	GetReport(ctx context.Context, id string) (*domain.BillingReport, error)
	ListLineItems(ctx context.Context, reportID string, filter domain.BillingFilter) ([]domain.BillingLineItem, error)
}
