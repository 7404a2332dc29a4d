package billing

import (
	"context"

	"reseller-portal/internal/domain"
	billingrepo "reseller-portal/internal/repository/billing"
)

// Service exposes the billing read model scoped to the owning user.
type Service struct {
	repo billingrepo.Repository
}

func New(repo billingrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListReports(ctx context.Context, userID string) ([]domain.BillingReport, error) {
	return s.repo.ListReportsByUser(ctx, userID)
}

func (s *Service) GetReport(ctx context.Context, requester domain.User, id string) (*domain.BillingReport, error) {
	rep, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && rep.UserID != requester.ID {
		return nil, domain.ErrNotFound
	}
	return rep, nil
}

// FilterLineItems narrows one report's charges, e.g. by charge type or
// a subscriber custom-field value.
func (s *Service) FilterLineItems(ctx context.Context, requester domain.User, reportID string, filter domain.BillingFilter) ([]domain.BillingLineItem, error) {
	if _, err := s.GetReport(ctx, requester, reportID); err != nil {
		return nil, err
	}
	return s.repo.ListLineItems(ctx, reportID, filter)
}
