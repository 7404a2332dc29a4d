package order

import (
	"context"
	"errors"

	"reseller-portal/internal/domain"
	orderrepo "reseller-portal/internal/repository/order"
)

// Service scopes order reads to their owner; admins see everything.
type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, requester domain.User, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && o.UserID != requester.ID {
		// Ownership failures read as absence, like any scoped lookup.
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// UpdateStatus is the admin operation behind order tracking screens.
func (s *Service) UpdateStatus(ctx context.Context, requester domain.User, orderID string, status domain.OrderStatus, trackingNumber *string) (*domain.Order, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, errors.New("unknown order status")
	}
	return s.repo.UpdateStatus(ctx, orderID, status, trackingNumber)
}
