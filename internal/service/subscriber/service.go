package subscriber

import (
	"context"

	"reseller-portal/internal/domain"
	subscriberrepo "reseller-portal/internal/repository/subscriber"
)

// Service scopes subscriber reads and the customer-editable updates to
// the owning user.
type Service struct {
	repo subscriberrepo.Repository
}

func New(repo subscriberrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Subscriber, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, requester domain.User, id string) (*domain.Subscriber, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && sub.UserID != requester.ID {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// Update writes the user-customizable fields (display name and the four
// custom label/value pairs). Everything else on a subscriber belongs to
// provisioning and billing.
func (s *Service) Update(ctx context.Context, requester domain.User, id string, in domain.SubscriberUpdate) (*domain.Subscriber, error) {
	if _, err := s.Get(ctx, requester, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}
