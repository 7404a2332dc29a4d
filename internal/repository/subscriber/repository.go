package subscriber

import (
	"context"

	"reseller-portal/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Subscriber, error)
	GetByID(ctx context.Context, id string) (*domain.Subscriber, error)
	Update(ctx context.Context, id string, in domain.SubscriberUpdate) (*domain.Subscriber, error)
}
