package cartslot

import "context"

// Repository is a durable key-value slot store scoped per owner. The
// cart aggregator persists its line-item sequence through it under a
// fixed key.
type Repository interface {
	Load(ctx context.Context, ownerID, key string) ([]byte, error)
	Save(ctx context.Context, ownerID, key string, data []byte) error
	Delete(ctx context.Context, ownerID, key string) error
}

// OwnerSlot binds a repository to one owner and key, satisfying the
// cart aggregator's Slot port.
type OwnerSlot struct {
	Repo    Repository
	OwnerID string
	Key     string
}

func (s OwnerSlot) Load(ctx context.Context) ([]byte, error) {
	return s.Repo.Load(ctx, s.OwnerID, s.Key)
}

func (s OwnerSlot) Save(ctx context.Context, data []byte) error {
	return s.Repo.Save(ctx, s.OwnerID, s.Key, data)
}
