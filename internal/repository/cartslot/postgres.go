package cartslot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reseller-portal/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `
SELECT data
FROM cart_slots
WHERE owner_id = $1 AND key = $2
`, ownerID, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *postgresRepo) Save(ctx context.Context, ownerID, key string, data []byte) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO cart_slots (owner_id, key, data, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id, key) DO UPDATE SET
    data = EXCLUDED.data,
    updated_at = now()
`, ownerID, key, data)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, ownerID, key string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_slots
WHERE owner_id = $1 AND key = $2
`, ownerID, key)
	return err
}
