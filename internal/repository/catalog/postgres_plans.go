package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

const ratePlanColumns = `
id::text, name, COALESCE(description, ''), monthly_cost::text, COALESCE(data_allowance, ''), COALESCE(voice_allowance, ''), COALESCE(text_allowance, ''), is_active, created_at, updated_at
`

func (r *postgresRepo) ListActiveRatePlans(ctx context.Context) ([]domain.RatePlan, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+ratePlanColumns+`
FROM rate_plans
WHERE is_active
ORDER BY monthly_cost ASC
`)
	if err != nil {
		r.logger.Printf("catalog repo: list rate plans error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.RatePlan
	for rows.Next() {
		p, err := scanRatePlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetRatePlan(ctx context.Context, id string) (*domain.RatePlan, error) {
	p, err := scanRatePlan(r.pool.QueryRow(ctx, `
SELECT `+ratePlanColumns+`
FROM rate_plans
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) UpsertRatePlan(ctx context.Context, p domain.RatePlan) (*domain.RatePlan, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO rate_plans (id, name, description, monthly_cost, data_allowance, voice_allowance, text_allowance, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    monthly_cost = EXCLUDED.monthly_cost,
    data_allowance = EXCLUDED.data_allowance,
    voice_allowance = EXCLUDED.voice_allowance,
    text_allowance = EXCLUDED.text_allowance,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING id::text
`, p.ID, p.Name, p.Description, p.MonthlyCost.String(), p.DataAllowance, p.VoiceAllowance, p.TextAllowance, p.IsActive).Scan(&id)
	if err != nil {
		r.logger.Printf("catalog repo: upsert rate plan name=%s error=%v", p.Name, err)
		return nil, err
	}
	return r.GetRatePlan(ctx, id)
}

func (r *postgresRepo) DeactivateRatePlan(ctx context.Context, id string) error {
	return r.deactivate(ctx, "rate_plans", id)
}

const featureColumns = `
id::text, name, COALESCE(description, ''), type, monthly_cost::text, is_active, created_at, updated_at
`

func (r *postgresRepo) ListActiveFeatures(ctx context.Context) ([]domain.Feature, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+featureColumns+`
FROM features
WHERE is_active
ORDER BY type, monthly_cost ASC
`)
	if err != nil {
		r.logger.Printf("catalog repo: list features error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *f)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetFeature(ctx context.Context, id string) (*domain.Feature, error) {
	f, err := scanFeature(r.pool.QueryRow(ctx, `
SELECT `+featureColumns+`
FROM features
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *postgresRepo) UpsertFeature(ctx context.Context, f domain.Feature) (*domain.Feature, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO features (id, name, description, type, monthly_cost, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    type = EXCLUDED.type,
    monthly_cost = EXCLUDED.monthly_cost,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING id::text
`, f.ID, f.Name, f.Description, string(f.Type), f.MonthlyCost.String(), f.IsActive).Scan(&id)
	if err != nil {
		r.logger.Printf("catalog repo: upsert feature name=%s error=%v", f.Name, err)
		return nil, err
	}
	return r.GetFeature(ctx, id)
}

func (r *postgresRepo) DeactivateFeature(ctx context.Context, id string) error {
	return r.deactivate(ctx, "features", id)
}

func scanRatePlan(row rowScanner) (*domain.RatePlan, error) {
	var p domain.RatePlan
	var cost string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &cost, &p.DataAllowance, &p.VoiceAllowance, &p.TextAllowance, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.MonthlyCost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parse monthly_cost: %w", err)
	}
	return &p, nil
}

func scanFeature(row rowScanner) (*domain.Feature, error) {
	var f domain.Feature
	var typ, cost string
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &typ, &cost, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Type = domain.FeatureType(typ)
	var err error
	if f.MonthlyCost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parse monthly_cost: %w", err)
	}
	return &f, nil
}
