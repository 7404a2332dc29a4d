package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, name, COALESCE(description, ''), category, COALESCE(image_url, ''), is_active, specifications, created_at, updated_at
`

func (r *postgresRepo) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+productColumns+`
FROM products
WHERE is_active
ORDER BY created_at ASC
`)
	if err != nil {
		r.logger.Printf("catalog repo: list products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		opts, err := r.pricingOptions(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].PricingOptions = opts
	}
	r.logger.Printf("catalog repo: list products count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+productColumns+`
FROM products
WHERE id = $1
`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get product id=%s error=%v", id, err)
		return nil, err
	}
	opts, err := r.pricingOptions(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.PricingOptions = opts
	return p, nil
}

// UpsertProduct writes the product row and replaces its pricing options
// in one transaction.
func (r *postgresRepo) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	specs, err := json.Marshal(specsOrEmpty(p.Specifications))
	if err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
INSERT INTO products (id, name, description, category, image_url, is_active, specifications)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url,
    is_active = EXCLUDED.is_active,
    specifications = EXCLUDED.specifications,
    updated_at = now()
RETURNING id::text
`, p.ID, p.Name, p.Description, string(p.Category), p.ImageURL, p.IsActive, specs).Scan(&id)
	if err != nil {
		r.logger.Printf("catalog repo: upsert product name=%s error=%v", p.Name, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pricing_options WHERE product_id = $1`, id); err != nil {
		return nil, err
	}
	for _, opt := range p.PricingOptions {
		var monthly, term interface{}
		if opt.MonthlyPayment != nil {
			monthly = opt.MonthlyPayment.String()
		}
		if opt.TermMonths != nil {
			term = *opt.TermMonths
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO pricing_options (id, product_id, name, kind, down_payment, monthly_payment, term_months, total_cost, is_default)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9)
`, opt.ID, id, opt.Name, string(opt.Kind), opt.DownPayment.String(), monthly, term, opt.TotalCost.String(), opt.IsDefault); err != nil {
			r.logger.Printf("catalog repo: upsert pricing option name=%s error=%v", opt.Name, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

func (r *postgresRepo) DeactivateProduct(ctx context.Context, id string) error {
	return r.deactivate(ctx, "products", id)
}

func (r *postgresRepo) pricingOptions(ctx context.Context, productID string) ([]domain.PricingOption, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, product_id::text, name, kind, down_payment::text, monthly_payment::text, term_months, total_cost::text, is_default
FROM pricing_options
WHERE product_id = $1
ORDER BY is_default DESC, down_payment ASC
`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PricingOption
	for rows.Next() {
		var opt domain.PricingOption
		var kind, down, total string
		var monthly *string
		if err := rows.Scan(&opt.ID, &opt.ProductID, &opt.Name, &kind, &down, &monthly, &opt.TermMonths, &total, &opt.IsDefault); err != nil {
			return nil, err
		}
		opt.Kind = domain.PricingKind(kind)
		if opt.DownPayment, err = decimal.NewFromString(down); err != nil {
			return nil, fmt.Errorf("parse down_payment: %w", err)
		}
		if opt.TotalCost, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total_cost: %w", err)
		}
		if monthly != nil {
			m, err := decimal.NewFromString(*monthly)
			if err != nil {
				return nil, fmt.Errorf("parse monthly_payment: %w", err)
			}
			opt.MonthlyPayment = &m
		}
		result = append(result, opt)
	}
	return result, rows.Err()
}

func (r *postgresRepo) deactivate(ctx context.Context, table, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE `+table+` SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("catalog repo: deactivate %s id=%s error=%v", table, id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var category string
	var specs []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &category, &p.ImageURL, &p.IsActive, &specs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Category = domain.Category(category)
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}
	return &p, nil
}

func specsOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
