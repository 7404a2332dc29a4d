package order

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

const orderColumns = `
id::text, user_id::text, internal_order_number, status, subtotal::text, taxes::text, fees::text,
total_amount::text, monthly_charges::text, addresses, customer_info,
COALESCE(special_instructions, ''), COALESCE(tracking_number, ''), created_at, updated_at
`

// Create inserts the order and its items in one transaction. Item
// catalog data goes in denormalized, mirroring the cart snapshot.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	addresses, err := json.Marshal(o.Addresses)
	if err != nil {
		return nil, fmt.Errorf("marshal addresses: %w", err)
	}
	contact, err := json.Marshal(o.CustomerInfo)
	if err != nil {
		return nil, fmt.Errorf("marshal customer info: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, internal_order_number, status, subtotal, taxes, fees, total_amount, monthly_charges,
                    addresses, customer_info, special_instructions)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
RETURNING id::text
`, o.UserID, o.InternalOrderNumber, string(o.Status),
		o.Subtotal.String(), o.Taxes.String(), o.Fees.String(), o.TotalAmount.String(), o.MonthlyCharges.String(),
		addresses, contact, o.SpecialInstructions).Scan(&id)
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	for _, item := range o.Items {
		product, err := json.Marshal(item.Product)
		if err != nil {
			return nil, fmt.Errorf("marshal product: %w", err)
		}
		var plan interface{}
		if item.RatePlan != nil {
			b, err := json.Marshal(item.RatePlan)
			if err != nil {
				return nil, fmt.Errorf("marshal rate plan: %w", err)
			}
			plan = b
		}
		features, err := json.Marshal(featuresOrEmpty(item.Features))
		if err != nil {
			return nil, fmt.Errorf("marshal features: %w", err)
		}
		option, err := json.Marshal(item.PricingOption)
		if err != nil {
			return nil, fmt.Errorf("marshal pricing option: %w", err)
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product, rate_plan, features, pricing_option, quantity, unit_price, monthly_recurring_cost)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, id, product, plan, features, option, item.Quantity, item.UnitPrice.String(), item.MonthlyRecurringCost.String()); err != nil {
			r.logger.Printf("order repo: insert item order_id=%s error=%v", id, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: create id=%s number=%s items=%d", id, o.InternalOrderNumber, len(o.Items))
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := r.fetchOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber *string) (*domain.Order, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1,
    tracking_number = COALESCE($2, tracking_number),
    updated_at = now()
WHERE id = $3
`, string(status), trackingNumber, id)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product, rate_plan, features, pricing_option, quantity, unit_price::text, monthly_recurring_cost::text, device_details
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var product, features, option []byte
		var plan, device []byte
		var unit, monthly string
		if err := rows.Scan(&item.ID, &item.OrderID, &product, &plan, &features, &option, &item.Quantity, &unit, &monthly, &device); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(product, &item.Product); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		if len(plan) > 0 {
			item.RatePlan = &domain.RatePlan{}
			if err := json.Unmarshal(plan, item.RatePlan); err != nil {
				return nil, fmt.Errorf("unmarshal rate plan: %w", err)
			}
		}
		if err := json.Unmarshal(features, &item.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
		if err := json.Unmarshal(option, &item.PricingOption); err != nil {
			return nil, fmt.Errorf("unmarshal pricing option: %w", err)
		}
		if len(device) > 0 {
			item.DeviceDetails = &domain.DeviceDetails{}
			if err := json.Unmarshal(device, item.DeviceDetails); err != nil {
				return nil, fmt.Errorf("unmarshal device details: %w", err)
			}
		}
		if item.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, fmt.Errorf("parse unit_price: %w", err)
		}
		if item.MonthlyRecurringCost, err = decimal.NewFromString(monthly); err != nil {
			return nil, fmt.Errorf("parse monthly_recurring_cost: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	var subtotal, taxes, fees, total, monthly string
	var addresses, contact []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.InternalOrderNumber, &status,
		&subtotal, &taxes, &fees, &total, &monthly,
		&addresses, &contact, &o.SpecialInstructions, &o.TrackingNumber,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal: %w", err)
	}
	if o.Taxes, err = decimal.NewFromString(taxes); err != nil {
		return nil, fmt.Errorf("parse taxes: %w", err)
	}
	if o.Fees, err = decimal.NewFromString(fees); err != nil {
		return nil, fmt.Errorf("parse fees: %w", err)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total_amount: %w", err)
	}
	if o.MonthlyCharges, err = decimal.NewFromString(monthly); err != nil {
		return nil, fmt.Errorf("parse monthly_charges: %w", err)
	}
	if err := json.Unmarshal(addresses, &o.Addresses); err != nil {
		return nil, fmt.Errorf("unmarshal addresses: %w", err)
	}
	if err := json.Unmarshal(contact, &o.CustomerInfo); err != nil {
		return nil, fmt.Errorf("unmarshal customer info: %w", err)
	}
	return &o, nil
}

func featuresOrEmpty(fs []domain.Feature) []domain.Feature {
	if fs == nil {
		return []domain.Feature{}
	}
	return fs
}
