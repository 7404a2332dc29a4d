package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const subscriberColumns = `
id::text, user_id::text, phone_number, sim_number, imei, rate_plan, features, status, activation_date,
COALESCE(user_name, ''),
COALESCE(custom_field_1_label, ''), COALESCE(custom_field_1_value, ''),
COALESCE(custom_field_2_label, ''), COALESCE(custom_field_2_value, ''),
COALESCE(custom_field_3_label, ''), COALESCE(custom_field_3_value, ''),
COALESCE(custom_field_4_label, ''), COALESCE(custom_field_4_value, ''),
monthly_cost::text, last_bill_date, next_bill_date, created_at, updated_at
`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+subscriberColumns+`
FROM subscribers
WHERE user_id = $1
ORDER BY activation_date ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	s, err := scanSubscriber(r.pool.QueryRow(ctx, `
SELECT `+subscriberColumns+`
FROM subscribers
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Update writes the customer-editable fields only. Nil fields in the
// input leave the stored value untouched.
func (r *postgresRepo) Update(ctx context.Context, id string, in domain.SubscriberUpdate) (*domain.Subscriber, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	userName := current.UserName
	if in.UserName != nil {
		userName = *in.UserName
	}
	fields := current.CustomFields
	if in.CustomFields != nil {
		fields = *in.CustomFields
	}

	cmd, err := r.pool.Exec(ctx, `
UPDATE subscribers
SET user_name = NULLIF($1, ''),
    custom_field_1_label = NULLIF($2, ''), custom_field_1_value = NULLIF($3, ''),
    custom_field_2_label = NULLIF($4, ''), custom_field_2_value = NULLIF($5, ''),
    custom_field_3_label = NULLIF($6, ''), custom_field_3_value = NULLIF($7, ''),
    custom_field_4_label = NULLIF($8, ''), custom_field_4_value = NULLIF($9, ''),
    updated_at = now()
WHERE id = $10
`, userName,
		fields[0].Label, fields[0].Value,
		fields[1].Label, fields[1].Value,
		fields[2].Label, fields[2].Value,
		fields[3].Label, fields[3].Value,
		id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanSubscriber(row pgx.Row) (*domain.Subscriber, error) {
	var s domain.Subscriber
	var plan, features []byte
	var status, cost string
	if err := row.Scan(&s.ID, &s.UserID, &s.PhoneNumber, &s.SIMNumber, &s.IMEI, &plan, &features, &status, &s.ActivationDate,
		&s.UserName,
		&s.CustomFields[0].Label, &s.CustomFields[0].Value,
		&s.CustomFields[1].Label, &s.CustomFields[1].Value,
		&s.CustomFields[2].Label, &s.CustomFields[2].Value,
		&s.CustomFields[3].Label, &s.CustomFields[3].Value,
		&cost, &s.LastBillDate, &s.NextBillDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = domain.SubscriberStatus(status)
	if err := json.Unmarshal(plan, &s.RatePlan); err != nil {
		return nil, fmt.Errorf("unmarshal rate plan: %w", err)
	}
	if err := json.Unmarshal(features, &s.Features); err != nil {
		return nil, fmt.Errorf("unmarshal features: %w", err)
	}
	var err error
	if s.MonthlyCost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parse monthly_cost: %w", err)
	}
	return &s, nil
}
