package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const reportColumns = `
id::text, user_id::text, billing_period_start, billing_period_end, total_charges::text,
COALESCE(source_file, ''), processed_date, created_at
`

func (r *postgresRepo) ListReportsByUser(ctx context.Context, userID string) ([]domain.BillingReport, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reportColumns+`
FROM billing_reports
WHERE user_id = $1
ORDER BY billing_period_start DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BillingReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rep)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetReport(ctx context.Context, id string) (*domain.BillingReport, error) {
	rep, err := scanReport(r.pool.QueryRow(ctx, `
SELECT `+reportColumns+`
FROM billing_reports
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.ListLineItems(ctx, rep.ID, domain.BillingFilter{})
	if err != nil {
		return nil, err
	}
	rep.LineItems = items
	return rep, nil
}

// ListLineItems applies the filter in SQL so large reports stay cheap
// to page through.
func (r *postgresRepo) ListLineItems(ctx context.Context, reportID string, filter domain.BillingFilter) ([]domain.BillingLineItem, error) {
	q := strings.Builder{}
	q.WriteString(`
SELECT id::text, billing_report_id::text, phone_number, COALESCE(subscriber_id::text, ''), line_description, charge_type,
       amount::text, quantity, unit_cost::text,
       COALESCE(custom_field_1_value, ''), COALESCE(custom_field_2_value, ''),
       COALESCE(custom_field_3_value, ''), COALESCE(custom_field_4_value, ''),
       created_at
FROM billing_line_items
WHERE billing_report_id = $1
`)
	args := []interface{}{reportID}

	if len(filter.ChargeTypes) > 0 {
		types := make([]string, 0, len(filter.ChargeTypes))
		for _, t := range filter.ChargeTypes {
			types = append(types, string(t))
		}
		args = append(args, types)
		fmt.Fprintf(&q, "AND charge_type = ANY($%d)\n", len(args))
	}
	if filter.CustomFieldIndex >= 1 && filter.CustomFieldIndex <= 4 && filter.CustomFieldValue != "" {
		args = append(args, filter.CustomFieldValue)
		fmt.Fprintf(&q, "AND custom_field_%d_value = $%d\n", filter.CustomFieldIndex, len(args))
	}
	if len(filter.PhoneNumbers) > 0 {
		args = append(args, filter.PhoneNumbers)
		fmt.Fprintf(&q, "AND phone_number = ANY($%d)\n", len(args))
	}
	if filter.PeriodStart != nil {
		args = append(args, *filter.PeriodStart)
		fmt.Fprintf(&q, "AND created_at >= $%d\n", len(args))
	}
	if filter.PeriodEnd != nil {
		args = append(args, *filter.PeriodEnd)
		fmt.Fprintf(&q, "AND created_at < $%d\n", len(args))
	}
	q.WriteString("ORDER BY created_at ASC")

	rows, err := r.pool.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BillingLineItem
	for rows.Next() {
		var item domain.BillingLineItem
		var chargeType, amount string
		var unitCost *string
		if err := rows.Scan(&item.ID, &item.BillingReportID, &item.PhoneNumber, &item.SubscriberID, &item.Description, &chargeType,
			&amount, &item.Quantity, &unitCost,
			&item.CustomValues[0], &item.CustomValues[1], &item.CustomValues[2], &item.CustomValues[3],
			&item.CreatedAt); err != nil {
			return nil, err
		}
		item.ChargeType = domain.ChargeType(chargeType)
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		if unitCost != nil {
			c, err := decimal.NewFromString(*unitCost)
			if err != nil {
				return nil, fmt.Errorf("parse unit_cost: %w", err)
			}
			item.UnitCost = &c
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func scanReport(row pgx.Row) (*domain.BillingReport, error) {
	var rep domain.BillingReport
	var total string
	if err := row.Scan(&rep.ID, &rep.UserID, &rep.BillingPeriodStart, &rep.BillingPeriodEnd, &total,
		&rep.SourceFile, &rep.ProcessedDate, &rep.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if rep.TotalCharges, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total_charges: %w", err)
	}
	return &rep, nil
}
