package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Fixed ids keep the seed idempotent; re-running updates in place.
const (
	adminID    = "11111111-1111-4111-8111-111111111111"
	customerID = "22222222-2222-4222-8222-222222222222"

	phoneAID   = "33333333-0001-4333-8333-333333333333"
	phoneBID   = "33333333-0002-4333-8333-333333333333"
	tabletID   = "33333333-0003-4333-8333-333333333333"
	hotspotID  = "33333333-0004-4333-8333-333333333333"
	planBasic  = "44444444-0001-4444-8444-444444444444"
	planUnltd  = "44444444-0002-4444-8444-444444444444"
	featIns    = "55555555-0001-4555-8555-555555555555"
	featHot    = "55555555-0002-4555-8555-555555555555"
	featIntl   = "55555555-0003-4555-8555-555555555555"
	subID      = "66666666-0001-4666-8666-666666666666"
	reportID   = "77777777-0001-4777-8777-777777777777"
	reportLine = "88888888-0001-4888-8888-888888888888"
)

type optionSeed struct {
	Name           string
	Kind           string
	DownPayment    string
	MonthlyPayment *string
	TermMonths     *int
	TotalCost      string
	IsDefault      bool
}

type productSeed struct {
	ID          string
	Name        string
	Description string
	Category    string
	Options     []optionSeed
}

// Apply inserts demo data for manual testing: two accounts
// (admin@portal.test / customer@portal.test, password Portal123), a
// small device catalog, rate plans and features, plus one activated
// line with a processed billing period for the customer.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedUsers(ctx, pool); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	for _, p := range catalogSeed() {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	if err := seedRatePlans(ctx, pool); err != nil {
		return fmt.Errorf("seed rate plans: %w", err)
	}
	if err := seedFeatures(ctx, pool); err != nil {
		return fmt.Errorf("seed features: %w", err)
	}
	if err := seedSubscriber(ctx, pool); err != nil {
		return fmt.Errorf("seed subscriber: %w", err)
	}
	if err := seedBilling(ctx, pool); err != nil {
		return fmt.Errorf("seed billing: %w", err)
	}
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Portal123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (id, email, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
`
	if _, err := pool.Exec(ctx, q, adminID, "admin@portal.test", string(hash), "admin"); err != nil {
		return err
	}
	_, err = pool.Exec(ctx, q, customerID, "customer@portal.test", string(hash), "customer")
	return err
}

func catalogSeed() []productSeed {
	monthly := func(s string) *string { return &s }
	term := func(n int) *int { return &n }
	return []productSeed{
		{
			ID: phoneAID, Name: "Axon 12", Category: "phone",
			Description: "Flagship handset with 6.4\" OLED display",
			Options: []optionSeed{
				{Name: "Pay in full", Kind: "full_payment", DownPayment: "799.99", TotalCost: "799.99"},
				{Name: "24-month financing", Kind: "financed", DownPayment: "99.99",
					MonthlyPayment: monthly("29.17"), TermMonths: term(24), TotalCost: "800.07", IsDefault: true},
			},
		},
		{
			ID: phoneBID, Name: "Axon 12 Lite", Category: "phone",
			Description: "Mid-range handset",
			Options: []optionSeed{
				{Name: "Pay in full", Kind: "full_payment", DownPayment: "399.99", TotalCost: "399.99", IsDefault: true},
				{Name: "12-month financing", Kind: "financed", DownPayment: "39.99",
					MonthlyPayment: monthly("30.00"), TermMonths: term(12), TotalCost: "399.99"},
			},
		},
		{
			ID: tabletID, Name: "Slate 10", Category: "tablet",
			Description: "10\" LTE tablet",
			Options: []optionSeed{
				{Name: "Pay in full", Kind: "full_payment", DownPayment: "549.00", TotalCost: "549.00", IsDefault: true},
			},
		},
		{
			ID: hotspotID, Name: "Nomad 5G", Category: "hotspot",
			Description: "Portable 5G hotspot",
			Options: []optionSeed{
				{Name: "Pay in full", Kind: "full_payment", DownPayment: "199.00", TotalCost: "199.00", IsDefault: true},
			},
		},
	}
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const productQ = `
INSERT INTO products (id, name, description, category)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    updated_at = now()
`
	if _, err := tx.Exec(ctx, productQ, p.ID, p.Name, p.Description, p.Category); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM pricing_options WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	const optionQ = `
INSERT INTO pricing_options (product_id, name, kind, down_payment, monthly_payment, term_months, total_cost, is_default)
VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7::numeric, $8)
`
	for _, o := range p.Options {
		if _, err := tx.Exec(ctx, optionQ, p.ID, o.Name, o.Kind, o.DownPayment, o.MonthlyPayment, o.TermMonths, o.TotalCost, o.IsDefault); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRatePlans(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO rate_plans (id, name, description, monthly_cost, data_allowance, voice_allowance, text_allowance)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    monthly_cost = EXCLUDED.monthly_cost,
    updated_at = now()
`
	rows := [][]any{
		{planBasic, "Essential 5GB", "5GB data with unlimited talk and text", "30.00", "5GB", "Unlimited", "Unlimited"},
		{planUnltd, "Unlimited Plus", "Unlimited everything with 50GB priority data", "55.00", "Unlimited", "Unlimited", "Unlimited"},
	}
	for _, r := range rows {
		if _, err := pool.Exec(ctx, q, r...); err != nil {
			return err
		}
	}
	return nil
}

func seedFeatures(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO features (id, name, description, type, monthly_cost)
VALUES ($1, $2, $3, $4, $5::numeric)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    monthly_cost = EXCLUDED.monthly_cost,
    updated_at = now()
`
	rows := [][]any{
		{featIns, "Device Protection", "Accidental damage and loss coverage", "insurance", "12.00"},
		{featHot, "Mobile Hotspot 20GB", "Tethering allowance", "addon", "10.00"},
		{featIntl, "International Calling", "Discounted rates to 80 countries", "service", "15.00"},
	}
	for _, r := range rows {
		if _, err := pool.Exec(ctx, q, r...); err != nil {
			return err
		}
	}
	return nil
}

func seedSubscriber(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO subscribers (
    id, user_id, phone_number, sim_number, imei, rate_plan, features, status,
    activation_date, user_name, custom_field_1_label, custom_field_1_value, monthly_cost
)
VALUES (
    $1, $2, $3, $4, $5,
    (SELECT to_jsonb(rp) FROM (SELECT id::text, name, monthly_cost::text FROM rate_plans WHERE id = $6) rp),
    '[]'::jsonb, 'active', $7, $8, $9, $10, $11::numeric
)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, q,
		subID, customerID, "+15551230001", "8901260000000000001", "356938035643809",
		planUnltd, time.Now().AddDate(0, -3, 0), "Ada's phone", "Department", "Engineering", "55.00")
	return err
}

func seedBilling(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	periodEnd := periodStart.AddDate(0, 1, 0)

	const reportQ = `
INSERT INTO billing_reports (id, user_id, billing_period_start, billing_period_end, total_charges, source_file)
VALUES ($1, $2, $3, $4, $5::numeric, $6)
ON CONFLICT (id) DO NOTHING
`
	if _, err := pool.Exec(ctx, reportQ, reportID, customerID, periodStart, periodEnd, "55.00", "demo-period.xml"); err != nil {
		return err
	}

	const lineQ = `
INSERT INTO billing_line_items (
    id, billing_report_id, phone_number, subscriber_id, line_description,
    charge_type, amount, quantity, unit_cost, custom_field_1_value
)
VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9::numeric, $10)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, lineQ,
		reportLine, reportID, "+15551230001", subID, "Unlimited Plus monthly charge",
		"recurring", "55.00", 1, "55.00", "Engineering")
	return err
}
