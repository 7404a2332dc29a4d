package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"reseller-portal/internal/domain"
)

var (
	taxRate       = decimal.RequireFromString("0.08")
	processingFee = decimal.RequireFromString("2.99")
)

// Slot is the durable key-value slot the line-item sequence is mirrored
// to. Load returns domain.ErrNotFound when nothing has been saved yet.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Aggregator owns the ordered line-item sequence for one session and
// derives the cart snapshot. It is not safe for concurrent use; every
// mutation runs to completion before the next is accepted.
//
// Persistence is best effort: a failed save is logged and swallowed,
// and the in-memory sequence stays authoritative for the session.
type Aggregator struct {
	slot   Slot
	logger *log.Logger
	items  []domain.CartLineItem
}

// NewAggregator restores the sequence from the slot. Absent or corrupt
// data is non-fatal: the aggregator starts empty and logs the condition.
func NewAggregator(ctx context.Context, slot Slot, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := &Aggregator{slot: slot, logger: logger}
	if slot == nil {
		return a
	}
	data, err := slot.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		logger.Printf("cart: load slot failed, starting empty: %v", err)
	default:
		var items []domain.CartLineItem
		if err := json.Unmarshal(data, &items); err != nil {
			logger.Printf("cart: corrupt slot data, starting empty: %v", err)
		} else {
			a.items = items
		}
	}
	return a
}

// Add appends the line item to the end of the sequence. Two identical
// configurations stay separate entries; nothing is merged.
func (a *Aggregator) Add(ctx context.Context, item domain.CartLineItem) {
	a.items = append(a.items, item)
	a.persist(ctx)
}

// Remove deletes the matching entry. A missing id is a no-op.
func (a *Aggregator) Remove(ctx context.Context, itemID string) {
	for i, item := range a.items {
		if item.ID == itemID {
			a.items = append(a.items[:i], a.items[i+1:]...)
			a.persist(ctx)
			return
		}
	}
}

// SetQuantity replaces the entry's quantity in place, preserving its
// position. A quantity of zero or less removes the entry entirely.
func (a *Aggregator) SetQuantity(ctx context.Context, itemID string, quantity int) {
	if quantity <= 0 {
		a.Remove(ctx, itemID)
		return
	}
	for i := range a.items {
		if a.items[i].ID == itemID {
			a.items[i].Quantity = quantity
			a.persist(ctx)
			return
		}
	}
}

// Clear empties the sequence.
func (a *Aggregator) Clear(ctx context.Context) {
	a.items = nil
	a.persist(ctx)
}

// Items returns the current sequence in insertion order.
func (a *Aggregator) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(a.items))
	copy(out, a.items)
	return out
}

// Snapshot recomputes the cart from scratch. Cart sizes are small, so
// correctness wins over incremental caching. All arithmetic stays in
// full decimal precision; rounding happens at presentation time only.
func (a *Aggregator) Snapshot() domain.Cart {
	subtotal := decimal.Zero
	monthly := decimal.Zero

	for _, item := range a.items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		opt := item.SelectedPricingOption

		subtotal = subtotal.Add(opt.DownPayment.Mul(qty))
		if opt.MonthlyPayment != nil {
			monthly = monthly.Add(opt.MonthlyPayment.Mul(qty))
		}
		if item.SelectedRatePlan != nil {
			monthly = monthly.Add(item.SelectedRatePlan.MonthlyCost.Mul(qty))
		}
		for _, f := range item.SelectedFeatures {
			monthly = monthly.Add(f.MonthlyCost.Mul(qty))
		}
	}

	taxes := subtotal.Mul(taxRate)
	return domain.Cart{
		Items:               a.Items(),
		Subtotal:            subtotal,
		Taxes:               taxes,
		Fees:                processingFee,
		TotalDueNow:         subtotal.Add(taxes).Add(processingFee),
		TotalMonthlyCharges: monthly,
	}
}

func (a *Aggregator) persist(ctx context.Context) {
	if a.slot == nil {
		return
	}
	data, err := json.Marshal(a.itemsOrEmpty())
	if err != nil {
		a.logger.Printf("cart: marshal for persist failed: %v", err)
		return
	}
	if err := a.slot.Save(ctx, data); err != nil {
		a.logger.Printf("cart: save slot failed, keeping in-memory state: %v", err)
	}
}

func (a *Aggregator) itemsOrEmpty() []domain.CartLineItem {
	if a.items == nil {
		return []domain.CartLineItem{}
	}
	return a.items
}
