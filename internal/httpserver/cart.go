package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/cart"
	"reseller-portal/internal/domain"
	cartslotrepo "reseller-portal/internal/repository/cartslot"
)

// cartSlotKey is the durable slot every session's line items live under.
const cartSlotKey = "cart"

// loadCart restores the caller's aggregator from its slot. The
// aggregator is rebuilt per request; the slot row is the source of
// truth between requests.
func (h *handlers) loadCart(c *gin.Context) *cart.Aggregator {
	slot := cartslotrepo.OwnerSlot{
		Repo:    h.deps.CartSlots,
		OwnerID: currentUser(c).ID,
		Key:     cartSlotKey,
	}
	return cart.NewAggregator(c.Request.Context(), slot, h.logger)
}

// presentCart rounds the derived totals to cents for display. Stored
// and in-flight amounts keep full precision.
func presentCart(snapshot domain.Cart) domain.Cart {
	snapshot.Subtotal = snapshot.Subtotal.Round(2)
	snapshot.Taxes = snapshot.Taxes.Round(2)
	snapshot.Fees = snapshot.Fees.Round(2)
	snapshot.TotalDueNow = snapshot.TotalDueNow.Round(2)
	snapshot.TotalMonthlyCharges = snapshot.TotalMonthlyCharges.Round(2)
	return snapshot
}

func (h *handlers) getCart(c *gin.Context) {
	agg := h.loadCart(c)
	c.JSON(http.StatusOK, presentCart(agg.Snapshot()))
}

func (h *handlers) clearCart(c *gin.Context) {
	agg := h.loadCart(c)
	agg.Clear(c.Request.Context())
	c.JSON(http.StatusOK, presentCart(agg.Snapshot()))
}

type addCartItemRequest struct {
	ProductID       string   `json:"product_id" binding:"required"`
	PricingOptionID string   `json:"pricing_option_id"`
	RatePlanID      string   `json:"rate_plan_id"`
	FeatureIDs      []string `json:"feature_ids"`
	Quantity        int      `json:"quantity"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed cart item payload")
		return
	}
	ctx := c.Request.Context()

	product, err := h.deps.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := cart.CheckProduct(*product); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var option *domain.PricingOption
	if req.PricingOptionID != "" {
		for i := range product.PricingOptions {
			if product.PricingOptions[i].ID == req.PricingOptionID {
				option = &product.PricingOptions[i]
				break
			}
		}
		if option == nil {
			respondError(c, h.logger, domain.NewValidationError(domain.CodePricingOptionMismatch,
				"pricing option does not belong to this product"))
			return
		}
	}

	var plan *domain.RatePlan
	if req.RatePlanID != "" {
		plan, err = h.deps.Catalog.GetRatePlan(ctx, req.RatePlanID)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		if err := cart.CheckRatePlan(*plan); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	features := make([]domain.Feature, 0, len(req.FeatureIDs))
	for _, id := range req.FeatureIDs {
		f, err := h.deps.Catalog.GetFeature(ctx, id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		if err := cart.CheckFeature(*f); err != nil {
			respondError(c, h.logger, err)
			return
		}
		features = append(features, *f)
	}

	item, err := cart.Build(*product, option, plan, features, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	agg := h.loadCart(c)
	agg.Add(ctx, item)
	c.JSON(http.StatusCreated, presentCart(agg.Snapshot()))
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed quantity payload")
		return
	}
	agg := h.loadCart(c)
	agg.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, presentCart(agg.Snapshot()))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	agg := h.loadCart(c)
	agg.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, presentCart(agg.Snapshot()))
}
