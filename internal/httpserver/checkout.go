package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutsvc "reseller-portal/internal/service/checkout"
)

// checkout submits the caller's current cart. On success the cart is
// cleared; the order keeps the denormalized pricing.
func (h *handlers) checkout(c *gin.Context) {
	var in checkoutsvc.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "malformed checkout payload")
		return
	}
	ctx := c.Request.Context()
	agg := h.loadCart(c)

	order, err := h.deps.Checkout.Submit(ctx, currentUser(c).ID, agg.Snapshot(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	agg.Clear(ctx)

	c.JSON(http.StatusCreated, order)
}
