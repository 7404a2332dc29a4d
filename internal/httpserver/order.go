package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
)

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	o, err := h.deps.Orders.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateOrderRequest struct {
	Status         domain.OrderStatus `json:"status" binding:"required"`
	TrackingNumber *string            `json:"tracking_number"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	o, err := h.deps.Orders.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), req.Status, req.TrackingNumber)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
