package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
)

func (h *handlers) listSubscribers(c *gin.Context) {
	subs, err := h.deps.Subscribers.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subs})
}

func (h *handlers) getSubscriber(c *gin.Context) {
	sub, err := h.deps.Subscribers.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *handlers) updateSubscriber(c *gin.Context) {
	var in domain.SubscriberUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "malformed subscriber payload")
		return
	}
	sub, err := h.deps.Subscribers.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
