package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Catalog.ListActiveProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listRatePlans(c *gin.Context) {
	plans, err := h.deps.Catalog.ListActiveRatePlans(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate_plans": plans})
}

func (h *handlers) listFeatures(c *gin.Context) {
	features, err := h.deps.Catalog.ListActiveFeatures(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}

func (h *handlers) upsertProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "malformed product payload")
		return
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}
	saved, err := h.deps.Catalog.UpsertProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deactivateProduct(c *gin.Context) {
	if err := h.deps.Catalog.DeactivateProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) upsertRatePlan(c *gin.Context) {
	var p domain.RatePlan
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "malformed rate plan payload")
		return
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}
	saved, err := h.deps.Catalog.UpsertRatePlan(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deactivateRatePlan(c *gin.Context) {
	if err := h.deps.Catalog.DeactivateRatePlan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) upsertFeature(c *gin.Context) {
	var f domain.Feature
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, "malformed feature payload")
		return
	}
	if id := c.Param("id"); id != "" {
		f.ID = id
	}
	saved, err := h.deps.Catalog.UpsertFeature(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deactivateFeature(c *gin.Context) {
	if err := h.deps.Catalog.DeactivateFeature(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
