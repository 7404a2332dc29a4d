package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
)

func (h *handlers) listBillingReports(c *gin.Context) {
	reports, err := h.deps.Billing.ListReports(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *handlers) getBillingReport(c *gin.Context) {
	rep, err := h.deps.Billing.GetReport(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// filterBillingLineItems narrows one report's charges via query params:
// charge_type (repeatable), phone_number (repeatable), custom_field
// (1-4) with custom_value, period_start and period_end (RFC 3339).
func (h *handlers) filterBillingLineItems(c *gin.Context) {
	var filter domain.BillingFilter

	for _, raw := range c.QueryArray("charge_type") {
		filter.ChargeTypes = append(filter.ChargeTypes, domain.ChargeType(raw))
	}
	filter.PhoneNumbers = c.QueryArray("phone_number")

	if raw := c.Query("custom_field"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 1 || idx > 4 {
			badRequest(c, "custom_field must be 1-4")
			return
		}
		filter.CustomFieldIndex = idx
		filter.CustomFieldValue = c.Query("custom_value")
	}

	for param, dst := range map[string]**time.Time{
		"period_start": &filter.PeriodStart,
		"period_end":   &filter.PeriodEnd,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, param+" must be RFC 3339")
			return
		}
		*dst = &ts
	}

	items, err := h.deps.Billing.FilterLineItems(c.Request.Context(), currentUser(c), c.Param("id"), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line_items": items})
}
