package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
	"github.com/tuwebai/tuweb-backend/internal/payments/service"
)

// createPreference serves POST /crear-preferencia.
func (h *Handler) createPreference(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	// When the buyer is logged in, trust the token over the body.
	if uid := auth.UserFirebaseUID(c); uid != "" {
		req.UserID = uid
	}

	pref, payment, err := h.payments.CreateCheckout(c.Request.Context(), &req)
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":         pref.ID,
			"init_point": pref.InitPoint,
			"paymentId":  payment.ID,
		},
	})
}

// status serves GET /api/payments/status/:id for the checkout return pages.
func (h *Handler) status(c *gin.Context) {
	id, err := service.ParseGatewayID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gp, err := h.payments.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":   gp.Status,
			"amount":   gp.TransactionAmount,
			"currency": gp.CurrencyID,
		},
	})
}

// listForUser serves GET /api/users/:uid/payments.
func (h *Handler) listForUser(c *gin.Context) {
	uid := c.Param("uid")
	if auth.UserFirebaseUID(c) != uid && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	// limit is honored only when it parses to a positive integer.
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.payments.ListForUser(c.Request.Context(), uid, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func isValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
