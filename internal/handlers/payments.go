package handlers

import (
	"net/http"

	"sefer/internal/models"

	"github.com/gin-gonic/gin"
)

// Payments handlers

// CompletePayment - PATCH /api/payments/complete
// Провести платёж за бронирование
func (h *Handlers) CompletePayment(c *gin.Context) {
	var req models.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.services.Payments.Complete(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListPayments - GET /api/reservations/:id/payments
// История платёжных попыток бронирования
func (h *Handlers) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payments, err := h.services.Payments.ListForReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
