package handlers

import (
	"net/http"
	"strconv"

	"sefer/internal/models"

	"github.com/gin-gonic/gin"
)

// Reservations handlers

// CreateReservation - POST /api/reservations
// Забронировать место на рейсе
func (h *Handlers) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.services.Reservations.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateReservationResponse{
		ID:            reservation.ID,
		Status:        reservation.Status,
		PaymentStatus: reservation.PaymentStatus,
	})
}

// GetReservation - GET /api/reservations/:id
// Получить бронирование
func (h *Handlers) GetReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reservation, err := h.services.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ListReservations - GET /api/reservations?user_id=&include_cancelled=
// Получить список бронирований пользователя; отменённые скрыты по умолчанию
func (h *Handlers) ListReservations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	includeCancelled := c.DefaultQuery("include_cancelled", "false") == "true"

	response, err := h.services.Reservations.ListForUser(c.Request.Context(), userID, !includeCancelled)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelReservation - PATCH /api/reservations/cancel
// Отменить бронирование и освободить место
func (h *Handlers) CancelReservation(c *gin.Context) {
	var req models.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Reservations.Cancel(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
