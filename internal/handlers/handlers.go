package handlers

import (
	goerrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"sefer/internal/errors"
	"sefer/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// respondError maps the business error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a store failure: logged and returned as 500, safe
// for the client to retry.
func respondError(c *gin.Context, err error) {
	switch {
	case goerrors.Is(err, errors.ErrNotFound), goerrors.Is(err, errors.ErrInvalidSeat):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case goerrors.Is(err, errors.ErrSeatUnavailable),
		goerrors.Is(err, errors.ErrTripNotActive),
		goerrors.Is(err, errors.ErrAlreadyCancelled),
		goerrors.Is(err, errors.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case goerrors.Is(err, errors.ErrPriceMismatch), goerrors.Is(err, errors.ErrInvalidTimeout):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		slog.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// Trips handlers

// GetTrip - GET /api/trips/:id
// Получить рейс (через кеш)
func (h *Handlers) GetTrip(c *gin.Context) {
	tripID, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := h.services.Trips.Get(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// ListAvailableSeats - GET /api/trips/:id/seats
// Получить свободные места рейса
func (h *Handlers) ListAvailableSeats(c *gin.Context) {
	tripID, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Trips.ListAvailableSeats(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
