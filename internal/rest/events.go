package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopsmart/domain"
	"shopsmart/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EventService interface {
	Track(ctx context.Context, externalUserID string, productID uint64, eventType string, timestamp time.Time, sessionID string, metadata map[string]any) (*domain.Event, error)
}

type EventHandler struct {
	eventService EventService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type TrackEventRequest struct {
	UserID    string         `json:"user_id" validate:"required"`
	ProductID uint64         `json:"product_id" validate:"required"`
	EventType string         `json:"event_type" validate:"required,oneof=view add_to_cart purchase"`
	Timestamp *time.Time     `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata"`
}

func (h *EventHandler) TrackEvent(c echo.Context) error {
	var req TrackEventRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind event request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate event request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var timestamp time.Time
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	event, err := h.eventService.Track(ctx, req.UserID, req.ProductID, req.EventType, timestamp, req.SessionID, req.Metadata)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to track event", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}
