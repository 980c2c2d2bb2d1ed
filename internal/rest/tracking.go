package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type TrackingService interface {
	Track(ctx context.Context, event domain.TrackingEvent) error
	RecentEvents(ctx context.Context, limit int) ([]domain.TrackingEvent, error)
}

type TrackingHandler struct {
	trackingService TrackingService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewTrackingHandler(trackingService TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type TrackRequest struct {
	EventType       string                 `json:"event_type" validate:"required"`
	Timestamp       time.Time              `json:"timestamp"`
	SessionID       string                 `json:"session_id"`
	Page            string                 `json:"page"`
	CustomerID      uint                   `json:"customer_id"`
	PolicyID        uint64                 `json:"policy_id"`
	InteractionType string                 `json:"interaction_type"`
	Duration        float64                `json:"duration"`
	Query           string                 `json:"query"`
	Referrer        string                 `json:"referrer"`
	AdditionalData  map[string]interface{} `json:"additional_data"`
}

// POST /api/v1/track — fire-and-forget client event ingestion.
func (h *TrackingHandler) Track(c echo.Context) error {
	var req TrackRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate tracking request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := domain.TrackingEvent{
		EventType:       req.EventType,
		Timestamp:       req.Timestamp,
		SessionID:       req.SessionID,
		Page:            req.Page,
		CustomerID:      req.CustomerID,
		PolicyID:        req.PolicyID,
		InteractionType: req.InteractionType,
		Duration:        req.Duration,
		Query:           req.Query,
		Referrer:        req.Referrer,
		AdditionalData:  datatypes.JSONMap(req.AdditionalData),
	}

	if err := h.trackingService.Track(ctx, event); err != nil {
		logger.Error("Failed to save tracking event", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "event recorded",
	})
}

func (h *TrackingHandler) RecentEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.trackingService.RecentEvents(ctx, limit)
	if err != nil {
		logger.Error("Failed to find recent events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get recent events",
		"events":  events,
	})
}
