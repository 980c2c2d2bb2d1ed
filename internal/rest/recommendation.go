package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validator        *validator.Validate
		recommendService RecommendationService
		timeout          time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, customerID uint, topN int) ([]domain.PolicyRecommendation, error)
		Reload(ctx context.Context) error
	}

	RecommendQuery struct {
		CustomerID uint `query:"customer_id" validate:"required,gt=0"`
		TopN       int  `query:"top_n"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validator:        validator.New(),
		recommendService: svc,
		timeout:          10 * time.Second,
	}
}

// GET /api/v1/recommendations?customer_id=101&top_n=5
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendService.Recommend(ctx, q.CustomerID, q.TopN)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrScorerUnavailable):
			return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrInsufficientData):
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// ReloadSnapshot refits the feature transforms against the current corpus.
// Admin-only; serving keeps the old snapshot until the swap lands.
func (h *RecommendationHandler) ReloadSnapshot(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := h.recommendService.Reload(ctx); err != nil {
		logger.Error("Failed to reload snapshot", err)
		if errors.Is(err, domain.ErrInsufficientData) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "snapshot reloaded",
	})
}
