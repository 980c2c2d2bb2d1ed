package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PromotionService interface {
	GetAllPromotions(ctx context.Context) ([]domain.Promotion, error)
	GetPromotionByID(ctx context.Context, id uint) (domain.Promotion, error)
	ActiveAsOf(ctx context.Context, asOf time.Time) (map[uint64]domain.ActivePromotion, error)
	CreatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	DeletePromotion(ctx context.Context, id uint) error
}

type PromotionHandler struct {
	promotionService PromotionService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewPromotionHandler(promotionService PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type PromotionRequest struct {
	PolicyID  uint64    `json:"policy_id" validate:"required,gt=0"`
	Name      string    `json:"name" validate:"required"`
	Tag       string    `json:"tag"`
	Priority  int       `json:"priority" validate:"required,gte=1"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Active    bool      `json:"active"`
}

func (r PromotionRequest) toDomain() *domain.Promotion {
	return &domain.Promotion{
		PolicyID:  r.PolicyID,
		Name:      r.Name,
		Tag:       r.Tag,
		Priority:  r.Priority,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Active:    r.Active,
	}
}

func (h *PromotionHandler) GetAllPromotions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	promotions, err := h.promotionService.GetAllPromotions(ctx)
	if err != nil {
		logger.Error("Failed to find all promotions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get all promotions",
		"promotions": promotions,
	})
}

// GetActivePromotions returns the promotions applying right now, keyed by
// policy id — the same view the ranking engine consumes.
func (h *PromotionHandler) GetActivePromotions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	active, err := h.promotionService.ActiveAsOf(ctx, time.Now())
	if err != nil {
		logger.Error("Failed to resolve active promotions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get active promotions",
		"promotions": active,
	})
}

func (h *PromotionHandler) GetPromotionByID(c echo.Context) error {
	promoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid promotion id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	promotion, err := h.promotionService.GetPromotionByID(ctx, uint(promoID))
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully find promotion by id",
		"promotion": promotion,
	})
}

func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req PromotionRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate promotion request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newPromotion, err := h.promotionService.CreatePromotion(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to create promotion", err)
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Promotion successfully created",
		"promotion": newPromotion,
	})
}

func (h *PromotionHandler) UpdatePromotion(c echo.Context) error {
	promoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid promotion id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req PromotionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate promotion request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	promotion := req.toDomain()
	promotion.ID = uint(promoID)

	updatedPromotion, err := h.promotionService.UpdatePromotion(ctx, promotion)
	if err != nil {
		logger.Error("Failed to update promotion", err)
		if errors.Is(err, domain.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully update promotion",
		"promotion": updatedPromotion,
	})
}

func (h *PromotionHandler) DeletePromotion(c echo.Context) error {
	promoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid promotion id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.promotionService.DeletePromotion(ctx, uint(promoID)); err != nil {
		logger.Error("Failed to delete promotion", err)
		if errors.Is(err, domain.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "promotion successfully deleted",
		"promotion_id": promoID,
	})
}
