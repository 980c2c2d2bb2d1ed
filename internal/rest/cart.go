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

type CartService interface {
	AddItem(ctx context.Context, customerID uint, policyID uint64) (*domain.Cart, error)
	GetCart(ctx context.Context, customerID uint) (*domain.Cart, error)
	Checkout(ctx context.Context, customerID uint) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AddCartItemRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required,gt=0"`
	PolicyID   uint64 `json:"policy_id" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	CustomerID uint `json:"customer_id" validate:"required,gt=0"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.AddItem(ctx, req.CustomerID, req.PolicyID)
	if err != nil {
		logger.Error("Failed to add cart item", err)
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "item added to cart",
		"cart":    cart,
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("customer_id"), 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.GetCart(ctx, uint(customerID))
	if err != nil {
		logger.Error("Failed to get cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get cart",
		"cart":    cart,
	})
}

// Checkout drains the cart and records the purchases into interaction
// history, where the next snapshot reload picks them up.
func (h *CartHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.Checkout(ctx, req.CustomerID); err != nil {
		logger.Error("Failed to checkout cart", err)
		if errors.Is(err, domain.ErrCartEmpty) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "checkout successful",
	})
}
