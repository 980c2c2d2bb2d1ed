package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CustomerService interface {
	GetAllCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, id uint) (domain.Customer, error)
}

type CustomerHandler struct {
	customerService CustomerService
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		timeout:         10 * time.Second,
	}
}

func (h *CustomerHandler) GetAllCustomers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customers, err := h.customerService.GetAllCustomers(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get all customers",
		"customers": customers,
	})
}

func (h *CustomerHandler) GetCustomerByID(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.GetCustomerByID(ctx, uint(customerID))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully find customer by id",
		"customer": customer,
	})
}
