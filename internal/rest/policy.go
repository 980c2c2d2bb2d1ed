package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PolicyService interface {
	GetAllPolicies(ctx context.Context) ([]domain.Policy, error)
	SearchPolicies(ctx context.Context, query string, limit int) ([]domain.Policy, error)
	GetPolicyByID(ctx context.Context, id uint64) (domain.Policy, error)
	CreatePolicy(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
	UpdatePolicy(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
	DeletePolicy(ctx context.Context, id uint64) error
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

type PolicyHandler struct {
	policyService PolicyService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewPolicyHandler(policyService PolicyService) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type PolicyRequest struct {
	PolicyID            uint64  `json:"policy_id" validate:"required,gt=0"`
	PolicyName          string  `json:"policy_name" validate:"required"`
	PolicyType          string  `json:"policy_type" validate:"required"`
	Description         string  `json:"description"`
	Keywords            string  `json:"keywords"`
	SumAssured          string  `json:"sum_assured"`
	PremiumAmount       string  `json:"premium_amount"`
	PolicyDurationYears float64 `json:"policy_duration_years" validate:"gte=0"`
	RiskCategory        string  `json:"risk_category"`
	CustomerTargetGroup string  `json:"customer_target_group"`
}

func (r PolicyRequest) toDomain() *domain.Policy {
	return &domain.Policy{
		PolicyID:            r.PolicyID,
		PolicyName:          r.PolicyName,
		PolicyType:          r.PolicyType,
		Description:         r.Description,
		Keywords:            r.Keywords,
		SumAssured:          r.SumAssured,
		PremiumAmount:       r.PremiumAmount,
		PolicyDurationYears: r.PolicyDurationYears,
		RiskCategory:        r.RiskCategory,
		CustomerTargetGroup: r.CustomerTargetGroup,
	}
}

func (h *PolicyHandler) GetAllPolicies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	policies, err := h.policyService.GetAllPolicies(ctx)
	if err != nil {
		logger.Error("Failed to find all policies", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all policies",
		"policies": policies,
	})
}

// GET /api/v1/policies/search?q=term&limit=20
func (h *PolicyHandler) SearchPolicies(c echo.Context) error {
	query := c.QueryParam("q")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	policies, err := h.policyService.SearchPolicies(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to search policies", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully search policies",
		"policies": policies,
	})
}

func (h *PolicyHandler) GetPolicyByID(c echo.Context) error {
	policyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid policy id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	policy, err := h.policyService.GetPolicyByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find policy by id",
		"policy":  policy,
	})
}

func (h *PolicyHandler) CreatePolicy(c echo.Context) error {
	var req PolicyRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate policy request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newPolicy, err := h.policyService.CreatePolicy(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to create policy", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Policy successfully created",
		"policy":  newPolicy,
	})
}

func (h *PolicyHandler) UpdatePolicy(c echo.Context) error {
	policyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid policy id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req PolicyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	req.PolicyID = policyID

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate policy request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updatedPolicy, err := h.policyService.UpdatePolicy(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to update policy", err)
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update policy",
		"policy":  updatedPolicy,
	})
}

func (h *PolicyHandler) DeletePolicy(c echo.Context) error {
	policyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid policy id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.policyService.DeletePolicy(ctx, policyID); err != nil {
		logger.Error("Failed to delete policy", err)
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "policy successfully deleted",
		"policy_id": policyID,
	})
}

// ImportPolicies ingests a CSV catalog export uploaded as multipart form
// field "file". Admin-only; after a large import the snapshot should be
// reloaded so new policies enter the candidate pool.
func (h *PolicyHandler) ImportPolicies(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing csv file upload"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	imported, err := h.policyService.ImportCSV(ctx, src)
	if err != nil {
		logger.Error("Failed to import policies", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "policies imported",
		"imported": imported,
	})
}
