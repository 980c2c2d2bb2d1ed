package rest

import (
	"context"
	"net/http"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	BuildReport(ctx context.Context) (domain.AnalyticsReport, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
	timeout          time.Duration
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          30 * time.Second,
	}
}

// GET /api/v1/admin/analytics
func (h *DashboardHandler) GetAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.dashboardService.BuildReport(ctx)
	if err != nil {
		logger.Error("Failed to build analytics report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}
