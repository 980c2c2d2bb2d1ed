package middleware

import (
	"net/http"

	"policyAdvisor/pkg/logger"

	jsonres "policyAdvisor/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: anything a handler did not map
// itself comes out as the standard error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if jsonErr := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
