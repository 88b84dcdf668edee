package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"authbase/internal/apperror"
	"authbase/internal/config"
)

// ErrorResponse is the envelope every failed request is serialized into.
// Status is "fail" for 4xx and "error" for 5xx. Detail carries internal
// diagnostics and is populated only outside production.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns the single boundary where failures are
// classified and formatted. Handlers and middleware return errors; nothing
// below this point writes an error response itself.
func NewHTTPErrorHandler(cfg *config.Config, log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		detail := ""

		if appErr, ok := apperror.FromError(err); ok {
			status = appErr.StatusCode()
			message = appErr.Message
			detail = appErr.Error()
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
			detail = httpErr.Error()
		} else {
			detail = err.Error()
		}

		if status >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"status":     status,
			}).WithError(err).Error("request failed")
		}

		resp := ErrorResponse{
			Status:  statusWord(status),
			Message: message,
		}
		if !cfg.IsProduction() && status >= http.StatusInternalServerError {
			resp.Detail = detail
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		if jsonErr := c.JSON(status, resp); jsonErr != nil {
			log.WithError(jsonErr).Error("write error response")
		}
	}
}

func statusWord(status int) string {
	if status >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}
