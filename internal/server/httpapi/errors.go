package httpapi

import (
	"errors"
	"net/http"

	"github.com/AliKaner/mc-case/internal/client/client"
	"github.com/AliKaner/mc-case/internal/common"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: msg})
}

// statusFor maps facade errors onto HTTP statuses. Client errors from the
// remote API keep their status; anything that went wrong upstream is a 502.
func statusFor(err error) int {
	var se *client.StatusError
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.As(err, &se) && se.Code >= 400 && se.Code < 500:
		return se.Code
	case errors.Is(err, common.ErrRestoreUsers):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeError(c echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn(c.Request().Context(), "request failed", "path", c.Path(), "status", status, "err", err)
	}
	return c.JSON(status, errorResponse{Message: err.Error()})
}
