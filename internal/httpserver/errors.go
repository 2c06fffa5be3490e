package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/gallery/internal/domain"
)

// httpError logs err under "<op>_failed" and converts it to an echo error.
func httpError(l *slog.Logger, op string, err error) error {
	event := op + "_failed"
	switch {
	case errors.Is(err, domain.ErrValidation):
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid input", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAuthentication):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "invalid credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, domain.ErrAuthorization):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "not logged in")
		return echo.NewHTTPError(http.StatusUnauthorized, "admin login required")
	case errors.Is(err, domain.ErrNotFound):
		l.Error(event, "status", http.StatusNotFound, "reason", "missing row", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	default:
		l.Error(event, "status", http.StatusInternalServerError, "reason", "storage failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
