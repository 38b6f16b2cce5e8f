// Package handler contains the HTTP layer: request binding, the
// translation of workflow errors into status codes and JSON
// responses. Handlers never touch the database directly; they call
// the workflow services for anything transactional and the read
// repositories for plain lookups.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/apperr"
)

// contextTimeout derives a bounded context for repository calls made
// directly from a handler. Transactional work carries its own
// deadline inside the coordinator.
func contextTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// parseID extracts a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// employeeID reads the authenticated employee id placed in the
// context by the JWT middleware.
func employeeID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("employee_id").(uint64)
	return id, ok && id != 0
}

// writeErr maps a workflow error onto an HTTP response. The mapping
// is fixed:
//
//	NotFound        -> 404
//	InvalidArgument -> 400
//	Conflict        -> 409
//	InvalidState    -> 422
//	Timeout         -> 504
//	everything else -> 500
func writeErr(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case apperr.KindTimeout:
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
