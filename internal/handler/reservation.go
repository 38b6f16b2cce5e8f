package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/queue"
	"github.com/iliyamo/restaurant-management/internal/repository"
	"github.com/iliyamo/restaurant-management/internal/service"
)

// ReservationHandler serves the reservation endpoints. Reserve and
// cancel go through the workflow service; reads hit the repository.
type ReservationHandler struct {
	Reservations *service.ReservationService
	Reads        *repository.ReservationRepo
}

func NewReservationHandler(s *service.ReservationService, r *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: s, Reads: r}
}

type reserveReq struct {
	TableID        uint64  `json:"table_id"`
	PossessionCode string  `json:"possession_code"`
	CustomerName   string  `json:"customer_name"`
	Phone          *string `json:"phone"`
}

// Reserve handles POST /v1/reservations. A table already reserved
// comes back as 409; a wrong possession code as 400.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	var body reserveReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := h.Reservations.Reserve(c.Request().Context(), service.ReserveRequest{
		TableID:        body.TableID,
		PossessionCode: body.PossessionCode,
		CustomerName:   body.CustomerName,
		Phone:          body.Phone,
	})
	if err != nil {
		return writeErr(c, err)
	}

	_ = queue.Publish(c.Request().Context(), queue.TableReservedQueue, queue.TableReservedEvent{
		ReservationID: res.ID,
		TableID:       res.TableID,
		CustomerName:  res.CustomerName,
		ReservedAt:    res.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, res)
}

// Cancel handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.CancelReservation(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	res, err := h.Reads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /v1/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	list, err := h.Reads.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}
