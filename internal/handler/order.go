package handler

import (
	"database/sql"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/model"
	"github.com/iliyamo/restaurant-management/internal/queue"
	"github.com/iliyamo/restaurant-management/internal/repository"
	"github.com/iliyamo/restaurant-management/internal/service"
)

// OrderHandler serves the order endpoints. Placement and deletion go
// through the workflow service; reads hit the read repository
// directly, outside any transaction.
type OrderHandler struct {
	Orders *service.OrderService
	Reads  *repository.OrderRepo
}

func NewOrderHandler(s *service.OrderService, r *repository.OrderRepo) *OrderHandler {
	return &OrderHandler{Orders: s, Reads: r}
}

type placeOrderReq struct {
	CustomerName string  `json:"customer_name"`
	Phone        *string `json:"phone"`
	Lines        []struct {
		ItemID   uint64 `json:"item_id"`
		Quantity uint32 `json:"quantity"`
	} `json:"lines"`
}

// Place handles POST /v1/orders. The ringing employee comes from the
// access token, never from the body.
func (h *OrderHandler) Place(c echo.Context) error {
	empID, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body placeOrderReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	req := service.PlaceOrderRequest{
		EmployeeID:   empID,
		CustomerName: body.CustomerName,
		Phone:        body.Phone,
	}
	for _, l := range body.Lines {
		req.Lines = append(req.Lines, service.OrderLineRequest{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	order, err := h.Orders.PlaceOrder(c.Request().Context(), req)
	if err != nil {
		return writeErr(c, err)
	}

	// Best effort; a broker outage never fails the request.
	_ = queue.Publish(c.Request().Context(), queue.OrderPlacedQueue, queue.OrderPlacedEvent{
		OrderID:      order.ID,
		EmployeeID:   order.EmployeeID,
		CustomerName: order.CustomerName,
		LineCount:    len(order.Lines),
		Total:        order.Total,
		PlacedAt:     order.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id. The total is recomputed from the
// line snapshots at read time, matching what billing would charge
// right now.
func (h *OrderHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	order, err := h.Reads.GetHeader(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	lines, err := h.Reads.GetLines(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	fillTotals(&order, lines)
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/orders.
func (h *OrderHandler) List(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	orders, err := h.Reads.ListHeaders(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range orders {
		lines, err := h.Reads.GetLines(ctx, orders[i].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		fillTotals(&orders[i], lines)
	}
	return c.JSON(http.StatusOK, orders)
}

// Delete handles DELETE /v1/orders/:id. Billed orders are immutable
// and come back as 422.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	if err := h.Orders.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// fillTotals attaches line subtotals and the order total, rounded to
// cents.
func fillTotals(o *model.Order, lines []model.OrderLine) {
	var total float64
	for i := range lines {
		sub := math.Round(lines[i].UnitPrice*float64(lines[i].Quantity)*100) / 100
		lines[i].Subtotal = sub
		total += sub
	}
	o.Lines = lines
	o.Total = math.Round(total*100) / 100
}
