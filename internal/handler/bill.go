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

// BillHandler serves the billing endpoints. Creation goes through
// the billing workflow; reads hit the repository directly.
type BillHandler struct {
	Billing *service.BillingService
	Reads   *repository.BillRepo
}

func NewBillHandler(s *service.BillingService, r *repository.BillRepo) *BillHandler {
	return &BillHandler{Billing: s, Reads: r}
}

type createBillReq struct {
	OrderID       uint64 `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

// Create handles POST /v1/bills. A second bill for the same order
// comes back as 409.
func (h *BillHandler) Create(c echo.Context) error {
	var body createBillReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	bill, err := h.Billing.CreateBill(c.Request().Context(), service.CreateBillRequest{
		OrderID:       body.OrderID,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return writeErr(c, err)
	}

	_ = queue.Publish(c.Request().Context(), queue.BillIssuedQueue, queue.BillIssuedEvent{
		BillID:        bill.ID,
		OrderID:       bill.OrderID,
		Amount:        bill.Amount,
		PaymentMethod: bill.PaymentMethod,
		IssuedAt:      bill.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, bill)
}

// Get handles GET /v1/bills/:id.
func (h *BillHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bill id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	bill, err := h.Reads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bill not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bill)
}

// List handles GET /v1/bills.
func (h *BillHandler) List(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	bills, err := h.Reads.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bills)
}
