package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/repository"
)

// ReviewHandler serves guest reviews. Submitting a review is public;
// deletion is an admin operation.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(r *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r}
}

type createReviewReq struct {
	Name    string `json:"name"`
	Rating  uint8  `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles POST /v1/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var body createReviewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	review, err := h.Reviews.Create(ctx, body.Name, body.Rating, strings.TrimSpace(body.Comment))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, review)
}

// Get handles GET /v1/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	review, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, review)
}

// List handles GET /v1/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	reviews, err := h.Reviews.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, reviews)
}

// Delete handles DELETE /v1/reviews/:id (admin only).
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	found, err := h.Reviews.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/reviews/stats.
func (h *ReviewHandler) Stats(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	stats, err := h.Reviews.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}
