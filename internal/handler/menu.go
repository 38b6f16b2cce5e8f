package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/repository"
)

// MenuHandler serves the menu catalogue. Reads are public; writes
// sit behind the admin role.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(m *repository.MenuRepo) *MenuHandler {
	return &MenuHandler{Menu: m}
}

type menuItemReq struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (r *menuItemReq) normalize() (string, bool) {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return "name is required", false
	}
	if r.Price <= 0 {
		return "price must be positive", false
	}
	if r.Category == "" {
		return "category is required", false
	}
	return "", true
}

// List handles GET /v1/menu.
func (h *MenuHandler) List(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	items, err := h.Menu.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/menu/:id.
func (h *MenuHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	item, err := h.Menu.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/menu (admin only).
func (h *MenuHandler) Create(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	id, err := h.Menu.Create(ctx, req.Name, req.Price, req.Category, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create menu item failed"})
	}
	item, err := h.Menu.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/menu/:id (admin only).
func (h *MenuHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	found, err := h.Menu.Update(ctx, id, req.Name, req.Price, req.Category, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update menu item failed"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	}
	item, err := h.Menu.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/menu/:id (admin only). Items referenced
// by existing order lines are protected by a foreign key; the delete
// fails rather than orphaning lines.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}

	ctx, cancel := contextTimeout(c)
	defer cancel()

	found, err := h.Menu.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "menu item is referenced by existing orders"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Categories handles GET /v1/menu/categories.
func (h *MenuHandler) Categories(c echo.Context) error {
	ctx, cancel := contextTimeout(c)
	defer cancel()

	cats, err := h.Menu.Categories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}
