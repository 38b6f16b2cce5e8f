package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/apperr"
)

func TestWriteErrStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFound("order", 1), http.StatusNotFound},
		{"invalid argument", apperr.InvalidArgument("lines", "an order needs at least one line"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("already_billed", "order already billed"), http.StatusConflict},
		{"invalid state", apperr.InvalidState("billed", "billed orders are immutable"), http.StatusUnprocessableEntity},
		{"timeout", apperr.Timeout(errors.New("deadline exceeded")), http.StatusGatewayTimeout},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			if err := writeErr(ctx, c.err); err != nil {
				t.Fatalf("writeErr returned %v", err)
			}
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}

func TestWriteErrHidesInternalDetail(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := writeErr(ctx, errors.New("dsn=user:secret@tcp")); err != nil {
		t.Fatalf("writeErr returned %v", err)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Errorf("internal error detail leaked to the client: %s", rec.Body.String())
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	for _, c := range []struct {
		raw string
		ok  bool
	}{
		{"42", true},
		{"0", false},
		{"-1", false},
		{"abc", false},
		{"", false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues(c.raw)

		id, ok := parseID(ctx, "id")
		if ok != c.ok {
			t.Errorf("parseID(%q) ok = %v, want %v", c.raw, ok, c.ok)
		}
		if c.ok && id != 42 {
			t.Errorf("parseID(%q) = %d, want 42", c.raw, id)
		}
	}
}
