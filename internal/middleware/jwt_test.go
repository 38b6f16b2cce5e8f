package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if err := mw(okHandler)(ctx); err != nil {
		t.Fatalf("middleware returned %v", err)
	}
	return rec, ctx
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, "cashier", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	rec, ctx := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id, ok := ctx.Get("employee_id").(uint64); !ok || id != 7 {
		t.Errorf("employee_id = %v, want 7", ctx.Get("employee_id"))
	}
	if role, ok := ctx.Get("role").(string); !ok || role != "cashier" {
		t.Errorf("role = %v, want cashier", ctx.Get("role"))
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", 7, "cashier", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, "cashier", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	cases := []struct {
		name    string
		role    any
		allowed []string
		want    int
	}{
		{"admin allowed", "admin", []string{"admin"}, http.StatusOK},
		{"cashier blocked from admin route", "cashier", []string{"admin"}, http.StatusForbidden},
		{"either role", "cashier", []string{"admin", "cashier"}, http.StatusOK},
		{"missing role", nil, []string{"admin"}, http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)
			if c.role != nil {
				ctx.Set("role", c.role)
			}
			if err := RequireRole(c.allowed...)(okHandler)(ctx); err != nil {
				t.Fatalf("middleware returned %v", err)
			}
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}
