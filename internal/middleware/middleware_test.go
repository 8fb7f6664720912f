package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/taskreel/taskreel-api/internal/utils"
)

const testSecret = "test-secret"

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{JWTFromCookie(testSecret), AttachJWTLocals()}
	chain = append(chain, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userId"),
			"role":    c.Locals("role"),
		})
	})
	app.Get("/protected", chain...)
	return app
}

func TestJWTFromCookie(t *testing.T) {
	app := newApp()

	// no cookie
	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", resp.StatusCode)
	}

	// garbage cookie
	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("garbage cookie: status = %d, want 401", resp.StatusCode)
	}

	// valid cookie
	token, err := utils.SignJWT(testSecret, "user-1", "freelancer", 10)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid cookie: status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireRoles(t *testing.T) {
	app := newApp(RequireRoles("admin"))

	token, err := utils.SignJWT(testSecret, "user-1", "freelancer", 10)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("freelancer hitting admin route: status = %d, want 403", resp.StatusCode)
	}

	admin, err := utils.SignJWT(testSecret, "user-2", "admin", 10)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: admin})
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("admin hitting admin route: status = %d, want 200", resp.StatusCode)
	}
}
