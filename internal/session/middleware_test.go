package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-webclient/internal/gateway"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newMiddlewareApp(t *testing.T) (*fiber.App, *Store) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, "test-secret")

	app := fiber.New()
	app.Use(Middleware(store))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, ok := UserFromCtx(c)
		if !ok {
			return c.JSON(fiber.Map{"guest": true})
		}
		return c.JSON(fiber.Map{"username": user.Username, "sid": IDFromCtx(c)})
	})
	app.Get("/private", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})
	return app, store
}

func TestMiddlewareHydratesUser(t *testing.T) {
	app, store := newMiddlewareApp(t)

	token, err := store.Login(context.Background(), gateway.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMiddlewareIgnoresBadToken(t *testing.T) {
	app, _ := newMiddlewareApp(t)

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("expected redirect for bad token, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireUserPassesMembers(t *testing.T) {
	app, store := newMiddlewareApp(t)

	token, err := store.Login(context.Background(), gateway.User{ID: "u1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
