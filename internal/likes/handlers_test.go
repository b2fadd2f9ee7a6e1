package likes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-webclient/internal/gateway"
	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newApp(t *testing.T, gw *fakeGateway) (*fiber.App, string) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewStore(client, "test-secret")
	token, err := store.Login(context.Background(), gateway.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	app := fiber.New()
	app.Use(session.Middleware(store))
	RegisterRoutes(app, NewService(gw), notify.NewHub(nil))
	return app, token
}

func TestLikeRouteTogglesOn(t *testing.T) {
	gw := &fakeGateway{}
	app, token := newApp(t, gw)

	req := httptest.NewRequest("POST", "/posts/p1/like", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got struct {
		Liked bool `json:"liked"`
		Likes int  `json:"likes"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.Liked || got.Likes != 1 {
		t.Fatalf("expected liked with count 1, got %+v", got)
	}
}

func TestLikeRouteRejectsGuests(t *testing.T) {
	gw := &fakeGateway{}
	app, _ := newApp(t, gw)

	req := httptest.NewRequest("POST", "/posts/p1/like", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no remote calls, got %d", gw.calls)
	}
}

func TestLikeRouteBackendFailure(t *testing.T) {
	gw := &fakeGateway{listErr: errors.New("down")}
	app, token := newApp(t, gw)

	req := httptest.NewRequest("POST", "/posts/p1/like", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}
