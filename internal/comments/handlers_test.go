package comments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-webclient/internal/feed"
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
	token, err := store.Login(context.Background(), gateway.User{ID: "u1", Username: "alice", Avatar: "https://a"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	app := fiber.New()
	app.Use(session.Middleware(store))
	RegisterRoutes(app, NewService(gw), notify.NewHub(nil))
	return app, token
}

func postComment(app *fiber.App, token, body string) (*http.Response, error) {
	req := httptest.NewRequest("POST", "/posts/p1/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	return app.Test(req)
}

func TestCommentRouteCreates(t *testing.T) {
	gw := &fakeGateway{}
	app, token := newApp(t, gw)

	resp, err := postComment(app, token, `{"body":"nice post"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var view feed.CommentView
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.Body != "nice post" || view.User.Username != "alice" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(gw.created) != 1 || gw.created[0].PostID != "p1" {
		t.Fatalf("unexpected created rows: %+v", gw.created)
	}
}

func TestCommentRouteRejectsEmptyBody(t *testing.T) {
	gw := &fakeGateway{}
	app, token := newApp(t, gw)

	resp, err := postComment(app, token, `{"body":"   "}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no remote calls, got %+v", gw.created)
	}
}

func TestCommentRouteRejectsGuests(t *testing.T) {
	gw := &fakeGateway{}
	app, _ := newApp(t, gw)

	resp, err := postComment(app, "", `{"body":"hello"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "You must be logged in to comment") {
		t.Fatalf("expected login message, got %s", raw)
	}
}

func TestCommentRouteBackendFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("down")}
	app, token := newApp(t, gw)

	resp, err := postComment(app, token, `{"body":"hello"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}
