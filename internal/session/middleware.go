package session

import (
	"blog-webclient/internal/gateway"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal = "session_user"
	sidLocal  = "session_id"
)

// Middleware hydrates the viewer from the session cookie. Guests pass through
// untouched; a stale or invalid cookie simply means logged out.
func Middleware(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(CookieName); token != "" {
			if user, sid, ok := store.Current(c.Context(), token); ok {
				c.Locals(userLocal, user)
				c.Locals(sidLocal, sid)
			}
		}
		return c.Next()
	}
}

// RequireUser guards the post-creation and editing routes: guests are
// redirected to /login.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := UserFromCtx(c); !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

func UserFromCtx(c *fiber.Ctx) (gateway.User, bool) {
	user, ok := c.Locals(userLocal).(gateway.User)
	return user, ok && user.ID != ""
}

func IDFromCtx(c *fiber.Ctx) string {
	sid, _ := c.Locals(sidLocal).(string)
	return sid
}

func WriteCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
	})
}

func ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1,
	})
}
