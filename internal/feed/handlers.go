package feed

import (
	"context"
	"log"

	"blog-webclient/internal/gateway"
	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"

	"github.com/gofiber/fiber/v2"
)

type Backend interface {
	FetchAll(ctx context.Context) (gateway.Snapshot, error)
	ListLikes(ctx context.Context, postID, userID string) ([]gateway.Like, error)
}

func RegisterRoutes(r fiber.Router, backend Backend, sessions *session.Store, hub *notify.Hub) {
	r.Get("/", func(c *fiber.Ctx) error {
		snap, err := backend.FetchAll(c.Context())
		if err != nil {
			log.Printf("feed load failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		likes, err := backend.ListLikes(c.Context(), "", "")
		if err != nil {
			log.Printf("likes load failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		viewer, loggedIn := session.UserFromCtx(c)
		sid := session.IDFromCtx(c)

		resp := fiber.Map{
			"posts":   Assemble(snap, likes, viewer.ID),
			"theme":   sessions.Theme(c.Context(), sid),
			"notices": hub.Drain(sid),
		}
		if loggedIn {
			resp["viewer"] = Author{ID: viewer.ID, Username: viewer.Username, Avatar: viewer.Avatar}
		}
		return c.JSON(resp)
	})
}
