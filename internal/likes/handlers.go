package likes

import (
	"errors"
	"log"

	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, hub *notify.Hub) {
	r.Post("/posts/:id/like", func(c *fiber.Ctx) error {
		viewer, _ := session.UserFromCtx(c)

		liked, count, err := svc.Toggle(c.Context(), c.Params("id"), viewer.ID)
		if err != nil {
			if errors.Is(err, ErrNotLoggedIn) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			log.Printf("like toggle failed: %v", err)
			hub.Error(session.IDFromCtx(c), "Something went wrong, please try again")
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		return c.JSON(fiber.Map{"liked": liked, "likes": count})
	})
}
