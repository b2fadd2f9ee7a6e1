package comments

import (
	"errors"
	"log"

	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, hub *notify.Hub) {
	r.Post("/posts/:id/comments", func(c *fiber.Ctx) error {
		var req struct {
			Body string `json:"body" form:"body"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		viewer, _ := session.UserFromCtx(c)

		view, err := svc.Add(c.Context(), viewer, c.Params("id"), req.Body)
		switch {
		case errors.Is(err, ErrEmptyBody):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotLoggedIn):
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		case err != nil:
			log.Printf("add comment failed: %v", err)
			hub.Error(session.IDFromCtx(c), "Something went wrong, please try again")
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		return c.Status(fiber.StatusCreated).JSON(view)
	})
}
