package posts

import (
	"errors"
	"io"
	"log"

	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"
	"blog-webclient/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, hub *notify.Hub, requireUser fiber.Handler) {
	r.Get("/add-post", requireUser, func(c *fiber.Ctx) error {
		// form seed for a fresh post
		return c.JSON(fiber.Map{"title": "", "body": "", "image": ""})
	})

	r.Post("/add-post", requireUser, func(c *fiber.Ctx) error {
		viewer, _ := session.UserFromCtx(c)
		sid := session.IDFromCtx(c)

		image, err := fileFromForm(c, "image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid image upload")
		}

		_, err = svc.Create(c.Context(), viewer, c.FormValue("title"), c.FormValue("body"), image)
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			log.Printf("create post failed: %v", err)
			hub.Error(sid, "Error adding post")
			return fiber.NewError(fiber.StatusBadGateway, "Error adding post")
		}

		hub.Success(sid, "Post added successfully")
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	r.Get("/edit-post/:id", requireUser, func(c *fiber.Ctx) error {
		post, err := svc.Seed(c.Context(), c.Params("id"))
		if err != nil {
			log.Printf("fetch post failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}
		return c.JSON(post)
	})

	r.Post("/edit-post/:id", requireUser, func(c *fiber.Ctx) error {
		viewer, _ := session.UserFromCtx(c)
		sid := session.IDFromCtx(c)

		image, err := fileFromForm(c, "image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid image upload")
		}

		_, err = svc.Update(c.Context(), viewer, c.Params("id"), c.FormValue("title"), c.FormValue("body"), image)
		if err != nil {
			log.Printf("update post failed: %v", err)
			hub.Error(sid, "Error updating post")
			return fiber.NewError(fiber.StatusBadGateway, "Error updating post")
		}

		hub.Success(sid, "Post updated successfully")
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	r.Post("/posts/:id/delete", requireUser, func(c *fiber.Ctx) error {
		sid := session.IDFromCtx(c)

		err := svc.Delete(c.Context(), c.Params("id"), c.FormValue("confirm") == "true")
		switch {
		case errors.Is(err, ErrNotConfirmed):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			log.Printf("delete post failed: %v", err)
			hub.Error(sid, "Error deleting post")
			return fiber.NewError(fiber.StatusBadGateway, "Error deleting post")
		}

		hub.Success(sid, "Post deleted successfully")
		return c.Redirect("/", fiber.StatusSeeOther)
	})
}

// fileFromForm reads an optional multipart file field. A missing field is not
// an error, it just means no file was selected.
func fileFromForm(c *fiber.Ctx, field string) (*uploads.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &uploads.File{Name: header.Filename, Data: data}, nil
}
