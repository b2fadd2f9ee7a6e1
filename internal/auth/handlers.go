package auth

import (
	"errors"
	"io"
	"log"

	"blog-webclient/internal/notify"
	"blog-webclient/internal/session"
	"blog-webclient/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, sessions *session.Store, hub *notify.Hub) {
	r.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})

	r.Get("/register", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "register"})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email" form:"email"`
			Password string `json:"password" form:"password"`
		}
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}

		user, token, err := svc.Login(c.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		case err != nil:
			log.Printf("login failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		session.WriteCookie(c, token)
		return c.JSON(fiber.Map{
			"message": "Logged in successfully",
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"avatar":   user.Avatar,
			},
		})
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if token := c.Cookies(session.CookieName); token != "" {
			if err := sessions.Logout(c.Context(), token); err != nil {
				log.Printf("logout cleanup failed: %v", err)
			}
		}
		session.ClearCookie(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	})

	r.Post("/register", func(c *fiber.Ctx) error {
		avatar, err := avatarFromForm(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid avatar upload")
		}

		_, err = svc.Register(c.Context(), RegisterRequest{
			Username: c.FormValue("username"),
			Email:    c.FormValue("email"),
			Password: c.FormValue("password"),
			Avatar:   avatar,
		})
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case err != nil:
			log.Printf("register failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Registered successfully",
			"redirect": "/login",
		})
	})

	r.Post("/theme", func(c *fiber.Ctx) error {
		var req struct {
			Theme string `json:"theme" form:"theme"`
		}
		if err := c.BodyParser(&req); err != nil || req.Theme == "" {
			return fiber.NewError(fiber.StatusBadRequest, "theme required")
		}

		// guests still get the toggle, it just is not persisted
		if sid := session.IDFromCtx(c); sid != "" {
			if err := sessions.SetTheme(c.Context(), sid, req.Theme); err != nil {
				log.Printf("persist theme failed: %v", err)
				hub.Error(sid, "Something went wrong, please try again")
				return fiber.NewError(fiber.StatusBadGateway, "Something went wrong, please try again")
			}
		}
		return c.JSON(fiber.Map{"theme": req.Theme})
	})
}

func avatarFromForm(c *fiber.Ctx) (*uploads.File, error) {
	header, err := c.FormFile("avatar")
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
