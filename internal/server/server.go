package server

import (
	"context"

	"blog-webclient/internal/auth"
	"blog-webclient/internal/comments"
	"blog-webclient/internal/config"
	"blog-webclient/internal/feed"
	"blog-webclient/internal/gateway"
	"blog-webclient/internal/likes"
	"blog-webclient/internal/notify"
	"blog-webclient/internal/posts"
	"blog-webclient/internal/session"
	"blog-webclient/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

// Uploader is the object-storage seam; nil means uploads are unavailable and
// image-carrying actions fail cleanly.
type Uploader interface {
	Upload(ctx context.Context, bucket string, file uploads.File) (string, error)
}

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Gateway  *gateway.Client
	Sessions *session.Store
	Notify   *notify.Hub
}

func NewServer(cfg config.Config, redisClient *redis.Client, uploader Uploader) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		Gateway:  gateway.NewClient(cfg.BackendURL, cfg.BackendTimeout),
		Sessions: session.NewStore(redisClient, cfg.SessionSecret),
		Notify:   notify.NewHub(redisClient),
	}

	registerRoutes(s, uploader)
	return s
}

func registerRoutes(s *Server, uploader Uploader) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.App.Use(session.Middleware(s.Sessions))
	requireUser := session.RequireUser()

	feed.RegisterRoutes(s.App, s.Gateway, s.Sessions, s.Notify)
	auth.RegisterRoutes(s.App, auth.NewService(s.Gateway, s.Sessions, uploader, s.Cfg.S3AvatarBucket), s.Sessions, s.Notify)
	posts.RegisterRoutes(s.App, posts.NewService(s.Gateway, uploader, s.Cfg.S3PostBucket), s.Notify, requireUser)
	likes.RegisterRoutes(s.App, likes.NewService(s.Gateway), s.Notify)
	comments.RegisterRoutes(s.App, comments.NewService(s.Gateway), s.Notify)
}
