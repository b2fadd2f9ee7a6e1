package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-webclient/internal/config"
	"blog-webclient/internal/db"
	"blog-webclient/internal/server"
	"blog-webclient/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig   func() config.Config
	connectRedis func(config.Config) *redis.Client
	newUploader  func(context.Context, config.Config) (*uploads.Service, error)
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, *redis.Client, server.Uploader, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.Load,
		connectRedis: db.ConnectRedis,
		newUploader:  uploads.NewService,
		notify:       signal.Notify,
		run:          Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	rdb := deps.connectRedis(cfg)

	// Keep the uploader as a nil interface when storage is unreachable so
	// image-carrying actions fail cleanly instead of panicking.
	var uploader server.Uploader
	if svc, err := deps.newUploader(context.Background(), cfg); err != nil {
		log.Printf("object storage unavailable, uploads disabled: %v", err)
	} else {
		uploader = svc
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, rdb, uploader, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, rdb *redis.Client, uploader server.Uploader, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, rdb, uploader)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	_ = srv.Gateway.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
