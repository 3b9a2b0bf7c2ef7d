package server

import (
	"context"
	"errors"
	"strings"

	"github.com/H4ckEd666/Twitter-clone-app/internal/auth"
	"github.com/H4ckEd666/Twitter-clone-app/internal/chat"
	"github.com/H4ckEd666/Twitter-clone-app/internal/config"
	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/feed"
	"github.com/H4ckEd666/Twitter-clone-app/internal/media"
	"github.com/H4ckEd666/Twitter-clone-app/internal/notifications"
	"github.com/H4ckEd666/Twitter-clone-app/internal/posts"
	"github.com/H4ckEd666/Twitter-clone-app/internal/presence"
	"github.com/H4ckEd666/Twitter-clone-app/internal/social"
	"github.com/H4ckEd666/Twitter-clone-app/internal/stream"
	"github.com/H4ckEd666/Twitter-clone-app/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

const bodyLimit = 10 * 1024 * 1024

// Deps are the backing stores. Redis and Mongo are optional.
type Deps struct {
	DB    db.DB
	Redis *redis.Client
	Mongo *mongo.Database
}

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Deps   Deps
	Stream *stream.Hub
}

func NewServer(ctx context.Context, cfg config.Config, deps Deps) (*Server, error) {
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	if cfg.FrontendURL != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.FrontendURL,
			AllowCredentials: true,
		}))
	}
	app.Use(originCheck(cfg.FrontendURL))

	var tracker presence.Tracker = presence.NewMemoryTracker()
	if deps.Redis != nil {
		tracker = presence.NewRedisTracker(deps.Redis)
	}
	hub, err := stream.NewHub(ctx, deps.Redis, tracker)
	if err != nil {
		return nil, err
	}

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Deps:   deps,
		Stream: hub,
	}

	if err := registerRoutes(s); err != nil {
		_ = hub.Close()
		return nil, err
	}
	return s, nil
}

func registerRoutes(s *Server) error {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	var blobs media.BlobStore
	if s.Deps.Mongo != nil {
		store, err := media.NewGridFSStore(s.Deps.Mongo)
		if err != nil {
			return err
		}
		blobs = store
	}

	mediaSvc := media.NewService(s.Deps.DB, blobs, s.Cfg.MaxImageBytes)
	usersSvc := users.NewService(s.Deps.DB, mediaSvc)
	socialSvc := social.NewService(s.Deps.DB)
	postsSvc := posts.NewService(s.Deps.DB, socialSvc, mediaSvc)
	notificationsSvc := notifications.NewService(s.Deps.DB)
	feedSvc := feed.NewService(socialSvc, postsSvc, notificationsSvc)
	chatSvc := chat.NewService(s.Deps.DB, socialSvc, s.Stream)

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	api := s.App.Group("/api")

	auth.RegisterRoutes(api.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, usersSvc), jwtMiddleware, s.Cfg.CookieSecure)

	usersGroup := api.Group("/users")
	users.RegisterRoutes(usersGroup, usersSvc, jwtMiddleware)
	social.RegisterRoutes(usersGroup, socialSvc, jwtMiddleware)
	posts.RegisterSavedRoutes(usersGroup, postsSvc, jwtMiddleware)

	postsGroup := api.Group("/posts")
	posts.RegisterRoutes(postsGroup, postsSvc, jwtMiddleware)
	feed.RegisterRoutes(postsGroup, feedSvc, jwtMiddleware)

	notifications.RegisterRoutes(api.Group("/notifications"), notificationsSvc, jwtMiddleware)
	chat.RegisterRoutes(api.Group("/chat"), chatSvc, jwtMiddleware)
	media.RegisterRoutes(api.Group("/media"), mediaSvc)
	stream.RegisterRoutes(s.App, s.Stream)
	return nil
}

// originCheck rejects state-changing requests whose Origin, or Referer when
// no Origin is sent, does not belong to the frontend.
func originCheck(frontendURL string) fiber.Handler {
	allowed := func(value string) bool {
		return frontendURL != "" && strings.HasPrefix(value, frontendURL)
	}
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		origin := c.Get(fiber.HeaderOrigin)
		referer := c.Get(fiber.HeaderReferer)
		if origin != "" && !allowed(origin) {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}
		if origin == "" && referer != "" && !allowed(referer) {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}
		return c.Next()
	}
}

// errorHandler renders every error as {"error": msg}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
