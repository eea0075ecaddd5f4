package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Statusnone420/nomad-safe-web/internal/auth"
	"github.com/Statusnone420/nomad-safe-web/internal/catalog"
	"github.com/Statusnone420/nomad-safe-web/internal/config"
	"github.com/Statusnone420/nomad-safe-web/internal/editsession"
	"github.com/Statusnone420/nomad-safe-web/internal/favorites"
	"github.com/Statusnone420/nomad-safe-web/internal/logger"
	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
	"github.com/Statusnone420/nomad-safe-web/internal/storage"
	"github.com/Statusnone420/nomad-safe-web/internal/stream"
	"github.com/Statusnone420/nomad-safe-web/internal/telemetry"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Engine   *catalog.Engine
	Sessions *editsession.Manager
	Favs     *favorites.Set
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(telemetry.Middleware())

	hub := stream.NewHub(redisClient, logger.GetLogger("stream"))

	var persister favorites.Persister
	if redisClient != nil {
		persister = favorites.NewRedisPersister(redisClient)
	}
	favs := favorites.New(persister, logger.GetLogger("favorites"))

	spots := spot.NewService(db)
	reviews := review.NewService(db)
	engine := catalog.NewEngine(spots, reviews, favs, hub, logger.GetLogger("catalog"))

	uploader := storage.NewService(db, cfg.MediaDir, cfg.MediaBaseURL)
	sessions := editsession.NewManager(uploader, spots, engine)

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   hub,
		Engine:   engine,
		Sessions: sessions,
		Favs:     favs,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", telemetry.Handler())
	if s.Cfg.MediaDir != "" {
		s.App.Static(s.Cfg.MediaBaseURL, s.Cfg.MediaDir)
	}

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	catalog.RegisterRoutes(s.App.Group("/spots"), s.Engine, jwtMiddleware)
	editsession.RegisterRoutes(s.App.Group("/sessions"), s.Sessions, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
