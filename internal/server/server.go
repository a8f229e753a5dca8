// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"notewall/internal/cache"
	"notewall/internal/config"
	"notewall/internal/database"
	"notewall/internal/logger"
	"notewall/internal/middleware"
	"notewall/internal/models"
	"notewall/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "notewall-api"
	tokenAudience = "notewall-client"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	noteRepo       repository.NoteRepository
	commentRepo    repository.CommentRepository
	voteRepo       repository.VoteRepository
	tagRepo        repository.TagRepository
	favoriteRepo   repository.FavoriteRepository
	reportRepo     repository.ReportRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          cache.GetClient(),
		promMiddleware: middleware.InitMetrics("notewall-api"),
		userRepo:       repository.NewUserRepository(db),
		noteRepo:       repository.NewNoteRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		voteRepo:       repository.NewVoteRepository(db),
		tagRepo:        repository.NewTagRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		reportRepo:     repository.NewReportRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.Tracing())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(middleware.RequestLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	api.Get("/", s.HealthCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/password-reset", middleware.RateLimit(s.redis, 3, 15*time.Minute, "pw_reset"), s.RequestPasswordReset)
	auth.Post("/password-reset/confirm", s.ConfirmPasswordReset)

	// Public browse routes. OptionalAuth lets rate limiting and request logs
	// key by user when a token is present without requiring one.
	notes := api.Group("/notes", s.OptionalAuth())
	notes.Get("/", s.GetNotes)
	notes.Get("/search", middleware.RateLimit(s.redis, 30, time.Minute, "search"), s.SearchNotes)
	notes.Get("/:id/comments", s.GetComments)
	notes.Get("/:id", s.GetNote)

	api.Get("/votes/count", s.GetVoteCount)
	api.Get("/tags", s.GetTags)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Get("/me/favorites", s.GetMyFavorites)
	users.Get("/me/notes", s.GetMyNotes)
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)

	protectedNotes := protected.Group("/notes")
	protectedNotes.Post("/", middleware.RateLimit(s.redis, 10, 5*time.Minute, "create_note"), s.CreateNote)
	protectedNotes.Post("/:id/comments", middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	protectedNotes.Post("/:id/favorite", s.FavoriteNote)
	protectedNotes.Delete("/:id/favorite", s.UnfavoriteNote)
	protectedNotes.Put("/:id", s.UpdateNote)
	protectedNotes.Delete("/:id", s.DeleteNote)

	protected.Put("/comments/:id", s.UpdateComment)
	protected.Delete("/comments/:id", s.DeleteComment)

	protected.Post("/vote", s.CastVote)
	protected.Get("/votes/my-vote", s.GetMyVote)

	protected.Post("/reports", middleware.RateLimit(s.redis, 10, 10*time.Minute, "report"), s.CreateReport)
	protected.Get("/reports", s.GetReports)

	// Admin surface
	protected.Post("/tags", s.CreateTag)
	protected.Get("/users", s.ListUsers)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Notewall",
		"status":  overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, ok := s.parseToken(tokenString)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token accompanies
// the request, without requiring one.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := s.optionalUserID(c); ok {
			c.Locals("userID", userID)
		}
		return c.Next()
	}
}

// parseToken validates a signed token and extracts the user id from it.
func (s *Server) parseToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// optionalUserID attempts to extract userID from the Authorization header but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	return s.parseToken(parts[1])
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Notewall API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.L.Error("unhandled error", zap.Error(err))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app

	logger.L.Info("server starting", zap.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown drains in-flight requests and releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			logger.L.Error("error shutting down fiber app", zap.Error(err))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			logger.L.Error("error closing sql DB", zap.Error(cerr))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			logger.L.Error("error closing redis", zap.Error(rerr))
		}
	}

	logger.L.Info("server shutdown complete")
	return nil
}
