package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"restobot/database/postgres"
	"restobot/internal/api/auth"
	authHandler "restobot/internal/api/auth/handler"
	authService "restobot/internal/api/auth/service"
	chatHandler "restobot/internal/api/chat/handler"
	chatRepository "restobot/internal/api/chat/repository"
	chatService "restobot/internal/api/chat/service"
	menuHandler "restobot/internal/api/menu/handler"
	menuService "restobot/internal/api/menu/service"
	"restobot/internal/dialogue"
	"restobot/internal/middleware"
	"restobot/pkg/bcrypt"
	"restobot/pkg/redis"
	"restobot/pkg/s3"
	"restobot/pkg/utils"
	"restobot/pkg/whatsapp"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	cfg            AppConfig
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	redisServer    redis.IRedis
	whatsappClient whatsapp.IWhatsapp
	s3Client       s3.ItfS3
	dialogue       *dialogue.Engine
	bcrypt         bcrypt.IBcrypt
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.dialogue == nil {
		return nil, fmt.Errorf("dialogue engine is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.bcrypt == nil {
		server.bcrypt = bcrypt.New()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithAppConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects only when chat logs are persisted.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if !s.cfg.ChatLogEnabled {
			return nil
		}
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if !s.cfg.WhatsappEnabled {
			return nil
		}
		client, err := whatsapp.New(ctx, s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

// WithDialogueEngine loads every artifact named by the config. It must follow
// WithS3Client when any artifact lives in a bucket.
func WithDialogueEngine(ctx context.Context) ServerOption {
	return func(s *Server) error {
		rng := dialogue.NewRandom(s.cfg.RandomSeed)

		reg, err := dialogue.LoadRegistry(ctx, NewArtifactReader(s.s3Client), s.cfg.LoadOptions(), rng)
		if err != nil {
			return err
		}

		s.log.WithFields(logrus.Fields{
			"dishes":      len(reg.Catalog.Dishes()),
			"intents":     len(reg.Catalog.Intents()),
			"corpus_mode": s.cfg.CorpusMode,
			"ad_mode":     reg.Ads.Mode(),
			"hints":       reg.HintsEnabled,
		}).Info("Dialogue engine loaded")

		s.dialogue = dialogue.NewEngine(reg, rng, s.log)
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcrypt = bcrypt.New()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler(ctx context.Context) error {
	// Chat Domain
	var sessions chatRepository.SessionStore
	switch s.cfg.SessionStore {
	case SessionStoreRedis:
		if s.redisServer == nil {
			return fmt.Errorf("session store %q needs a redis client", SessionStoreRedis)
		}
		sessions = chatRepository.NewRedisSessionStore(s.redisServer, s.cfg.SessionTTL, s.log)
	default:
		sessions = chatRepository.NewMemorySessionStore(s.cfg.SessionTTL)
	}

	var chatRepo chatRepository.Repository
	if s.db != nil {
		chatRepo = chatRepository.New(s.db, s.log)
		if err := chatRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("prepare chat log schema: %w", err)
		}
	}

	chatServices := chatService.NewChatService(s.log, s.dialogue, sessions, chatRepo, s.utils)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	if s.whatsappClient != nil {
		s.whatsappClient.Listen(chatHandlers.ReplyWhatsApp)
	}

	// Menu Domain
	menuServices := menuService.NewMenuService(s.log, s.dialogue.Registry())
	menuHandlers := menuHandler.New(s.log, s.validator, s.middleware, menuServices)

	// Auth Domain
	if s.cfg.AdminPasswordHash == "" {
		s.log.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}
	authServices := authService.NewAuthService(s.log, s.bcrypt, auth.Credentials{
		Username:     s.cfg.AdminUsername,
		PasswordHash: s.cfg.AdminPasswordHash,
		TokenSecret:  s.cfg.TokenSecret,
		TokenTTL:     s.cfg.AdminTokenTTL,
	})
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	s.handlers = append(s.handlers, chatHandlers, menuHandlers, authHandlers)
	return nil
}

// Mount installs middleware and every registered handler on the fiber app.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupHealthCheck()
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()
	return s.engine.Listen(fmt.Sprintf(":%s", s.cfg.Port))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	if s.whatsappClient != nil {
		_ = s.whatsappClient.Disconnect()
	}

	err := s.engine.ShutdownWithTimeout(timeout)

	if s.redisServer != nil {
		_ = s.redisServer.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
