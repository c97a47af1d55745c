package config

import (
	"GestureTalk/database/postgres"
	communicationHandler "GestureTalk/internal/api/communication/handler"
	communicationRepository "GestureTalk/internal/api/communication/repository"
	communicationService "GestureTalk/internal/api/communication/service"
	"GestureTalk/internal/middleware"
	"GestureTalk/pkg/audio"
	"GestureTalk/pkg/gemini"
	"GestureTalk/pkg/llm"
	"GestureTalk/pkg/openai"
	"GestureTalk/pkg/redis"
	"GestureTalk/pkg/s3"
	"GestureTalk/pkg/utils"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	redisServer     redis.IRedis
	s3Client        s3.ItfS3
	ttsService      audio.ITTSService
	phraseGenerator llm.IPhraseGenerator
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

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects the catalog database. It is optional: without it
// the server falls back to the bundled sentences file.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
			if s.log != nil {
				s.log.Info("No database configured, catalog will load from file")
			}
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

// WithS3Client is best-effort: without credentials the server still runs,
// serving only local and synthesized audio.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("S3 unavailable, audio limited to local files: %v", err)
			}
			return nil
		}
		s.s3Client = client
		return nil
	}
}

func WithTTSService() ServerOption {
	return func(s *Server) error {
		s.ttsService = audio.NewTTSService()
		return nil
	}
}

// WithPhraseGenerator selects the suggestion gateway provider from
// LLM_PROVIDER (default openai).
func WithPhraseGenerator() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before phrase generator")
		}

		switch os.Getenv("LLM_PROVIDER") {
		case "gemini":
			generator, err := gemini.NewPhraseGenerator(s.log)
			if err != nil {
				return fmt.Errorf("failed to create Gemini phrase generator: %w", err)
			}
			s.phraseGenerator = generator
		default:
			s.phraseGenerator = openai.NewPhraseGenerator(s.log)
		}
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Communication Domain
	var communicationRepo communicationRepository.Repository
	if s.db != nil {
		communicationRepo = communicationRepository.New(s.db, s.log)
	} else {
		catalogPath := os.Getenv("CATALOG_PATH")
		if catalogPath == "" {
			catalogPath = "./data/sentences.json"
		}
		communicationRepo = communicationRepository.NewFileSource(catalogPath, s.log)
	}

	communicationServices := communicationService.NewCommunicationService(
		s.log,
		communicationRepo,
		s.utils,
		s.phraseGenerator,
		s.ttsService,
		s.s3Client,
		s.redisServer,
		communicationService.DefaultConfig(),
	)

	if err := communicationServices.LoadCatalog(context.Background()); err != nil {
		s.log.Warnf("Starting with empty phrase catalog: %v", err)
	}

	communicationHandlers := communicationHandler.New(s.log, s.validator, s.middleware, communicationServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, communicationHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the listener and releases the generation gateway's
// underlying client when it holds one.
func (s *Server) Shutdown() error {
	if closer, ok := s.phraseGenerator.(interface{ Close() }); ok {
		closer.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":   "Server is Healthy!",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
