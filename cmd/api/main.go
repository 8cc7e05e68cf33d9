package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekusasirakwe/portfolio-api/internal/assistant"
	"github.com/ekusasirakwe/portfolio-api/internal/config"
	"github.com/ekusasirakwe/portfolio-api/internal/handler"
	"github.com/ekusasirakwe/portfolio-api/internal/infra/postgresql"
	"github.com/ekusasirakwe/portfolio-api/internal/infra/postgresql/migrations"
	infraredis "github.com/ekusasirakwe/portfolio-api/internal/infra/redis"
	"github.com/ekusasirakwe/portfolio-api/internal/mailer"
	"github.com/ekusasirakwe/portfolio-api/internal/notify"
	"github.com/ekusasirakwe/portfolio-api/internal/observability"
	"github.com/ekusasirakwe/portfolio-api/internal/ratelimit"
	"github.com/ekusasirakwe/portfolio-api/internal/repository"
	"github.com/ekusasirakwe/portfolio-api/internal/service"
	"github.com/ekusasirakwe/portfolio-api/internal/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	// Redis only backs the submission rate limiter. Without it the API
	// still runs, just without abuse protection.
	var rdb *goredis.Client
	var limiter ratelimit.RateLimiter
	if strings.TrimSpace(cfg.RedisURL) != "" {
		rdb, err = infraredis.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()

		redisLimiter, err := infraredis.NewSubmissionRateLimiter(rdb, cfg.RateLimitPerMin)
		if err != nil {
			logger.Fatal("rate limiter initialization failed", zap.Error(err))
		}
		limiter = redisLimiter
	} else {
		logger.Warn("REDIS_URL not set, submission rate limiting disabled")
	}

	mail, err := mailer.NewFromConfig(cfg)
	if err != nil {
		logger.Fatal("mailer initialization failed", zap.Error(err))
	}
	if mail == nil {
		logger.Warn("no email backend configured, owner notifications will be skipped")
	} else {
		logger.Info("email backend selected", zap.String("backend", mail.Backend()))
	}

	metrics := observability.NewMetrics()

	dispatcher, err := notify.NewDispatcher(mail, cfg.MailFrom, cfg.ContactRecipient, logger, metrics)
	if err != nil {
		logger.Fatal("notification dispatcher initialization failed", zap.Error(err))
	}

	contacts := repository.NewGormContactRepo(db)
	contactService, err := service.NewContactService(contacts, dispatcher, logger, metrics)
	if err != nil {
		logger.Fatal("contact service initialization failed", zap.Error(err))
	}

	chatAssistant := assistant.New(assistant.Config{
		APIKey:       cfg.AssistantAPIKey,
		APIURL:       cfg.AssistantAPIURL,
		Model:        cfg.AssistantModel,
		SystemPrompt: cfg.AssistantSystemPrompt,
	}, logger)
	if chatAssistant.Scripted() {
		logger.Info("chat assistant running with scripted replies")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	// The form and chat widget are served from a separate static site.
	app.Use(cors.New())
	app.Use(requestid.New())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := handler.RegisterContactRoutes(app, contactService, limiter, logger, metrics); err != nil {
		logger.Fatal("contact route registration failed", zap.Error(err))
	}
	if err := handler.RegisterChatRoutes(app, chatAssistant); err != nil {
		logger.Fatal("chat route registration failed", zap.Error(err))
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		logger.Info("portfolio api started", zap.Int("port", cfg.APIPort))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
