package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-management/config"
	deliveryHttp "health-management/internal/delivery/http"
	"health-management/internal/delivery/http/handler"
	"health-management/internal/delivery/http/middleware"
	domainRepo "health-management/internal/domain/repository"
	"health-management/internal/infrastructure/ai"
	"health-management/internal/infrastructure/cache"
	"health-management/internal/infrastructure/database"
	"health-management/internal/infrastructure/mail"
	"health-management/internal/infrastructure/places"
	"health-management/internal/infrastructure/video"
	"health-management/internal/repository"
	"health-management/internal/service"
	"health-management/internal/usecase"
	"health-management/pkg/jwt"
	"health-management/pkg/retry"
	"health-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config          *config.Config
	Log             *logrus.Logger
	DB              *gorm.DB
	MongoClient     *mongo.Client
	RedisClient     *redis.Client
	GeminiClient    *ai.GeminiClient
	DiagnosisWorker *service.DiagnosisWorker
	RateLimiter     *middleware.RateLimitMiddleware
	Server          *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	ctx := context.Background()

	// Initialize appointment store
	appointmentRepo, err := app.openAppointmentStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	// Initialize generative model client
	geminiClient, err := ai.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.GeminiClient = geminiClient

	// Initialize all layers
	app.Server, err = app.initializeServer(appointmentRepo)
	if err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// openAppointmentStore connects the backend selected by DB_DRIVER.
func (app *App) openAppointmentStore(ctx context.Context) (domainRepo.AppointmentRepository, error) {
	cfg := app.Config

	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := database.NewMongoConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.MongoClient = client
		if err := repository.EnsureAppointmentIndexes(ctx, db); err != nil {
			app.Log.Warnf("Failed to ensure appointment indexes: %+v", err)
		}
		app.Log.Info("MongoDB appointment store ready")
		return repository.NewMongoAppointmentRepository(db), nil

	case config.DriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		app.Log.Info("PostgreSQL appointment store ready")
		return repository.NewGormAppointmentRepository(db), nil

	case config.DriverMemory:
		app.Log.Warn("Using in-memory appointment store, data is lost on restart")
		return repository.NewMemoryAppointmentRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(appointmentRepo domainRepo.AppointmentRepository) (*http.Server, error) {
	cfg := app.Config
	log := app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	hospitalRepo, err := repository.NewHospitalRepository(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	diagnosisJobRepo := repository.NewRedisDiagnosisJobRepository(app.RedisClient, cfg.Diagnosis.JobTTL)
	tokenRepo := repository.NewRedisTokenRepository(app.RedisClient)

	// Initialize external collaborators
	videoIssuer := video.NewTwilioTokenIssuer(cfg.Twilio)
	mailer := mail.NewMailer(cfg.SMTP, log)

	var placesSearcher usecase.PlacesSearcher
	searcher, err := places.NewSearcher(cfg.Places)
	switch {
	case errors.Is(err, places.ErrNotConfigured):
		log.Warn("PLACES_API_KEY not set, nearby search serves the hospital catalog only")
	case err != nil:
		return nil, err
	default:
		placesSearcher = searcher
	}

	// Initialize services
	auditService := service.NewAuditService(log, middleware.GetUserIDFromContext)
	notificationService := service.NewNotificationService(mailer)
	app.DiagnosisWorker = service.NewDiagnosisWorker(diagnosisJobRepo, app.GeminiClient, log, service.DiagnosisWorkerConfig{
		Workers:   cfg.Diagnosis.Workers,
		QueueSize: cfg.Diagnosis.QueueSize,
		Timeout:   cfg.Diagnosis.Timeout,
		Retry: retry.Policy{
			MaxAttempts:  cfg.Diagnosis.MaxAttempts,
			InitialDelay: cfg.Diagnosis.InitialBackoff,
			MaxDelay:     cfg.Diagnosis.MaxBackoff,
			Multiplier:   2,
		},
		Retryable: ai.IsRateLimited,
	})

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(log, customValidator, appointmentRepo, auditService, notificationService)
	roomUsecase := usecase.NewRoomUsecase(log, videoIssuer)
	diagnosisUsecase := usecase.NewDiagnosisUsecase(log, diagnosisJobRepo, app.DiagnosisWorker)
	hospitalUsecase := usecase.NewHospitalUsecase(log, hospitalRepo, placesSearcher)
	authUsecase := usecase.NewAuthUsecase(log, tokenRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase)
	roomHandler := handler.NewRoomHandler(roomUsecase)
	diagnosisHandler := handler.NewDiagnosisHandler(diagnosisUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, customValidator)
	authHandler := handler.NewAuthHandler(authUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	app.RateLimiter = middleware.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(
		cfg.JWT.AuthRequired,
		appointmentHandler,
		roomHandler,
		diagnosisHandler,
		hospitalHandler,
		authHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		app.RateLimiter,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.DiagnosisWorker.Start()

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s, store: %s", app.Config.App.Env, app.Config.DB.Driver)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
func (app *App) Close() {
	if app.DiagnosisWorker != nil {
		app.DiagnosisWorker.Stop()
	}

	if app.RateLimiter != nil {
		app.RateLimiter.Stop()
	}

	if app.GeminiClient != nil {
		app.GeminiClient.Close()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			app.Log.Warnf("Failed to disconnect MongoDB: %+v", err)
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
