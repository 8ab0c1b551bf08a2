package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brightsprout_backend/internal/config"
	"brightsprout_backend/internal/controller"
	"brightsprout_backend/internal/llm"
	"brightsprout_backend/internal/repository"
	"brightsprout_backend/internal/service"
	"brightsprout_backend/pkg/database"
	"brightsprout_backend/pkg/logger"
	"brightsprout_backend/pkg/monitoring"
	"brightsprout_backend/pkg/security"
	"brightsprout_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	child        *repository.ChildRepository
	learningPath *repository.LearningPathRepository
	assessment   *repository.AssessmentRepository
}

type services struct {
	email        *service.EmailService
	auth         *service.AuthService
	child        *service.ChildService
	learningPath *service.LearningPathService
	assessment   *service.AssessmentService
}

type controllers struct {
	auth         *controller.AuthController
	child        *controller.ChildController
	learningPath *controller.LearningPathController
	assessment   *controller.AssessmentController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		child:        repository.NewChildRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		assessment:   repository.NewAssessmentRepository(db, rdb),
	}
}

// newProvider builds the Gemini client, or returns nil when no API key
// is configured. A nil provider keeps the server up; generation
// endpoints report the misconfiguration per call.
func newProvider(cfg *config.Config) llm.Provider {
	if cfg.Gemini.APIKey == "" {
		logger.Log.Warn("GEMINI_API_KEY not configured, generation endpoints will be unavailable")
		return nil
	}

	provider, err := llm.NewGeminiProvider(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Log.Error("failed to initialize Gemini client", zap.Error(err))
		return nil
	}

	logger.Log.Info("Gemini client initialized", zap.String("model", cfg.Gemini.Model))
	return provider
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	email, err := service.NewEmailService(cfg.Email)
	if err != nil {
		logger.Log.Error("failed to initialize email service, continuing without email", zap.Error(err))
		email = nil
	}
	s.email = email

	provider := newProvider(cfg)
	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second

	s.auth = service.NewAuthService(repos.user, s.email, cfg)
	s.child = service.NewChildService(repos.child, cfg)
	s.learningPath = service.NewLearningPathService(repos.learningPath, provider, timeout)
	s.assessment = service.NewAssessmentService(repos.assessment, provider, timeout)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		child:        controller.NewChildController(s.child),
		learningPath: controller.NewLearningPathController(s.learningPath),
		assessment:   controller.NewAssessmentController(s.assessment),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("brightsprout", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
