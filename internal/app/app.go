package app

import (
	"bergerie_backend/internal/config"
	"bergerie_backend/internal/controller"
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/scoring"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"bergerie_backend/pkg/configwatcher"
	"bergerie_backend/pkg/database"
	"bergerie_backend/pkg/logger"
	"bergerie_backend/pkg/monitoring"
	"bergerie_backend/pkg/security"
	"bergerie_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	Scoring         *scoring.Table
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	city     *repository.CityRepository
	visitor  *repository.VisitorRepository
	bergerie *repository.BergerieRepository
	kpi      *repository.KPIRepository
	presence *repository.PresenceRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	visitor      *service.VisitorService
	kpi          *service.KPIService
	presence     *service.PresenceService
	bergerie     *service.BergerieService
	registration *service.RegistrationService
	dashboard    *service.DashboardService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	visitor      *controller.VisitorController
	bergerie     *controller.BergerieController
	kpi          *controller.KPIController
	presence     *controller.PresenceController
	registration *controller.RegistrationController
	city         *controller.CityController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		city:     repository.NewCityRepository(db),
		visitor:  repository.NewVisitorRepository(db),
		bergerie: repository.NewBergerieRepository(db),
		kpi:      repository.NewKPIRepository(db),
		presence: repository.NewPresenceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.visitor = service.NewVisitorService(repos.visitor, repos.bergerie, repos.city)
	s.kpi = service.NewKPIService(repos.kpi, repos.visitor, a.Scoring)

	calc := fidelity.NewCalculator(cfg.Fidelity.ExpectedOccasions)
	s.presence = service.NewPresenceService(repos.presence, repos.visitor, calc)

	s.bergerie = service.NewBergerieService(repos.bergerie, repos.visitor, repos.kpi, s.presence, rdb)
	s.registration = service.NewRegistrationService(repos.visitor, repos.city, rdb)
	s.dashboard = service.NewDashboardService(repos.visitor, repos.bergerie, s.presence, rdb)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		visitor:      controller.NewVisitorController(s.visitor, s.storage),
		bergerie:     controller.NewBergerieController(s.bergerie),
		kpi:          controller.NewKPIController(s.kpi, a.Scoring),
		presence:     controller.NewPresenceController(s.presence),
		registration: controller.NewRegistrationController(s.registration),
		city:         controller.NewCityController(repos.city),
		dashboard:    controller.NewDashboardController(s.dashboard),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

// loadScoring reads the indicator grid from the configured file, falling back
// to the built-in table. An invalid grid is fatal: score and level semantics
// depend on the bands tiling the whole score range.
func loadScoring(cfg *config.Config) *scoring.Config {
	if cfg.Scoring.ConfigFile != "" {
		sc, err := scoring.Load(cfg.Scoring.ConfigFile)
		if err != nil {
			logger.Log.Fatal("Failed to load scoring config", zap.String("file", cfg.Scoring.ConfigFile), zap.Error(err))
		}
		return sc
	}

	sc := scoring.Default()
	if err := sc.Validate(); err != nil {
		logger.Log.Fatal("Invalid built-in scoring config", zap.Error(err))
	}
	return sc
}

func (a *App) watchConfig() {
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		if newCfg.Scoring.ConfigFile == "" {
			return
		}
		sc, err := scoring.Load(newCfg.Scoring.ConfigFile)
		if err != nil {
			logger.Log.Error("Scoring config reload rejected", zap.Error(err))
			return
		}
		a.Scoring.Replace(sc)
		logger.Log.Info("Scoring config reloaded", zap.String("file", newCfg.Scoring.ConfigFile))
	})

	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(cfg interface{}) {
		newCfg, ok := cfg.(*config.Config)
		if !ok {
			return
		}
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.MigrateOnStartup())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Scoring: scoring.NewTable(loadScoring(cfg)),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("bergerie-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

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
