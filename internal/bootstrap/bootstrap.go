package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dowadream/errand-service/internal/app/controllers"
	appMigrations "github.com/dowadream/errand-service/internal/app/migrations"
	appRepos "github.com/dowadream/errand-service/internal/app/repositories"
	appRoutes "github.com/dowadream/errand-service/internal/app/routes"
	appServices "github.com/dowadream/errand-service/internal/app/services"
	"github.com/dowadream/errand-service/internal/config"
	"github.com/dowadream/errand-service/internal/db"
	appMiddleware "github.com/dowadream/errand-service/internal/middleware"
	"github.com/dowadream/errand-service/internal/pkg/filestorage"
	"github.com/dowadream/errand-service/internal/pkg/logger"
	"github.com/dowadream/errand-service/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ErrandService      *appServices.ErrandService
	OfferingService    *appServices.ServiceOfferingService
	CategoryService    *appServices.CategoryService
	ReviewService      *appServices.ReviewService
	ImageService       *appServices.ImageService
	ErrandController   *appControllers.ErrandController
	OfferingController *appControllers.ServiceOfferingController
	CategoryController *appControllers.CategoryController
	ReviewController   *appControllers.ReviewController
	ImageController    *appControllers.ImageController
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
	FileStorage        *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data after migrations
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding is convenience, not a startup requirement
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves uploads at the same URL path the router exposes
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.ErrandService = appServices.NewErrandService(
		deps.Repos.ErrandRepository,
		deps.Repos.CategoryRepository,
		deps.Repos.ImageRepository,
	)
	deps.OfferingService = appServices.NewServiceOfferingService(
		deps.Repos.ServiceOfferingRepository,
		deps.Repos.CategoryRepository,
		deps.Repos.ImageRepository,
	)
	deps.CategoryService = appServices.NewCategoryService(
		deps.Repos.CategoryRepository,
		deps.Repos.ImageRepository,
	)
	deps.ReviewService = appServices.NewReviewService(
		deps.Repos.ReviewRepository,
		deps.Repos.ErrandRepository,
		deps.Repos.ServiceOfferingRepository,
	)
	deps.ImageService = appServices.NewImageService(
		deps.Repos.ImageRepository,
		deps.Repos.ErrandRepository,
		deps.Repos.ServiceOfferingRepository,
		deps.Repos.CategoryRepository,
		deps.FileStorage,
	)

	deps.ErrandController = appControllers.NewErrandController(deps.ErrandService)
	deps.OfferingController = appControllers.NewServiceOfferingController(deps.OfferingService)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService)
	deps.ImageController = appControllers.NewImageController(deps.ImageService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.ErrandController,
		deps.OfferingController,
		deps.CategoryController,
		deps.ReviewController,
		deps.ImageController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
