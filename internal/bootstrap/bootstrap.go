package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/derin/classpanel/internal/app/controllers"
	appMigrations "github.com/derin/classpanel/internal/app/migrations"
	appRepos "github.com/derin/classpanel/internal/app/repositories"
	appRoutes "github.com/derin/classpanel/internal/app/routes"
	appServices "github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/config"
	"github.com/derin/classpanel/internal/db"
	appMiddleware "github.com/derin/classpanel/internal/middleware"
	pkgAuth "github.com/derin/classpanel/internal/pkg/auth"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	DepartmentController *appControllers.DepartmentController
	SubjectController    *appControllers.SubjectController
	ClassController      *appControllers.ClassController
	UserController       *appControllers.UserController
	EnrollmentController *appControllers.EnrollmentController
	StatsController      *appControllers.StatsController
	TokenReader          *pkgAuth.TokenReader
	Redis                *redis.Client
	Logger               zerolog.Logger
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Services = appServices.NewServices(deps.Repos)

	deps.TokenReader = pkgAuth.NewTokenReader(cfg.Auth.Secret)
	deps.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	deps.DepartmentController = appControllers.NewDepartmentController(deps.Services.DepartmentService)
	deps.SubjectController = appControllers.NewSubjectController(deps.Services.SubjectService)
	deps.ClassController = appControllers.NewClassController(deps.Services.ClassService)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.EnrollmentService)
	deps.StatsController = appControllers.NewStatsController(deps.Services.StatsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	mode := strings.ToLower(cfg.Server.Mode)
	switch mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORS.Origin}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(appMiddleware.MetricsMiddleware())

	// Rate limiting would make handler tests order-dependent, so test mode
	// runs without it.
	if mode != "test" {
		router.Use(appMiddleware.SecurityMiddleware(deps.TokenReader, deps.Redis))
	}

	appRoutes.SetupRouter(router,
		deps.DepartmentController,
		deps.SubjectController,
		deps.ClassController,
		deps.UserController,
		deps.EnrollmentController,
		deps.StatsController,
	)

	return router
}
