package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentsvc/internal/app/controllers"
	appMigrations "github.com/yigit/studentsvc/internal/app/migrations"
	appRepos "github.com/yigit/studentsvc/internal/app/repositories"
	appRoutes "github.com/yigit/studentsvc/internal/app/routes"
	appServices "github.com/yigit/studentsvc/internal/app/services"
	"github.com/yigit/studentsvc/internal/config"
	"github.com/yigit/studentsvc/internal/db"
	appMiddleware "github.com/yigit/studentsvc/internal/middleware"
	"github.com/yigit/studentsvc/internal/pkg/logger"
	"github.com/yigit/studentsvc/internal/seed"
	"github.com/yigit/studentsvc/migrations"
)

// DefaultConfigPath is where the service looks for its YAML configuration
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	StudentService    appServices.StudentService // Interface type
	StudentController *appControllers.StudentController
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool and verifies it answers.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	pool, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Database connection successfully established.")
	return pool, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).Migrate(ctx, migrations.FS); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SeedDatabase loads students from cfg.Database.SeedFile when set, otherwise
// inserts the default students into an empty table.
func SeedDatabase(ctx context.Context, cfg *config.Config, repo *appRepos.StudentRepository, lgr zerolog.Logger) error {
	if cfg.Database.SeedFile == "" {
		_, err := seed.CreateDefaultData(ctx, repo, lgr)
		return err
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Info().Int64("students", count).Msg("Student table not empty, skipping seed file")
		return nil
	}

	file, err := os.Open(cfg.Database.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	_, err = seed.ImportStudentsFromExcel(ctx, repo, file, lgr)
	return err
}

// SetupDatabase connects, migrates and seeds according to configuration.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	dbPool, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := RunMigrations(ctx, dbPool, lgr); err != nil {
			dbPool.Close()
			return nil, err
		}
	}

	if cfg.Database.Seed {
		if err := SeedDatabase(ctx, cfg, appRepos.NewStudentRepository(dbPool), lgr); err != nil {
			// Seeding is best effort
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(dbtx db.DBTX) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbtx)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router, deps.StudentController)

	return router
}
