// Package app assembles the configuration, database, storage and HTTP
// router into a runnable server.
package app

import (
	"fmt"

	"github.com/fajarjulyana/VideoStreamPro/database"
	"github.com/fajarjulyana/VideoStreamPro/internal/config"
	"github.com/fajarjulyana/VideoStreamPro/internal/handlers"
	"github.com/fajarjulyana/VideoStreamPro/internal/logger"
	"github.com/fajarjulyana/VideoStreamPro/internal/middleware"
	"github.com/fajarjulyana/VideoStreamPro/internal/repositories"
	"github.com/fajarjulyana/VideoStreamPro/internal/routes"
	"github.com/fajarjulyana/VideoStreamPro/internal/services"
	"github.com/fajarjulyana/VideoStreamPro/internal/storage"
	"github.com/fajarjulyana/VideoStreamPro/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the SQLite database, limits it to a single
// connection (SQLite has one writer) and runs the migrations.
func OpenDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(10000)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// SetupRouter builds the full gin engine with every route mounted.
// Tests call it directly against their own database and storage.
func SetupRouter(cfg *config.Config, db *gorm.DB, store storage.Storage) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	v := validator.New()

	videoRepo := repositories.NewVideoRepository()
	commentRepo := repositories.NewCommentRepository()

	videoService := services.NewVideoService(videoRepo, store, services.UploadConfigFrom(cfg))
	commentService := services.NewCommentService(commentRepo, videoRepo)

	h := &routes.AppHandlers{
		Video:   handlers.NewVideoHandler(v, videoService),
		Comment: handlers.NewCommentHandler(v, commentService),
		Stream:  handlers.NewStreamHandler(v, videoService, store),
	}

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, h)

	return router
}

// Run loads the config and starts the HTTP server. It only returns on
// a fatal startup error.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := OpenDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("failed to init storage at %s: %w", cfg.Storage.BasePath, err)
	}

	router := SetupRouter(cfg, db, store)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Server.Env)

	return router.Run(addr)
}
