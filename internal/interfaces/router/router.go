package router

import (
	"context"

	homesvc "homeboard-backend/internal/application/homes"
	mediasvc "homeboard-backend/internal/application/media"
	"homeboard-backend/internal/config"
	"homeboard-backend/internal/infrastructure/database"
	healthhandler "homeboard-backend/internal/interfaces/handlers/health"
	homehandler "homeboard-backend/internal/interfaces/handlers/homes"
	mediahandler "homeboard-backend/internal/interfaces/handlers/media"
	"homeboard-backend/internal/middleware"
	"homeboard-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. DB and object store are optional (tests run without them);
// routes that need a missing dependency are simply not mounted.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		// Room for a whole multipart batch; per-file size is checked in the handler.
		BodyLimit: 64 * 1024 * 1024,
	})

	app.Use(middleware.CORS())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
	}

	var gateway *storage.Gateway
	if cfg.MinIOEndpoint != "" {
		var err error
		gateway, err = storage.New(context.Background(), storage.Options{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	healthHandlers := &healthhandler.Handlers{DB: db}
	app.Get("/", healthHandlers.Banner)
	app.Get("/health/json", healthHandlers.JSON)

	api := app.Group("/api")

	if gateway != nil {
		mediaService := &mediasvc.Service{Store: gateway}
		mediaHandlers := &mediahandler.Handlers{Service: mediaService}
		api.Post("/upload", mediaHandlers.Upload)
		api.Get("/files/:fileId", mediaHandlers.GetFile)
	}

	if db != nil && gateway != nil {
		homeService := &homesvc.Service{DB: db, Media: gateway}
		homeHandlers := &homehandler.Handlers{Service: homeService}
		api.Post("/homes", homeHandlers.CreateHome)
		api.Get("/homes", homeHandlers.GetAllHomes)
		api.Get("/homes/:id", homeHandlers.GetHomeByID)
		api.Delete("/homes/:id", homeHandlers.DeleteHome)
	}

	return app, db, nil
}
