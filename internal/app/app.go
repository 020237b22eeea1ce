package app

import (
	"hrcore-backend/internal/config"
	"hrcore-backend/internal/database"
	"hrcore-backend/internal/directory"
	"hrcore-backend/internal/health"
	"hrcore-backend/internal/middleware"
	"hrcore-backend/internal/seating"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and Redis client may be nil when the
// corresponding URLs are not configured (e.g. tests).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health endpoints (no auth beyond the reset admin key)
	var pinger health.DBPinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			pinger = sqlDB
		}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             pinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)
	app.Get("/reset", healthHandlers.Reset)

	if db != nil {
		// Seating module: transaction orchestration entry point
		seatingHandlers := &seating.Handlers{Orchestrator: seating.NewOrchestrator(db)}
		seatingGroup := app.Group("/api/v1/seating")
		seatingGroup.Post("/execute-transaction", seatingHandlers.ExecuteTransaction)

		// Directory module: read-only seat/occupancy views
		directoryHandlers := &directory.Handlers{Service: &directory.Service{DB: db}}
		directoryGroup := app.Group("/api/v1/directory")
		directoryGroup.Get("/view-position-seats/:position_id", directoryHandlers.ViewPositionSeats)
		directoryGroup.Get("/view-seat-occupants/:seat_id", directoryHandlers.ViewSeatOccupants)
		directoryGroup.Get("/view-employee-occupancy/:employee_id", directoryHandlers.ViewEmployeeOccupancy)
	}

	return app, db, rdb, nil
}
