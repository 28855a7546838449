package router

import (
	"context"

	catalogsvc "pushtohold-backend/internal/application/catalog"
	companysvc "pushtohold-backend/internal/application/companies"
	"pushtohold-backend/internal/config"
	"pushtohold-backend/internal/infrastructure/cache"
	"pushtohold-backend/internal/infrastructure/database"
	adminhandler "pushtohold-backend/internal/interfaces/handlers/catalogadmin"
	companyhandler "pushtohold-backend/internal/interfaces/handlers/companies"
	healthhandler "pushtohold-backend/internal/interfaces/handlers/health"
	scanhandler "pushtohold-backend/internal/interfaces/handlers/scan"
	"pushtohold-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned redis client is nil when running on the
// in-process cache fallback.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	store := cache.New(cfg.RedisURL)
	var rdb *redis.Client
	if redisStore, ok := store.(*cache.RedisStore); ok {
		rdb = redisStore.Rdb
	}

	healthHandlers := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		healthHandlers.DB = &gormDBPinger{db: db}
	}
	app.Get("/health/json", healthHandlers.JSON)

	if db != nil {
		index := catalogsvc.NewBrandIndex(db)
		go func() {
			// Build failures keep the empty snapshot; lookups degrade to
			// "no match" until a refresh succeeds.
			if err := index.Rebuild(context.Background()); err != nil {
				log.Error().Err(err).Msg("Initial brand index build failed")
			}
		}()

		catalogService := &catalogsvc.Service{
			DB:    db,
			Cache: store,
			Facts: catalogsvc.NewOpenFactsClient(cfg.OpenFactsEndpoints, cfg.OpenFactsUserAgent),
			Index: index,
		}

		scanHandlers := &scanhandler.Handlers{Service: catalogService}
		app.Get("/api/v1/scan/:gtin", scanHandlers.Scan)

		adminHandlers := &adminhandler.Handlers{Service: catalogService, AdminKey: cfg.AdminKey}
		app.Post("/api/v1/catalog/refresh-index", adminHandlers.RefreshIndex)

		companyService := &companysvc.Service{DB: db}
		companyHandlers := &companyhandler.Handlers{Service: companyService}
		companyGroup := app.Group("/api/v1/companies")
		companyGroup.Get("/", companyHandlers.List)
		companyGroup.Get("/:id", companyHandlers.Get)
	}

	return app, db, rdb, nil
}
