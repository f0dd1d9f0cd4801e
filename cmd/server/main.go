package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/database"
	"github.com/akarev/activity-signup/internal/handler"
	"github.com/akarev/activity-signup/internal/middleware"
	"github.com/akarev/activity-signup/internal/queue"
	"github.com/akarev/activity-signup/internal/repository"
	"github.com/akarev/activity-signup/internal/router"
	queue_publisher "github.com/akarev/activity-signup/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	// Seed the catalog from the definitions file. Sync never resets live
	// usage counters, so restarting mid-event is safe.
	defs, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reportRepo := repository.NewReportRepo(db)

	if err := activityRepo.Sync(ctx, defs); err != nil {
		log.Fatalf("sync catalog: %v", err)
	}

	// Redis is optional: a nil client disables response caching and rate
	// limiting but the service stays fully functional.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	purge := func(ctx context.Context) { middleware.PurgeCache(ctx, cacheCfg, rdb) }

	authHandler := handler.NewAuthHandler(cfg.GatewaySecretHash, cfg.JWTSecret, cfg.AccessTTLMin)

	participant := handler.NewParticipantHandler(userRepo, activityRepo, reservationRepo, reportRepo)
	participant.Publish = queue_publisher.PublishReservationConfirmed
	participant.PurgeCache = purge

	admin := handler.NewAdminHandler(activityRepo, reportRepo, userRepo, func() ([]config.ActivityDefinition, error) {
		return config.LoadCatalog(cfg.CatalogFile)
	})
	admin.PurgeCache = purge

	// Background consumer mirrors confirmations into the audit log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, authHandler)
	router.RegisterParticipant(e, participant, cfg.JWTSecret, cacheCfg, rlCfg, rdb)
	router.RegisterAdmin(e, admin, cfg.JWTSecret, cfg.AdminSet())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
