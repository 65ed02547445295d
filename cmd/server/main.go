package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/iliyamo/room-booking-admin/internal/config"
	"github.com/iliyamo/room-booking-admin/internal/fixture"
	"github.com/iliyamo/room-booking-admin/internal/handler"
	"github.com/iliyamo/room-booking-admin/internal/listview"
	"github.com/iliyamo/room-booking-admin/internal/logging"
	"github.com/iliyamo/room-booking-admin/internal/middleware"
	"github.com/iliyamo/room-booking-admin/internal/model"
	"github.com/iliyamo/room-booking-admin/internal/queue"
	"github.com/iliyamo/room-booking-admin/internal/router"
	"github.com/iliyamo/room-booking-admin/internal/service"
)

func main() {
	dotenvErr := config.LoadDotEnv() // a missing .env is fine
	cfg := config.Load()
	logging.Init("room-booking-admin", cfg.Env, cfg.LogLevel)
	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg("no .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := engineOptions(cfg)
	loader := fixture.NewLoader(cfg.FixtureDir, cfg.FixtureBaseURL, cfg.FixtureTimeout, logging.Get())

	users := handler.NewEntityHandler(listview.New(model.UserSchema(), opts...), loader, "users.json")
	rooms := handler.NewEntityHandler(listview.New(model.RoomSchema(), opts...), loader, "rooms.json")
	bookings := handler.NewEntityHandler(listview.New(model.BookingSchema(), opts...), loader, "bookings.json")

	// Failures are logged by the loader and leave the collection empty.
	_, _ = users.Load(ctx)
	_, _ = rooms.Load(ctx)
	_, _ = bookings.Load(ctx)

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	auditCfg := config.LoadAuditConfig()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var publisher *service.Publisher
	if auditCfg.Enabled {
		publisher = service.NewPublisher(auditCfg.URL, auditCfg.PublishTimeout)
		defer publisher.Close()
	}
	for _, h := range []interface {
		Subscribe(listview.Subscriber) func()
	}{users, rooms, bookings} {
		if rdb != nil && cacheCfg.Enabled {
			h.Subscribe(service.CacheInvalidator(rdb, cacheCfg.Prefix))
		}
		if publisher != nil {
			h.Subscribe(service.AuditSubscriber(publisher, auditCfg.PublishTimeout))
		}
	}
	if auditCfg.ConsumerEnabled {
		go func() {
			if err := queue.StartAuditConsumer(ctx, auditCfg.URL, auditCfg.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("audit consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger())
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	cache := middleware.NewRedisCache(cacheCfg, rdb)
	router.RegisterRoutes(e)
	router.RegisterEntity(e, users, cache)
	roomGroup := router.RegisterEntity(e, rooms, cache)
	roomGroup.POST("/:id/status", handler.RoomStatus(rooms))
	router.RegisterEntity(e, bookings, cache)
	router.RegisterDashboard(e, &handler.DashboardHandler{Users: users, Rooms: rooms, Bookings: bookings})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func engineOptions(cfg config.Config) []listview.Option {
	tag, err := language.Parse(cfg.SortLocale)
	if err != nil {
		log.Warn().Err(err).Str("locale", cfg.SortLocale).Msg("invalid sort locale; using English")
		tag = language.English
	}
	return []listview.Option{
		listview.WithPageSize(cfg.PageSize),
		listview.WithLocale(tag),
		listview.WithIDStrategy(listview.ParseIDStrategy(cfg.IDStrategy)),
		listview.WithLogger(logging.Get()),
	}
}
