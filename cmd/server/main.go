package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
	"github.com/rs/cors"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/repository/memstore"
	"github.com/iliyamo/hotel-booking/internal/repository/mongostore"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/service"
)

func main() {
	cfg := config.Load()

	stores, closeStores, err := openStores(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStores()

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Events {
		events = queue.NewPublisher(cfg.RabbitURL)
	}

	auth := service.NewAuthService(stores.Users, cfg.JWTSecret, cfg.TokenTTLMin, cfg.BcryptCost)
	ops := handler.NewOperationHandler(
		auth,
		service.NewCatalogService(stores.Hotels, stores.Rooms),
		service.NewBookingService(stores.Bookings, stores.Rooms, events),
		service.NewResolver(stores),
	)

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	router.RegisterRoutes(e)
	router.RegisterOperations(e, ops, middleware.Identity(auth), limiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(e)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (env=%s, store=%s)", server.Addr, cfg.Env, cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("shutdown signal received; draining requests")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// openStores connects the backend selected by STORE_DRIVER and returns
// its stores with a function that releases the connection.
func openStores(cfg config.Config) (service.Stores, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.MySQLDSN())
		if err != nil {
			return service.Stores{}, nil, fmt.Errorf("mysql: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return service.Stores{}, nil, fmt.Errorf("mysql migrate: %w", err)
		}
		return service.Stores{
			Users:    repository.NewUserRepo(db),
			Hotels:   repository.NewHotelRepo(db),
			Rooms:    repository.NewRoomRepo(db),
			Bookings: repository.NewBookingRepo(db),
		}, func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, db, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return service.Stores{}, nil, fmt.Errorf("mongo: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return service.Stores{}, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return service.Stores{
			Users:    mongostore.NewUserStore(db),
			Hotels:   mongostore.NewHotelStore(db),
			Rooms:    mongostore.NewRoomStore(db),
			Bookings: mongostore.NewBookingStore(db),
		}, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverMemory:
		log.Println("store: using in-memory store; data is lost on exit")
		mem := memstore.New()
		return service.Stores{
			Users:    mem.Users(),
			Hotels:   mem.Hotels(),
			Rooms:    mem.Rooms(),
			Bookings: mem.Bookings(),
		}, func() {}, nil
	}
	return service.Stores{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func logLevel(s string) glog.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	}
	return glog.INFO
}
