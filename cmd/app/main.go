package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"skyjourney/api"
	"skyjourney/config"
	"skyjourney/internal/bootstrap"
	"skyjourney/internal/cache"
	"skyjourney/internal/kafka"
	"skyjourney/internal/repository"
	"skyjourney/internal/service/auth"
	"skyjourney/internal/service/booking"
	"skyjourney/internal/service/flights"
	"skyjourney/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo    repository.UserRepository
		flightRepo  repository.FlightRepository
		bookingRepo repository.BookingRepository
	)
	if cfg.Database != nil {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			slog.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		userRepo = repository.NewUserRepository(pool)
		flightRepo = repository.NewFlightRepository(pool)
		bookingRepo = repository.NewBookingRepository(pool)
		slog.Info("using postgres store")
	} else {
		store := repository.NewMemStore()
		userRepo = store.Users()
		flightRepo = store.Flights()
		bookingRepo = store.Bookings()
		slog.Info("using in-memory store")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis != nil {
		redisCache = cache.NewRedisCache(*cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
		defer redisCache.Close()
	}

	var producer *kafka.Producer
	bookingTopic := ""
	bookingOpts := []booking.BookingServiceOption{}
	if cfg.Kafka != nil {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingTopic = cfg.Kafka.BookingTopic
		if cfg.Kafka.NotificationsTopic != "" {
			bookingOpts = append(bookingOpts, booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
		}
	}

	// interfaces hold non-nil values only when the collaborator exists
	var flightCache flights.Cache
	var bookingCache booking.Cache
	var bookingProducer booking.Producer
	if redisCache != nil {
		flightCache = redisCache
		bookingCache = redisCache
	}
	if producer != nil {
		bookingProducer = producer
	}

	sessions := session.NewManager(time.Duration(cfg.Session.TTLHours) * time.Hour)
	go sessions.Sweep(ctx, time.Duration(cfg.Session.SweepMinutes)*time.Minute)

	authService := auth.NewAuthService(userRepo)
	flightService := flights.NewFlightService(flightRepo, flightCache)
	bookingService := booking.NewBookingService(bookingRepo, flightRepo, bookingCache, bookingProducer, bookingTopic, bookingOpts...)

	if cfg.Seed {
		if err := bootstrap.Seed(ctx, userRepo, flightRepo); err != nil {
			slog.Error("seed data", "error", err)
			os.Exit(1)
		}
	}

	mw := api.NewAuth(sessions, userRepo)
	router := bootstrap.NewRouter(mw,
		api.NewAuthHandler(authService, sessions),
		api.NewFlightHandler(flightService),
		api.NewBookingHandler(bookingService),
	)

	slog.Info("starting http server", "address", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
