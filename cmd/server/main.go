package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roombook/internal/api"
	"roombook/internal/cache"
	"roombook/internal/config"
	"roombook/internal/events"
	"roombook/internal/metrics"
	"roombook/internal/registry"
	"roombook/internal/reminders"
	"roombook/internal/reservation"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("ROOMBOOK_CONFIG_PATH"))
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Err(err).Msg("config file not found, using defaults")
			cfg = config.Default()
		} else {
			logger.Fatal().Err(err).Msg("failed to load config")
		}
	}

	rooms := registry.NewRoomRegistry()
	users := registry.NewUserRegistry()
	engine := reservation.NewEngine(rooms, users, reservation.SystemClock{})

	var rdb *redis.Client
	var availability *cache.AvailabilityCache
	if cfg.Redis.Address != "" && cfg.Redis.CacheTTLSeconds > 0 {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		availability = cache.New(rdb, cfg.CacheTTL(), &logger)
		logger.Info().Str("address", cfg.Redis.Address).Msg("availability cache enabled")
	}

	bus := events.NewBus()
	bus.SubscribeAll(func(ev events.Event) {
		logger.Debug().
			Str("type", ev.Type).
			Int64("reservation_id", ev.Reservation.ID).
			Msg("reservation event")
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reminders.Enabled {
		if cfg.Reminders.BotToken == "" || cfg.Reminders.ChatID == 0 {
			logger.Fatal().Msg("set reminders.bot_token and reminders.chat_id in config")
		}
		notifier, err := reminders.NewTelegramNotifier(cfg.Reminders.BotToken, cfg.Reminders.ChatID)
		if err != nil {
			logger.Fatal().Err(err).Msg("create reminder notifier error")
		}
		scheduler := reminders.NewScheduler(engine, rooms, users, notifier, reservation.SystemClock{}, cfg.ReminderLead(), &logger)
		go scheduler.Run(ctx, cfg.ReminderPoll())
	}

	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	}, rooms, users, engine, availability, bus, &logger)

	if err := server.Start(ctx, cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("API server error")
	}
	logger.Info().Msg("shutdown complete")
}

func startHealthServer(ctx context.Context, port int, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if rdb != nil {
			ctxPing, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
