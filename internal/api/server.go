// Package api is the HTTP boundary of the booking service. It parses
// and shape-validates requests, delegates business rules to the
// registries and the reservation engine, and maps typed domain
// failures to status codes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"roombook/internal/cache"
	"roombook/internal/events"
	"roombook/internal/registry"
	"roombook/internal/reservation"
)

// Server wires the HTTP handlers to the domain objects.
type Server struct {
	rooms   *registry.RoomRegistry
	users   *registry.UserRegistry
	engine  *reservation.Engine
	cache   *cache.AvailabilityCache
	bus     *events.Bus
	limiter *rate.Limiter
	log     *zerolog.Logger
}

// Config holds the server's own settings.
type Config struct {
	Port           int
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewServer(
	cfg Config,
	rooms *registry.RoomRegistry,
	users *registry.UserRegistry,
	engine *reservation.Engine,
	availability *cache.AvailabilityCache,
	bus *events.Bus,
	logger *zerolog.Logger,
) *Server {
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	return &Server{
		rooms:   rooms,
		users:   users,
		engine:  engine,
		cache:   availability,
		bus:     bus,
		limiter: limiter,
		log:     logger,
	}
}

// Handler builds the route table. Literal segments win over wildcards,
// so /rooms/available does not shadow /rooms/{id}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /rooms/available", s.handleAvailableRooms)
	mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /rooms", s.handleListRooms)
	mux.HandleFunc("GET /rooms/{id}", s.handleGetRoom)
	mux.HandleFunc("PUT /rooms/{id}", s.handleUpdateRoom)
	mux.HandleFunc("DELETE /rooms/{id}", s.handleDeleteRoom)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PUT /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("GET /reservations/export", s.handleExportReservations)
	mux.HandleFunc("POST /reservations", s.handleCreateReservation)
	mux.HandleFunc("GET /reservations", s.handleListReservations)
	mux.HandleFunc("GET /reservations/{id}", s.handleGetReservation)
	mux.HandleFunc("PUT /reservations/{id}", s.handleUpdateReservation)
	mux.HandleFunc("DELETE /reservations/{id}", s.handleCancelReservation)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	var handler http.Handler = mux
	handler = withRateLimit(s.limiter, handler)
	handler = withLogging(s.log, handler)
	handler = withRequestID(handler)
	return handler
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	s.log.Info().Int("port", port).Msg("API server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
