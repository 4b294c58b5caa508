// Package reminders notifies an operations channel about reservations
// that are about to start.
package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"roombook/internal/metrics"
	"roombook/internal/models"
	"roombook/internal/reservation"
)

// Note is one reminder payload. Room and User may be zero values when
// the referenced entity was deleted after booking.
type Note struct {
	Reservation models.Reservation
	Room        models.Room
	User        models.User
	StartsAt    time.Time
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, note Note) error
}

// BookingSource lists the live reservations.
type BookingSource interface {
	List() []models.Reservation
}

// RoomSource and UserSource resolve the reservation's foreign keys.
type RoomSource interface {
	Get(id int64) (models.Room, bool)
}

type UserSource interface {
	Get(id int64) (models.User, bool)
}

// Scheduler periodically sweeps the reservation list and sends one
// reminder per reservation once its start falls inside the lead
// window. Delivery is rate limited so a burst of bookings cannot
// flood the channel.
type Scheduler struct {
	bookings BookingSource
	rooms    RoomSource
	users    UserSource
	notifier Notifier
	clock    reservation.Clock
	lead     time.Duration
	limiter  *rate.Limiter
	log      *zerolog.Logger

	mu   sync.Mutex
	sent map[int64]bool
}

func NewScheduler(
	bookings BookingSource,
	rooms RoomSource,
	users UserSource,
	notifier Notifier,
	clock reservation.Clock,
	lead time.Duration,
	logger *zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		notifier: notifier,
		clock:    clock,
		lead:     lead,
		limiter:  rate.NewLimiter(rate.Limit(20), 30),
		log:      logger,
		sent:     make(map[int64]bool),
	}
}

// Run sweeps on the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("lead", s.lead).Dur("interval", interval).Msg("reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	now := s.clock.Now()
	live := s.bookings.List()

	s.mu.Lock()
	s.prune(live)
	s.mu.Unlock()

	for _, res := range live {
		startsAt := startInstant(res, now.Location())
		if startsAt.IsZero() || startsAt.Before(now) || startsAt.After(now.Add(s.lead)) {
			continue
		}

		s.mu.Lock()
		already := s.sent[res.ID]
		s.mu.Unlock()
		if already {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return
		}

		note := Note{Reservation: res, StartsAt: startsAt}
		note.Room, _ = s.rooms.Get(res.RoomID)
		note.User, _ = s.users.Get(res.UserID)

		if err := s.notifier.Notify(ctx, note); err != nil {
			metrics.IncReminderSent("failed")
			s.log.Error().Err(err).Int64("reservation_id", res.ID).Msg("reminder delivery failed")
			continue
		}

		metrics.IncReminderSent("sent")
		s.log.Info().Int64("reservation_id", res.ID).Time("starts_at", startsAt).Msg("reminder sent")
		s.mu.Lock()
		s.sent[res.ID] = true
		s.mu.Unlock()
	}
}

// prune drops bookkeeping for reservations that no longer exist, so a
// reused sweep over a long-lived process does not grow unbounded.
// Callers hold the mutex.
func (s *Scheduler) prune(live []models.Reservation) {
	alive := make(map[int64]bool, len(live))
	for _, res := range live {
		alive[res.ID] = true
	}
	for id := range s.sent {
		if !alive[id] {
			delete(s.sent, id)
		}
	}
}

func startInstant(res models.Reservation, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", res.Date+" "+res.StartTime, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
