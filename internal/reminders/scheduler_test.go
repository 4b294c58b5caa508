package reminders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roombook/internal/models"
	"roombook/internal/registry"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeBookings struct {
	reservations []models.Reservation
}

func (f *fakeBookings) List() []models.Reservation {
	out := make([]models.Reservation, len(f.reservations))
	copy(out, f.reservations)
	return out
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, note Note) error {
	return m.Called(ctx, note).Error(0)
}

func testScheduler(t *testing.T, bookings *fakeBookings, notifier Notifier, clock *fakeClock) *Scheduler {
	t.Helper()

	rooms := registry.NewRoomRegistry()
	rooms.Create("Room 101", "classroom", 40, "")
	users := registry.NewUserRegistry()
	_, err := users.Create("Alice", "alice@example.com")
	require.NoError(t, err)

	logger := zerolog.New(io.Discard)
	return NewScheduler(bookings, rooms, users, notifier, clock, time.Hour, &logger)
}

func TestScheduler_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)}
	bookings := &fakeBookings{reservations: []models.Reservation{
		{ID: 1, UserID: 1, RoomID: 1, Date: "2025-06-10", StartTime: "08:30", EndTime: "09:30", Reason: "standup"},
		{ID: 2, UserID: 1, RoomID: 1, Date: "2025-06-10", StartTime: "14:00", EndTime: "15:00", Reason: "review"},
		{ID: 3, UserID: 1, RoomID: 1, Date: "2025-06-09", StartTime: "08:00", EndTime: "09:00", Reason: "past"},
	}}
	notifier := new(mockNotifier)
	s := testScheduler(t, bookings, notifier, clock)

	// Only #1 starts inside the one-hour lead window.
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n Note) bool {
		return n.Reservation.ID == 1 && n.Room.Name == "Room 101" && n.User.Name == "Alice"
	})).Return(nil).Once()

	s.sweep(context.Background())
	notifier.AssertExpectations(t)

	t.Run("no duplicate reminder", func(t *testing.T) {
		s.sweep(context.Background())
		notifier.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("later window picks up the afternoon booking", func(t *testing.T) {
		clock.now = time.Date(2025, 6, 10, 13, 30, 0, 0, time.Local)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n Note) bool {
			return n.Reservation.ID == 2
		})).Return(nil).Once()

		s.sweep(context.Background())
		notifier.AssertExpectations(t)
	})
}

func TestScheduler_FailedDeliveryRetriesNextSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)}
	bookings := &fakeBookings{reservations: []models.Reservation{
		{ID: 1, UserID: 1, RoomID: 1, Date: "2025-06-10", StartTime: "08:30", EndTime: "09:30"},
	}}
	notifier := new(mockNotifier)
	s := testScheduler(t, bookings, notifier, clock)

	notifier.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	s.sweep(context.Background())

	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
	s.sweep(context.Background())
	notifier.AssertNumberOfCalls(t, "Notify", 2)
}

func TestScheduler_PruneCancelledReservations(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)}
	bookings := &fakeBookings{reservations: []models.Reservation{
		{ID: 1, UserID: 1, RoomID: 1, Date: "2025-06-10", StartTime: "08:30", EndTime: "09:30"},
	}}
	notifier := new(mockNotifier)
	s := testScheduler(t, bookings, notifier, clock)

	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
	s.sweep(context.Background())
	assert.True(t, s.sent[1])

	bookings.reservations = nil
	s.sweep(context.Background())
	assert.Empty(t, s.sent, "bookkeeping for cancelled reservations is dropped")
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)}
	s := testScheduler(t, &fakeBookings{}, new(mockNotifier), clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
