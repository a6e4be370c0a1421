package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/calendar"
	"github.com/ryyderbros/wellness_server/internal/model"
	"github.com/ryyderbros/wellness_server/internal/repository"
	"github.com/ryyderbros/wellness_server/internal/service"
)

// MockBookingStore is a mock implementation of the BookingStore interface
type MockBookingStore struct {
	testifymock.Mock
}

func (m *MockBookingStore) Claim(ctx context.Context, slotID, clientID int64) (*model.BookingClaim, error) {
	args := m.Called(ctx, slotID, clientID)
	claim, _ := args.Get(0).(*model.BookingClaim)
	return claim, args.Error(1)
}

func (m *MockBookingStore) AttachMeetingEvent(ctx context.Context, bookingID int64, eventID, meetLink string) error {
	args := m.Called(ctx, bookingID, eventID, meetLink)
	return args.Error(0)
}

func (m *MockBookingStore) GetByClientID(ctx context.Context, clientID int64) ([]*model.ClientBooking, error) {
	args := m.Called(ctx, clientID)
	bookings, _ := args.Get(0).([]*model.ClientBooking)
	return bookings, args.Error(1)
}

func (m *MockBookingStore) GetUpcomingByTherapistID(ctx context.Context, therapistID int64) ([]*model.TherapistSession, error) {
	args := m.Called(ctx, therapistID)
	sessions, _ := args.Get(0).([]*model.TherapistSession)
	return sessions, args.Error(1)
}

func (m *MockBookingStore) GetAll(ctx context.Context) ([]*model.AdminBooking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]*model.AdminBooking)
	return bookings, args.Error(1)
}

// MockScheduler is a mock implementation of calendar.Scheduler
type MockScheduler struct {
	testifymock.Mock
}

func (m *MockScheduler) CreateEvent(ctx context.Context, req calendar.EventRequest) (*calendar.Event, error) {
	args := m.Called(ctx, req)
	event, _ := args.Get(0).(*calendar.Event)
	return event, args.Error(1)
}

func (m *MockScheduler) CancelEvent(ctx context.Context, therapistID int64, eventID string) error {
	args := m.Called(ctx, therapistID, eventID)
	return args.Error(0)
}

func newClaim() *model.BookingClaim {
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	return &model.BookingClaim{
		Booking: &model.Booking{
			ID:          42,
			SlotID:      7,
			TherapistID: 3,
			ClientID:    5,
			Status:      model.BookingStatusConfirmed,
			CreatedAt:   time.Now(),
		},
		Slot: &model.Slot{
			ID:          7,
			TherapistID: 3,
			StartTime:   start,
			EndTime:     start.Add(model.SessionDuration),
			IsBooked:    true,
		},
		TherapistName:  "Dr. Ryder",
		TherapistEmail: "ryder@example.com",
		ClientName:     "Alex",
		ClientEmail:    "alex@example.com",
	}
}

func TestBookSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches meeting event on scheduler success", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		claim := newClaim()
		store.On("Claim", ctx, int64(7), int64(5)).Return(claim, nil)
		scheduler.On("CreateEvent", ctx, calendar.EventRequest{
			TherapistID: 3,
			ClientName:  "Alex",
			ClientEmail: "alex@example.com",
			StartTime:   claim.Slot.StartTime,
			EndTime:     claim.Slot.EndTime,
		}).Return(&calendar.Event{EventID: "ev-1", MeetLink: "https://meet.google.com/abc"}, nil)
		store.On("AttachMeetingEvent", ctx, int64(42), "ev-1", "https://meet.google.com/abc").Return(nil)

		booking, err := svc.BookSlot(ctx, 7, 5)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
		require.NotNil(t, booking.GoogleEventID)
		assert.Equal(t, "ev-1", *booking.GoogleEventID)
		require.NotNil(t, booking.MeetLink)
		assert.Equal(t, "https://meet.google.com/abc", *booking.MeetLink)

		store.AssertExpectations(t)
		scheduler.AssertExpectations(t)
	})

	t.Run("booking survives scheduler failure", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(7), int64(5)).Return(newClaim(), nil)
		scheduler.On("CreateEvent", ctx, testifymock.Anything).Return(nil, errors.New("provider unreachable"))

		booking, err := svc.BookSlot(ctx, 7, 5)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
		assert.Nil(t, booking.GoogleEventID)
		assert.Nil(t, booking.MeetLink)

		store.AssertNotCalled(t, "AttachMeetingEvent", testifymock.Anything, testifymock.Anything, testifymock.Anything, testifymock.Anything)
	})

	t.Run("booking survives missing credential", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(7), int64(5)).Return(newClaim(), nil)
		scheduler.On("CreateEvent", ctx, testifymock.Anything).Return(nil, calendar.ErrNoCredential)

		booking, err := svc.BookSlot(ctx, 7, 5)
		require.NoError(t, err)
		assert.Nil(t, booking.MeetLink)
	})

	t.Run("booking survives attach failure", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(7), int64(5)).Return(newClaim(), nil)
		scheduler.On("CreateEvent", ctx, testifymock.Anything).Return(&calendar.Event{EventID: "ev-1", MeetLink: "link"}, nil)
		store.On("AttachMeetingEvent", ctx, int64(42), "ev-1", "link").Return(errors.New("connection reset"))

		booking, err := svc.BookSlot(ctx, 7, 5)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Nil(t, booking.GoogleEventID)
		assert.Nil(t, booking.MeetLink)
	})

	t.Run("conflict does not reach the scheduler", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(7), int64(5)).Return(nil, repository.ErrSlotUnavailable)

		booking, err := svc.BookSlot(ctx, 7, 5)
		require.ErrorIs(t, err, repository.ErrSlotUnavailable)
		assert.Nil(t, booking)

		scheduler.AssertNotCalled(t, "CreateEvent", testifymock.Anything, testifymock.Anything)
	})

	t.Run("slot not found", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(999), int64(5)).Return(nil, repository.ErrSlotNotFound)

		_, err := svc.BookSlot(ctx, 999, 5)
		require.ErrorIs(t, err, repository.ErrSlotNotFound)
	})

	t.Run("client not found", func(t *testing.T) {
		store := new(MockBookingStore)
		scheduler := new(MockScheduler)
		svc := service.NewBookingService(store, scheduler, zap.NewNop())

		store.On("Claim", ctx, int64(7), int64(404)).Return(nil, repository.ErrClientNotFound)

		_, err := svc.BookSlot(ctx, 7, 404)
		require.ErrorIs(t, err, repository.ErrClientNotFound)
	})
}

func TestGetClientBookings(t *testing.T) {
	ctx := context.Background()
	store := new(MockBookingStore)
	svc := service.NewBookingService(store, new(MockScheduler), zap.NewNop())

	expected := []*model.ClientBooking{
		{ID: 1, Status: model.BookingStatusConfirmed, TherapistName: "Dr. Ryder"},
	}
	store.On("GetByClientID", ctx, int64(5)).Return(expected, nil)

	bookings, err := svc.GetClientBookings(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, expected, bookings)
}
