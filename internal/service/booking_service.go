package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/calendar"
	"github.com/ryyderbros/wellness_server/internal/model"
)

// BookingStore is the persistence surface the booking service needs.
// Implemented by repository.BookingRepository.
type BookingStore interface {
	Claim(ctx context.Context, slotID, clientID int64) (*model.BookingClaim, error)
	AttachMeetingEvent(ctx context.Context, bookingID int64, eventID, meetLink string) error
	GetByClientID(ctx context.Context, clientID int64) ([]*model.ClientBooking, error)
	GetUpcomingByTherapistID(ctx context.Context, therapistID int64) ([]*model.TherapistSession, error)
	GetAll(ctx context.Context) ([]*model.AdminBooking, error)
}

type BookingService struct {
	store     BookingStore
	scheduler calendar.Scheduler
	logger    *zap.Logger
}

func NewBookingService(store BookingStore, scheduler calendar.Scheduler, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:     store,
		scheduler: scheduler,
		logger:    logger,
	}
}

// BookSlot claims the slot for the client and then tries to put the session
// on the therapist's calendar. The claim is atomic and decides the outcome;
// the calendar step runs after commit and never fails the booking. A booking
// returned with nil meeting fields is still confirmed.
func (s *BookingService) BookSlot(ctx context.Context, slotID, clientID int64) (*model.Booking, error) {
	claim, err := s.store.Claim(ctx, slotID, clientID)
	if err != nil {
		return nil, err
	}

	booking := claim.Booking

	s.logger.Info("Slot booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("slot_id", slotID),
		zap.Int64("client_id", clientID),
		zap.Int64("therapist_id", booking.TherapistID),
	)

	event, err := s.scheduler.CreateEvent(ctx, calendar.EventRequest{
		TherapistID: booking.TherapistID,
		ClientName:  claim.ClientName,
		ClientEmail: claim.ClientEmail,
		StartTime:   claim.Slot.StartTime,
		EndTime:     claim.Slot.EndTime,
	})
	if err != nil {
		s.logger.Warn("Failed to create calendar event, booking kept without meet link",
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
		return booking, nil
	}

	if err := s.store.AttachMeetingEvent(ctx, booking.ID, event.EventID, event.MeetLink); err != nil {
		s.logger.Warn("Failed to attach calendar event to booking",
			zap.Int64("booking_id", booking.ID),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return booking, nil
	}

	booking.GoogleEventID = &event.EventID
	booking.MeetLink = &event.MeetLink

	return booking, nil
}

// GetClientBookings returns the client's bookings, earliest session first.
func (s *BookingService) GetClientBookings(ctx context.Context, clientID int64) ([]*model.ClientBooking, error) {
	return s.store.GetByClientID(ctx, clientID)
}

// GetTherapistSessions returns the therapist's sessions starting from five
// minutes before now.
func (s *BookingService) GetTherapistSessions(ctx context.Context, therapistID int64) ([]*model.TherapistSession, error) {
	return s.store.GetUpcomingByTherapistID(ctx, therapistID)
}

// GetAllBookings returns the admin master list.
func (s *BookingService) GetAllBookings(ctx context.Context) ([]*model.AdminBooking, error) {
	return s.store.GetAll(ctx)
}
