package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/calendar"
	"github.com/ryyderbros/wellness_server/internal/model"
)

// SlotStore is the persistence surface the slot service needs.
// Implemented by repository.SlotRepository.
type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error)
	GetAvailableByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error)
	DeleteCascade(ctx context.Context, therapistID, slotID int64) (bool, []string, error)
}

type SlotService struct {
	store     SlotStore
	scheduler calendar.Scheduler
	logger    *zap.Logger
}

func NewSlotService(store SlotStore, scheduler calendar.Scheduler, logger *zap.Logger) *SlotService {
	return &SlotService{
		store:     store,
		scheduler: scheduler,
		logger:    logger,
	}
}

// CreateSlot opens a new availability window starting at start. The end time
// is fixed at the session length; overlapping slots are allowed.
func (s *SlotService) CreateSlot(ctx context.Context, therapistID int64, start time.Time) (*model.Slot, error) {
	slot := &model.Slot{
		TherapistID: therapistID,
		StartTime:   start,
		EndTime:     start.Add(model.SessionDuration),
	}

	if err := s.store.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("therapist_id", therapistID),
		zap.Time("start_time", slot.StartTime),
	)

	return slot, nil
}

// GetSlots returns all of a therapist's slots, earliest first.
func (s *SlotService) GetSlots(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	return s.store.GetByTherapistID(ctx, therapistID)
}

// GetAvailableSlots returns only the unbooked slots of a therapist.
func (s *SlotService) GetAvailableSlots(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	return s.store.GetAvailableByTherapistID(ctx, therapistID)
}

// DeleteSlot removes a slot the therapist owns together with any dependent
// booking, then asks the calendar to cancel the orphaned events. Cancellation
// failures are logged and swallowed; the local deletion has already
// committed and stands either way.
func (s *SlotService) DeleteSlot(ctx context.Context, therapistID, slotID int64) (bool, error) {
	deleted, eventIDs, err := s.store.DeleteCascade(ctx, therapistID, slotID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.Int64("therapist_id", therapistID),
		zap.Int("cancelled_bookings", len(eventIDs)),
	)

	for _, eventID := range eventIDs {
		if err := s.scheduler.CancelEvent(ctx, therapistID, eventID); err != nil {
			s.logger.Warn("Failed to cancel calendar event",
				zap.Int64("therapist_id", therapistID),
				zap.String("event_id", eventID),
				zap.Error(err),
			)
		}
	}

	return true, nil
}
