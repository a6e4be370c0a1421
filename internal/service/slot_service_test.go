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

	"github.com/ryyderbros/wellness_server/internal/model"
	"github.com/ryyderbros/wellness_server/internal/service"
)

// MockSlotStore is a mock implementation of the SlotStore interface
type MockSlotStore struct {
	testifymock.Mock
}

func (m *MockSlotStore) Create(ctx context.Context, slot *model.Slot) error {
	args := m.Called(ctx, slot)
	if args.Error(0) == nil {
		slot.ID = 11
		slot.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockSlotStore) GetByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	args := m.Called(ctx, therapistID)
	slots, _ := args.Get(0).([]*model.Slot)
	return slots, args.Error(1)
}

func (m *MockSlotStore) GetAvailableByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	args := m.Called(ctx, therapistID)
	slots, _ := args.Get(0).([]*model.Slot)
	return slots, args.Error(1)
}

func (m *MockSlotStore) DeleteCascade(ctx context.Context, therapistID, slotID int64) (bool, []string, error) {
	args := m.Called(ctx, therapistID, slotID)
	eventIDs, _ := args.Get(1).([]string)
	return args.Bool(0), eventIDs, args.Error(2)
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()
	store := new(MockSlotStore)
	svc := service.NewSlotService(store, new(MockScheduler), zap.NewNop())

	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	store.On("Create", ctx, testifymock.MatchedBy(func(slot *model.Slot) bool {
		return slot.TherapistID == 3 &&
			slot.StartTime.Equal(start) &&
			slot.EndTime.Equal(start.Add(75*time.Minute))
	})).Return(nil)

	slot, err := svc.CreateSlot(ctx, 3, start)
	require.NoError(t, err)
	assert.Equal(t, int64(11), slot.ID)
	assert.Equal(t, start.Add(75*time.Minute), slot.EndTime)

	store.AssertExpectations(t)
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels calendar events of deleted bookings", func(t *testing.T) {
		store := new(MockSlotStore)
		scheduler := new(MockScheduler)
		svc := service.NewSlotService(store, scheduler, zap.NewNop())

		store.On("DeleteCascade", ctx, int64(3), int64(7)).Return(true, []string{"ev-1"}, nil)
		scheduler.On("CancelEvent", ctx, int64(3), "ev-1").Return(nil)

		deleted, err := svc.DeleteSlot(ctx, 3, 7)
		require.NoError(t, err)
		assert.True(t, deleted)

		scheduler.AssertExpectations(t)
	})

	t.Run("deletion stands when cancellation fails", func(t *testing.T) {
		store := new(MockSlotStore)
		scheduler := new(MockScheduler)
		svc := service.NewSlotService(store, scheduler, zap.NewNop())

		store.On("DeleteCascade", ctx, int64(3), int64(7)).Return(true, []string{"ev-1"}, nil)
		scheduler.On("CancelEvent", ctx, int64(3), "ev-1").Return(errors.New("provider unreachable"))

		deleted, err := svc.DeleteSlot(ctx, 3, 7)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("not owned reports false without calendar calls", func(t *testing.T) {
		store := new(MockSlotStore)
		scheduler := new(MockScheduler)
		svc := service.NewSlotService(store, scheduler, zap.NewNop())

		store.On("DeleteCascade", ctx, int64(99), int64(7)).Return(false, nil, nil)

		deleted, err := svc.DeleteSlot(ctx, 99, 7)
		require.NoError(t, err)
		assert.False(t, deleted)

		scheduler.AssertNotCalled(t, "CancelEvent", testifymock.Anything, testifymock.Anything, testifymock.Anything)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		store := new(MockSlotStore)
		scheduler := new(MockScheduler)
		svc := service.NewSlotService(store, scheduler, zap.NewNop())

		store.On("DeleteCascade", ctx, int64(3), int64(7)).Return(false, nil, errors.New("connection refused"))

		_, err := svc.DeleteSlot(ctx, 3, 7)
		require.Error(t, err)
	})
}
