package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryyderbros/wellness_server/internal/model"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create inserts a new availability slot.
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (therapist_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, is_booked, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.TherapistID,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.ID, &slot.IsBooked, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByTherapistID returns all slots of a therapist, earliest first.
func (r *SlotRepository) GetByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	query := `
		SELECT id, therapist_id, start_time, end_time, is_booked, created_at
		FROM slots
		WHERE therapist_id = $1
		ORDER BY start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("get slots by therapist: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.TherapistID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// GetAvailableByTherapistID returns only the unbooked slots, earliest first.
func (r *SlotRepository) GetAvailableByTherapistID(ctx context.Context, therapistID int64) ([]*model.Slot, error) {
	query := `
		SELECT id, therapist_id, start_time, end_time, is_booked, created_at
		FROM slots
		WHERE therapist_id = $1
		  AND is_booked = false
		ORDER BY start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("get available slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.TherapistID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// DeleteCascade removes a slot and any dependent bookings in one transaction.
// It returns false when the slot does not exist or belongs to another
// therapist, plus the calendar event ids of the deleted bookings so the
// caller can cancel them after commit.
func (r *SlotRepository) DeleteCascade(ctx context.Context, therapistID, slotID int64) (bool, []string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteBookings := `
		DELETE FROM bookings b
		USING slots s
		WHERE b.slot_id = s.id
		  AND s.id = $1
		  AND s.therapist_id = $2
		RETURNING b.google_event_id
	`

	rows, err := tx.Query(ctx, deleteBookings, slotID, therapistID)
	if err != nil {
		return false, nil, fmt.Errorf("delete dependent bookings: %w", err)
	}

	var eventIDs []string
	for rows.Next() {
		var eventID *string
		if err := rows.Scan(&eventID); err != nil {
			rows.Close()
			return false, nil, fmt.Errorf("scan deleted booking: %w", err)
		}
		if eventID != nil && *eventID != "" {
			eventIDs = append(eventIDs, *eventID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, nil, fmt.Errorf("delete dependent bookings: %w", err)
	}

	deleteSlot := `DELETE FROM slots WHERE id = $1 AND therapist_id = $2`

	tag, err := tx.Exec(ctx, deleteSlot, slotID, therapistID)
	if err != nil {
		return false, nil, fmt.Errorf("delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// nothing deleted, nothing to commit
		return false, nil, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, nil, fmt.Errorf("commit transaction: %w", err)
	}

	return true, eventIDs, nil
}
