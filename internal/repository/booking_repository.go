package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryyderbros/wellness_server/internal/model"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Claim converts an available slot into a confirmed booking. The whole claim
// runs in one transaction under a row lock on the slot: of any number of
// concurrent claims on the same slot exactly one commits, the rest see
// ErrSlotUnavailable. The lock is released at commit, before any calendar
// call the caller makes.
func (r *BookingRepository) Claim(ctx context.Context, slotID, clientID int64) (*model.BookingClaim, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the slot row only; locking the joined therapist row would make
	// bookings of different slots of one therapist contend.
	lockSlot := `
		SELECT s.id, s.therapist_id, s.start_time, s.end_time, s.is_booked, s.created_at,
		       u.name, u.email
		FROM slots s
		JOIN users u ON u.id = s.therapist_id
		WHERE s.id = $1
		FOR UPDATE OF s
	`

	var (
		slot           model.Slot
		therapistName  string
		therapistEmail string
	)
	err = tx.QueryRow(ctx, lockSlot, slotID).Scan(
		&slot.ID,
		&slot.TherapistID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.CreatedAt,
		&therapistName,
		&therapistEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("lock slot: %w", err)
	}

	if slot.IsBooked {
		return nil, ErrSlotUnavailable
	}

	getClient := `SELECT name, email FROM users WHERE id = $1`

	var clientName, clientEmail string
	err = tx.QueryRow(ctx, getClient, clientID).Scan(&clientName, &clientEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	markBooked := `UPDATE slots SET is_booked = true WHERE id = $1`

	if _, err := tx.Exec(ctx, markBooked, slotID); err != nil {
		return nil, fmt.Errorf("mark slot booked: %w", err)
	}

	insertBooking := `
		INSERT INTO bookings (slot_id, therapist_id, client_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	booking := &model.Booking{
		SlotID:      slotID,
		TherapistID: slot.TherapistID,
		ClientID:    clientID,
		Status:      model.BookingStatusConfirmed,
	}
	err = tx.QueryRow(ctx, insertBooking, slotID, slot.TherapistID, clientID, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slot.IsBooked = true

	return &model.BookingClaim{
		Booking:        booking,
		Slot:           &slot,
		TherapistName:  therapistName,
		TherapistEmail: therapistEmail,
		ClientName:     clientName,
		ClientEmail:    clientEmail,
	}, nil
}

// AttachMeetingEvent stores the calendar reference on an existing booking.
// It runs outside the claim transaction and is safe to retry.
func (r *BookingRepository) AttachMeetingEvent(ctx context.Context, bookingID int64, eventID, meetLink string) error {
	query := `
		UPDATE bookings
		SET google_event_id = $2,
		    meet_link = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, bookingID, eventID, meetLink)
	if err != nil {
		return fmt.Errorf("attach meeting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attach meeting event: booking %d not found", bookingID)
	}

	return nil
}

// GetByClientID returns a client's bookings enriched with the slot window and
// therapist display fields, earliest session first.
func (r *BookingRepository) GetByClientID(ctx context.Context, clientID int64) ([]*model.ClientBooking, error) {
	query := `
		SELECT
			b.id, b.status, b.created_at, b.meet_link,
			s.start_time, s.end_time, s.therapist_id,
			u.name AS therapist_name, u.email AS therapist_email
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		JOIN users u ON u.id = s.therapist_id
		WHERE b.client_id = $1
		ORDER BY s.start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by client: %w", err)
	}
	defer rows.Close()

	var bookings []*model.ClientBooking
	for rows.Next() {
		var b model.ClientBooking
		err := rows.Scan(
			&b.ID,
			&b.Status,
			&b.CreatedAt,
			&b.MeetLink,
			&b.StartTime,
			&b.EndTime,
			&b.TherapistID,
			&b.TherapistName,
			&b.TherapistEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

// GetUpcomingByTherapistID returns a therapist's sessions from five minutes
// before now onward. The lookback keeps in-progress sessions visible across
// clock skew.
func (r *BookingRepository) GetUpcomingByTherapistID(ctx context.Context, therapistID int64) ([]*model.TherapistSession, error) {
	query := `
		SELECT
			b.id, b.slot_id, b.status, b.created_at,
			s.start_time, s.end_time,
			u.name AS client_name, u.email AS client_email
		FROM bookings b
		JOIN slots s ON b.slot_id = s.id
		JOIN users u ON b.client_id = u.id
		WHERE s.therapist_id = $1
		  AND s.start_time >= NOW() - INTERVAL '5 minutes'
		ORDER BY s.start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by therapist: %w", err)
	}
	defer rows.Close()

	var sessions []*model.TherapistSession
	for rows.Next() {
		var s model.TherapistSession
		err := rows.Scan(
			&s.ID,
			&s.SlotID,
			&s.Status,
			&s.CreatedAt,
			&s.StartTime,
			&s.EndTime,
			&s.ClientName,
			&s.ClientEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan therapist session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, nil
}

// GetAll returns the admin master list, latest session first.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*model.AdminBooking, error) {
	query := `
		SELECT
			b.id, b.status, b.meet_link, b.created_at,
			client.id AS client_id,
			client.name AS client_name,
			client.email AS client_email,
			therapist.name AS therapist_name,
			therapist.email AS therapist_email,
			s.start_time, s.end_time
		FROM bookings b
		JOIN users client ON b.client_id = client.id
		JOIN slots s ON b.slot_id = s.id
		JOIN users therapist ON s.therapist_id = therapist.id
		ORDER BY s.start_time DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.AdminBooking
	for rows.Next() {
		var b model.AdminBooking
		err := rows.Scan(
			&b.ID,
			&b.Status,
			&b.MeetLink,
			&b.CreatedAt,
			&b.ClientID,
			&b.ClientName,
			&b.ClientEmail,
			&b.TherapistName,
			&b.TherapistEmail,
			&b.StartTime,
			&b.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan admin booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}
