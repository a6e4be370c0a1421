package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryyderbros/wellness_server/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, google_id, email, name, picture, role, photo_url, headline, profile_bio, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.GoogleID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.Role,
		&user.PhotoURL,
		&user.Headline,
		&user.ProfileBio,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns a user by primary key, nil when missing.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByGoogleID returns a user by its Google identity, nil when missing.
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by google id: %w", err)
	}

	return user, nil
}

// CreateFromGoogleProfile inserts a new user from a Google login.
func (r *UserRepository) CreateFromGoogleProfile(ctx context.Context, profile model.GoogleProfile) (*model.User, error) {
	query := `
		INSERT INTO users (google_id, email, name, picture)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, profile.GoogleID, profile.Email, profile.Name, profile.Picture))
	if err != nil {
		return nil, fmt.Errorf("create user from google profile: %w", err)
	}

	return user, nil
}

// SaveGoogleRefreshToken stores the offline-access token used later for
// calendar calls on the therapist's behalf.
func (r *UserRepository) SaveGoogleRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	query := `UPDATE users SET google_refresh_token = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, userID, refreshToken); err != nil {
		return fmt.Errorf("save google refresh token: %w", err)
	}

	return nil
}

// GoogleCredential returns the stored refresh token and display fields for a
// user. An empty refresh token means the user never granted offline access.
func (r *UserRepository) GoogleCredential(ctx context.Context, userID int64) (refreshToken, email, name string, err error) {
	query := `
		SELECT COALESCE(google_refresh_token, ''), email, name
		FROM users
		WHERE id = $1
	`

	err = r.pool.QueryRow(ctx, query, userID).Scan(&refreshToken, &email, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", "", nil
		}
		return "", "", "", fmt.Errorf("get google credential: %w", err)
	}

	return refreshToken, email, name, nil
}

// GetTherapists returns all therapist profiles ordered by name.
func (r *UserRepository) GetTherapists(ctx context.Context) ([]*model.TherapistProfile, error) {
	query := `
		SELECT id, name, email, photo_url, headline, profile_bio
		FROM users
		WHERE role = 'therapist'
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get therapists: %w", err)
	}
	defer rows.Close()

	var therapists []*model.TherapistProfile
	for rows.Next() {
		var p model.TherapistProfile
		err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PhotoURL, &p.Headline, &p.ProfileBio)
		if err != nil {
			return nil, fmt.Errorf("scan therapist: %w", err)
		}
		therapists = append(therapists, &p)
	}

	return therapists, nil
}

// GetTherapistProfile returns a single therapist profile, nil when the user
// does not exist or is not a therapist.
func (r *UserRepository) GetTherapistProfile(ctx context.Context, userID int64) (*model.TherapistProfile, error) {
	query := `
		SELECT id, name, email, photo_url, headline, profile_bio
		FROM users
		WHERE id = $1 AND role = 'therapist'
	`

	var p model.TherapistProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.ID, &p.Name, &p.Email, &p.PhotoURL, &p.Headline, &p.ProfileBio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get therapist profile: %w", err)
	}

	return &p, nil
}

// UpdateTherapistProfile overwrites the writable profile fields.
func (r *UserRepository) UpdateTherapistProfile(ctx context.Context, userID int64, update model.TherapistProfileUpdate) (*model.TherapistProfile, error) {
	query := `
		UPDATE users
		SET photo_url = $1,
		    headline = $2,
		    profile_bio = $3
		WHERE id = $4 AND role = 'therapist'
		RETURNING id, name, email, photo_url, headline, profile_bio
	`

	var p model.TherapistProfile
	err := r.pool.QueryRow(ctx, query, update.PhotoURL, update.Headline, update.ProfileBio, userID).
		Scan(&p.ID, &p.Name, &p.Email, &p.PhotoURL, &p.Headline, &p.ProfileBio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update therapist profile: %w", err)
	}

	return &p, nil
}

// UpdateRole changes a user's role, returning false when the user is missing.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role model.Role) (bool, error) {
	query := `UPDATE users SET role = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, role, userID)
	if err != nil {
		return false, fmt.Errorf("update user role: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetAllWithBookingCounts returns every user with its booking count, for the
// admin console.
func (r *UserRepository) GetAllWithBookingCounts(ctx context.Context) ([]*model.AdminUser, error) {
	query := `
		SELECT
			u.id, u.name, u.email, u.role, u.picture, u.photo_url,
			(SELECT COUNT(*) FROM bookings b WHERE b.client_id = u.id) AS booking_count
		FROM users u
		ORDER BY u.id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get users with booking counts: %w", err)
	}
	defer rows.Close()

	var users []*model.AdminUser
	for rows.Next() {
		var u model.AdminUser
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Picture, &u.PhotoURL, &u.BookingCount)
		if err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		users = append(users, &u)
	}

	return users, nil
}

// GetTherapistsWithSlots returns therapists with their slots aggregated as
// JSON, newest slot first.
func (r *UserRepository) GetTherapistsWithSlots(ctx context.Context) ([]*model.AdminTherapist, error) {
	query := `
		SELECT
			u.id, u.name, u.email, u.role, u.picture, u.photo_url,
			COALESCE(
				json_agg(
					json_build_object(
						'id', s.id,
						'start_time', s.start_time,
						'end_time', s.end_time,
						'is_booked', s.is_booked
					) ORDER BY s.start_time DESC
				) FILTER (WHERE s.id IS NOT NULL),
				'[]'
			) AS slots
		FROM users u
		LEFT JOIN slots s ON u.id = s.therapist_id
		WHERE u.role = 'therapist'
		GROUP BY u.id
		ORDER BY u.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get therapists with slots: %w", err)
	}
	defer rows.Close()

	var therapists []*model.AdminTherapist
	for rows.Next() {
		var t model.AdminTherapist
		err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Role, &t.Picture, &t.PhotoURL, &t.Slots)
		if err != nil {
			return nil, fmt.Errorf("scan admin therapist: %w", err)
		}
		therapists = append(therapists, &t)
	}

	return therapists, nil
}
