package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/model"
	"github.com/ryyderbros/wellness_server/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// FindOrCreateGoogleUser resolves the local user for a Google login, creating
// one on first sign-in.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, profile model.GoogleProfile) (*model.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, profile.GoogleID)
	if err != nil {
		return nil, fmt.Errorf("find google user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.CreateFromGoogleProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("create google user: %w", err)
	}

	s.logger.Info("User created from google login",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, nil
}

// SaveGoogleRefreshToken stores the offline token when the consent screen
// returned one. Empty tokens are ignored.
func (s *UserService) SaveGoogleRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	return s.userRepo.SaveGoogleRefreshToken(ctx, userID, refreshToken)
}

// GetByID returns a user by id, nil when missing.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetTherapists returns the public therapist directory.
func (s *UserService) GetTherapists(ctx context.Context) ([]*model.TherapistProfile, error) {
	return s.userRepo.GetTherapists(ctx)
}

// GetTherapistProfile returns one therapist's profile, nil when missing.
func (s *UserService) GetTherapistProfile(ctx context.Context, userID int64) (*model.TherapistProfile, error) {
	return s.userRepo.GetTherapistProfile(ctx, userID)
}

// UpdateTherapistProfile overwrites the therapist's display fields.
func (s *UserService) UpdateTherapistProfile(ctx context.Context, userID int64, update model.TherapistProfileUpdate) (*model.TherapistProfile, error) {
	return s.userRepo.UpdateTherapistProfile(ctx, userID, update)
}

// UpdateRole changes a user's role from the admin console.
func (s *UserService) UpdateRole(ctx context.Context, userID int64, role model.Role) (bool, error) {
	updated, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return false, err
	}

	if updated {
		s.logger.Info("User role updated",
			zap.Int64("user_id", userID),
			zap.String("role", string(role)),
		)
	}

	return updated, nil
}

// GetAllUsers returns the admin user list with booking counts.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*model.AdminUser, error) {
	return s.userRepo.GetAllWithBookingCounts(ctx)
}

// GetTherapistsWithSlots returns the admin therapist list with nested slots.
func (s *UserService) GetTherapistsWithSlots(ctx context.Context) ([]*model.AdminTherapist, error) {
	return s.userRepo.GetTherapistsWithSlots(ctx)
}
