package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/store"
)

// ProfileService manages a user's stored birth profiles. Every operation
// that takes a profile ID checks it belongs to userID and returns
// ErrNotOwned otherwise.
type ProfileService interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, facts domain.ProfileFacts) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error)
	ListProfiles(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error)
	UpdateProfile(
		ctx context.Context,
		userID, profileID uuid.UUID,
		facts domain.ProfileFacts,
	) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, userID, profileID uuid.UUID) error
}

type profileService struct {
	profiles store.ProfileStore
	db       store.TxBeginner
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(profiles store.ProfileStore, db store.TxBeginner, log *slog.Logger) ProfileService {
	return &profileService{
		profiles: profiles,
		db:       db,
		logger:   log.With("component", "profile_service"),
	}
}

// ownedProfile loads a profile and checks its owner.
func ownedProfile(
	ctx context.Context,
	profiles store.ProfileStore,
	userID, profileID uuid.UUID,
) (*domain.Profile, error) {
	profile, err := profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, ErrNotOwned
	}
	return profile, nil
}

func (s *profileService) CreateProfile(
	ctx context.Context,
	userID uuid.UUID,
	facts domain.ProfileFacts,
) (*domain.Profile, error) {
	profile, err := domain.NewProfile(userID, facts)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create profile",
			"error", err,
			"user_id", userID)
		return nil, wrapError("profile", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("profile created",
		"profile_id", profile.ID,
		"user_id", userID,
		"complete", profile.IsComplete())
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error) {
	profile, err := ownedProfile(ctx, s.profiles, userID, profileID)
	if err != nil {
		return nil, wrapError("profile", "get", err)
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	profiles, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list profiles",
			"error", err,
			"user_id", userID)
		return nil, wrapError("profile", "list", err)
	}
	return profiles, nil
}

// UpdateProfile replaces a profile's facts. The ownership check and the
// write share one transaction.
func (s *profileService) UpdateProfile(
	ctx context.Context,
	userID, profileID uuid.UUID,
	facts domain.ProfileFacts,
) (*domain.Profile, error) {
	var updated *domain.Profile
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProfiles := s.profiles.WithTx(tx)
		profile, err := ownedProfile(ctx, txProfiles, userID, profileID)
		if err != nil {
			return err
		}
		if err := profile.Update(facts); err != nil {
			return err
		}
		if err := txProfiles.Update(ctx, profile); err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, wrapError("profile", "update", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("profile updated",
		"profile_id", profileID,
		"user_id", userID)
	return updated, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, userID, profileID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProfiles := s.profiles.WithTx(tx)
		if _, err := ownedProfile(ctx, txProfiles, userID, profileID); err != nil {
			return err
		}
		return txProfiles.Delete(ctx, profileID)
	})
	if err != nil {
		return wrapError("profile", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("profile deleted",
		"profile_id", profileID,
		"user_id", userID)
	return nil
}
