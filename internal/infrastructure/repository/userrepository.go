package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"klippa/internal/domain/identity"
	"klippa/internal/infrastructure/persistence/models"
	apperrors "klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// UserRepositoryImpl implements the identity.Repository interface
type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB, logger logger.Interface) identity.Repository {
	return &UserRepositoryImpl{db: db, logger: logger}
}

// Upsert resolves (vendorID, externalID) to a user, creating the row on
// first contact. The insert races against concurrent upserts for the same
// pair; the unique index on (vendor_id, external_id) elects the winner and
// losers re-read the winning row.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, vendorID uint, externalID string) (*identity.User, error) {
	if externalID == "" {
		return nil, apperrors.NewValidationError("external ID is required")
	}

	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND external_id = ?", vendorID, externalID).
		First(&model).Error
	if err == nil {
		return userToDomain(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Errorw("failed to look up user", "vendor_id", vendorID, "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user, err := identity.NewUser(vendorID, externalID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	model = models.UserModel{
		SID:        user.SID(),
		VendorID:   user.VendorID(),
		ExternalID: user.ExternalID(),
		CreatedAt:  user.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			// A concurrent upsert won the insert; the mapping is a pure
			// function, so the winner's row is our result.
			var winner models.UserModel
			if err := r.db.WithContext(ctx).
				Where("vendor_id = ? AND external_id = ?", vendorID, externalID).
				First(&winner).Error; err != nil {
				return nil, fmt.Errorf("failed to read winning user row: %w", err)
			}
			return userToDomain(&winner), nil
		}
		r.logger.Errorw("failed to create user", "vendor_id", vendorID, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := user.SetID(model.ID); err != nil {
		return nil, fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "sid", model.SID, "vendor_id", vendorID)
	return user, nil
}

// GetBySID returns the user with the given public identifier
func (r *UserRepositoryImpl) GetBySID(ctx context.Context, sid string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToDomain(&model), nil
}

func userToDomain(m *models.UserModel) *identity.User {
	return identity.ReconstructUser(m.ID, m.SID, m.VendorID, m.ExternalID, m.CreatedAt)
}
