package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"klippa/internal/domain/vendor"
	"klippa/internal/infrastructure/persistence/models"
	apperrors "klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// VendorRepositoryImpl implements the vendor.Repository interface
type VendorRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB, logger logger.Interface) vendor.Repository {
	return &VendorRepositoryImpl{db: db, logger: logger}
}

// Create inserts a new vendor row
func (r *VendorRepositoryImpl) Create(ctx context.Context, v *vendor.Vendor) error {
	model := vendorToModel(v)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("vendor already exists")
		}
		r.logger.Errorw("failed to create vendor", "sid", v.SID(), "error", err)
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := v.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set vendor ID: %w", err)
	}

	r.logger.Infow("vendor created", "id", model.ID, "sid", model.SID)
	return nil
}

// GetBySID returns the vendor with the given public identifier
func (r *VendorRepositoryImpl) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vendor not found")
		}
		r.logger.Errorw("failed to get vendor", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return vendorToDomain(&model), nil
}

// Update persists secret and limit changes
func (r *VendorRepositoryImpl) Update(ctx context.Context, v *vendor.Vendor) error {
	result := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("id = ?", v.ID()).
		Updates(map[string]interface{}{
			"api_key":             v.APIKey(),
			"partner_secret":      v.PartnerSecretPtr(),
			"claim_limit_enabled": limitEnabled(v),
			"monthly_claim_limit": limitValue(v),
			"name":                v.Name(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update vendor", "id", v.ID(), "error", result.Error)
		return fmt.Errorf("failed to update vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("vendor not found")
	}
	return nil
}

func limitEnabled(v *vendor.Vendor) bool {
	_, enabled := v.MonthlyLimit()
	return enabled
}

func limitValue(v *vendor.Vendor) int {
	limit, _ := v.MonthlyLimit()
	return limit
}

func vendorToModel(v *vendor.Vendor) *models.VendorModel {
	limit, enabled := v.MonthlyLimit()
	return &models.VendorModel{
		ID:                v.ID(),
		SID:               v.SID(),
		Name:              v.Name(),
		APIKey:            v.APIKey(),
		PartnerSecret:     v.PartnerSecretPtr(),
		ClaimLimitEnabled: enabled,
		MonthlyClaimLimit: limit,
		CreatedAt:         v.CreatedAt(),
		UpdatedAt:         v.UpdatedAt(),
	}
}

func vendorToDomain(m *models.VendorModel) *vendor.Vendor {
	return vendor.ReconstructVendor(
		m.ID,
		m.SID,
		m.Name,
		m.APIKey,
		m.PartnerSecret,
		m.ClaimLimitEnabled,
		m.MonthlyClaimLimit,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
