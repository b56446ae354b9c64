package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"klippa/internal/domain/coupon"
	"klippa/internal/infrastructure/persistence/models"
	"klippa/internal/shared/biztime"
	apperrors "klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// Constraint hints for duplicate-key translation. MySQL reports the index
// name, SQLite reports table.column; matching either identifies which of
// the two ledger constraints was violated.
var (
	couponConstraintHints = []string{"idx_claim_coupon_id", "coupon_claims.coupon_id"}
	monthConstraintHints  = []string{"idx_claim_month_slot", "claim_month"}
)

// CouponRepositoryImpl implements the coupon.Repository interface
type CouponRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCouponRepository creates a new coupon repository instance
func NewCouponRepository(db *gorm.DB, logger logger.Interface) coupon.Repository {
	return &CouponRepositoryImpl{db: db, logger: logger}
}

// Create inserts a new unclaimed coupon row
func (r *CouponRepositoryImpl) Create(ctx context.Context, c *coupon.Coupon) error {
	model := couponToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("coupon already exists")
		}
		r.logger.Errorw("failed to create coupon", "sid", c.SID(), "error", err)
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set coupon ID: %w", err)
	}
	return nil
}

// GetBySID returns the non-deleted coupon with the given public identifier
func (r *CouponRepositoryImpl) GetBySID(ctx context.Context, sid string) (*coupon.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("coupon not found")
		}
		r.logger.Errorw("failed to get coupon", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return couponToDomain(&model), nil
}

// ListByVendor returns all non-deleted coupon rows of a vendor
func (r *CouponRepositoryImpl) ListByVendor(ctx context.Context, vendorID uint) ([]*coupon.Coupon, error) {
	var rows []models.CouponModel
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list coupons", "vendor_id", vendorID, "error", err)
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	coupons := make([]*coupon.Coupon, len(rows))
	for i := range rows {
		coupons[i] = couponToDomain(&rows[i])
	}
	return coupons, nil
}

// CountClaimsInMonth returns the ledger record count for the user and
// vendor in the given claim month
func (r *CouponRepositoryImpl) CountClaimsInMonth(ctx context.Context, userID, vendorID uint, claimMonth string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClaimRecordModel{}).
		Where("user_id = ? AND vendor_id = ? AND claim_month = ?", userID, vendorID, claimMonth).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count claims", "user_id", userID, "vendor_id", vendorID, "error", err)
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}
	return count, nil
}

// Claim performs the atomic claim: a conditional update of the coupon row
// and an insert into the claim ledger, in one transaction. The ledger's
// unique constraints are the safety mechanism; every precondition check
// before this call is only a fast path.
func (r *CouponRepositoryImpl) Claim(ctx context.Context, req coupon.ClaimRequest) (*coupon.Coupon, error) {
	var claimed models.CouponModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CouponModel{}).
			Where("id = ? AND vendor_id = ? AND is_claimed = ?", req.CouponID, req.VendorID, false).
			Updates(map[string]interface{}{
				"is_claimed":  true,
				"claimed_by":  req.UserID,
				"claimed_at":  req.Now,
				"expiry_date": req.ExpiryDate,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.CouponModel{}).
				Where("id = ? AND vendor_id = ?", req.CouponID, req.VendorID).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return apperrors.NewNotFoundError("coupon not found")
			}
			return coupon.NewCouponAlreadyClaimedError()
		}

		claimMonth := biztime.ClaimMonth(req.Now)

		// Slot assignment: with a limit, slots 0..limit-1 bound the month via
		// the unique index. Without a limit the slot must still be unique per
		// (user, vendor, month); the coupon id serves, since each successful
		// claim consumes a distinct coupon row.
		slot := int(req.CouponID)
		if req.LimitEnabled {
			var count int64
			if err := tx.Model(&models.ClaimRecordModel{}).
				Where("user_id = ? AND vendor_id = ? AND claim_month = ?", req.UserID, req.VendorID, claimMonth).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(req.MonthlyLimit) {
				return coupon.NewUserAlreadyClaimedError()
			}
			slot = int(count)
		}

		record := models.ClaimRecordModel{
			UserID:     req.UserID,
			VendorID:   req.VendorID,
			CouponID:   req.CouponID,
			ClaimedAt:  req.Now,
			ClaimMonth: claimMonth,
			ClaimSlot:  slot,
		}
		if err := tx.Create(&record).Error; err != nil {
			if apperrors.IsDuplicateOn(err, couponConstraintHints...) {
				return coupon.NewCouponAlreadyClaimedError()
			}
			if apperrors.IsDuplicateOn(err, monthConstraintHints...) {
				return coupon.NewUserAlreadyClaimedError()
			}
			return err
		}

		return tx.First(&claimed, req.CouponID).Error
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		r.logger.Errorw("claim transaction failed",
			"coupon_id", req.CouponID,
			"user_id", req.UserID,
			"vendor_id", req.VendorID,
			"error", err)
		return nil, fmt.Errorf("claim transaction failed: %w", err)
	}

	r.logger.Infow("coupon claimed",
		"coupon_id", claimed.ID,
		"coupon_sid", claimed.SID,
		"user_id", req.UserID,
		"vendor_id", req.VendorID)

	return couponToDomain(&claimed), nil
}

func couponToModel(c *coupon.Coupon) *models.CouponModel {
	return &models.CouponModel{
		ID:         c.ID(),
		SID:        c.SID(),
		VendorID:   c.VendorID(),
		Code:       c.Code(),
		IsClaimed:  c.IsClaimed(),
		ClaimedBy:  c.ClaimedBy(),
		ClaimedAt:  c.ClaimedAt(),
		ExpiryDate: c.ExpiryDate(),
		CreatedAt:  c.CreatedAt(),
	}
}

func couponToDomain(m *models.CouponModel) *coupon.Coupon {
	return coupon.ReconstructCoupon(
		m.ID,
		m.SID,
		m.VendorID,
		m.Code,
		m.IsClaimed,
		m.ClaimedBy,
		m.ClaimedAt,
		m.ExpiryDate,
		m.CreatedAt,
	)
}
