package usecases

import (
	"context"
	"time"

	"klippa/internal/application/widget/dto"
	"klippa/internal/domain/coupon"
	"klippa/internal/domain/identity"
	"klippa/internal/domain/vendor"
	"klippa/internal/shared/biztime"
	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// ClaimCouponCommand identifies the claim attempt.
type ClaimCouponCommand struct {
	VendorSID string
	UserSID   string
	CouponSID string
}

// ClaimCouponUseCase attempts to claim a coupon row for a user. The
// precondition checks here are fast paths for good error messages; the
// safety mechanism is the repository's constraint-backed transaction.
// Conflicts are terminal outcomes and are never retried.
type ClaimCouponUseCase struct {
	vendorRepo  vendor.Repository
	userRepo    identity.Repository
	couponRepo  coupon.Repository
	claimWindow time.Duration
	logger      logger.Interface
}

// NewClaimCouponUseCase creates the use case
func NewClaimCouponUseCase(
	vendorRepo vendor.Repository,
	userRepo identity.Repository,
	couponRepo coupon.Repository,
	claimWindow time.Duration,
	logger logger.Interface,
) *ClaimCouponUseCase {
	return &ClaimCouponUseCase{
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		claimWindow: claimWindow,
		logger:      logger,
	}
}

// Execute runs the claim.
func (uc *ClaimCouponUseCase) Execute(ctx context.Context, cmd ClaimCouponCommand) (*dto.ClaimDTO, error) {
	if cmd.CouponSID == "" {
		return nil, errors.NewBadRequestError("coupon_id is required")
	}

	v, err := uc.vendorRepo.GetBySID(ctx, cmd.VendorSID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, err
	}
	if user.VendorID() != v.ID() {
		return nil, errors.NewForbiddenError("session does not belong to this vendor")
	}

	target, err := uc.couponRepo.GetBySID(ctx, cmd.CouponSID)
	if err != nil {
		return nil, err
	}
	if target.VendorID() != v.ID() {
		// Another vendor's coupon is outside this session's pool.
		return nil, errors.NewNotFoundError("coupon not found")
	}

	// Fast-path short-circuits. These give precise answers cheaply under
	// no contention; correctness comes from the transaction below.
	if target.IsClaimed() {
		return nil, coupon.NewCouponAlreadyClaimedError()
	}

	now := biztime.NowUTC()
	limit, limitEnabled := v.MonthlyLimit()
	if limitEnabled {
		count, err := uc.couponRepo.CountClaimsInMonth(ctx, user.ID(), v.ID(), biztime.ClaimMonth(now))
		if err != nil {
			return nil, err
		}
		if count >= int64(limit) {
			return nil, coupon.NewUserAlreadyClaimedError()
		}
	}

	claimed, err := uc.couponRepo.Claim(ctx, coupon.ClaimRequest{
		CouponID:     target.ID(),
		VendorID:     v.ID(),
		UserID:       user.ID(),
		Now:          now,
		ExpiryDate:   now.Add(uc.claimWindow),
		LimitEnabled: limitEnabled,
		MonthlyLimit: limit,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("claim succeeded",
		"coupon", claimed.SID(),
		"user", user.SID(),
		"vendor", v.SID())

	return &dto.ClaimDTO{
		CouponCode: claimed.Code(),
		Coupon:     dto.ToVisibleCouponDTO(claimed, true),
	}, nil
}
