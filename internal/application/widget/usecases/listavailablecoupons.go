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

// ListAvailableCouponsQuery identifies the session on whose behalf the
// availability is computed.
type ListAvailableCouponsQuery struct {
	VendorSID string
	UserSID   string
}

// ListAvailableCouponsUseCase computes the coupon rows visible to a widget
// user. Row visibility and the monthly-claim flag are independent: the
// flag must stay accurate even when the claimed row has aged out of the
// display window.
type ListAvailableCouponsUseCase struct {
	vendorRepo  vendor.Repository
	userRepo    identity.Repository
	couponRepo  coupon.Repository
	claimWindow time.Duration
	logger      logger.Interface
}

// NewListAvailableCouponsUseCase creates the use case
func NewListAvailableCouponsUseCase(
	vendorRepo vendor.Repository,
	userRepo identity.Repository,
	couponRepo coupon.Repository,
	claimWindow time.Duration,
	logger logger.Interface,
) *ListAvailableCouponsUseCase {
	return &ListAvailableCouponsUseCase{
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		claimWindow: claimWindow,
		logger:      logger,
	}
}

// Execute returns the visible rows and the monthly-claim state.
func (uc *ListAvailableCouponsUseCase) Execute(ctx context.Context, query ListAvailableCouponsQuery) (*dto.AvailabilityDTO, error) {
	v, err := uc.vendorRepo.GetBySID(ctx, query.VendorSID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetBySID(ctx, query.UserSID)
	if err != nil {
		return nil, err
	}
	if user.VendorID() != v.ID() {
		return nil, errors.NewForbiddenError("session does not belong to this vendor")
	}

	rows, err := uc.couponRepo.ListByVendor(ctx, v.ID())
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	result := &dto.AvailabilityDTO{
		Coupons:    make([]dto.CouponDTO, 0, len(rows)),
		ClaimMonth: biztime.ClaimMonth(now),
	}

	for _, row := range rows {
		switch {
		case !row.IsClaimed():
			result.Coupons = append(result.Coupons, dto.ToVisibleCouponDTO(row, false))
		case row.ActiveFor(user.ID(), now, uc.claimWindow):
			result.Coupons = append(result.Coupons, dto.ToVisibleCouponDTO(row, true))
			result.HasActiveClaim = true
			if expiry := activeClaimExpiry(row, uc.claimWindow); expiry != nil {
				if result.ActiveClaimExpiry == nil || expiry.After(*result.ActiveClaimExpiry) {
					result.ActiveClaimExpiry = expiry
				}
			}
		default:
			// Claimed by another user, or this user's claim past its active
			// window: the row is not part of the visible pool.
		}
	}

	limit, enabled := v.MonthlyLimit()
	if enabled {
		count, err := uc.couponRepo.CountClaimsInMonth(ctx, user.ID(), v.ID(), result.ClaimMonth)
		if err != nil {
			return nil, err
		}
		result.UserAlreadyClaimed = count >= int64(limit)
	}

	return result, nil
}

func activeClaimExpiry(c *coupon.Coupon, fallbackWindow time.Duration) *time.Time {
	if c.ExpiryDate() != nil {
		return c.ExpiryDate()
	}
	if c.ClaimedAt() != nil {
		expiry := c.ClaimedAt().Add(fallbackWindow)
		return &expiry
	}
	return nil
}
