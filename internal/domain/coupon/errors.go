package coupon

import "klippa/internal/shared/errors"

// Stable machine-readable conflict codes. Client widgets branch on these,
// so they are part of the wire contract and must not change.
const (
	ReasonCouponAlreadyClaimed = "COUPON_ALREADY_CLAIMED"
	ReasonUserAlreadyClaimed   = "USER_ALREADY_CLAIMED"
)

// NewCouponAlreadyClaimedError reports that the coupon row was already
// given out, to this or another user.
func NewCouponAlreadyClaimedError() *errors.AppError {
	return errors.NewConflictError("coupon has already been claimed").
		WithReason(ReasonCouponAlreadyClaimed)
}

// NewUserAlreadyClaimedError reports that the user reached the vendor's
// monthly claim limit.
func NewUserAlreadyClaimedError() *errors.AppError {
	return errors.NewConflictError("monthly claim limit reached for this vendor").
		WithReason(ReasonUserAlreadyClaimed)
}

// IsCouponAlreadyClaimed reports whether err is the per-coupon conflict.
func IsCouponAlreadyClaimed(err error) bool {
	appErr := errors.GetAppError(err)
	return appErr != nil && appErr.Reason == ReasonCouponAlreadyClaimed
}

// IsUserAlreadyClaimed reports whether err is the monthly-limit conflict.
func IsUserAlreadyClaimed(err error) bool {
	appErr := errors.GetAppError(err)
	return appErr != nil && appErr.Reason == ReasonUserAlreadyClaimed
}
