// Package dto holds the data transfer objects of the widget application
// layer. Field names follow the partner wire contract.
package dto

import (
	"time"

	"klippa/internal/domain/coupon"
)

// SessionDTO is the result of both session-issuing paths.
type SessionDTO struct {
	SessionToken string `json:"session_token"`
	UserID       string `json:"user_id"`
	VendorID     string `json:"vendor_id"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CouponDTO is one coupon row as visible to a widget user. Code is nil
// unless the row is the requesting user's own active claim.
type CouponDTO struct {
	ID         string     `json:"id"`
	Code       *string    `json:"code"`
	IsClaimed  bool       `json:"is_claimed"`
	ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// AvailabilityDTO is the result of the availability query.
type AvailabilityDTO struct {
	Coupons            []CouponDTO `json:"coupons"`
	UserAlreadyClaimed bool        `json:"user_already_claimed"`
	HasActiveClaim     bool        `json:"has_active_claim"`
	ActiveClaimExpiry  *time.Time  `json:"active_claim_expiry"`
	ClaimMonth         string      `json:"claim_month"`
}

// ClaimDTO is the result of a successful claim.
type ClaimDTO struct {
	CouponCode string    `json:"coupon_code"`
	Coupon     CouponDTO `json:"coupon"`
}

// ToVisibleCouponDTO maps a coupon row using widget visibility rules:
// revealed reports whether the requesting user may see the code.
func ToVisibleCouponDTO(c *coupon.Coupon, revealed bool) CouponDTO {
	dto := CouponDTO{
		ID:        c.SID(),
		IsClaimed: c.IsClaimed(),
	}
	if revealed {
		code := c.Code()
		dto.Code = &code
		dto.ClaimedAt = c.ClaimedAt()
		dto.ExpiryDate = c.ExpiryDate()
	}
	return dto
}
