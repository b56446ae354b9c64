// Package coupon contains the coupon aggregate and the claim bookkeeping.
// A coupon row is a single-use ticket inside a pool: many rows may share a
// code, each row is given out at most once, and the transition from
// unclaimed to claimed is irreversible.
package coupon

import (
	"fmt"
	"time"

	"klippa/internal/shared/id"
)

// Coupon is a single claimable row of a vendor's pool.
type Coupon struct {
	couponID   uint
	sid        string
	vendorID   uint
	code       string
	isClaimed  bool
	claimedBy  *uint
	claimedAt  *time.Time
	expiryDate *time.Time
	createdAt  time.Time
}

// NewCoupon creates an unclaimed coupon row for a vendor's pool.
func NewCoupon(vendorID uint, code string) (*Coupon, error) {
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixCoupon, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate coupon sid: %w", err)
	}

	return &Coupon{
		sid:       sid,
		vendorID:  vendorID,
		code:      code,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructCoupon rebuilds a coupon from persistence.
func ReconstructCoupon(
	couponID uint,
	sid string,
	vendorID uint,
	code string,
	isClaimed bool,
	claimedBy *uint,
	claimedAt *time.Time,
	expiryDate *time.Time,
	createdAt time.Time,
) *Coupon {
	return &Coupon{
		couponID:   couponID,
		sid:        sid,
		vendorID:   vendorID,
		code:       code,
		isClaimed:  isClaimed,
		claimedBy:  claimedBy,
		claimedAt:  claimedAt,
		expiryDate: expiryDate,
		createdAt:  createdAt,
	}
}

func (c *Coupon) ID() uint               { return c.couponID }
func (c *Coupon) SID() string            { return c.sid }
func (c *Coupon) VendorID() uint         { return c.vendorID }
func (c *Coupon) Code() string           { return c.code }
func (c *Coupon) IsClaimed() bool        { return c.isClaimed }
func (c *Coupon) ClaimedBy() *uint       { return c.claimedBy }
func (c *Coupon) ClaimedAt() *time.Time  { return c.claimedAt }
func (c *Coupon) ExpiryDate() *time.Time { return c.expiryDate }
func (c *Coupon) CreatedAt() time.Time   { return c.createdAt }

// SetID assigns the persistence identifier after insert.
func (c *Coupon) SetID(couponID uint) error {
	if c.couponID != 0 {
		return fmt.Errorf("coupon ID already set")
	}
	c.couponID = couponID
	return nil
}

// IsClaimedBy reports whether the row is claimed by the given user.
func (c *Coupon) IsClaimedBy(userID uint) bool {
	return c.isClaimed && c.claimedBy != nil && *c.claimedBy == userID
}

// ActiveFor reports whether the row is an active claim of the given user at
// the given instant. A claim with an expiry date is active until that date;
// a claim without one is active for fallbackWindow after the claim time.
func (c *Coupon) ActiveFor(userID uint, now time.Time, fallbackWindow time.Duration) bool {
	if !c.IsClaimedBy(userID) {
		return false
	}
	if c.expiryDate != nil {
		return now.Before(*c.expiryDate)
	}
	if c.claimedAt == nil {
		return false
	}
	return now.Before(c.claimedAt.Add(fallbackWindow))
}
