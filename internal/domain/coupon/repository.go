package coupon

import "context"

// Repository is the persistence port for coupons and the claim ledger.
type Repository interface {
	// Create inserts a new unclaimed coupon row.
	Create(ctx context.Context, c *Coupon) error

	// GetBySID returns the non-deleted coupon with the given public
	// identifier, or a not-found error.
	GetBySID(ctx context.Context, sid string) (*Coupon, error)

	// ListByVendor returns all non-deleted coupon rows of a vendor.
	// Visibility filtering is the caller's concern.
	ListByVendor(ctx context.Context, vendorID uint) ([]*Coupon, error)

	// CountClaimsInMonth returns the number of ledger records for the user
	// and vendor in the given claim month.
	CountClaimsInMonth(ctx context.Context, userID, vendorID uint, claimMonth string) (int64, error)

	// Claim atomically marks the coupon claimed and appends the ledger
	// record in one transaction. Conflicts surface as the typed errors of
	// this package; the unique constraints of the ledger are the final
	// arbiter, not any precondition check. Returns the claimed coupon
	// including its code.
	Claim(ctx context.Context, req ClaimRequest) (*Coupon, error)
}
