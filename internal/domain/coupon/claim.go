package coupon

import "time"

// ClaimRecord is one row of the claim history ledger. The ledger carries
// the two storage-enforced uniqueness guarantees: one record per coupon row,
// and at most the configured number of records per user, vendor and claim
// month (slots 0..limit-1).
type ClaimRecord struct {
	ID         uint
	UserID     uint
	VendorID   uint
	CouponID   uint
	ClaimedAt  time.Time
	ClaimMonth string
	ClaimSlot  int
}

// ClaimRequest carries everything the repository needs to perform the
// atomic claim: the conditional coupon update and the ledger insert happen
// in one transaction, with the unique constraints as the final arbiter.
type ClaimRequest struct {
	CouponID     uint
	VendorID     uint
	UserID       uint
	Now          time.Time
	ExpiryDate   time.Time
	LimitEnabled bool
	MonthlyLimit int
}
