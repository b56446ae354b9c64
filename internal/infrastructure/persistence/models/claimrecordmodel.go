package models

import "time"

// ClaimRecordModel is the persistence model for the claim ledger. Its two
// unique indexes are the safety mechanism of the claim engine:
//
//   - idx_claim_coupon_id: each coupon row is given out once, ever.
//   - idx_claim_month_slot: at most `limit` records per user, vendor and
//     claim month, with slots numbered 0..limit-1.
//
// The index names are load-bearing: conflict translation matches on them
// (and on the column names, for SQLite) to tell the two violations apart.
type ClaimRecordModel struct {
	ID         uint   `gorm:"primarykey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_claim_month_slot,priority:1"`
	VendorID   uint   `gorm:"not null;uniqueIndex:idx_claim_month_slot,priority:2"`
	ClaimMonth string `gorm:"not null;size:7;uniqueIndex:idx_claim_month_slot,priority:3"`
	ClaimSlot  int    `gorm:"not null;default:0;uniqueIndex:idx_claim_month_slot,priority:4"`
	CouponID   uint   `gorm:"column:coupon_id;not null;uniqueIndex:idx_claim_coupon_id"`
	ClaimedAt  time.Time
}

// TableName specifies the table name for GORM
func (ClaimRecordModel) TableName() string {
	return "coupon_claims"
}
