package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponModel is the persistence model for coupon rows. Code is not unique:
// many rows of a vendor may share one code, forming a pool of equivalent
// single-use tickets.
type CouponModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"column:sid;not null;size:50;uniqueIndex:idx_coupon_sid"`
	VendorID   uint   `gorm:"not null;index:idx_coupon_vendor"`
	Code       string `gorm:"not null;size:100"`
	IsClaimed  bool   `gorm:"not null;default:false"`
	ClaimedBy  *uint
	ClaimedAt  *time.Time
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}
