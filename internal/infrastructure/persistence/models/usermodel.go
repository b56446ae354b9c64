package models

import "time"

// UserModel is the persistence model for widget end users. The composite
// unique index makes the identity mapping idempotent under concurrency:
// the first insert for a (vendor, external id) pair wins, later inserts
// collide and re-read the winner.
type UserModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"column:sid;not null;size:50;uniqueIndex:idx_user_sid"`
	VendorID   uint   `gorm:"not null;uniqueIndex:idx_user_vendor_external,priority:1"`
	ExternalID string `gorm:"not null;size:191;uniqueIndex:idx_user_vendor_external,priority:2"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
