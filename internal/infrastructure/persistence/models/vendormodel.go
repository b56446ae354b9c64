package models

import "time"

// VendorModel is the persistence model for vendors. This is the
// anti-corruption layer between domain and database.
type VendorModel struct {
	ID                uint    `gorm:"primarykey"`
	SID               string  `gorm:"column:sid;not null;size:50;uniqueIndex:idx_vendor_sid"`
	Name              string  `gorm:"not null;size:100"`
	APIKey            *string `gorm:"column:api_key;size:191"`
	PartnerSecret     *string `gorm:"size:191"`
	ClaimLimitEnabled bool    `gorm:"not null;default:true"`
	MonthlyClaimLimit int     `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}
