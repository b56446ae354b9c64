// Package seeds populates a development database with a demo vendor and
// a small coupon pool so the widget can be exercised end to end.
package seeds

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"klippa/internal/domain/coupon"
	"klippa/internal/domain/vendor"
	"klippa/internal/infrastructure/repository"
	"klippa/internal/shared/logger"
)

const (
	demoVendorName    = "Demo Vendor"
	demoAPIKey        = "demo-api-key-not-for-production"
	demoPartnerSecret = "demo-partner-secret-not-for-production"
	demoCouponCount   = 5
)

// Seeder inserts demo data. It is idempotent per run only in the sense
// that repeated runs add more coupon rows; it is a development tool.
type Seeder struct {
	vendorRepo vendor.Repository
	couponRepo coupon.Repository
	logger     logger.Interface
}

func NewSeeder(db *gorm.DB, log logger.Interface) *Seeder {
	return &Seeder{
		vendorRepo: repository.NewVendorRepository(db, log),
		couponRepo: repository.NewCouponRepository(db, log),
		logger:     log,
	}
}

// Seed creates a demo vendor with both credential kinds and a pool of
// coupon rows sharing one code.
func (s *Seeder) Seed(ctx context.Context) error {
	v, err := vendor.NewVendor(demoVendorName)
	if err != nil {
		return fmt.Errorf("failed to build demo vendor: %w", err)
	}
	if err := v.ProvisionAPIKey(demoAPIKey); err != nil {
		return err
	}
	if err := v.ProvisionPartnerSecret(demoPartnerSecret); err != nil {
		return err
	}

	if err := s.vendorRepo.Create(ctx, v); err != nil {
		return fmt.Errorf("failed to create demo vendor: %w", err)
	}
	s.logger.Infow("seeded demo vendor", "vendor_id", v.SID())

	for i := 0; i < demoCouponCount; i++ {
		c, err := coupon.NewCoupon(v.ID(), "WELCOME10")
		if err != nil {
			return fmt.Errorf("failed to build demo coupon: %w", err)
		}
		if err := s.couponRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("failed to create demo coupon: %w", err)
		}
	}
	s.logger.Infow("seeded demo coupons", "vendor_id", v.SID(), "count", demoCouponCount)

	return nil
}
