package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/stretchr/testify/mock"

	"klippa/internal/domain/coupon"
	"klippa/internal/domain/identity"
	"klippa/internal/domain/vendor"
)

type mockVendorRepo struct {
	mock.Mock
}

func (m *mockVendorRepo) Create(ctx context.Context, v *vendor.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVendorRepo) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	args := m.Called(ctx, sid)
	if v := args.Get(0); v != nil {
		return v.(*vendor.Vendor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVendorRepo) Update(ctx context.Context, v *vendor.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Upsert(ctx context.Context, vendorID uint, externalID string) (*identity.User, error) {
	args := m.Called(ctx, vendorID, externalID)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetBySID(ctx context.Context, sid string) (*identity.User, error) {
	args := m.Called(ctx, sid)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCouponRepo struct {
	mock.Mock
}

func (m *mockCouponRepo) Create(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCouponRepo) GetBySID(ctx context.Context, sid string) (*coupon.Coupon, error) {
	args := m.Called(ctx, sid)
	if c := args.Get(0); c != nil {
		return c.(*coupon.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponRepo) ListByVendor(ctx context.Context, vendorID uint) ([]*coupon.Coupon, error) {
	args := m.Called(ctx, vendorID)
	if rows := args.Get(0); rows != nil {
		return rows.([]*coupon.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCouponRepo) CountClaimsInMonth(ctx context.Context, userID, vendorID uint, claimMonth string) (int64, error) {
	args := m.Called(ctx, userID, vendorID, claimMonth)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCouponRepo) Claim(ctx context.Context, req coupon.ClaimRequest) (*coupon.Coupon, error) {
	args := m.Called(ctx, req)
	if c := args.Get(0); c != nil {
		return c.(*coupon.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMinter struct {
	mock.Mock
}

func (m *mockMinter) Mint(userID, vendorID string) (*MintedSession, error) {
	args := m.Called(userID, vendorID)
	if s := args.Get(0); s != nil {
		return s.(*MintedSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VendorHint(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *mockVerifier) Verify(ctx context.Context, token, partnerSecret string) (*VerifiedPartnerToken, error) {
	args := m.Called(ctx, token, partnerSecret)
	if v := args.Get(0); v != nil {
		return v.(*VerifiedPartnerToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func assertAnError() error { return stderrors.New("backing store exploded") }

// Fixture builders shared across the use case tests.

func testVendor(apiKey, partnerSecret string, limit int, limitEnabled bool) *vendor.Vendor {
	var keyPtr, secretPtr *string
	if apiKey != "" {
		keyPtr = &apiKey
	}
	if partnerSecret != "" {
		secretPtr = &partnerSecret
	}
	now := time.Now().UTC()
	return vendor.ReconstructVendor(1, "vnd_test", "Test Vendor", keyPtr, secretPtr, limitEnabled, limit, now, now)
}

func testUser(vendorID uint) *identity.User {
	return identity.ReconstructUser(10, "usr_test", vendorID, "ext-1", time.Now().UTC())
}

func testCoupon(id uint, vendorID uint, claimed bool, claimedBy *uint, claimedAt, expiry *time.Time) *coupon.Coupon {
	return coupon.ReconstructCoupon(id, "cpn_test", vendorID, "SAVE20", claimed, claimedBy, claimedAt, expiry, time.Now().UTC())
}
