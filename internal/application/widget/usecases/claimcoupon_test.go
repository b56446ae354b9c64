package usecases

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"klippa/internal/domain/coupon"
	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

func newClaimUseCase(vendorRepo *mockVendorRepo, userRepo *mockUserRepo, couponRepo *mockCouponRepo) *ClaimCouponUseCase {
	return NewClaimCouponUseCase(vendorRepo, userRepo, couponRepo, testClaimWindow, logger.NewNop())
}

func TestClaimCouponUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	cmd := ClaimCouponCommand{VendorSID: "vnd_test", UserSID: "usr_test", CouponSID: "cpn_test"}

	t.Run("successful claim returns the code", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, true)
		u := testUser(v.ID())
		userID := u.ID()
		now := time.Now().UTC()
		expiry := now.Add(testClaimWindow)

		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(u, nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID(), false, nil, nil, nil), nil)
		couponRepo.On("CountClaimsInMonth", ctx, userID, v.ID(), mock.Anything).Return(int64(0), nil)
		couponRepo.On("Claim", ctx, mock.MatchedBy(func(req coupon.ClaimRequest) bool {
			return req.CouponID == 1 && req.VendorID == v.ID() && req.UserID == userID &&
				req.LimitEnabled && req.MonthlyLimit == 1
		})).Return(testCoupon(1, v.ID(), true, &userID, &now, &expiry), nil)

		result, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", result.CouponCode)
		require.NotNil(t, result.Coupon.Code)
		assert.Equal(t, "SAVE20", *result.Coupon.Code)
		assert.True(t, result.Coupon.IsClaimed)
		couponRepo.AssertExpectations(t)
	})

	t.Run("missing coupon id is a bad request", func(t *testing.T) {
		uc := newClaimUseCase(new(mockVendorRepo), new(mockUserRepo), new(mockCouponRepo))

		_, err := uc.Execute(ctx, ClaimCouponCommand{VendorSID: "vnd_test", UserSID: "usr_test"})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("session user of a different vendor is forbidden", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)

		v := testVendor("", "", 1, true)
		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(testUser(v.ID()+1), nil)

		_, err := newClaimUseCase(vendorRepo, userRepo, new(mockCouponRepo)).Execute(ctx, cmd)
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
	})

	t.Run("another vendor's coupon reads as not found", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, true)
		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(testUser(v.ID()), nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID()+7, false, nil, nil, nil), nil)

		_, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("already claimed coupon short-circuits with the per-coupon conflict", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, true)
		u := testUser(v.ID())
		otherUser := uint(999)
		now := time.Now().UTC()

		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(u, nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID(), true, &otherUser, &now, nil), nil)

		_, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.Error(t, err)
		assert.True(t, coupon.IsCouponAlreadyClaimed(err))
		couponRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
	})

	t.Run("reached monthly limit short-circuits with the user conflict", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, true)
		u := testUser(v.ID())
		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(u, nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID(), false, nil, nil, nil), nil)
		couponRepo.On("CountClaimsInMonth", ctx, u.ID(), v.ID(), mock.Anything).Return(int64(1), nil)

		_, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.Error(t, err)
		assert.True(t, coupon.IsUserAlreadyClaimed(err))
		couponRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
	})

	t.Run("disabled limit skips the month count", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, false)
		u := testUser(v.ID())
		userID := u.ID()
		now := time.Now().UTC()

		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(u, nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID(), false, nil, nil, nil), nil)
		couponRepo.On("Claim", ctx, mock.MatchedBy(func(req coupon.ClaimRequest) bool {
			return !req.LimitEnabled
		})).Return(testCoupon(1, v.ID(), true, &userID, &now, nil), nil)

		_, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.NoError(t, err)
		couponRepo.AssertNotCalled(t, "CountClaimsInMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository conflicts pass through unchanged", func(t *testing.T) {
		vendorRepo := new(mockVendorRepo)
		userRepo := new(mockUserRepo)
		couponRepo := new(mockCouponRepo)

		v := testVendor("", "", 1, true)
		u := testUser(v.ID())
		vendorRepo.On("GetBySID", ctx, "vnd_test").Return(v, nil)
		userRepo.On("GetBySID", ctx, "usr_test").Return(u, nil)
		couponRepo.On("GetBySID", ctx, "cpn_test").Return(testCoupon(1, v.ID(), false, nil, nil, nil), nil)
		couponRepo.On("CountClaimsInMonth", ctx, u.ID(), v.ID(), mock.Anything).Return(int64(0), nil)
		couponRepo.On("Claim", ctx, mock.Anything).Return(nil, coupon.NewCouponAlreadyClaimedError())

		_, err := newClaimUseCase(vendorRepo, userRepo, couponRepo).Execute(ctx, cmd)
		require.Error(t, err)
		assert.True(t, coupon.IsCouponAlreadyClaimed(err))
	})
}
